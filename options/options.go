package options

import (
	"flag"
	"fmt"
	"os"
)

// Modes accepted by -mode.
const (
	ModeRun    = "run"
	ModeRecord = "record"
	ModeCheck  = "check"
)

// FFmpegEnv overrides the ffmpeg executable when -ffmpeg is not given.
const FFmpegEnv = "LEARNOPENGL_FFMPEG"

type ShaderOptions struct {
	Help         *bool
	Mode         *string
	Scene        *string
	VertexFile   *string // replaces the scene's vertex shader
	FragmentFile *string // replaces the scene's fragment shader
	ShaderDir    *string // searched before the embedded shaders
	Translate    *bool   // translate GLSL ES 3.00 sources to GLSL 330
	Headless     *bool   // use an EGL pbuffer instead of a window
	Duration     *float64
	FPS          *int
	Width        *int
	Height       *int
	OutputFile   *string
	FFMPEGPath   *string
	Codec        *string
}

// New registers the command line flags on fs.
func New(fs *flag.FlagSet) *ShaderOptions {
	return &ShaderOptions{
		Help:         fs.Bool("help", false, "Show help message"),
		Mode:         fs.String("mode", ModeRun, "Mode: run, record or check"),
		Scene:        fs.String("scene", "rectangle", "Scene to draw"),
		VertexFile:   fs.String("vertex", "", "Vertex shader file overriding the scene's"),
		FragmentFile: fs.String("fragment", "", "Fragment shader file overriding the scene's"),
		ShaderDir:    fs.String("shaders", "", "Directory searched for shader files before the built-in ones"),
		Translate:    fs.Bool("translate", false, "Translate GLSL ES 3.00 shaders to GLSL 330 before compiling"),
		Headless:     fs.Bool("headless", false, "Render without a window (EGL, linux only)"),
		Duration:     fs.Float64("duration", 5.0, "Duration to record in seconds"),
		FPS:          fs.Int("fps", 60, "Frames per second for recording"),
		Width:        fs.Int("width", 800, "Width of the window or output"),
		Height:       fs.Int("height", 600, "Height of the window or output"),
		OutputFile:   fs.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath:   fs.String("ffmpeg", "", "Path to ffmpeg executable (from "+FFmpegEnv+" env var if not set)"),
		Codec:        fs.String("codec", "h264", "Video codec: h264 or hevc"),
	}
}

// ApplyEnv fills unset options from the environment.
func (o *ShaderOptions) ApplyEnv() {
	if *o.FFMPEGPath == "" {
		*o.FFMPEGPath = os.Getenv(FFmpegEnv)
	}
}

// Validate checks the option values for the selected mode.
func (o *ShaderOptions) Validate() error {
	switch *o.Mode {
	case ModeRun, ModeRecord, ModeCheck:
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if *o.Mode == ModeRun && *o.Headless {
		return fmt.Errorf("mode %q needs a window; drop -headless", ModeRun)
	}
	if *o.Mode == ModeRecord {
		if *o.FPS <= 0 {
			return fmt.Errorf("invalid fps %d", *o.FPS)
		}
		if *o.Duration <= 0 {
			return fmt.Errorf("invalid duration %g", *o.Duration)
		}
		if *o.OutputFile == "" {
			return fmt.Errorf("mode %q needs -output", ModeRecord)
		}
		if *o.Codec != "h264" && *o.Codec != "hevc" {
			return fmt.Errorf("unknown codec %q", *o.Codec)
		}
	}
	return nil
}

// TotalFrames is the number of frames a recording renders.
func (o *ShaderOptions) TotalFrames() int {
	return int(*o.Duration * float64(*o.FPS))
}
