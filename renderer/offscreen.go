package renderer

import (
	"fmt"
	"io"
	"log"
	"runtime"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	options "github.com/richinsley/learnopengl/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// OffscreenRenderer is an RGBA8 framebuffer that frames are drawn into
// and read back from.
type OffscreenRenderer struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{width: width, height: height}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete (status 0x%x)", status)
	}
	return or, nil
}

func (or *OffscreenRenderer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.Viewport(0, 0, int32(or.width), int32(or.height))
}

func (or *OffscreenRenderer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReadPixels returns the framebuffer contents as top-down RGBA rows.
func (or *OffscreenRenderer) ReadPixels() []byte {
	pixels := make([]byte, or.width*or.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	flipRows(pixels, or.width*4)
	return pixels
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
}

// flipRows reverses the row order in place. OpenGL reads bottom-up.
func flipRows(pixels []byte, rowSize int) {
	rows := len(pixels) / rowSize
	tmp := make([]byte, rowSize)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pixels[top*rowSize : (top+1)*rowSize]
		b := pixels[bottom*rowSize : (bottom+1)*rowSize]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// getArgs builds the ffmpeg arguments for raw RGBA input.
func getArgs(options *options.ShaderOptions) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", *options.Width, *options.Height),
		"r":       fmt.Sprintf("%d", *options.FPS),
	}

	outputArgs = ffmpeg.KwArgs{"pix_fmt": "yuv420p"}
	switch runtime.GOOS {
	case "darwin":
		if *options.Codec == "hevc" {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
	default:
		if *options.Codec == "hevc" {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
	}
	if *options.Codec == "hevc" && len(*options.OutputFile) > 4 && (*options.OutputFile)[len(*options.OutputFile)-4:] == ".mp4" {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// runEncoder is the consumer. It pipes frames from frameChan into ffmpeg
// and reports ffmpeg's exit on doneChan. It never touches OpenGL.
func runEncoder(options *options.ShaderOptions, frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := getArgs(options)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*options.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if *options.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*options.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	var writeErr error
	for frame := range frameChan {
		if writeErr != nil {
			continue
		}
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
			log.Println(writeErr)
		}
	}
	pipeWriter.Close()

	if err := <-errc; err != nil {
		doneChan <- fmt.Errorf("ffmpeg failed: %w", err)
		return
	}
	doneChan <- writeErr
}

// RunOffscreen renders duration*fps frames at fixed time steps and
// encodes them to options.OutputFile.
func (r *Renderer) RunOffscreen(options *options.ShaderOptions) error {
	or, err := NewOffscreenRenderer(*options.Width, *options.Height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen renderer: %w", err)
	}
	defer or.Destroy()

	log.Println("Starting in record mode...")
	frameChan := make(chan *Frame, 3)
	encoderDoneChan := make(chan error, 1)
	go runEncoder(options, frameChan, encoderDoneChan)

	totalFrames := options.TotalFrames()
	timeStep := 1.0 / float64(*options.FPS)
	for i := 0; i < totalFrames; i++ {
		or.Bind()
		r.RenderFrame(float64(i) * timeStep)
		pixels := or.ReadPixels()
		or.Unbind()
		frameChan <- &Frame{Pixels: pixels, PTS: int64(i)}
	}
	close(frameChan)

	if err := <-encoderDoneChan; err != nil {
		return err
	}
	log.Printf("Encoded %d frames to %s", totalFrames, *options.OutputFile)
	return nil
}
