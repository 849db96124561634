package renderer

import (
	"flag"
	"io"
	"runtime"
	"testing"

	options "github.com/richinsley/learnopengl/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipRows(t *testing.T) {
	px := []byte{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}
	flipRows(px, 4)
	assert.Equal(t, []byte{
		3, 3, 3, 3,
		2, 2, 2, 2,
		1, 1, 1, 1,
	}, px)

	even := []byte{1, 2, 3, 4}
	flipRows(even, 2)
	assert.Equal(t, []byte{3, 4, 1, 2}, even)
}

func testOptions(t *testing.T, args ...string) *options.ShaderOptions {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	o := options.New(fs)
	require.NoError(t, fs.Parse(args))
	return o
}

func TestGetArgs(t *testing.T) {
	in, out := getArgs(testOptions(t, "-width", "320", "-height", "240", "-fps", "30"))
	assert.Equal(t, "rawvideo", in["format"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "320x240", in["s"])
	assert.Equal(t, "30", in["r"])
	assert.Equal(t, "yuv420p", out["pix_fmt"])
	assert.NotContains(t, out, "tag:v")
	if runtime.GOOS != "darwin" {
		assert.Equal(t, "libx264", out["c:v"])
	}

	_, out = getArgs(testOptions(t, "-codec", "hevc", "-output", "clip.mp4"))
	assert.Equal(t, "hvc1", out["tag:v"])
	if runtime.GOOS != "darwin" {
		assert.Equal(t, "libx265", out["c:v"])
	}
}
