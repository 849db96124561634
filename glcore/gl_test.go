package glcore

import (
	"testing"
	"unsafe"

	"github.com/richinsley/learnopengl/graphics"
	"github.com/stretchr/testify/assert"
)

func TestClampLogLength(t *testing.T) {
	assert.Equal(t, int32(12), clampLogLength(12))
	assert.Equal(t, int32(graphics.MaxInfoLog), clampLogLength(graphics.MaxInfoLog))
	assert.Equal(t, int32(graphics.MaxInfoLog), clampLogLength(1<<20))
}

func TestReadLogTruncates(t *testing.T) {
	var asked int32
	got := readLog(4096, func(size int32, written *int32, buf *uint8) {
		asked = size
		*written = size
	})
	assert.Equal(t, int32(graphics.MaxInfoLog), asked)
	assert.Len(t, got, 0, "zero bytes trimmed as NULs")

	msg := "0:1(1): error: syntax error\x00"
	got = readLog(int32(len(msg)), func(size int32, written *int32, buf *uint8) {
		b := unsafe.Slice(buf, int(size))
		n := copy(b, msg)
		*written = int32(n - 1)
	})
	assert.Equal(t, "0:1(1): error: syntax error", got)
}

func TestReadLogEmpty(t *testing.T) {
	called := false
	got := readLog(0, func(int32, *int32, *uint8) { called = true })
	assert.Empty(t, got)
	assert.False(t, called)
}

func TestGLKind(t *testing.T) {
	assert.NotEqual(t, glKind(graphics.VertexShader), glKind(graphics.FragmentShader))
}
