// Package glcore binds graphics.GL to the OpenGL 4.1 core profile through
// go-gl. Every method must be called on the thread that owns the current
// context.
package glcore

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/learnopengl/graphics"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init loads the OpenGL function pointers. The context must be current.
// Only the first call does any work.
func Init() error {
	initOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	return nil
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// GL implements graphics.GL on top of the go-gl bindings.
type GL struct{}

var _ graphics.GL = GL{}

// New returns the go-gl backed implementation. Init must have succeeded.
func New() GL {
	return GL{}
}

func glKind(kind graphics.ShaderKind) uint32 {
	switch kind {
	case graphics.FragmentShader:
		return gl.FRAGMENT_SHADER
	default:
		return gl.VERTEX_SHADER
	}
}

func (GL) CreateShader(kind graphics.ShaderKind) uint32 {
	return gl.CreateShader(glKind(kind))
}

func (GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (GL) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (GL) CompileStatus(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (GL) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	return readLog(logLength, func(size int32, written *int32, buf *uint8) {
		gl.GetShaderInfoLog(shader, size, written, buf)
	})
}

func (GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (GL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (GL) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (GL) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (GL) LinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (GL) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	return readLog(logLength, func(size int32, written *int32, buf *uint8) {
		gl.GetProgramInfoLog(program, size, written, buf)
	})
}

func (GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (GL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (GL) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (GL) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (GL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

// readLog fetches at most graphics.MaxInfoLog bytes of an info log.
func readLog(logLength int32, fetch func(size int32, written *int32, buf *uint8)) string {
	if logLength <= 0 {
		return ""
	}
	size := clampLogLength(logLength)
	buf := make([]byte, size)
	var written int32
	fetch(size, &written, &buf[0])
	if written < 0 || written > size {
		written = size
	}
	return strings.TrimRight(string(buf[:written]), "\x00")
}

func clampLogLength(n int32) int32 {
	if n > graphics.MaxInfoLog {
		return graphics.MaxInfoLog
	}
	return n
}
