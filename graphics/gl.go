package graphics

import "fmt"

// ShaderKind selects the pipeline stage a shader object is compiled for.
type ShaderKind int

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderKind(%d)", int(k))
	}
}

// MaxInfoLog bounds the diagnostic text read back from the driver.
// Longer logs are truncated.
const MaxInfoLog = 1024

// GL is the subset of the OpenGL API needed to build shader programs and
// set their uniforms. Handles are the raw GL object names; zero is never
// a valid shader or program.
//
// Implementations are not safe for concurrent use: every call must come
// from the thread that owns the current context.
type GL interface {
	CreateShader(kind ShaderKind) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	CompileStatus(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	LinkStatus(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// UniformLocation returns -1 when name is not an active uniform.
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
}
