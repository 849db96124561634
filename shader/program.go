// Package shader compiles and links GLSL programs and sets their uniforms.
package shader

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/learnopengl/graphics"
	"github.com/richinsley/learnopengl/source"
)

// Program is a linked shader program. The zero handle means the program
// has been deleted.
//
// A Program is owned by its caller: nothing releases it automatically,
// and it must only be used on the thread that owns the GL context.
type Program struct {
	gl     graphics.GL
	handle uint32
	// names maps source uniform names to the names in the linked
	// program when a translator renamed them.
	names map[string]string
}

// UniformNamer is implemented by providers that rename uniforms while
// producing a source.
type UniformNamer interface {
	UniformNames(sourceName string) map[string]string
}

// Build compiles vertexSource and fragmentSource and links them into a
// program. It stops at the first stage that fails and returns a
// *BuildError tagged with that stage. The intermediate shader objects are
// deleted on every path; only the program object outlives the call.
func Build(gl graphics.GL, vertexSource, fragmentSource string) (*Program, error) {
	vertex, err := compileStage(gl, Vertex, vertexSource)
	if vertex != 0 {
		defer gl.DeleteShader(vertex)
	}
	if err != nil {
		return nil, err
	}

	fragment, err := compileStage(gl, Fragment, fragmentSource)
	if fragment != 0 {
		defer gl.DeleteShader(fragment)
	}
	if err != nil {
		return nil, err
	}

	program := gl.CreateProgram()
	if program == 0 {
		return nil, &BuildError{Stage: Link, Log: "could not create program object"}
	}
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	if !gl.LinkStatus(program) {
		log := gl.ProgramInfoLog(program)
		gl.DeleteProgram(program)
		return nil, &BuildError{Stage: Link, Log: log}
	}
	return &Program{gl: gl, handle: program}, nil
}

// BuildFromProvider reads both sources from p and builds them. Read
// errors are returned unchanged.
func BuildFromProvider(gl graphics.GL, p source.Provider, vertexName, fragmentName string) (*Program, error) {
	vs, fs, err := source.Pair(p, vertexName, fragmentName)
	if err != nil {
		return nil, err
	}
	prog, err := Build(gl, vs, fs)
	if err != nil {
		return nil, err
	}
	if namer, ok := p.(UniformNamer); ok {
		for _, n := range []string{vertexName, fragmentName} {
			for from, to := range namer.UniformNames(n) {
				prog.RenameUniform(from, to)
			}
		}
	}
	return prog, nil
}

// compileStage returns the shader handle whenever one was created, even
// on failure, so the caller can release it.
func compileStage(gl graphics.GL, stage Stage, src string) (uint32, error) {
	kind := graphics.VertexShader
	if stage == Fragment {
		kind = graphics.FragmentShader
	}
	shader := gl.CreateShader(kind)
	if shader == 0 {
		return 0, &BuildError{Stage: stage, Log: "could not create shader object"}
	}
	gl.ShaderSource(shader, src)
	gl.CompileShader(shader)
	if !gl.CompileStatus(shader) {
		return shader, &BuildError{Stage: stage, Log: gl.ShaderInfoLog(shader)}
	}
	return shader, nil
}

// Handle returns the GL program name, or zero after Delete.
func (p *Program) Handle() uint32 {
	return p.handle
}

// Use binds the program for drawing.
func (p *Program) Use() {
	p.gl.UseProgram(p.handle)
}

// Delete releases the program object. Calling it again does nothing.
func (p *Program) Delete() {
	if p.handle == 0 {
		return
	}
	p.gl.DeleteProgram(p.handle)
	p.handle = 0
}

// Location returns the uniform location of name, or -1 if the program
// has no active uniform by that name.
func (p *Program) Location(name string) int32 {
	if mapped, ok := p.names[name]; ok {
		name = mapped
	}
	return p.gl.UniformLocation(p.handle, name)
}

// RenameUniform makes lookups of from resolve to the uniform named to.
func (p *Program) RenameUniform(from, to string) {
	if p.names == nil {
		p.names = make(map[string]string)
	}
	p.names[from] = to
}

// The setters bind the program before uploading, since uniform uploads
// target whichever program is current. A name that is not an active
// uniform resolves to -1 and OpenGL ignores the upload; no error is
// reported.

func (p *Program) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	p.SetInt(name, v)
}

func (p *Program) SetInt(name string, value int32) {
	p.Use()
	p.gl.Uniform1i(p.Location(name), value)
}

func (p *Program) SetFloat(name string, value float32) {
	p.Use()
	p.gl.Uniform1f(p.Location(name), value)
}

func (p *Program) SetVec4(name string, value mgl32.Vec4) {
	p.Use()
	p.gl.Uniform4f(p.Location(name), value[0], value[1], value[2], value[3])
}
