// Package gltest provides an in-memory graphics.GL for tests. It tracks
// every object it hands out so tests can assert that nothing leaks and
// nothing is released twice.
package gltest

import (
	"fmt"
	"strings"

	"github.com/richinsley/learnopengl/graphics"
)

// Call records one method invocation on the fake.
type Call struct {
	Op     string
	Handle uint32
}

type shaderObj struct {
	kind     graphics.ShaderKind
	source   string
	compiled bool
	ok       bool
	log      string
}

type programObj struct {
	attached []uint32
	linked   bool
	ok       bool
	log      string
	uniforms map[string]int32
	values   map[int32][]float32
	sources  map[graphics.ShaderKind]string
}

// GL is a fake graphics.GL. Compile succeeds unless the source contains
// CompileFailMarker; link succeeds unless an attached fragment source
// contains LinkFailMarker. Uniforms are the identifiers following
// "uniform <type>" in the attached sources.
type GL struct {
	CompileFailMarker string
	LinkFailMarker    string

	next     uint32
	shaders  map[uint32]*shaderObj
	programs map[uint32]*programObj
	current  uint32

	Calls []Call
	// Deleted counts DeleteShader/DeleteProgram calls per handle,
	// including calls on handles that were never live.
	Deleted map[uint32]int
}

var _ graphics.GL = (*GL)(nil)

// New returns a fake whose failure markers are "#error" and
// "#link-error".
func New() *GL {
	return &GL{
		CompileFailMarker: "#error",
		LinkFailMarker:    "#link-error",
		shaders:           make(map[uint32]*shaderObj),
		programs:          make(map[uint32]*programObj),
		Deleted:           make(map[uint32]int),
	}
}

func (g *GL) record(op string, h uint32) {
	g.Calls = append(g.Calls, Call{Op: op, Handle: h})
}

// Count returns how many times op was called.
func (g *GL) Count(op string) int {
	n := 0
	for _, c := range g.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// LiveShaders is the number of shader objects not yet deleted.
func (g *GL) LiveShaders() int { return len(g.shaders) }

// LivePrograms is the number of program objects not yet deleted.
func (g *GL) LivePrograms() int { return len(g.programs) }

// Current returns the program last passed to UseProgram.
func (g *GL) Current() uint32 { return g.current }

// Uniform returns the last value uploaded to name in program.
func (g *GL) Uniform(program uint32, name string) ([]float32, bool) {
	p, ok := g.programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// Source returns the stage source that was linked into program.
func (g *GL) Source(program uint32, kind graphics.ShaderKind) string {
	if p, ok := g.programs[program]; ok {
		return p.sources[kind]
	}
	return ""
}

func (g *GL) CreateShader(kind graphics.ShaderKind) uint32 {
	g.next++
	g.shaders[g.next] = &shaderObj{kind: kind}
	g.record("CreateShader", g.next)
	return g.next
}

func (g *GL) ShaderSource(shader uint32, source string) {
	g.record("ShaderSource", shader)
	if s, ok := g.shaders[shader]; ok {
		s.source = source
	}
}

func (g *GL) CompileShader(shader uint32) {
	g.record("CompileShader", shader)
	s, ok := g.shaders[shader]
	if !ok {
		return
	}
	s.compiled = true
	s.ok = !strings.Contains(s.source, g.CompileFailMarker)
	if !s.ok {
		s.log = fmt.Sprintf("0:1(1): error: %s shader syntax error", s.kind)
	}
}

func (g *GL) CompileStatus(shader uint32) bool {
	s, ok := g.shaders[shader]
	return ok && s.compiled && s.ok
}

func (g *GL) ShaderInfoLog(shader uint32) string {
	if s, ok := g.shaders[shader]; ok {
		return s.log
	}
	return ""
}

func (g *GL) DeleteShader(shader uint32) {
	g.record("DeleteShader", shader)
	g.Deleted[shader]++
	delete(g.shaders, shader)
}

func (g *GL) CreateProgram() uint32 {
	g.next++
	g.programs[g.next] = &programObj{
		uniforms: make(map[string]int32),
		values:   make(map[int32][]float32),
		sources:  make(map[graphics.ShaderKind]string),
	}
	g.record("CreateProgram", g.next)
	return g.next
}

func (g *GL) AttachShader(program, shader uint32) {
	g.record("AttachShader", shader)
	if p, ok := g.programs[program]; ok {
		p.attached = append(p.attached, shader)
	}
}

func (g *GL) LinkProgram(program uint32) {
	g.record("LinkProgram", program)
	p, ok := g.programs[program]
	if !ok {
		return
	}
	p.linked = true
	p.ok = true
	var loc int32
	for _, h := range p.attached {
		s, ok := g.shaders[h]
		if !ok || !s.ok {
			p.ok = false
			p.log = "error: attached shader is not compiled"
			continue
		}
		p.sources[s.kind] = s.source
		if s.kind == graphics.FragmentShader && strings.Contains(s.source, g.LinkFailMarker) {
			p.ok = false
			p.log = "error: fragment shader does not write to an output"
		}
		for _, name := range uniformNames(s.source) {
			if _, seen := p.uniforms[name]; !seen {
				p.uniforms[name] = loc
				loc++
			}
		}
	}
}

func (g *GL) LinkStatus(program uint32) bool {
	p, ok := g.programs[program]
	return ok && p.linked && p.ok
}

func (g *GL) ProgramInfoLog(program uint32) string {
	if p, ok := g.programs[program]; ok {
		return p.log
	}
	return ""
}

func (g *GL) DeleteProgram(program uint32) {
	g.record("DeleteProgram", program)
	g.Deleted[program]++
	delete(g.programs, program)
	if g.current == program {
		g.current = 0
	}
}

func (g *GL) UseProgram(program uint32) {
	g.record("UseProgram", program)
	g.current = program
}

func (g *GL) UniformLocation(program uint32, name string) int32 {
	p, ok := g.programs[program]
	if !ok || !p.ok {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// set writes to the currently bound program; location -1 is ignored as
// OpenGL does.
func (g *GL) set(location int32, v ...float32) {
	if location == -1 {
		return
	}
	if p, ok := g.programs[g.current]; ok {
		p.values[location] = v
	}
}

func (g *GL) Uniform1i(location int32, v int32) {
	g.record("Uniform1i", uint32(location))
	g.set(location, float32(v))
}

func (g *GL) Uniform1f(location int32, v float32) {
	g.record("Uniform1f", uint32(location))
	g.set(location, v)
}

func (g *GL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	g.record("Uniform4f", uint32(location))
	g.set(location, v0, v1, v2, v3)
}

func uniformNames(src string) []string {
	var names []string
	for _, line := range strings.Split(src, "\n") {
		fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		if len(fields) >= 3 && fields[0] == "uniform" {
			names = append(names, strings.TrimSuffix(fields[2], ";"))
		}
	}
	return names
}
