package shader_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/learnopengl/graphics/gltest"
	"github.com/richinsley/learnopengl/shader"
	"github.com/richinsley/learnopengl/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSrc = `#version 330 core
layout (location = 0) in vec3 pos;
void main(){gl_Position=vec4(pos,1.0);}
`

const fragmentSrc = `#version 330 core
out vec4 FragColor;
uniform vec4 ourColor;
uniform float alpha;
uniform int mode;
void main(){FragColor=vec4(1,0,0,1);}
`

func assertStagesReleasedOnce(t *testing.T, g *gltest.GL) {
	t.Helper()
	assert.Zero(t, g.LiveShaders(), "stage objects leaked")
	for _, c := range g.Calls {
		if c.Op == "CreateShader" {
			assert.Equal(t, 1, g.Deleted[c.Handle], "shader %d", c.Handle)
		}
	}
}

func TestBuildSuccess(t *testing.T) {
	g := gltest.New()
	p, err := shader.Build(g, vertexSrc, fragmentSrc)
	require.NoError(t, err)
	assert.NotZero(t, p.Handle())
	assert.Equal(t, 1, g.LivePrograms())
	assert.Equal(t, 2, g.Count("CreateShader"))
	assertStagesReleasedOnce(t, g)
}

func TestBuildVertexError(t *testing.T) {
	g := gltest.New()
	p, err := shader.Build(g, vertexSrc+"#error\n", fragmentSrc)
	require.Error(t, err)
	assert.Nil(t, p)

	var berr *shader.BuildError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, shader.Vertex, berr.Stage)
	assert.NotEmpty(t, berr.Log)
	assert.True(t, shader.IsCompileError(err))
	assert.False(t, shader.IsLinkError(err))

	assert.Zero(t, g.Count("LinkProgram"))
	assert.Zero(t, g.Count("CreateProgram"))
	assert.Equal(t, 1, g.Count("CreateShader"), "fragment stage is not attempted")
	assertStagesReleasedOnce(t, g)
}

func TestBuildFragmentError(t *testing.T) {
	g := gltest.New()
	g.CompileFailMarker = "vex4"
	_, err := shader.Build(g, vertexSrc, "out vex4 FragColor;\nvoid main(){FragColor=vec4(1,0,0,1);}")

	stage, ok := shader.FailedStage(err)
	require.True(t, ok)
	assert.Equal(t, shader.Fragment, stage)
	assert.Contains(t, err.Error(), "fragment")
	assert.Zero(t, g.Count("LinkProgram"))
	assertStagesReleasedOnce(t, g)
}

func TestBuildLinkError(t *testing.T) {
	g := gltest.New()
	_, err := shader.Build(g, vertexSrc, "void main(){}\n// #link-error\n")

	var berr *shader.BuildError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, shader.Link, berr.Stage)
	assert.NotEmpty(t, berr.Log)
	assert.True(t, shader.IsLinkError(err))
	assert.Zero(t, g.LivePrograms(), "failed program object is deleted")
	assertStagesReleasedOnce(t, g)
}

func TestDelete(t *testing.T) {
	g := gltest.New()
	p, err := shader.Build(g, vertexSrc, fragmentSrc)
	require.NoError(t, err)
	h := p.Handle()

	p.Delete()
	p.Delete()
	assert.Zero(t, p.Handle())
	assert.Equal(t, 1, g.Deleted[h])
	assert.Zero(t, g.LivePrograms())
}

func TestUniforms(t *testing.T) {
	g := gltest.New()
	p, err := shader.Build(g, vertexSrc, fragmentSrc)
	require.NoError(t, err)

	p.SetVec4("ourColor", mgl32.Vec4{1, 0, 0, 1})
	p.SetFloat("alpha", 0.5)
	p.SetBool("mode", true)
	assert.Equal(t, p.Handle(), g.Current(), "setters bind the program")

	v, ok := g.Uniform(p.Handle(), "ourColor")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 0, 0, 1}, v)
	v, _ = g.Uniform(p.Handle(), "mode")
	assert.Equal(t, []float32{1}, v)

	assert.Equal(t, int32(-1), p.Location("missing"))
	assert.NotPanics(t, func() {
		p.SetFloat("missing", 3)
		p.SetInt("missing", 3)
		p.SetBool("missing", false)
	})

	v, _ = g.Uniform(p.Handle(), "alpha")
	assert.Equal(t, []float32{0.5}, v, "unknown names leave other uniforms alone")
	v, _ = g.Uniform(p.Handle(), "ourColor")
	assert.Equal(t, []float32{1, 0, 0, 1}, v)
}

func TestBuildFromProvider(t *testing.T) {
	g := gltest.New()
	p, err := shader.BuildFromProvider(g, source.Literal{"a.vert": vertexSrc, "a.frag": fragmentSrc}, "a.vert", "a.frag")
	require.NoError(t, err)
	assert.NotZero(t, p.Handle())

	_, err = shader.BuildFromProvider(g, source.Literal{"a.vert": vertexSrc}, "a.vert", "a.frag")
	var rerr *source.ReadError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "a.frag", rerr.Name)
	assert.False(t, shader.IsCompileError(err))
	assert.Equal(t, 2, g.Count("CreateShader"), "read errors stop before any GL call")
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "vertex", shader.Vertex.String())
	assert.Equal(t, "fragment", shader.Fragment.String())
	assert.Equal(t, "link", shader.Link.String())
	_, ok := shader.FailedStage(errors.New("x"))
	assert.False(t, ok)
}

type renamingProvider struct {
	source.Literal
}

func (renamingProvider) UniformNames(name string) map[string]string {
	if name == "a.frag" {
		return map[string]string{"tint": "_utint"}
	}
	return nil
}

func TestBuildFromProviderRenamesUniforms(t *testing.T) {
	g := gltest.New()
	frag := "out vec4 FragColor;\nuniform vec4 _utint;\nvoid main(){}\n"
	p, err := shader.BuildFromProvider(g, renamingProvider{source.Literal{"a.vert": vertexSrc, "a.frag": frag}}, "a.vert", "a.frag")
	require.NoError(t, err)

	p.SetVec4("tint", mgl32.Vec4{0, 1, 0, 1})
	v, ok := g.Uniform(p.Handle(), "_utint")
	require.True(t, ok)
	assert.Equal(t, []float32{0, 1, 0, 1}, v)
}
