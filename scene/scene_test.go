package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/learnopengl/assets"
	"github.com/richinsley/learnopengl/graphics"
	"github.com/richinsley/learnopengl/graphics/gltest"
	"github.com/richinsley/learnopengl/shader"
	"github.com/richinsley/learnopengl/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"blink", "interpolation", "rectangle", "two-colors", "two-triangles"}, Names())

	for _, name := range Names() {
		s, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
		v, f := s.Shaders()
		assert.NotEmpty(t, v)
		assert.NotEmpty(t, f)
	}

	_, err := New("cube")
	assert.ErrorContains(t, err, "unknown scene")
	assert.Panics(t, func() { Register("blink", func() Scene { return newBlink() }) })
}

func TestBlinkColor(t *testing.T) {
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, BlinkColor(0), "sin(0)/2+0.5 rounds up")
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, BlinkColor(0.3))
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, BlinkColor(0.9))
	for _, tm := range []float64{0.1, 1.7, 2.2, 10} {
		c := BlinkColor(tm)
		assert.Contains(t, []float32{0, 1}, c[0])
		assert.Equal(t, float32(1), c[3])
	}
}

func TestVertexCount(t *testing.T) {
	assert.Equal(t, int32(6), vertexCount(rectangleVertices, rectangleIndices, []int32{3}))
	assert.Equal(t, int32(6), vertexCount(twoTriangleVertices, nil, []int32{3}))
	assert.Equal(t, int32(3), vertexCount(triangleVertices, nil, []int32{3}))
	assert.Equal(t, int32(3), vertexCount(colorTriangleVertices, nil, []int32{3, 3}))
	assert.Zero(t, vertexCount(triangleVertices, nil, nil))
}

func TestEmbeddedShadersBuild(t *testing.T) {
	for _, name := range Names() {
		s, _ := New(name)
		v, f := s.Shaders()
		g := gltest.New()
		p, err := shader.BuildFromProvider(g, assets.Shaders(), v, f)
		require.NoError(t, err, name)
		p.Delete()
	}
}

func TestInitFailureIsReportedAndReleased(t *testing.T) {
	g := gltest.New()
	s := newTwoColors()
	p := source.Literal{
		assets.PositionVert: "void main(){}",
		assets.SlateFrag:    "out vec4 FragColor;\nvoid main(){}",
	}
	err := s.Init(g, p)
	var rerr *source.ReadError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, assets.MistFrag, rerr.Name)
	assert.ErrorContains(t, err, "scene two-colors")
	assert.Equal(t, 1, g.LivePrograms())

	s.Destroy()
	assert.Zero(t, g.LivePrograms())
	assert.Zero(t, g.LiveShaders())
}

func TestInitCompileFailure(t *testing.T) {
	g := gltest.New()
	s := newBlink()
	err := s.Init(g, source.Literal{
		assets.PositionVert:     "void main(){}",
		assets.UniformColorFrag: "#error",
	})
	stage, ok := shader.FailedStage(err)
	require.True(t, ok)
	assert.Equal(t, shader.Fragment, stage)
	s.Destroy()
	assert.Zero(t, g.LivePrograms())
}

func TestTwoColorsUpperProgram(t *testing.T) {
	slate, err := assets.Shaders().Source(assets.SlateFrag)
	require.NoError(t, err)
	require.Contains(t, slate, "vec4(0.3359375, 0.4375, 0.515625, 1.0)")

	// Leave the second fragment out so Init stops before uploading meshes.
	g := gltest.New()
	s := newTwoColors()
	err = s.Init(g, source.Literal{
		assets.PositionVert: "void main(){}",
		assets.SlateFrag:    slate,
	})
	require.Error(t, err)
	require.NotNil(t, s.upper)
	assert.Nil(t, s.lower)
	assert.Equal(t, slate, g.Source(s.upper.Handle(), graphics.FragmentShader))

	s.Destroy()
	assert.Zero(t, g.LivePrograms())
}
