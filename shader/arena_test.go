package shader_test

import (
	"testing"

	"github.com/richinsley/learnopengl/graphics/gltest"
	"github.com/richinsley/learnopengl/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena(t *testing.T) {
	g := gltest.New()
	a := shader.NewArena(g)

	red, err := a.Build(vertexSrc, fragmentSrc)
	require.NoError(t, err)
	green, err := a.Build(vertexSrc, fragmentSrc)
	require.NoError(t, err)
	assert.NotEqual(t, red, green)
	assert.NotZero(t, red)
	assert.Equal(t, 2, a.Len())

	_, err = a.Build(vertexSrc+"#error", fragmentSrc)
	require.Error(t, err)
	assert.Equal(t, 2, a.Len())

	p, ok := a.Get(red)
	require.True(t, ok)
	h := p.Handle()

	assert.True(t, a.Release(red))
	assert.False(t, a.Release(red))
	assert.Equal(t, 1, g.Deleted[h])
	_, ok = a.Get(red)
	assert.False(t, ok)

	blue, err := a.Build(vertexSrc, fragmentSrc)
	require.NoError(t, err)
	assert.Equal(t, red, blue, "released slot is reused")

	a.ReleaseAll()
	assert.Zero(t, a.Len())
	assert.Zero(t, g.LivePrograms())
	for h, n := range g.Deleted {
		assert.Equal(t, 1, n, "handle %d", h)
	}
	_, ok = a.Get(green)
	assert.False(t, ok)
}
