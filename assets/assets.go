// Package assets embeds the GLSL sources used by the tutorial scenes.
package assets

import (
	"embed"
	"io/fs"

	"github.com/richinsley/learnopengl/source"
)

//go:embed shaders
var shaders embed.FS

// Shader file names.
const (
	PositionVert      = "position.vert"
	InterpolationVert = "interpolation.vert"
	InterpolationFrag = "interpolation.frag"
	RedFrag           = "red.frag"
	SlateFrag         = "slate.frag"
	MistFrag          = "mist.frag"
	UniformColorFrag  = "uniform_color.frag"
)

// Shaders returns a provider over the embedded shader files.
func Shaders() source.Provider {
	return source.NewFS(shaders, "shaders")
}

// Names lists the embedded shader files.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(shaders, "shaders")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
