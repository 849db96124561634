package main

import (
	"github.com/richinsley/learnopengl/assets"
	options "github.com/richinsley/learnopengl/options"
	"github.com/richinsley/learnopengl/scene"
	"github.com/richinsley/learnopengl/source"
)

// newProvider layers the shader sources: files named by -vertex and
// -fragment replace the scene's own, then -shaders, then the built-ins.
func newProvider(o *options.ShaderOptions, sc scene.Scene) (source.Provider, error) {
	var chain source.Chain

	overrides := source.Literal{}
	vertex, fragment := sc.Shaders()
	for name, file := range map[string]string{vertex: *o.VertexFile, fragment: *o.FragmentFile} {
		if file == "" {
			continue
		}
		src, err := source.Dir("").Source(file)
		if err != nil {
			return nil, err
		}
		overrides[name] = src
	}
	if len(overrides) > 0 {
		chain = append(chain, overrides)
	}

	if *o.ShaderDir != "" {
		chain = append(chain, source.Dir(*o.ShaderDir))
	}
	return append(chain, assets.Shaders()), nil
}
