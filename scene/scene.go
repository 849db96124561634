// Package scene holds the tutorial scenes: each one uploads a little
// vertex data, builds its shader programs and draws one frame at a time.
package scene

import (
	"fmt"
	"sort"

	"github.com/richinsley/learnopengl/graphics"
	"github.com/richinsley/learnopengl/source"
)

// Scene is a drawable tutorial. Init and Draw must run on the thread
// that owns the current GL context.
type Scene interface {
	Name() string
	// Shaders names the sources of the scene's main program, so callers
	// can swap them for their own files.
	Shaders() (vertex, fragment string)
	Init(gl graphics.GL, p source.Provider) error
	// Draw renders the frame for time t, in seconds since the start.
	Draw(t float64)
	Destroy()
}

type Factory func() Scene

var registry = map[string]Factory{}

// Register makes a scene available by name. It panics on duplicates.
func Register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic("scene: Register called twice for " + name)
	}
	registry[name] = f
}

// New creates the scene registered under name.
func New(name string) (Scene, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %v)", name, Names())
	}
	return f(), nil
}

// Names lists the registered scenes in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
