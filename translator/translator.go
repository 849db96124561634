// Package translator converts GLSL ES 3.00 (WebGL2) shaders to desktop
// GLSL 330 through the ANGLE translator, and validates shader sources
// without a GPU.
package translator

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
	"github.com/richinsley/learnopengl/shader"
	"github.com/richinsley/learnopengl/source"
)

// Translator wraps a goshadertranslator instance. It is not safe for
// concurrent use.
type Translator struct {
	st *gst.ShaderTranslator
}

// Result is a translated shader and the renamed uniforms, keyed by the
// name used in the untranslated source.
type Result struct {
	Code     string
	Uniforms map[string]string
}

// New starts a translator.
func New(ctx context.Context) (*Translator, error) {
	st, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	return &Translator{st: st}, nil
}

var (
	shared    *Translator
	sharedErr error
	sharedMu  sync.Mutex
)

// Shared returns a process-wide translator, starting it on first use.
func Shared() (*Translator, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil && sharedErr == nil {
		shared, sharedErr = New(context.Background())
	}
	return shared, sharedErr
}

func stageName(stage shader.Stage) string {
	if stage == shader.Vertex {
		return "vertex"
	}
	return "fragment"
}

// Translate converts a WebGL2 source for stage into GLSL 330. Translation
// failures are returned as a *shader.BuildError for that stage.
func (t *Translator) Translate(stage shader.Stage, src string) (*Result, error) {
	out, err := t.st.TranslateShader(src, stageName(stage), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return nil, &shader.BuildError{Stage: stage, Log: err.Error()}
	}
	res := &Result{Code: out.Code, Uniforms: make(map[string]string, len(out.Variables))}
	for name, v := range out.Variables {
		res.Uniforms[name] = v.MappedName
	}
	return res, nil
}

// Validate checks that src compiles as stage. Desktop sources are
// checked against the WebGL2 rules after their version line is replaced.
func (t *Translator) Validate(stage shader.Stage, src string) error {
	_, err := t.Translate(stage, AsES(src))
	return err
}

// IsES reports whether src declares GLSL ES 3.00.
func IsES(src string) bool {
	line, _, _ := strings.Cut(strings.TrimSpace(src), "\n")
	return strings.TrimSpace(line) == "#version 300 es"
}

// AsES rewrites a desktop "#version 330 core" header as GLSL ES 3.00 with
// default precision, so the WebGL2 front end accepts it.
func AsES(src string) string {
	if IsES(src) {
		return src
	}
	body := strings.TrimSpace(src)
	if strings.HasPrefix(body, "#version") {
		_, body, _ = strings.Cut(body, "\n")
	}
	return "#version 300 es\nprecision highp float;\nprecision highp int;\n" + body + "\n"
}

// StageOf guesses the stage of a shader file from its extension.
func StageOf(name string) (shader.Stage, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".vert", ".vs", ".vsh":
		return shader.Vertex, true
	case ".frag", ".fs", ".fsh":
		return shader.Fragment, true
	}
	return 0, false
}

// Provider serves sources from an underlying provider, translating any
// GLSL ES 3.00 source to GLSL 330. Other sources pass through unchanged.
type Provider struct {
	source.Provider
	t        *Translator
	uniforms map[string]map[string]string
}

// NewProvider wraps p.
func NewProvider(p source.Provider, t *Translator) *Provider {
	return &Provider{Provider: p, t: t, uniforms: make(map[string]map[string]string)}
}

func (p *Provider) Source(name string) (string, error) {
	src, err := p.Provider.Source(name)
	if err != nil {
		return "", err
	}
	if !IsES(src) {
		return src, nil
	}
	stage, ok := StageOf(name)
	if !ok {
		return "", &source.ReadError{Name: name, Err: fmt.Errorf("cannot tell the shader stage from the file name")}
	}
	res, err := p.t.Translate(stage, src)
	if err != nil {
		return "", err
	}
	p.uniforms[name] = res.Uniforms
	return res.Code, nil
}

// UniformNames returns the renamed uniforms of a translated source.
func (p *Provider) UniformNames(name string) map[string]string {
	return p.uniforms[name]
}
