package renderer

import (
	"fmt"
	"log"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/learnopengl/glcore"
	"github.com/richinsley/learnopengl/graphics"
	"github.com/richinsley/learnopengl/scene"
	"github.com/richinsley/learnopengl/source"
)

// Renderer drives one scene on one context. All methods must be called
// from the thread that created it.
type Renderer struct {
	context graphics.Context
	gl      graphics.GL
	scene   scene.Scene
}

// NewRenderer makes ctx current, loads OpenGL and initializes sc with
// shaders from p. On failure the scene's resources are released.
func NewRenderer(ctx graphics.Context, sc scene.Scene, p source.Provider) (*Renderer, error) {
	ctx.MakeCurrent()
	if err := glcore.Init(); err != nil {
		return nil, err
	}
	log.Printf("OpenGL version: %s", glcore.Version())

	r := &Renderer{
		context: ctx,
		gl:      glcore.New(),
		scene:   sc,
	}
	if err := sc.Init(r.gl, p); err != nil {
		sc.Destroy()
		return nil, fmt.Errorf("failed to initialize scene %s: %w", sc.Name(), err)
	}
	log.Printf("Scene %s ready", sc.Name())
	return r, nil
}

// Resize sets the viewport to the framebuffer size.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// RenderFrame draws the scene at time t into the bound framebuffer.
func (r *Renderer) RenderFrame(t float64) {
	r.scene.Draw(t)
}

// Run draws frames until the context asks to close.
func (r *Renderer) Run() {
	startTime := r.context.Time()
	var frameCount int64
	width, height := r.context.GetFramebufferSize()
	r.Resize(width, height)

	for !r.context.ShouldClose() {
		r.RenderFrame(r.context.Time() - startTime)
		r.context.EndFrame()
		frameCount++
	}
	elapsed := r.context.Time() - startTime
	if elapsed > 0 {
		log.Printf("Rendered %d frames in %.1fs (%.1f fps)", frameCount, elapsed, float64(frameCount)/elapsed)
	}
}

// Shutdown releases the scene. The context itself belongs to the caller.
func (r *Renderer) Shutdown() {
	r.scene.Destroy()
}
