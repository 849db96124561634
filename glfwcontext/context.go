package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/learnopengl/graphics"
	options "github.com/richinsley/learnopengl/options"
)

// Context is a GLFW window with an OpenGL 3.3 core profile context.
type Context struct {
	window   *glfw.Window
	onResize func(width, height int)
}

var _ graphics.Context = (*Context)(nil)

// New creates a visible window sized from options.
func New(options *options.ShaderOptions, title string) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(*options.Width, *options.Height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{window: win}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetMouseButtonCallback(c.glfwMouseButtonCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)
	return c, nil
}

// OnResize registers f to run when the framebuffer changes size.
func (c *Context) OnResize(f func(width, height int)) {
	c.onResize = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if closes(key, action) {
		w.SetShouldClose(true)
	}
}

// closes reports whether a key event should close the window. Only a
// press of Escape does.
func closes(key glfw.Key, action glfw.Action) bool {
	return key == glfw.KeyEscape && action == glfw.Press
}

// The right mouse button closes the window too.
func (c *Context) glfwMouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button == glfw.MouseButtonRight && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	if c.onResize != nil {
		c.onResize(width, height)
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
