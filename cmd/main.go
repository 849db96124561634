package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/richinsley/learnopengl/glcore"
	"github.com/richinsley/learnopengl/glfwcontext"
	"github.com/richinsley/learnopengl/graphics"
	"github.com/richinsley/learnopengl/headless"
	options "github.com/richinsley/learnopengl/options"
	renderer "github.com/richinsley/learnopengl/renderer"
	"github.com/richinsley/learnopengl/scene"
	"github.com/richinsley/learnopengl/shader"
	"github.com/richinsley/learnopengl/source"
	"github.com/richinsley/learnopengl/translator"
)

func init() {
	runtime.LockOSThread()
}

// newContext opens a window, or an EGL pbuffer with -headless.
func newContext(o *options.ShaderOptions, title string) (graphics.Context, func(), error) {
	if *o.Headless {
		h, err := headless.NewHeadless(*o.Width, *o.Height)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create headless context: %w", err)
		}
		return h, h.Shutdown, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	win, err := glfwcontext.New(o, title)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, fmt.Errorf("failed to create window: %w", err)
	}
	return win, func() {
		win.Shutdown()
		glfwcontext.TerminateGraphics()
	}, nil
}

// logBuildError prints a shader diagnostic with the stage that failed.
func logBuildError(err error) {
	var berr *shader.BuildError
	if errors.As(err, &berr) {
		log.Printf("ERROR: %s stage failed:\n%s", strings.ToUpper(berr.Stage.String()), strings.TrimSpace(berr.Log))
		return
	}
	log.Printf("ERROR: %v", err)
}

func run(o *options.ShaderOptions, sc scene.Scene, p source.Provider) error {
	ctx, shutdown, err := newContext(o, "Learn OpenGL - "+sc.Name())
	if err != nil {
		return err
	}
	defer shutdown()

	r, err := renderer.NewRenderer(ctx, sc, p)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	if *o.Mode == options.ModeRecord {
		return r.RunOffscreen(o)
	}

	if win, ok := ctx.(*glfwcontext.Context); ok {
		win.OnResize(r.Resize)
	}
	log.Println("Starting interactive render loop...")
	r.Run()
	return nil
}

// check builds the scene's main program without drawing. With -headless
// the GPU driver compiles it; otherwise the ANGLE translator validates
// each stage on the CPU.
func check(o *options.ShaderOptions, sc scene.Scene, p source.Provider) error {
	vertexName, fragmentName := sc.Shaders()

	if *o.Headless {
		ctx, shutdown, err := newContext(o, sc.Name())
		if err != nil {
			return err
		}
		defer shutdown()
		ctx.MakeCurrent()
		if err := glcore.Init(); err != nil {
			return err
		}
		prog, err := shader.BuildFromProvider(glcore.New(), p, vertexName, fragmentName)
		if err != nil {
			return err
		}
		prog.Delete()
		return nil
	}

	t, err := translator.Shared()
	if err != nil {
		return err
	}
	vs, fs, err := source.Pair(p, vertexName, fragmentName)
	if err != nil {
		return err
	}
	if err := t.Validate(shader.Vertex, vs); err != nil {
		return err
	}
	return t.Validate(shader.Fragment, fs)
}

func main() {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	o := options.New(flags)
	flags.Parse(os.Args[1:])

	if *o.Help {
		fmt.Println("Learn OpenGL tutorial scenes")
		fmt.Printf("Scenes: %s\n", strings.Join(scene.Names(), ", "))
		flags.PrintDefaults()
		return
	}

	o.ApplyEnv()
	if err := o.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	sc, err := scene.New(*o.Scene)
	if err != nil {
		log.Fatalf("%v", err)
	}

	p, err := newProvider(o, sc)
	if err != nil {
		log.Fatalf("Error loading shader sources: %v", err)
	}
	if *o.Translate {
		t, err := translator.Shared()
		if err != nil {
			log.Fatalf("%v", err)
		}
		p = translator.NewProvider(p, t)
	}

	if *o.Mode == options.ModeCheck {
		if err := check(o, sc, p); err != nil {
			logBuildError(err)
			os.Exit(1)
		}
		log.Printf("Scene %s: shaders OK", sc.Name())
		return
	}

	if err := run(o, sc, p); err != nil {
		logBuildError(err)
		os.Exit(1)
	}
	if *o.Mode == options.ModeRecord {
		log.Printf("Successfully rendered to %s", *o.OutputFile)
	}
}
