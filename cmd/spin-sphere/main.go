package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"

	"spin-sphere/internal/config"
	"spin-sphere/internal/demo"
	"spin-sphere/internal/graphics/renderables/meshes"
	"spin-sphere/internal/graphics/renderables/ui"
	renderer "spin-sphere/internal/graphics/renderer"
	"spin-sphere/internal/host"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to a YAML settings file")
	stage := flag.Int("stage", 0, "tutorial iteration 1-4 (0 = from the config file, else 4)")
	flag.Parse()

	settings, err := config.Load(*configPath, *stage)
	if err != nil {
		panic(err)
	}

	run(settings)

	// Runs the bound cleanups and exits.
	closer.Close()
}

func run(settings config.Settings) {
	// Closed once the app, window and GLFW are torn down.
	done := make(chan struct{})
	defer close(done)

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := host.Open(settings.Window)
	if err != nil {
		panic(err)
	}
	defer window.Close()

	app, err := demo.Start(window, settings, newRenderer(settings.Intro.Enabled))
	if err != nil {
		panic(err)
	}
	defer app.Dispose()

	// Also runs on SIGINT/SIGTERM, from closer's own goroutine: stop the
	// loop and let the deferred teardown finish before the process exits.
	closer.Bind(func() {
		window.RequestClose()
		<-done
		log.Printf("[%s] rendered %d frames", app.ID(), app.Frames())
	})

	window.Run()
}

// newRenderer draws meshes, plus the chrome overlay when the intro is on.
func newRenderer(withChrome bool) demo.RendererFactory {
	return func(surface demo.Surface) (demo.Renderer, error) {
		features := []renderer.Renderable{meshes.New()}
		if withChrome {
			features = append(features, ui.NewUI())
		}
		r, err := renderer.NewRenderer(surface, features...)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}
