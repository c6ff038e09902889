package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/cartomesh/internal/app"
	"github.com/irfansharif/cartomesh/internal/artifact"
	"github.com/irfansharif/cartomesh/internal/config"
	"github.com/irfansharif/cartomesh/internal/mesh"
	"github.com/irfansharif/cartomesh/internal/pipeline"
	"github.com/irfansharif/cartomesh/internal/region"
	"github.com/irfansharif/cartomesh/internal/source"
)

const logFlags = log.Ltime | log.Lshortfile

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

var (
	configPath = flag.String("config", "", "YAML file with exclusions, insets and pipeline settings")
	presetName = flag.String("preset", "default", "built-in configuration to start from (default, us-states)")
	shpPath    = flag.String("shp", "", "read regions from a polygon shapefile")
	jsonPath   = flag.String("geojson", "", "read regions from a GeoJSON feature collection")
	nameField  = flag.String("name-field", "", "attribute holding region names (overrides the configuration)")
	outPath    = flag.String("out", "mesh.json", "where to write the mesh artifact, - for stdout, empty to skip")
	viewPath   = flag.String("view", "", "preview a previously written mesh artifact instead of compiling")
	preview    = flag.Bool("preview", false, "open a window showing the compiled mesh")
)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("CARTOMESH_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [-shp file | -geojson file | file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *viewPath != "" {
		f, err := os.Open(*viewPath)
		if err != nil {
			log.Fatalf("Failed to open mesh artifact: %v", err)
		}
		m, err := artifact.Read(f)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *viewPath, err)
		}
		runPreview(m)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	regions, err := readRegions(cfg.NameField)
	if err != nil {
		log.Fatalf("Failed to read regions: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	m, err := pipeline.Build(ctx, regions, cfg)
	if err != nil {
		log.Fatalf("Failed to build mesh: %v", err)
	}
	log.Printf("Built mesh: %d regions, %d vertices, %d triangles in %s",
		len(m.Names), m.VertexCount(), m.TriangleCount(), time.Since(start).Round(time.Millisecond))

	if err := writeArtifact(m); err != nil {
		log.Fatalf("Failed to write mesh: %v", err)
	}
	if *preview {
		runPreview(m)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Preset(*presetName)
	if err != nil {
		return config.Config{}, err
	}
	if *configPath != "" {
		if cfg, err = config.Load(*configPath, cfg); err != nil {
			return config.Config{}, err
		}
	}
	if *nameField != "" {
		cfg.NameField = *nameField
	}
	return cfg, nil
}

func readRegions(field string) ([]region.Region, error) {
	switch {
	case *shpPath != "" && *jsonPath != "":
		return nil, fmt.Errorf("-shp and -geojson are mutually exclusive")
	case *shpPath != "":
		return source.ReadShapefile(*shpPath, field)
	case *jsonPath != "":
		return source.ReadGeoJSON(*jsonPath, field)
	case flag.NArg() == 1:
		return source.Read(flag.Arg(0), field)
	default:
		flag.Usage()
		return nil, fmt.Errorf("expected one input file")
	}
}

func writeArtifact(m *mesh.Mesh) error {
	switch *outPath {
	case "":
		return nil
	case "-":
		return artifact.Write(os.Stdout, m)
	}
	f, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	if err := artifact.Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runPreview(m *mesh.Mesh) {
	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(
		1280, // width
		800,  // height
		"cartomesh",
		nil, nil,
	)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	application, err := app.NewApp(window, m, seed())
	if err != nil {
		log.Fatalf("Failed to start preview: %v", err)
	}
	defer application.Close()

	eventHandlers := NewEventHandlers(application)

	frameCount, frameTimeSum := 0, 0.0
	lastFPSUpdate := time.Now()

	for !application.Window.ShouldClose() {
		frameStart := time.Now()

		eventHandlers.handleContinuousPanning()

		w, h := application.Window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(1, 1, 1, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := application.Renderer.Draw(application.View); err != nil {
			log.Fatalf("Draw failed: %v", err)
		}
		application.Window.SwapBuffers()
		glfw.PollEvents()

		frameTimeSum += time.Since(frameStart).Seconds() * 1000.0 // ms
		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			avgFrameTime := frameTimeSum / float64(frameCount)
			frameCount, frameTimeSum = 0, 0.0
			lastFPSUpdate = now

			application.Window.SetTitle(application.Title(fps, avgFrameTime))
			stats := application.Renderer.Stats()
			runtimeLogger.Printf("%.1f FPS (%.2f ms/frame), %.2f µs/draw, %.2f MiB GPU",
				fps, avgFrameTime, stats.LastDrawTimeUs, float64(stats.GPUBytes)/(1024.0*1024.0))
		}
	}
}

func seed() int64 {
	seedStr := os.Getenv("CARTOMESH_SEED")
	if seedStr == "" {
		return 1
	}
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		log.Fatalf("Invalid CARTOMESH_SEED value '%s': %v", seedStr, err)
	}
	return seed
}
