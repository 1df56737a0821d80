package main

import (
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"

	"voxeldraw/internal/chunk"
	"voxeldraw/internal/config"
	"voxeldraw/internal/graphics"
	"voxeldraw/internal/profiling"
	"voxeldraw/internal/render"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	closer.Bind(glfw.Terminate)

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "voxeldraw", nil, nil)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		log.Fatalf("gl init: %v", err)
	}
	log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	atlas, err := graphics.LoadAtlas("assets/textures/atlas.png", atlasTileSize)
	if err != nil {
		log.Printf("no atlas on disk, using generated tiles: %v", err)
		atlas = graphics.NewAtlasFromImage(fixtureAtlasImage(), atlasTileSize)
	}
	closer.Bind(atlas.Delete)

	pipelines := render.NewPipelines("assets/shaders/chunks", render.VariantConfig{})
	closer.Bind(pipelines.Delete)

	drawer := render.NewChunkDrawer(pipelines, config.GetDrawSlots(), config.GetQuadsPerChunk(), fixtureFaceTable())
	closer.Bind(drawer.Delete)

	config.SetRenderDistance(6)
	store := render.NewStore(drawer.Capacity(), config.GetQuadsPerChunk())
	for _, res := range fixtureChunks(config.GetChunkLoadRadius()) {
		store.Results() <- res
	}

	camera := graphics.NewCamera(windowWidth, windowHeight)
	camera.Position = mgl32.Vec3{8, 12, 30}
	camera.Pitch = -20

	input := newInputState(window)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.53, 0.7, 0.92, 1.0)

	lastFrame := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := float32(now - lastFrame)
		lastFrame = now

		profiling.ResetFrame()
		input.apply(camera, dt)

		store.Drain(drawer)
		if n := store.EvictBeyond(chunk.FromWorld(camera.Position), config.GetChunkEvictRadius(), drawer); n > 0 {
			log.Printf("evicted %d chunks", n)
		}

		viewProj, prevViewProj := camera.ViewProjection()
		key := render.PipelineKey(0)
		if input.orthoView {
			// Top-down orthographic view over the whole fixture grid;
			// geometry past the far plane is depth-clamped instead of
			// clipped.
			halfExtent := float32(config.GetRenderDistance()+1) * chunk.Size
			viewProj = camera.GetOrthoMatrix(halfExtent).Mul4(camera.GetViewMatrix())
			key = render.KeyDepthClampOrtho
		}
		view := render.ViewData{ViewProj: viewProj, PrevViewProj: prevViewProj}

		visible := visibleSlots(store, viewProj, nil)
		if err := drawer.BuildCommands(visible); err != nil {
			log.Fatalf("build commands: %v", err)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		atlas.Bind(0)
		if err := drawer.Draw(key, view); err != nil {
			log.Fatalf("chunk draw: %v", err)
		}

		camera.EndFrame()
		window.SwapBuffers()
		glfw.PollEvents()

		if input.dumpProfile {
			input.dumpProfile = false
			log.Printf("frame: %s", profiling.TopN(5))
		}
	}
}
