package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"

	"github.com/irfansharif/panotool/internal/app"
	"github.com/irfansharif/panotool/internal/render"
)

var viewCmd = &cobra.Command{
	Use:   "view [photo...]",
	Short: "Open the alignment window",
	Long: `Open a window showing the photos and align them interactively.

Tools (number keys):
  1 pan view    2 drag photo    3 select photo
  4 set rotation point    5 rotate selected    6 rotate all

The middle button always pans and the right button always drags. Tab cycles
the blend mode, Escape clears the selection and rotation point, R recenters the
camera and Ctrl+S saves the alignment.`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func makeTitle(application *app.App, fps float64, stats render.Stats) string {
	return fmt.Sprintf("%s [%.1f FPS, %d triangles, %d draw calls/frame, %.2fµs/draw]",
		application.Title(), fps, stats.Triangles, stats.DrawCalls, stats.LastDrawTimeUs)
}

func runView(cmd *cobra.Command, args []string) error {
	proj, err := loadProject(cmd, args)
	if err != nil {
		return err
	}
	application, err := app.Load(proj)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(proj.Window.Width, proj.Window.Height, application.Title(), nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// The framebuffer can be larger than the requested window on high-DPI
	// displays.
	if err := application.Resize(window.GetFramebufferSize()); err != nil {
		return err
	}

	renderer, err := render.NewRenderer(application.Photos, proj.MaxTextureSize)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	eventHandlers := NewEventHandlers(application, window)

	frameCount, drawCount := 0, 0
	lastFPSUpdate := time.Now()

	// Main loop.
	for !window.ShouldClose() {
		if application.Frame(eventHandlers.Drain()) {
			if err := renderer.Draw(application); err != nil {
				log.Fatalf("Draw failed: %v", err)
			}
			window.SwapBuffers()
			drawCount++
		}
		glfw.WaitEventsTimeout(0.1)

		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(drawCount) / now.Sub(lastFPSUpdate).Seconds()
			stats := renderer.Stats()
			window.SetTitle(makeTitle(application, fps, stats))

			runtimeLogger.Println("=== Performance statistics ===")
			runtimeLogger.Printf("Frame rate:     %.1f FPS (%d frames polled, %d drawn)", fps, frameCount, drawCount)
			runtimeLogger.Printf("Geometry:       %d triangles, %d draw calls/frame", stats.Triangles, stats.DrawCalls)
			runtimeLogger.Printf("Render time:    %.2f µs (last draw), %d buffer growths", stats.LastDrawTimeUs, stats.BufferGrowths)
			runtimeLogger.Println("==============================")

			frameCount, drawCount = 0, 0
			lastFPSUpdate = now
		}
	}
	return nil
}
