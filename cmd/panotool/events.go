package main

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/panotool/internal/app"
	"github.com/irfansharif/panotool/internal/geom"
	"github.com/irfansharif/panotool/internal/input"
)

// EventHandlers translates GLFW callbacks into input events, queued until the
// next frame hands them to the application.
type EventHandlers struct {
	application *app.App
	window      *glfw.Window

	queue  []input.Event
	cursor geom.PixelCoords // in framebuffer pixels
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *app.App, window *glfw.Window) *EventHandlers {
	eh := &EventHandlers{
		application: application,
		window:      window,
	}
	eh.SetupCallbacks(window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(key, action, mods)
	})
	window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleMouseButton(button, action)
	})
	window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		eh.handleCursorPos(xpos, ypos)
	})
	window.SetScrollCallback(func(wnd *glfw.Window, _, yoff float64) {
		eh.queue = append(eh.queue, input.Scroll{Delta: yoff, Position: eh.cursor})
	})
	window.SetFramebufferSizeCallback(func(wnd *glfw.Window, newW, newH int) {
		eh.handleFramebufferSize(newW, newH)
	})
}

// Drain returns the events queued since the last call.
func (eh *EventHandlers) Drain() []input.Event {
	events := eh.queue
	eh.queue = nil
	return events
}

func (eh *EventHandlers) handleFramebufferSize(newW, newH int) {
	if err := eh.application.Resize(newW, newH); err != nil {
		runtimeLogger.Printf("ignoring resize to %dx%d: %v", newW, newH, err)
	}
}

var keys = map[glfw.Key]input.Key{
	glfw.Key1:      input.Key1,
	glfw.Key2:      input.Key2,
	glfw.Key3:      input.Key3,
	glfw.Key4:      input.Key4,
	glfw.Key5:      input.Key5,
	glfw.Key6:      input.Key6,
	glfw.KeyTab:    input.KeyTab,
	glfw.KeyEscape: input.KeyEscape,
	glfw.KeyR:      input.KeyR,
}

func (eh *EventHandlers) handleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return // repeats and releases are not used
	}

	// Ctrl+S (or Cmd+S) saves the alignment.
	if key == glfw.KeyS && mods&(glfw.ModControl|glfw.ModSuper) != 0 {
		eh.save()
		return
	}

	k, ok := keys[key]
	if !ok {
		k = input.KeyOther
	}
	eh.queue = append(eh.queue, input.KeyPress{Key: k})
}

func (eh *EventHandlers) save() {
	path := eh.application.Project.AlignmentPath()
	if path == "" {
		log.Printf("Not saving: the project names no alignment file")
		return
	}
	if err := eh.application.SaveAlignment(path); err != nil {
		log.Printf("Saving alignment: %v", err)
	}
}

func (eh *EventHandlers) handleMouseButton(button glfw.MouseButton, action glfw.Action) {
	var b input.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = input.Primary
	case glfw.MouseButtonRight:
		b = input.Secondary
	case glfw.MouseButtonMiddle:
		b = input.Auxiliary
	default:
		return // nothing to do
	}

	switch action {
	case glfw.Press:
		eh.queue = append(eh.queue, input.PointerPress{Button: b, Position: eh.cursor})
	case glfw.Release:
		eh.queue = append(eh.queue, input.PointerRelease{Button: b, Position: eh.cursor})
	}
}

// framebufferScale returns how many framebuffer pixels span one window
// coordinate along each axis.
func framebufferScale(fbW, fbH, winW, winH int) (float64, float64) {
	if fbW <= 0 || fbH <= 0 || winW <= 0 || winH <= 0 {
		return 1, 1 // minimized
	}
	return float64(fbW) / float64(winW), float64(fbH) / float64(winH)
}

// handleCursorPos records the cursor in framebuffer pixels; GLFW reports it in
// window coordinates, which differ on high-DPI displays.
func (eh *EventHandlers) handleCursorPos(xpos, ypos float64) {
	fbW, fbH := eh.window.GetFramebufferSize()
	winW, winH := eh.window.GetSize()
	scaleX, scaleY := framebufferScale(fbW, fbH, winW, winH)
	eh.cursor = geom.PixelCoords{X: xpos * scaleX, Y: ypos * scaleY}
	eh.queue = append(eh.queue, input.PointerMove{Position: eh.cursor})
}
