package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/input"
)

// GLFWWindow wraps a GLFW window and OpenGL context.
type GLFWWindow struct {
	config     Config
	window     *glfw.Window
	dispatcher input.Dispatcher
	mouse      input.MouseState
	quitSent   bool
}

// NewGLFW creates a GLFW window with an OpenGL 4.1 core context.
func NewGLFW(cfg Config) (*GLFWWindow, error) {
	log.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.DepthBits, 24)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window failed: %w", err)
	}
	win.MakeContextCurrent()

	w := &GLFWWindow{config: cfg, window: win}
	w.SetVSync(cfg.VSync)
	w.installCallbacks()

	log.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *GLFWWindow) installCallbacks() {
	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.dispatcher.Dispatch(input.FromGLFWKey(key, action))
	})
	w.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.dispatcher.Dispatch(input.FromGLFWCursor(x, y, &w.mouse))
	})
	w.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		w.dispatcher.Dispatch(input.FromGLFWButton(button, action, &w.mouse))
	})
	w.window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		w.dispatcher.Dispatch(input.FromGLFWScroll(yoff, &w.mouse))
	})
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.dispatcher.Dispatch(input.Event{
			Type:   input.EventWindowResize,
			Resize: input.ResizeEvent{Width: width, Height: height},
		})
	})
}

// Size returns the framebuffer size.
func (w *GLFWWindow) Size() graphics.Size {
	width, height := w.window.GetFramebufferSize()
	return graphics.Size{Width: width, Height: height}
}

// AddEventHandler registers h for window events.
func (w *GLFWWindow) AddEventHandler(h input.Handler) { w.dispatcher.Add(h) }

// RemoveEventHandler unregisters h.
func (w *GLFWWindow) RemoveEventHandler(h input.Handler) { w.dispatcher.Remove(h) }

// CursorPosition returns the last cursor position.
func (w *GLFWWindow) CursorPosition() (int, int) { return w.mouse.X, w.mouse.Y }

// HasContext reports that the window owns a GL context.
func (w *GLFWWindow) HasContext() bool { return true }

// SetCursorPosition moves the cursor inside the window.
func (w *GLFWWindow) SetCursorPosition(x, y int) {
	w.window.SetCursorPos(float64(x), float64(y))
	w.mouse.X, w.mouse.Y = x, y
}

// PollEvents processes pending events; callbacks dispatch them.
func (w *GLFWWindow) PollEvents() bool {
	glfw.PollEvents()
	if w.window.ShouldClose() {
		if !w.quitSent {
			w.quitSent = true
			w.dispatcher.Dispatch(input.Event{Type: input.EventQuit})
		}
		return false
	}
	return true
}

// SwapBuffers presents the back buffer.
func (w *GLFWWindow) SwapBuffers() { w.window.SwapBuffers() }

// SetVSync sets the swap interval of the current context.
func (w *GLFWWindow) SetVSync(enabled bool) {
	if enabled {
		glfw.SwapInterval(1)
		return
	}
	glfw.SwapInterval(0)
}

// SetTitle changes the window title.
func (w *GLFWWindow) SetTitle(title string) { w.window.SetTitle(title) }

// Close destroys the window and terminates GLFW.
func (w *GLFWWindow) Close() error {
	log.Info("closing window")
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	glfw.Terminate()
	return nil
}
