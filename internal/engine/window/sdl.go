package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/input"
)

// SDLWindow wraps an SDL2 window and OpenGL context.
type SDLWindow struct {
	config     Config
	sdlWindow  *sdl.Window
	glContext  sdl.GLContext
	dispatcher input.Dispatcher
	mouse      input.MouseState
	closed     bool
}

// NewSDL creates a new SDL2 window with an OpenGL 4.1 core context.
func NewSDL(cfg Config) (*SDLWindow, error) {
	w := &SDLWindow{
		config: cfg,
	}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	w.SetVSync(cfg.VSync)

	log.Info("window created",
		zap.String("backend", BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Size returns the current window size.
func (w *SDLWindow) Size() graphics.Size {
	width, height := w.sdlWindow.GetSize()
	return graphics.Size{Width: int(width), Height: int(height)}
}

// AddEventHandler registers h for window events.
func (w *SDLWindow) AddEventHandler(h input.Handler) { w.dispatcher.Add(h) }

// RemoveEventHandler unregisters h.
func (w *SDLWindow) RemoveEventHandler(h input.Handler) { w.dispatcher.Remove(h) }

// CursorPosition returns the last cursor position.
func (w *SDLWindow) CursorPosition() (int, int) { return w.mouse.X, w.mouse.Y }

// HasContext reports that the window owns a GL context.
func (w *SDLWindow) HasContext() bool { return true }

// SetCursorPosition warps the cursor inside the window.
func (w *SDLWindow) SetCursorPosition(x, y int) {
	w.sdlWindow.WarpMouseInWindow(int32(x), int32(y))
	w.mouse.X, w.mouse.Y = x, y
}

// PollEvents drains the SDL queue into the registered handlers.
func (w *SDLWindow) PollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := input.FromSDL(event, &w.mouse)
		if !ok {
			continue
		}
		if e.Type == input.EventQuit {
			w.closed = true
		}
		w.dispatcher.Dispatch(e)
	}
	return !w.closed
}

// SwapBuffers swaps the OpenGL buffers.
func (w *SDLWindow) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// SetVSync sets the swap interval.
func (w *SDLWindow) SetVSync(enabled bool) {
	interval := 0
	if enabled {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("failed to set swap interval", zap.Bool("vsync", enabled), zap.Error(err))
	}
}

// SetTitle sets the window title.
func (w *SDLWindow) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Close destroys the window and cleans up SDL2.
func (w *SDLWindow) Close() error {
	log.Info("closing window")

	var err error
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.sdlWindow != nil {
		err = w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}
	sdl.Quit()
	return err
}
