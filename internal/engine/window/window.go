// Package window provides the native window, GL context and event source
// used by the engine.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/input"
	"github.com/Faultbox/gltut/internal/logger"
)

const log logger.Component = "window"

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backend names accepted by New.
const (
	BackendSDL      = "sdl"
	BackendGLFW     = "glfw"
	BackendHeadless = "headless"
)

// Config holds window configuration.
type Config struct {
	Backend    string
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window is a native window with a current GL context.
type Window interface {
	Size() graphics.Size
	AddEventHandler(h input.Handler)
	RemoveEventHandler(h input.Handler)
	CursorPosition() (x, y int)
	SetCursorPosition(x, y int)
	// PollEvents dispatches pending events and returns false once the
	// window has been asked to close.
	PollEvents() bool
	SwapBuffers()
	SetVSync(enabled bool)
	SetTitle(title string)
	// HasContext reports whether the window owns a real GL context.
	HasContext() bool
	Close() error
}

// New creates a window for the configured backend.
func New(cfg Config) (Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	switch cfg.Backend {
	case BackendSDL, "":
		return NewSDL(cfg)
	case BackendGLFW:
		return NewGLFW(cfg)
	case BackendHeadless:
		return NewHeadless(cfg), nil
	}
	return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
}
