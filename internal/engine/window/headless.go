package window

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/input"
)

// HeadlessWindow is a window without a display. Events are injected with
// Post and delivered by PollEvents.
type HeadlessWindow struct {
	size       graphics.Size
	title      string
	vsync      bool
	dispatcher input.Dispatcher
	queue      []input.Event
	mouse      input.MouseState
	closed     bool
	swaps      int
}

// NewHeadless creates a headless window.
func NewHeadless(cfg Config) *HeadlessWindow {
	log.Info("window created",
		zap.String("backend", BackendHeadless),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	return &HeadlessWindow{
		size:  graphics.Size{Width: cfg.Width, Height: cfg.Height},
		title: cfg.Title,
		vsync: cfg.VSync,
	}
}

// Post queues an event for the next PollEvents.
func (w *HeadlessWindow) Post(e input.Event) {
	w.queue = append(w.queue, e)
}

// RequestClose queues a quit event.
func (w *HeadlessWindow) RequestClose() {
	w.Post(input.Event{Type: input.EventQuit})
}

// PollEvents delivers queued events. Resize events update the size before
// handlers see them and mouse events move the cursor.
func (w *HeadlessWindow) PollEvents() bool {
	queue := w.queue
	w.queue = nil
	for _, e := range queue {
		switch e.Type {
		case input.EventQuit:
			w.closed = true
		case input.EventWindowResize:
			w.size = graphics.Size{Width: e.Resize.Width, Height: e.Resize.Height}
		case input.EventMouse:
			w.mouse = input.MouseState{X: e.Mouse.X, Y: e.Mouse.Y, Buttons: e.Mouse.Buttons}
		}
		w.dispatcher.Dispatch(e)
	}
	return !w.closed
}

// Size returns the fixed window size.
func (w *HeadlessWindow) Size() graphics.Size { return w.size }

// AddEventHandler registers h for posted events.
func (w *HeadlessWindow) AddEventHandler(h input.Handler) { w.dispatcher.Add(h) }

// RemoveEventHandler unregisters h.
func (w *HeadlessWindow) RemoveEventHandler(h input.Handler) { w.dispatcher.Remove(h) }

// CursorPosition returns the last cursor position.
func (w *HeadlessWindow) CursorPosition() (int, int) { return w.mouse.X, w.mouse.Y }

// SetCursorPosition moves the cursor without an event.
func (w *HeadlessWindow) SetCursorPosition(x, y int) { w.mouse.X, w.mouse.Y = x, y }

// SwapBuffers counts the swap.
func (w *HeadlessWindow) SwapBuffers() { w.swaps++ }

// SetVSync records the swap interval.
func (w *HeadlessWindow) SetVSync(enabled bool) { w.vsync = enabled }

// SetTitle records the title.
func (w *HeadlessWindow) SetTitle(title string) { w.title = title }

// HasContext reports false; headless windows have no GL context.
func (w *HeadlessWindow) HasContext() bool { return false }

// Title returns the last title set.
func (w *HeadlessWindow) Title() string { return w.title }

// Swaps returns the number of SwapBuffers calls.
func (w *HeadlessWindow) Swaps() int { return w.swaps }

// Close marks the window closed.
func (w *HeadlessWindow) Close() error {
	log.Info("closing window")
	w.closed = true
	return nil
}
