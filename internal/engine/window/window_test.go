package window

import (
	"testing"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/input"
)

type resizeRecorder struct {
	sizes []graphics.Size
	win   Window
}

func (r *resizeRecorder) OnEvent(e input.Event) {
	if e.Type == input.EventWindowResize {
		r.sizes = append(r.sizes, r.win.Size())
	}
}

func TestNewHeadless(t *testing.T) {
	w, err := New(Config{Backend: BackendHeadless, Title: "test", Width: 320, Height: 240})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Size() != (graphics.Size{Width: 320, Height: 240}) {
		t.Errorf("expected 320x240, got %v", w.Size())
	}
	if w.HasContext() {
		t.Error("expected headless window to have no GL context")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown backend", Config{Backend: "metal", Width: 1, Height: 1}},
		{"zero size", Config{Backend: BackendHeadless}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestHeadlessEvents(t *testing.T) {
	w := NewHeadless(Config{Width: 100, Height: 100})
	rec := &resizeRecorder{win: w}
	w.AddEventHandler(rec)

	w.Post(input.Event{Type: input.EventWindowResize, Resize: input.ResizeEvent{Width: 640, Height: 480}})
	w.Post(input.Event{Type: input.EventMouse, Mouse: input.MouseEvent{Type: input.MouseMove, X: 5, Y: 7}})
	if !w.PollEvents() {
		t.Fatal("expected window to stay open")
	}
	if len(rec.sizes) != 1 || rec.sizes[0] != (graphics.Size{Width: 640, Height: 480}) {
		t.Errorf("expected handler to see the new size, got %v", rec.sizes)
	}
	if x, y := w.CursorPosition(); x != 5 || y != 7 {
		t.Errorf("expected cursor (5, 7), got (%d, %d)", x, y)
	}

	w.RequestClose()
	if w.PollEvents() {
		t.Error("expected PollEvents to return false after quit")
	}
}
