// Package input defines window events and their dispatch to handlers.
package input

// EventType identifies the payload of an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyboard
	EventMouse
)

// KeyCode is a backend independent key identifier.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyShift
	KeyEscape
	KeyF1
)

// MouseButtons is a set of mouse buttons.
type MouseButtons uint8

const (
	MouseLeft MouseButtons = 1 << iota
	MouseMiddle
	MouseRight
)

// Has reports whether every button in b is held.
func (m MouseButtons) Has(b MouseButtons) bool {
	return m&b == b
}

// MouseEventType identifies a mouse action.
type MouseEventType int

const (
	MouseMove MouseEventType = iota
	MouseButtonDown
	MouseButtonUp
	MouseWheel
)

// KeyboardEvent is a key press or release.
type KeyboardEvent struct {
	Key     KeyCode
	Pressed bool
	Repeat  bool
}

// MouseEvent carries cursor position in window pixels, top-left origin.
type MouseEvent struct {
	Type    MouseEventType
	X, Y    int
	Button  MouseButtons // button that changed, for ButtonDown/ButtonUp
	Buttons MouseButtons // buttons held after the event
	Wheel   float32      // vertical scroll, positive away from the user
}

// ResizeEvent is a new window size.
type ResizeEvent struct {
	Width, Height int
}

// Event is one window event.
type Event struct {
	Type     EventType
	Keyboard KeyboardEvent
	Mouse    MouseEvent
	Resize   ResizeEvent
}

// MouseState tracks cursor position and held buttons between backend events.
type MouseState struct {
	X, Y    int
	Buttons MouseButtons
}

// Handler receives events. Handlers are compared by identity, so they must
// be comparable values such as pointers.
type Handler interface {
	OnEvent(e Event)
}

// Dispatcher fans events out to registered handlers in registration order.
type Dispatcher struct {
	handlers []Handler
}

// Add registers h. Nil and already registered handlers are ignored.
func (d *Dispatcher) Add(h Handler) {
	if h == nil {
		return
	}
	for _, existing := range d.handlers {
		if existing == h {
			return
		}
	}
	d.handlers = append(d.handlers, h)
}

// Remove unregisters h. Unknown handlers are ignored.
func (d *Dispatcher) Remove(h Handler) {
	for i, existing := range d.handlers {
		if existing == h {
			d.handlers = append(d.handlers[:i:i], d.handlers[i+1:]...)
			return
		}
	}
}

// Len returns the number of handlers.
func (d *Dispatcher) Len() int {
	return len(d.handlers)
}

// Dispatch delivers e to the handlers registered when the call started.
// Handlers may add or remove handlers while being called.
func (d *Dispatcher) Dispatch(e Event) {
	for _, h := range d.handlers {
		h.OnEvent(e)
	}
}

// KeyState tracks which keys are held.
type KeyState struct {
	pressed map[KeyCode]bool
}

// NewKeyState creates an empty key tracker.
func NewKeyState() *KeyState {
	return &KeyState{pressed: make(map[KeyCode]bool)}
}

// OnEvent implements Handler.
func (k *KeyState) OnEvent(e Event) {
	if e.Type != EventKeyboard || e.Keyboard.Key == KeyUnknown {
		return
	}
	k.pressed[e.Keyboard.Key] = e.Keyboard.Pressed
}

// Pressed reports whether key is held.
func (k *KeyState) Pressed(key KeyCode) bool {
	return k.pressed[key]
}
