package input

import "github.com/veandco/go-sdl2/sdl"

var sdlKeys = map[sdl.Scancode]KeyCode{
	sdl.SCANCODE_W:      KeyW,
	sdl.SCANCODE_A:      KeyA,
	sdl.SCANCODE_S:      KeyS,
	sdl.SCANCODE_D:      KeyD,
	sdl.SCANCODE_Q:      KeyQ,
	sdl.SCANCODE_E:      KeyE,
	sdl.SCANCODE_UP:     KeyUp,
	sdl.SCANCODE_DOWN:   KeyDown,
	sdl.SCANCODE_LEFT:   KeyLeft,
	sdl.SCANCODE_RIGHT:  KeyRight,
	sdl.SCANCODE_SPACE:  KeySpace,
	sdl.SCANCODE_LSHIFT: KeyShift,
	sdl.SCANCODE_ESCAPE: KeyEscape,
	sdl.SCANCODE_F1:     KeyF1,
}

func sdlButton(button uint8) MouseButtons {
	switch button {
	case sdl.BUTTON_LEFT:
		return MouseLeft
	case sdl.BUTTON_MIDDLE:
		return MouseMiddle
	case sdl.BUTTON_RIGHT:
		return MouseRight
	}
	return 0
}

// FromSDL converts an SDL event and updates the mouse state.
// The boolean is false for events with no engine equivalent.
func FromSDL(event sdl.Event, mouse *MouseState) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{
				Type:   EventWindowResize,
				Resize: ResizeEvent{Width: int(e.Data1), Height: int(e.Data2)},
			}, true
		}

	case *sdl.KeyboardEvent:
		return Event{
			Type: EventKeyboard,
			Keyboard: KeyboardEvent{
				Key:     sdlKeys[e.Keysym.Scancode],
				Pressed: e.Type == sdl.KEYDOWN,
				Repeat:  e.Repeat != 0,
			},
		}, true

	case *sdl.MouseMotionEvent:
		mouse.X, mouse.Y = int(e.X), int(e.Y)
		return mouseEvent(MouseMove, 0, 0, mouse), true

	case *sdl.MouseButtonEvent:
		mouse.X, mouse.Y = int(e.X), int(e.Y)
		button := sdlButton(e.Button)
		if e.Type == sdl.MOUSEBUTTONDOWN {
			mouse.Buttons |= button
			return mouseEvent(MouseButtonDown, button, 0, mouse), true
		}
		mouse.Buttons &^= button
		return mouseEvent(MouseButtonUp, button, 0, mouse), true

	case *sdl.MouseWheelEvent:
		return mouseEvent(MouseWheel, 0, float32(e.Y), mouse), true
	}
	return Event{}, false
}

func mouseEvent(t MouseEventType, button MouseButtons, wheel float32, mouse *MouseState) Event {
	return Event{
		Type: EventMouse,
		Mouse: MouseEvent{
			Type:    t,
			X:       mouse.X,
			Y:       mouse.Y,
			Button:  button,
			Buttons: mouse.Buttons,
			Wheel:   wheel,
		},
	}
}
