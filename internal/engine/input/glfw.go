package input

import "github.com/go-gl/glfw/v3.3/glfw"

var glfwKeys = map[glfw.Key]KeyCode{
	glfw.KeyW:         KeyW,
	glfw.KeyA:         KeyA,
	glfw.KeyS:         KeyS,
	glfw.KeyD:         KeyD,
	glfw.KeyQ:         KeyQ,
	glfw.KeyE:         KeyE,
	glfw.KeyUp:        KeyUp,
	glfw.KeyDown:      KeyDown,
	glfw.KeyLeft:      KeyLeft,
	glfw.KeyRight:     KeyRight,
	glfw.KeySpace:     KeySpace,
	glfw.KeyLeftShift: KeyShift,
	glfw.KeyEscape:    KeyEscape,
	glfw.KeyF1:        KeyF1,
}

// FromGLFWKey converts a GLFW key callback.
func FromGLFWKey(key glfw.Key, action glfw.Action) Event {
	return Event{
		Type: EventKeyboard,
		Keyboard: KeyboardEvent{
			Key:     glfwKeys[key],
			Pressed: action != glfw.Release,
			Repeat:  action == glfw.Repeat,
		},
	}
}

// FromGLFWButton converts a GLFW mouse button callback and updates the mouse state.
func FromGLFWButton(button glfw.MouseButton, action glfw.Action, mouse *MouseState) Event {
	var b MouseButtons
	switch button {
	case glfw.MouseButtonLeft:
		b = MouseLeft
	case glfw.MouseButtonMiddle:
		b = MouseMiddle
	case glfw.MouseButtonRight:
		b = MouseRight
	}
	if action == glfw.Press {
		mouse.Buttons |= b
		return mouseEvent(MouseButtonDown, b, 0, mouse)
	}
	mouse.Buttons &^= b
	return mouseEvent(MouseButtonUp, b, 0, mouse)
}

// FromGLFWCursor converts a GLFW cursor position callback.
func FromGLFWCursor(x, y float64, mouse *MouseState) Event {
	mouse.X, mouse.Y = int(x), int(y)
	return mouseEvent(MouseMove, 0, 0, mouse)
}

// FromGLFWScroll converts a GLFW scroll callback.
func FromGLFWScroll(yoff float64, mouse *MouseState) Event {
	return mouseEvent(MouseWheel, 0, float32(yoff), mouse)
}
