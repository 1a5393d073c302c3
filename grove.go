package grove

import "github.com/hajimehoshi/ebiten/v2"

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// InputEventType identifies a kind of input event.
type InputEventType uint8

const (
	EventKeyDown   InputEventType = iota // a key was pressed this frame
	EventKeyUp                           // a key was released this frame
	EventMouseDown                       // a mouse button was pressed this frame
	EventMouseUp                         // a mouse button was released this frame
	EventMouseMove                       // the cursor moved
	EventWheel                           // the wheel scrolled
)

func (t InputEventType) String() string {
	switch t {
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventMouseDown:
		return "mousedown"
	case EventMouseUp:
		return "mouseup"
	case EventMouseMove:
		return "mousemove"
	case EventWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// InputEvent is a single input occurrence dispatched through the input
// channel. Fields not relevant to Type are zero.
type InputEvent struct {
	Type      InputEventType
	Key       ebiten.Key // EventKeyDown, EventKeyUp
	Button    MouseButton
	X, Y      float64 // cursor position for mouse events
	WheelX    float64
	WheelY    float64
	Modifiers KeyModifiers
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// ebitenButton maps a MouseButton to its ebiten equivalent.
func (b MouseButton) ebitenButton() ebiten.MouseButton {
	switch b {
	case MouseButtonRight:
		return ebiten.MouseButtonRight
	case MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// EventSink receives input events that no node consumed. See the ecs
// module for a Donburi-backed implementation.
type EventSink interface {
	EmitInput(ev InputEvent)
}
