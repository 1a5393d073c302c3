package grove

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var pollButtons = [...]MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// pollInput appends this frame's device events to buf: key presses, key
// releases, mouse buttons, cursor motion and wheel, in that order. Only
// valid inside the ebiten game loop.
func (e *Engine) pollInput(buf []InputEvent) []InputEvent {
	mods := readModifiers()

	e.keyBuf = inpututil.AppendJustPressedKeys(e.keyBuf[:0])
	for _, k := range e.keyBuf {
		buf = append(buf, InputEvent{Type: EventKeyDown, Key: k, Modifiers: mods})
	}
	e.keyBuf = inpututil.AppendJustReleasedKeys(e.keyBuf[:0])
	for _, k := range e.keyBuf {
		buf = append(buf, InputEvent{Type: EventKeyUp, Key: k, Modifiers: mods})
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	for _, b := range pollButtons {
		switch {
		case inpututil.IsMouseButtonJustPressed(b.ebitenButton()):
			buf = append(buf, InputEvent{Type: EventMouseDown, Button: b, X: x, Y: y, Modifiers: mods})
		case inpututil.IsMouseButtonJustReleased(b.ebitenButton()):
			buf = append(buf, InputEvent{Type: EventMouseUp, Button: b, X: x, Y: y, Modifiers: mods})
		}
	}
	if x != e.cursorX || y != e.cursorY {
		e.cursorX, e.cursorY = x, y
		buf = append(buf, InputEvent{Type: EventMouseMove, X: x, Y: y, Modifiers: mods})
	}
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		buf = append(buf, InputEvent{Type: EventWheel, X: x, Y: y, WheelX: wx, WheelY: wy, Modifiers: mods})
	}
	return buf
}
