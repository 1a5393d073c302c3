package grove

import "github.com/hajimehoshi/ebiten/v2"

// InjectInput queues a synthetic event. One queued event is dispatched per
// frame, after the frame's device events, exactly as if it had been polled.
func (e *Engine) InjectInput(ev InputEvent) {
	e.injectQueue = append(e.injectQueue, ev)
}

// InjectKey queues a key press followed by its release. Consumes two frames.
func (e *Engine) InjectKey(k ebiten.Key) {
	e.InjectInput(InputEvent{Type: EventKeyDown, Key: k})
	e.InjectInput(InputEvent{Type: EventKeyUp, Key: k})
}

// InjectMove queues a cursor move to (x, y).
func (e *Engine) InjectMove(x, y float64) {
	e.InjectInput(InputEvent{Type: EventMouseMove, X: x, Y: y})
}

// InjectClick queues a left-button press followed by a release at the same
// coordinates. Consumes two frames.
func (e *Engine) InjectClick(x, y float64) {
	e.InjectInput(InputEvent{Type: EventMouseDown, Button: MouseButtonLeft, X: x, Y: y})
	e.InjectInput(InputEvent{Type: EventMouseUp, Button: MouseButtonLeft, X: x, Y: y})
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). Minimum frames is 2.
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectInput(InputEvent{Type: EventMouseDown, Button: MouseButtonLeft, X: fromX, Y: fromY})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectInput(InputEvent{Type: EventMouseUp, Button: MouseButtonLeft, X: toX, Y: toY})
}

// PendingInjected returns the number of queued synthetic events.
func (e *Engine) PendingInjected() int {
	return len(e.injectQueue)
}

// popInjected removes the oldest queued event.
func (e *Engine) popInjected() (InputEvent, bool) {
	if len(e.injectQueue) == 0 {
		return InputEvent{}, false
	}
	ev := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]
	return ev, true
}
