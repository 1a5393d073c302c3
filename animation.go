package grove

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation, TweenValue) and either call Update(dt) yourself or hand
// it to a Tween node. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds every tween to its start.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

// TweenPosition animates p.X and p.Y to the given target coordinates over
// the specified duration using the easing function.
func TweenPosition(p *Position, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: p.Node}
	g.tweens[0] = gween.New(float32(p.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(p.Y), float32(toY), duration, fn)
	g.fields[0] = &p.X
	g.fields[1] = &p.Y
	return g
}

// TweenScale animates p.ScaleX and p.ScaleY to the given target values.
func TweenScale(p *Position, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: p.Node}
	g.tweens[0] = gween.New(float32(p.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(p.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &p.ScaleX
	g.fields[1] = &p.ScaleY
	return g
}

// TweenRotation animates p.Rotation (radians) to the target value.
func TweenRotation(p *Position, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: p.Node}
	g.tweens[0] = gween.New(float32(p.Rotation), float32(to), duration, fn)
	g.fields[0] = &p.Rotation
	return g
}

// TweenValue animates an arbitrary field. owner, if non-nil, stops the
// group when disposed.
func TweenValue(owner *Node, field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: owner}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// Tween is a node that advances a TweenGroup on the process channel.
type Tween struct {
	*Node

	group *TweenGroup

	// AutoFree disposes the tween node once the group finishes. The
	// disposal is deferred to the end of the frame.
	AutoFree bool
	// OnFinished runs once when the group finishes.
	OnFinished func()
}

// NewTween creates a detached tween node driving g. Processing starts when
// the node becomes ready.
func NewTween(name string, e *Engine, g *TweenGroup) *Tween {
	t := &Tween{group: g}
	t.Node = newNode(name, e, tweenMRO)
	t.owner = t
	t.OnReady = t.ready
	t.OnProcess = t.advance
	return t
}

// Group returns the animated group.
func (t *Tween) Group() *TweenGroup {
	return t.group
}

func (t *Tween) ready() {
	t.SetProcess(t.group != nil && !t.group.Done)
}

func (t *Tween) advance(dt float64) {
	if t.group == nil {
		t.SetProcess(false)
		return
	}
	t.group.Update(float32(dt))
	if !t.group.Done {
		return
	}
	t.SetProcess(false)
	if t.OnFinished != nil {
		t.OnFinished()
	}
	if t.AutoFree && t.engine != nil {
		t.engine.Defer(t.Dispose)
	}
}
