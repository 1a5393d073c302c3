package grove

import "github.com/hajimehoshi/ebiten/v2"

// Dispatch loops index into n.children on every iteration so that children
// appended by a hook are visited. Hooks that remove nodes should queue the
// change with Engine.Defer; removing a sibling mid-dispatch may skip one
// node for that frame.

// SendInput offers ev to the subtree. Children are visited first, in
// order; the first one to report the event consumed stops propagation and
// this node's own handler is not invoked. Otherwise, if input is enabled,
// this node's OnInput decides. Returns whether the event was consumed.
func (n *Node) SendInput(ev InputEvent) bool {
	for i := 0; i < len(n.children); i++ {
		if n.children[i].SendInput(ev) {
			return true
		}
	}
	if n.inputEnabled && n.OnInput != nil {
		return n.OnInput(ev)
	}
	return false
}

// SendProcess ticks the subtree. This node's OnProcess runs first when
// process is enabled, then every child is ticked in order regardless of
// this node's flag.
func (n *Node) SendProcess(dt float64) {
	if n.processEnabled && n.OnProcess != nil {
		n.OnProcess(dt)
	}
	for i := 0; i < len(n.children); i++ {
		n.children[i].SendProcess(dt)
	}
}

// SendDraw draws the subtree onto screen. This node draws first when draw
// is enabled, so parents paint beneath their children; then every child is
// drawn in order regardless of this node's flag.
func (n *Node) SendDraw(screen *ebiten.Image) {
	if n.drawEnabled && n.OnDraw != nil {
		n.OnDraw(screen)
	}
	for i := 0; i < len(n.children); i++ {
		n.children[i].SendDraw(screen)
	}
}

// SendEnterTree marks the subtree as in-tree. OnEnterTree runs on every
// node in pre-order, then OnReady runs on every node in pre-order, so a
// ready hook can rely on its whole subtree having entered. No-op if this
// node is already in the tree.
func (n *Node) SendEnterTree() {
	if n.inTree {
		return
	}
	n.enterTree()
	n.readyTree()
}

func (n *Node) enterTree() {
	if n.inTree {
		return
	}
	n.inTree = true
	n.readyPending = true
	if n.OnEnterTree != nil {
		n.OnEnterTree()
	}
	for i := 0; i < len(n.children); i++ {
		n.children[i].enterTree()
	}
}

// readyTree skips nodes that already became ready, e.g. children added by
// an enter-tree hook, which enter and ready on their own.
func (n *Node) readyTree() {
	if n.readyPending && n.inTree {
		n.readyPending = false
		if n.OnReady != nil {
			n.OnReady()
		}
	}
	for i := 0; i < len(n.children); i++ {
		n.children[i].readyTree()
	}
}

// SendExitTree runs OnExitTree on every node of the subtree in pre-order
// and clears their in-tree flags. No-op if this node is not in the tree.
func (n *Node) SendExitTree() {
	if !n.inTree {
		return
	}
	if n.OnExitTree != nil {
		n.OnExitTree()
	}
	for i := 0; i < len(n.children); i++ {
		n.children[i].SendExitTree()
	}
	n.inTree = false
	n.readyPending = false
}
