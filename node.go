package grove

import (
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Type names of the built-in node kinds, as reported by MRO. They are the
// Go type names without a "Node" suffix: a sprite's chain is
// Node, Position, Sprite (not SpriteNode or PositionNode).
const (
	TypeNode      = "Node"
	TypePosition  = "Position"
	TypeSprite    = "Sprite"
	TypeTween     = "Tween"
	TypeScript    = "Script"
	TypeFPSWidget = "FPSWidget"
)

// Type chains of the built-in node kinds, most-base first. Shared and
// never mutated; Extend copies before appending.
var (
	nodeMRO      = []string{TypeNode}
	positionMRO  = []string{TypeNode, TypePosition}
	spriteMRO    = []string{TypeNode, TypePosition, TypeSprite}
	tweenMRO     = []string{TypeNode, TypeTween}
	scriptMRO    = []string{TypeNode, TypeScript}
	fpsWidgetMRO = []string{TypeNode, TypePosition, TypeFPSWidget}
)

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, grove is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the scene graph element. Behavior is supplied through the hook
// fields; concrete node kinds (Position, Sprite, Tween, Script) wrap a Node
// and install their hooks in their constructors.
//
// A node owns its children. The parent pointer is a back-reference used for
// navigation only.
type Node struct {
	// Identity
	ID   uint32
	Name string

	engine *Engine
	owner  any
	mro    []string

	// Hierarchy
	parent   *Node
	children []*Node

	// Channel and lifecycle state
	inputEnabled   bool
	processEnabled bool
	drawEnabled    bool
	inTree         bool
	readyPending   bool
	disposed       bool

	// Metadata
	UserData any

	// Hooks (nil by default). OnInput, OnProcess and OnDraw only run while
	// the matching channel is enabled.
	OnInput     func(ev InputEvent) bool
	OnProcess   func(dt float64)
	OnDraw      func(screen *ebiten.Image)
	OnEnterTree func()
	OnReady     func()
	OnExitTree  func()
	OnDispose   func()
}

// NewNode creates a detached plain node bound to e. All channels start
// disabled.
func NewNode(name string, e *Engine) *Node {
	n := newNode(name, e, nodeMRO)
	n.owner = n
	return n
}

func newNode(name string, e *Engine, mro []string) *Node {
	return &Node{ID: nextNodeID(), Name: name, engine: e, mro: mro}
}

// Engine returns the engine this node was created for.
func (n *Node) Engine() *Engine {
	return n.engine
}

// Owner returns the concrete value wrapping this node (*Position, *Sprite,
// ...), or the node itself for plain nodes.
func (n *Node) Owner() any {
	return n.owner
}

// SetOwner records the concrete value wrapping this node, for user-defined
// node kinds. Retrieve it with As.
func (n *Node) SetOwner(v any) {
	n.owner = v
}

// As returns the concrete wrapper of n as T.
//
//	if s, ok := grove.As[*grove.Sprite](n); ok { ... }
func As[T any](n *Node) (T, bool) {
	v, ok := n.owner.(T)
	return v, ok
}

// --- Type chain ---

// MRO returns the node's type chain from the most-base type to the most
// derived. The returned slice MUST NOT be mutated.
func (n *Node) MRO() []string {
	return n.mro
}

// IsOf reports whether typeName appears in the node's type chain.
func (n *Node) IsOf(typeName string) bool {
	return slices.Contains(n.mro, typeName)
}

// Extend appends typeName to the node's type chain. User-defined node kinds
// call it once from their constructor.
func (n *Node) Extend(typeName string) {
	n.mro = append(slices.Clip(n.mro), typeName)
}

// --- Channel toggles ---

func (n *Node) HasInput() bool   { return n.inputEnabled }
func (n *Node) HasProcess() bool { return n.processEnabled }
func (n *Node) HasDraw() bool    { return n.drawEnabled }

func (n *Node) SetInput(enabled bool)   { n.inputEnabled = enabled }
func (n *Node) SetProcess(enabled bool) { n.processEnabled = enabled }
func (n *Node) SetDraw(enabled bool)    { n.drawEnabled = enabled }

// IsInTree reports whether enter-tree has fired for this node and exit-tree
// has not.
func (n *Node) IsInTree() bool {
	return n.inTree
}

// --- Navigation ---

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks parent references to the top of the tree.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// GetNode resolves a slash-delimited path of child names relative to n.
// Each segment matches the first child with that exact name; empty segments
// are skipped. Returns nil if any segment is unmatched.
func (n *Node) GetNode(path string) *Node {
	cur := n
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		cur = cur.childNamed(seg)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func (n *Node) childNamed(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindChildrenByType returns every descendant, in pre-order, whose type
// chain contains any of the given type names. n itself is not included.
func (n *Node) FindChildrenByType(types ...string) []*Node {
	return n.appendByType(nil, types)
}

func (n *Node) appendByType(out []*Node, types []string) []*Node {
	for _, c := range n.children {
		for _, t := range types {
			if c.IsOf(t) {
				out = append(out, c)
				break
			}
		}
		out = c.appendByType(out, types)
	}
	return out
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first,
// firing exit-tree if it was in the tree. If this node is in the tree the
// child's subtree then enters it.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if n.debug() {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("grove: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.detach(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	if n.inTree {
		child.SendEnterTree()
	}
	if n.debug() {
		n.engine.debugCheckTreeDepth(child)
		n.engine.debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node, firing exit-tree on its
// subtree first if it was in the tree. Returns false if child is not a
// child of this node.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || child.parent != n {
		return false
	}
	if n.debug() {
		debugCheckDisposed(n, "RemoveChild (parent)")
	}
	n.detach(child)
	return true
}

// Reparent moves this node under newParent in one step: it is never listed
// under two parents, nor left parentless when newParent is non-nil. A nil
// newParent detaches the node.
// Panics if newParent is this node or one of its descendants.
func (n *Node) Reparent(newParent *Node) {
	if newParent == nil {
		n.RemoveFromParent()
		return
	}
	newParent.AddChild(n)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.detach(n)
}

// detach fires exit-tree on child's subtree and unlinks it from n.
func (n *Node) detach(child *Node) {
	if child.inTree {
		child.SendExitTree()
	}
	n.removeChildByPtr(child)
	child.parent = nil
}

// --- Disposal ---

// Dispose removes this node from its parent, runs OnDispose on it and every
// descendant, and marks them disposed. Nodes holding assets release them
// from OnDispose.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	if n.parent != nil {
		n.RemoveFromParent()
	} else if n.inTree {
		n.SendExitTree()
	}
	n.dispose()
}

func (n *Node) dispose() {
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	if n.OnDispose != nil {
		n.OnDispose()
	}
	n.disposed = true
	n.ID = 0
	n.children = nil
	n.parent = nil
	n.inputEnabled = false
	n.processEnabled = false
	n.drawEnabled = false
	n.UserData = nil
	n.OnInput = nil
	n.OnProcess = nil
	n.OnDraw = nil
	n.OnEnterTree = nil
	n.OnReady = nil
	n.OnExitTree = nil
	n.OnDispose = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func (n *Node) debug() bool {
	return n.engine != nil && n.engine.debug
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// countNodes returns the size of the subtree rooted at n.
func countNodes(n *Node) int {
	count := 1
	for _, c := range n.children {
		count += countNodes(c)
	}
	return count
}
