package grove

// Position is a node with a local 2D transform. Descendant Position nodes
// are placed relative to their nearest Position ancestors; plain nodes in
// between are transparent.
type Position struct {
	*Node

	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // radians, clockwise on screen
}

// positioner is implemented by every type embedding *Position.
type positioner interface {
	position() *Position
}

func (p *Position) position() *Position { return p }

// NewPosition creates a detached Position node at the origin.
func NewPosition(name string, e *Engine) *Position {
	p := &Position{}
	initPosition(p, name, e, positionMRO, p)
	return p
}

// initPosition sets up p for a kind whose type chain extends Position.
// owner is the outermost wrapper, so As and ancestor lookups see it.
func initPosition(p *Position, name string, e *Engine, mro []string, owner any) {
	p.Node = newNode(name, e, mro)
	p.Node.owner = owner
	p.ScaleX = 1
	p.ScaleY = 1
}

// SetPosition sets the local X and Y.
func (p *Position) SetPosition(x, y float64) {
	p.X = x
	p.Y = y
}

// SetScale sets the local scale.
func (p *Position) SetScale(sx, sy float64) {
	p.ScaleX = sx
	p.ScaleY = sy
}

// WorldTransform composes the local transforms of p and every Position
// ancestor. O(depth).
func (p *Position) WorldTransform() [6]float64 {
	m := computeLocalTransform(p)
	for a := p.Parent(); a != nil; a = a.Parent() {
		if pp, ok := a.owner.(positioner); ok {
			m = multiplyAffine(computeLocalTransform(pp.position()), m)
		}
	}
	return m
}

// AbsolutePosition returns the node's origin in root coordinates.
func (p *Position) AbsolutePosition() Vec2 {
	m := p.WorldTransform()
	return Vec2{X: m[4], Y: m[5]}
}

// AbsoluteRotation returns the sum of the rotations of p and its Position
// ancestors.
func (p *Position) AbsoluteRotation() float64 {
	r := p.Rotation
	for a := p.Parent(); a != nil; a = a.Parent() {
		if pp, ok := a.owner.(positioner); ok {
			r += pp.position().Rotation
		}
	}
	return r
}

// LocalToWorld converts a local-space point to root coordinates.
func (p *Position) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(p.WorldTransform(), lx, ly)
}

// WorldToLocal converts a root-space point to this node's local space.
func (p *Position) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(p.WorldTransform()), wx, wy)
}
