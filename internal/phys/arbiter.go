package phys

// Arbiter is an active contact record between two shapes, owned by the
// space. The external collision system creates and refreshes arbiters via
// Space.Touch; the island machinery consumes them as membership facts.
type Arbiter struct {
	shapeA, shapeB *Shape
	stamp          uint64 // step the contact was last reported on
}

// Shapes returns the two touching shapes.
func (a *Arbiter) Shapes() (*Shape, *Shape) { return a.shapeA, a.shapeB }

// Bodies returns the two touching bodies.
func (a *Arbiter) Bodies() (*Body, *Body) { return a.shapeA.body, a.shapeB.body }

// other returns the body on the far side of the contact from b, or nil if
// b is not part of the contact.
func (a *Arbiter) other(b *Body) *Body {
	switch b {
	case a.shapeA.body:
		return a.shapeB.body
	case a.shapeB.body:
		return a.shapeA.body
	}
	return nil
}

// matches reports whether the arbiter records contact between sa and sb in
// either order.
func (a *Arbiter) matches(sa, sb *Shape) bool {
	return (a.shapeA == sa && a.shapeB == sb) || (a.shapeA == sb && a.shapeB == sa)
}
