package phys

// Constraint records that two bodies are joined. The solver that enforces
// the joint is an external collaborator; the core consumes only the
// membership fact for island propagation.
type Constraint struct {
	// UserData is an opaque caller-supplied slot.
	UserData any

	a, b  *Body
	space *Space
}

// NewConstraint creates a constraint joining a and b and registers it with
// both bodies.
func NewConstraint(a, b *Body) *Constraint {
	c := &Constraint{a: a, b: b}
	a.constraints = append(a.constraints, c)
	b.constraints = append(b.constraints, c)
	return c
}

// Bodies returns the two joined bodies.
func (c *Constraint) Bodies() (*Body, *Body) { return c.a, c.b }

// Space returns the container the constraint is added to, or nil.
func (c *Constraint) Space() *Space { return c.space }

// Other returns the body joined to b through this constraint.
func (c *Constraint) Other(b *Body) *Body {
	if c.a == b {
		return c.b
	}
	return c.a
}
