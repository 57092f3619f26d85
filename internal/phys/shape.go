package phys

import "github.com/san-kum/planar/internal/vect"

// Shape is a collision shape attached to a body. Geometry and collision
// detection belong to external collaborators; the core tracks attachment
// membership and carries a bounding circle for them.
type Shape struct {
	// UserData is an opaque caller-supplied slot.
	UserData any

	body  *Body
	space *Space

	// Radius and Offset describe the bounding circle in body-local
	// coordinates for external detectors.
	Radius float64
	Offset vect.Vect
}

// NewCircle creates a circular shape referencing body. The shape only
// participates in island propagation once added to a space.
func NewCircle(body *Body, radius float64, offset vect.Vect) *Shape {
	s := &Shape{body: body, Radius: radius, Offset: offset}
	body.shapes = append(body.shapes, s)
	return s
}

// Body returns the body the shape references.
func (s *Shape) Body() *Body { return s.body }

// Space returns the container the shape is added to, or nil.
func (s *Shape) Space() *Space { return s.space }

// WorldCenter returns the center of the bounding circle in world
// coordinates.
func (s *Shape) WorldCenter() vect.Vect {
	return s.body.LocalToWorld(s.Offset)
}
