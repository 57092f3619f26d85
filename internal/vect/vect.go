// Package vect provides 2D vector math for the simulation core, including
// the unit rotation spinor (cos θ, sin θ) used for trig-free rotations.
package vect

import "math"

// Vect is a 2D vector. It doubles as a rotation spinor when unit length,
// with X = cos θ and Y = sin θ.
type Vect struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vect{}

// FromAngle returns the unit spinor for angle a (radians).
func FromAngle(a float64) Vect {
	return Vect{math.Cos(a), math.Sin(a)}
}

func (v Vect) Add(o Vect) Vect { return Vect{v.X + o.X, v.Y + o.Y} }

func (v Vect) Sub(o Vect) Vect { return Vect{v.X - o.X, v.Y - o.Y} }

func (v Vect) Mult(s float64) Vect { return Vect{v.X * s, v.Y * s} }

func (v Vect) Neg() Vect { return Vect{-v.X, -v.Y} }

func (v Vect) Dot(o Vect) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vect) Cross(o Vect) float64 { return v.X*o.Y - v.Y*o.X }

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vect) Perp() Vect { return Vect{-v.Y, v.X} }

func (v Vect) LengthSq() float64 { return v.Dot(v) }

func (v Vect) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Rotate rotates v by the spinor rot.
func (v Vect) Rotate(rot Vect) Vect {
	return Vect{v.X*rot.X - v.Y*rot.Y, v.X*rot.Y + v.Y*rot.X}
}

// Unrotate rotates v by the conjugate of the spinor rot, undoing Rotate.
func (v Vect) Unrotate(rot Vect) Vect {
	return Vect{v.X*rot.X + v.Y*rot.Y, v.Y*rot.X - v.X*rot.Y}
}

// Clamp returns v shortened to length limit if it is longer. Infinite or
// NaN limits leave v untouched.
func (v Vect) Clamp(limit float64) Vect {
	if !(v.Dot(v) > limit*limit) {
		return v
	}
	return v.Mult(limit / v.Length())
}

// Near reports whether v and o are within dist of each other.
func (v Vect) Near(o Vect, dist float64) bool {
	return v.Sub(o).LengthSq() < dist*dist
}
