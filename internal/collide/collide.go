// Package collide is a deliberately naive stand-in for a real collision
// pipeline: brute-force circle overlap plus an infinite floor. It exists to
// feed contact membership facts into a space so islands can form; it does
// not resolve penetration.
package collide

import (
	"github.com/san-kum/planar/internal/phys"
	"github.com/san-kum/planar/internal/vect"
)

// Detector reports overlapping shape pairs to the space each step.
type Detector struct {
	floor *phys.Shape
}

// New returns a detector without a floor.
func New() *Detector {
	return &Detector{}
}

// WithFloor attaches a floor at height y to the space's static body and
// returns the detector. Bodies whose bounding circle dips below y are
// reported as touching the floor shape.
func (d *Detector) WithFloor(s *phys.Space, y float64) (*Detector, error) {
	floor := phys.NewCircle(s.StaticBody(), 0, vect.Vect{Y: y})
	if err := s.AddShape(floor); err != nil {
		return nil, err
	}
	d.floor = floor
	return d, nil
}

// Floor returns the floor shape, or nil.
func (d *Detector) Floor() *phys.Shape { return d.floor }

// Detect scans every registered shape pair and reports overlaps via
// Space.Touch. O(n²); fine for the scene sizes the lab runs.
func (d *Detector) Detect(s *phys.Space) error {
	shapes := s.Shapes()
	for i, sa := range shapes {
		if sa == d.floor {
			continue
		}
		if d.floor != nil {
			if sa.WorldCenter().Y-sa.Radius <= d.floor.Offset.Y {
				if _, err := s.Touch(sa, d.floor); err != nil {
					return err
				}
			}
		}
		for _, sb := range shapes[i+1:] {
			if sb == d.floor || sa.Body() == sb.Body() {
				continue
			}
			if sa.WorldCenter().Near(sb.WorldCenter(), sa.Radius+sb.Radius) {
				if _, err := s.Touch(sa, sb); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
