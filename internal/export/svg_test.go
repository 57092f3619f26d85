package export

import (
	"strings"
	"testing"

	"github.com/san-kum/planar/internal/vect"
)

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{0, 1, 2}, []float64{4, 1, 0}, 200, 100, "#00ff00")
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke color not applied")
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("unterminated document")
	}
}

func TestSeriesToSVGDegenerate(t *testing.T) {
	if svg := SeriesToSVG([]float64{0}, []float64{1}, 200, 100, "#fff"); svg != "" {
		t.Error("single point should produce no output")
	}
	if svg := SeriesToSVG([]float64{0, 1}, []float64{1}, 200, 100, "#fff"); svg != "" {
		t.Error("mismatched lengths should produce no output")
	}
}

func TestPathToSVGFlatLine(t *testing.T) {
	// Zero vertical range must not divide by zero.
	pts := []vect.Vect{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}
	svg := PathToSVG(pts, 100, 50, "#fff")
	if svg == "" || !strings.Contains(svg, "L") {
		t.Error("flat path should still render")
	}
}
