// Package geom provides the primitive planar geometry used by the toolpath
// generators: points on circles, arc flattening, and rounded-rectangle
// profiles with tool-radius offsetting. All coordinates are millimeters.
package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultChordTolerance is the maximum chord error, in mm, when an arc is
// approximated by straight segments for renderers without native arc support.
const DefaultChordTolerance = 0.01

// Finite reports whether every value is a real number (no NaN, no Inf).
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Finite2 reports whether a 2D point has finite coordinates.
func Finite2(p v2.Vec) bool {
	return Finite(p.X, p.Y)
}

// Finite3 reports whether a 3D point has finite coordinates.
func Finite3(p v3.Vec) bool {
	return Finite(p.X, p.Y, p.Z)
}

// PointOnCircle returns the point at the given angle (radians, measured
// counter-clockwise from the positive X axis) on a circle.
func PointOnCircle(center v2.Vec, radius, angle float64) v2.Vec {
	return v2.Vec{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// CircleAngles returns n angles spaced 2π/n apart starting at start.
// It returns nil when n < 1.
func CircleAngles(n int, start float64) []float64 {
	if n < 1 {
		return nil
	}
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = start + 2*math.Pi*float64(i)/float64(n)
	}
	return angles
}
