package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// FlattenArc approximates a circular arc with straight segments so that the
// chord error never exceeds tol. The arc starts at angle start (radians) and
// sweeps by sweep (positive counter-clockwise, negative clockwise). The
// returned points exclude the start point and end exactly on the arc's
// endpoint, so they can be appended directly after the current position.
//
// A non-positive tol falls back to DefaultChordTolerance. A zero sweep or
// zero radius yields a single point.
func FlattenArc(center v2.Vec, radius, start, sweep, tol float64) []v2.Vec {
	if tol <= 0 {
		tol = DefaultChordTolerance
	}
	if radius <= 0 || sweep == 0 {
		return []v2.Vec{PointOnCircle(center, radius, start+sweep)}
	}

	// Chord error for a segment spanning angle a is r*(1 - cos(a/2)).
	// Invert for the largest per-segment angle that stays within tol.
	maxAngle := math.Pi / 2
	if tol < radius {
		maxAngle = 2 * math.Acos(1-tol/radius)
	}

	n := int(math.Ceil(math.Abs(sweep) / maxAngle))
	if n < 1 {
		n = 1
	}

	points := make([]v2.Vec, 0, n)
	for i := 1; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		points = append(points, PointOnCircle(center, radius, a))
	}
	return points
}

// ArcSweep computes the signed sweep from the start angle to the end angle
// in the given direction. Clockwise sweeps are negative, counter-clockwise
// positive, and coincident angles are treated as a full circle, matching
// the G2/G3 convention for arcs whose endpoint equals their start point.
func ArcSweep(start, end float64, cw bool) float64 {
	sweep := math.Mod(end-start, 2*math.Pi)
	if cw {
		if sweep >= 0 {
			sweep -= 2 * math.Pi
		}
	} else {
		if sweep <= 0 {
			sweep += 2 * math.Pi
		}
	}
	return sweep
}
