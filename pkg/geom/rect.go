package geom

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Element is one piece of a planar profile: either a straight segment to
// End, or a circular arc to End about the absolute Center point.
type Element struct {
	End    v2.Vec
	IsArc  bool
	Center v2.Vec // absolute arc center; meaningful only when IsArc
	CW     bool   // arc direction; meaningful only when IsArc
}

// OffsetRounded applies a signed perpendicular offset to a rounded-rectangle
// profile described by half-extents (hx, hy) and corner radius r. A positive
// d grows the profile outward, a negative d shrinks it inward; the corner
// radius follows the offset but never drops below zero. This is how a
// nominal part boundary becomes a tool-center path: offset by +tool radius
// for an outside cut, -tool radius for an inside cut.
func OffsetRounded(hx, hy, r, d float64) (float64, float64, float64) {
	r += d
	if r < 0 {
		r = 0
	}
	return hx + d, hy + d, r
}

// RoundedRect traces the closed rounded-rectangle profile centered at
// center with half-extents (hx, hy) and corner radius r. The trace runs
// counter-clockwise, starting and ending at the bottom of the right edge.
// It returns the start point and the ordered elements of the loop.
//
// r must satisfy 0 ≤ r ≤ min(hx, hy); violations indicate a caller bug and
// are reported as an error rather than clamped.
func RoundedRect(center v2.Vec, hx, hy, r float64) (v2.Vec, []Element, error) {
	if hx <= 0 || hy <= 0 {
		return v2.Vec{}, nil, fmt.Errorf("rounded rect: non-positive half-extents (%g, %g)", hx, hy)
	}
	if r < 0 || r > hx || r > hy {
		return v2.Vec{}, nil, fmt.Errorf("rounded rect: corner radius %g outside [0, min(%g, %g)]", r, hx, hy)
	}

	cx, cy := center.X, center.Y
	start := v2.Vec{X: cx + hx, Y: cy - (hy - r)}

	var elems []Element

	line := func(p v2.Vec) {
		// A zero-length edge (r == hx or r == hy) adds nothing.
		if p.Sub(last(elems, start)).Length() > 1e-12 {
			elems = append(elems, Element{End: p})
		}
	}
	corner := func(end, c v2.Vec) {
		if r > 0 {
			elems = append(elems, Element{End: end, IsArc: true, Center: c})
		}
	}

	// Right edge up, then each corner counter-clockwise.
	line(v2.Vec{X: cx + hx, Y: cy + hy - r})
	corner(v2.Vec{X: cx + hx - r, Y: cy + hy}, v2.Vec{X: cx + hx - r, Y: cy + hy - r})
	line(v2.Vec{X: cx - hx + r, Y: cy + hy})
	corner(v2.Vec{X: cx - hx, Y: cy + hy - r}, v2.Vec{X: cx - hx + r, Y: cy + hy - r})
	line(v2.Vec{X: cx - hx, Y: cy - hy + r})
	corner(v2.Vec{X: cx - hx + r, Y: cy - hy}, v2.Vec{X: cx - hx + r, Y: cy - hy + r})
	line(v2.Vec{X: cx + hx - r, Y: cy - hy})
	corner(start, v2.Vec{X: cx + hx - r, Y: cy - hy + r})

	return start, elems, nil
}

func last(elems []Element, start v2.Vec) v2.Vec {
	if len(elems) == 0 {
		return start
	}
	return elems[len(elems)-1].End
}
