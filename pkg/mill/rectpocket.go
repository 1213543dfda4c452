package mill

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/grp876/opti-mill/pkg/geom"
	"github.com/grp876/opti-mill/pkg/passes"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

// RectPocketSpec describes a rectangular cavity cleared to full depth,
// optionally with corner reliefs so a square part can seat in a pocket cut
// with a round tool.
type RectPocketSpec struct {
	Center       v2.Vec
	X, Y         float64 // full extents of the nominal pocket, mm
	CornerRadius float64
	ZTop         float64
	Depth        float64
	Step         passes.Step
	// Undercut cuts mouse-ear reliefs at the interior corners; placement
	// (bottom only or every level) follows the engine option. Reliefs
	// require sharp nominal corners.
	Undercut bool
}

func (s RectPocketSpec) validate(op string, t Tool) error {
	if err := checkCenter(op, s.Center); err != nil {
		return err
	}
	if err := checkFinitePositive(op, "x", s.X); err != nil {
		return err
	}
	if err := checkFinitePositive(op, "y", s.Y); err != nil {
		return err
	}
	if s.X <= t.Diameter || s.Y <= t.Diameter {
		return InvalidDimensionError{Op: op, X: s.X, Y: s.Y, Min: t.Diameter}
	}
	hx, hy := s.X/2, s.Y/2
	if !geom.Finite(s.CornerRadius) || s.CornerRadius < 0 || s.CornerRadius > hx || s.CornerRadius > hy {
		return ValidationError{Op: op, Field: "corner-radius", Value: s.CornerRadius, Reason: "must be within [0, min(x, y)/2]"}
	}
	if s.Undercut && s.CornerRadius != 0 {
		return ValidationError{Op: op, Field: "corner-radius", Value: s.CornerRadius, Reason: "corner reliefs require sharp nominal corners"}
	}
	if err := checkFinite(op, "z-top", s.ZTop); err != nil {
		return err
	}
	if err := checkFinitePositive(op, "depth", s.Depth); err != nil {
		return err
	}
	if !s.Step.IsAuto() && s.Step.For(t.Diameter) <= 0 {
		return ValidationError{Op: op, Field: "step", Value: s.Step.For(t.Diameter), Reason: "must be positive"}
	}
	return nil
}

// rectRing is one concentric clearing pass.
type rectRing struct {
	start v2.Vec
	elems []geom.Element
}

// RectPocket clears a rectangular pocket with concentric rounded-rectangle
// passes from the boundary inward at each depth level, stepping over by the
// tool radius. With Undercut set, mouse-ear reliefs are cut at the interior
// corners according to the configured placement policy.
func (m *Mill) RectPocket(spec RectPocketSpec) (*toolpath.Sequence, error) {
	const op = "rect-pocket"
	if err := spec.validate(op, m.tool); err != nil {
		return nil, err
	}

	depths, err := passes.Plan(spec.Depth, spec.Step.For(m.tool.Diameter), 0)
	if err != nil {
		return nil, err
	}
	if err := checkScheduleTotal(op, depths, spec.Depth); err != nil {
		return nil, err
	}

	rings, strip, err := m.rectRings(spec)
	if err != nil {
		return nil, GeometryError{Op: op, Detail: err.Error()}
	}

	b := toolpath.NewBuilder()
	start := rings[0].start
	b.RapidTo(at(start, m.opts.SafeZ))
	b.LinearTo(at(start, spec.ZTop), m.plungeFeed())

	levels := depths.Cumulative()
	for i, d := range levels {
		z := spec.ZTop - d
		b.LinearTo(at(start, z), m.plungeFeed())
		for _, ring := range rings {
			b.LinearTo(at(ring.start, z), m.feed())
			m.emitProfile(b, ring.elems, z)
		}
		if strip != nil {
			b.LinearTo(at(strip[0], z), m.feed())
			b.LinearTo(at(strip[1], z), m.feed())
		}
		bottomLevel := i == len(levels)-1
		if spec.Undercut && (bottomLevel || m.opts.Undercut == UndercutEveryLevel) {
			m.emitMouseEars(b, spec, z)
		}
		b.LinearTo(at(start, z), m.feed())
	}

	b.RapidTo(at(start, m.opts.SafeZ))
	return b.Finish()
}

// rectRings computes the concentric tool-center passes from the boundary
// inward, plus an optional final straight pass along the long axis when
// the pocket is too narrow for a full innermost ring.
func (m *Mill) rectRings(spec RectPocketSpec) ([]rectRing, []v2.Vec, error) {
	stepover := m.tool.Radius()
	hx, hy, r := geom.OffsetRounded(spec.X/2, spec.Y/2, spec.CornerRadius, -m.tool.Radius())

	var rings []rectRing
	for hx > 1e-9 && hy > 1e-9 {
		start, elems, err := geom.RoundedRect(spec.Center, hx, hy, r)
		if err != nil {
			return nil, nil, err
		}
		rings = append(rings, rectRing{start: start, elems: elems})
		hx, hy, r = geom.OffsetRounded(hx, hy, r, -stepover)
	}

	// Leftover strip along whichever axis did not collapse.
	var strip []v2.Vec
	if hx > 1e-9 {
		strip = []v2.Vec{
			{X: spec.Center.X - hx, Y: spec.Center.Y},
			{X: spec.Center.X + hx, Y: spec.Center.Y},
		}
	} else if hy > 1e-9 {
		strip = []v2.Vec{
			{X: spec.Center.X, Y: spec.Center.Y - hy},
			{X: spec.Center.X, Y: spec.Center.Y + hy},
		}
	}
	return rings, strip, nil
}

// emitMouseEars cuts an out-and-back relief along each corner diagonal,
// just far enough that the swept tool covers the square corner point.
func (m *Mill) emitMouseEars(b *toolpath.Builder, spec RectPocketSpec, z float64) {
	hx, hy := spec.X/2, spec.Y/2
	inset := m.tool.Radius()
	travel := m.tool.Radius() * (math.Sqrt2 - 1)

	for _, sign := range [][2]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}} {
		corner := v2.Vec{
			X: spec.Center.X + sign[0]*(hx-inset),
			Y: spec.Center.Y + sign[1]*(hy-inset),
		}
		ear := v2.Vec{
			X: corner.X + sign[0]*travel/math.Sqrt2,
			Y: corner.Y + sign[1]*travel/math.Sqrt2,
		}
		b.LinearTo(at(corner, z), m.feed())
		b.LinearTo(at(ear, z), m.feed())
		b.LinearTo(at(corner, z), m.feed())
	}
}
