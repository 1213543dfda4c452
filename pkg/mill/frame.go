package mill

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/grp876/opti-mill/pkg/geom"
	"github.com/grp876/opti-mill/pkg/passes"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

// Side selects which side of the nominal boundary the tool runs on.
type Side int

const (
	// Inside keeps the cut within the boundary (cavities, frames cut
	// into the part).
	Inside Side = iota
	// Outside keeps the cut beyond the boundary (profiling a part free).
	Outside
	// OnPath runs the tool center on the boundary itself.
	OnPath
)

// FrameSpec describes a rectangular boundary traced at depth, optionally
// with rounded corners, without clearing the interior.
type FrameSpec struct {
	Center       v2.Vec
	X, Y         float64 // full extents of the nominal rectangle, mm
	CornerRadius float64 // 0 for sharp corners
	ZTop         float64
	Depth        float64
	Step         passes.Step
	Side         Side
}

func (s FrameSpec) validate(op string, t Tool) error {
	if err := checkCenter(op, s.Center); err != nil {
		return err
	}
	if err := checkFinitePositive(op, "x", s.X); err != nil {
		return err
	}
	if err := checkFinitePositive(op, "y", s.Y); err != nil {
		return err
	}
	hx, hy := s.X/2, s.Y/2
	if !geom.Finite(s.CornerRadius) || s.CornerRadius < 0 || s.CornerRadius > hx || s.CornerRadius > hy {
		return ValidationError{Op: op, Field: "corner-radius", Value: s.CornerRadius, Reason: "must be within [0, min(x, y)/2]"}
	}
	if err := checkFinite(op, "z-top", s.ZTop); err != nil {
		return err
	}
	if err := checkFinitePositive(op, "depth", s.Depth); err != nil {
		return err
	}
	if s.Side == Inside && (s.X <= t.Diameter || s.Y <= t.Diameter) {
		return InvalidDimensionError{Op: op, X: s.X, Y: s.Y, Min: t.Diameter}
	}
	if !s.Step.IsAuto() && s.Step.For(t.Diameter) <= 0 {
		return ValidationError{Op: op, Field: "step", Value: s.Step.For(t.Diameter), Reason: "must be positive"}
	}
	return nil
}

func (s FrameSpec) offset(t Tool) float64 {
	switch s.Side {
	case Outside:
		return t.Radius()
	case Inside:
		return -t.Radius()
	default:
		return 0
	}
}

// Frame traces the rectangular boundary at each depth level, offset to the
// requested side of the nominal profile by the tool radius.
func (m *Mill) Frame(spec FrameSpec) (*toolpath.Sequence, error) {
	const op = "frame"
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

	hx, hy, r := geom.OffsetRounded(spec.X/2, spec.Y/2, spec.CornerRadius, spec.offset(m.tool))
	start, elems, err := geom.RoundedRect(spec.Center, hx, hy, r)
	if err != nil {
		return nil, GeometryError{Op: op, Detail: err.Error()}
	}

	b := toolpath.NewBuilder()
	b.RapidTo(at(start, m.opts.SafeZ))
	b.LinearTo(at(start, spec.ZTop), m.plungeFeed())
	for _, d := range depths.Cumulative() {
		z := spec.ZTop - d
		b.LinearTo(at(start, z), m.plungeFeed())
		m.emitProfile(b, elems, z)
	}
	b.RapidTo(at(start, m.opts.SafeZ))
	return b.Finish()
}
