package mill

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/grp876/opti-mill/pkg/geom"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

// BoltCircleSpec describes a pattern of drilled holes equally spaced on a
// circle. Holes are through-drill style: one plunge to full depth each.
type BoltCircleSpec struct {
	Center v2.Vec
	Count  int
	Radius float64 // bolt circle radius, mm
	ZTop   float64 // top of material
	Depth  float64 // total depth below ZTop, > 0
}

func (s BoltCircleSpec) validate(op string) error {
	if err := checkCenter(op, s.Center); err != nil {
		return err
	}
	if s.Count < 1 {
		return InvalidCountError{Op: op, Count: s.Count}
	}
	if !geom.Finite(s.Radius) || s.Radius < 0 {
		return ValidationError{Op: op, Field: "radius", Value: s.Radius, Reason: "must not be negative"}
	}
	if err := checkFinite(op, "z-top", s.ZTop); err != nil {
		return err
	}
	return checkFinitePositive(op, "depth", s.Depth)
}

// BoltCircle drills Count holes spaced 2π/Count apart starting at the
// configured start angle. Each hole is a rapid over the point, a single
// plunge to depth, and a retract to safe height.
func (m *Mill) BoltCircle(spec BoltCircleSpec) (*toolpath.Sequence, error) {
	const op = "bolt-circle"
	if err := spec.validate(op); err != nil {
		return nil, err
	}

	b := toolpath.NewBuilder()
	m.emitBoltCircle(b, spec)
	return b.Finish()
}

func (m *Mill) emitBoltCircle(b *toolpath.Builder, spec BoltCircleSpec) {
	bottom := spec.ZTop - spec.Depth
	for _, angle := range geom.CircleAngles(spec.Count, m.opts.StartAngle) {
		p := geom.PointOnCircle(spec.Center, spec.Radius, angle)
		b.RapidTo(at(p, m.opts.SafeZ))
		b.LinearTo(at(p, bottom), m.plungeFeed())
		b.RapidTo(at(p, m.opts.SafeZ))
	}
}
