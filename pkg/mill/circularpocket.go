package mill

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/grp876/opti-mill/pkg/geom"
	"github.com/grp876/opti-mill/pkg/passes"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

// CircularPocketSpec describes a round cavity cleared to full depth.
type CircularPocketSpec struct {
	Center   v2.Vec
	Diameter float64 // pocket diameter, must exceed the tool diameter
	ZTop     float64
	Depth    float64
	// Step limits the depth removed per pass; Auto derives it from the
	// tool diameter.
	Step passes.Step
	// Finish is a radial allowance left uncut until a final full-radius
	// pass at the bottom. Zero disables the finish pass.
	Finish float64
	// Retract lifts to safe height when done. Leave false to chain a
	// following operation from the pocket floor.
	Retract bool
}

func (s CircularPocketSpec) validate(op string, t Tool) error {
	if err := checkCenter(op, s.Center); err != nil {
		return err
	}
	if err := checkFinitePositive(op, "diameter", s.Diameter); err != nil {
		return err
	}
	if s.Diameter <= t.Diameter {
		return ToolTooLargeError{Op: op, Feature: s.Diameter, Tool: t.Diameter}
	}
	if err := checkFinite(op, "z-top", s.ZTop); err != nil {
		return err
	}
	if err := checkFinitePositive(op, "depth", s.Depth); err != nil {
		return err
	}
	if !geom.Finite(s.Finish) || s.Finish < 0 {
		return ValidationError{Op: op, Field: "finish", Value: s.Finish, Reason: "must not be negative"}
	}
	if s.Finish >= (s.Diameter-t.Diameter)/2 {
		return ValidationError{Op: op, Field: "finish", Value: s.Finish, Reason: "allowance leaves nothing to clear inside the pocket"}
	}
	if !s.Step.IsAuto() && s.Step.For(t.Diameter) <= 0 {
		return ValidationError{Op: op, Field: "step", Value: s.Step.For(t.Diameter), Reason: "must be positive"}
	}
	return nil
}

// CircularPocket clears a round pocket with concentric passes at each
// depth level, then cuts a full-radius finish pass at the bottom when a
// finish allowance was requested.
func (m *Mill) CircularPocket(spec CircularPocketSpec) (*toolpath.Sequence, error) {
	const op = "circular-pocket"
	if err := spec.validate(op, m.tool); err != nil {
		return nil, err
	}

	b := toolpath.NewBuilder()
	if err := m.emitCircularPocket(b, op, spec); err != nil {
		return nil, err
	}
	return b.Finish()
}

func (m *Mill) emitCircularPocket(b *toolpath.Builder, op string, spec CircularPocketSpec) error {
	depths, err := passes.Plan(spec.Depth, spec.Step.For(m.tool.Diameter), 0)
	if err != nil {
		return err
	}
	if err := checkScheduleTotal(op, depths, spec.Depth); err != nil {
		return err
	}

	finishRadius := spec.Diameter/2 - m.tool.Radius()
	clearRadius := finishRadius - spec.Finish

	// Radial schedule for the concentric clearing rings. A pocket barely
	// wider than the tool needs no rings at all.
	var radii []float64
	if clearRadius > 1e-9 {
		rings, err := passes.Plan(clearRadius, m.tool.Radius(), 0)
		if err != nil {
			return err
		}
		radii = rings.Cumulative()
	}

	b.RapidTo(at(spec.Center, m.opts.SafeZ))
	b.LinearTo(at(spec.Center, spec.ZTop), m.plungeFeed())

	for _, d := range depths.Cumulative() {
		z := spec.ZTop - d
		b.LinearTo(at(spec.Center, z), m.plungeFeed())
		for _, r := range radii {
			b.LinearTo(at(v2.Vec{X: spec.Center.X + r, Y: spec.Center.Y}, z), m.feed())
			m.fullCircle(b, spec.Center, z, false)
		}
		b.LinearTo(at(spec.Center, z), m.feed())
	}

	if spec.Finish > 0 {
		bottom := spec.ZTop - spec.Depth
		b.LinearTo(at(v2.Vec{X: spec.Center.X + finishRadius, Y: spec.Center.Y}, bottom), m.feed())
		m.fullCircle(b, spec.Center, bottom, false)
		b.LinearTo(at(spec.Center, bottom), m.feed())
	}

	if spec.Retract {
		b.RapidTo(at(spec.Center, m.opts.SafeZ))
	}
	return nil
}

// checkScheduleTotal guards the planner invariant that increments sum to
// the requested total. A violation is an engine bug, not a user error.
func checkScheduleTotal(op string, s passes.Schedule, total float64) error {
	if math.Abs(s.Total()-total) > 1e-9 {
		return GeometryError{Op: op, Detail: "pass schedule does not sum to total", Got: s.Total(), Want: total}
	}
	return nil
}
