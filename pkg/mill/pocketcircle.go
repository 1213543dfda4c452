package mill

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/grp876/opti-mill/pkg/geom"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

// PocketCircleSpec describes an array of identical circular pockets whose
// centers are equally spaced on a circle, sharing the bolt-circle spacing
// rules.
type PocketCircleSpec struct {
	Center v2.Vec
	Count  int
	Radius float64 // radius of the pattern circle, mm
	// Pocket describes each pocket; its Center is set per pattern point
	// and its Retract is forced on so pockets chain at safe height.
	Pocket CircularPocketSpec
}

func (s PocketCircleSpec) validate(op string, t Tool) error {
	if err := checkCenter(op, s.Center); err != nil {
		return err
	}
	if s.Count < 1 {
		return InvalidCountError{Op: op, Count: s.Count}
	}
	if !geom.Finite(s.Radius) || s.Radius < 0 {
		return ValidationError{Op: op, Field: "radius", Value: s.Radius, Reason: "must not be negative"}
	}
	pocket := s.Pocket
	pocket.Center = s.Center
	return pocket.validate(op, t)
}

// PocketCircle runs a full circular-pocket operation at each of Count
// equally spaced points. Pockets are emitted in angle order, which is the
// order the caller observes in the final program.
func (m *Mill) PocketCircle(spec PocketCircleSpec) (*toolpath.Sequence, error) {
	const op = "pocket-circle"
	if err := spec.validate(op, m.tool); err != nil {
		return nil, err
	}

	b := toolpath.NewBuilder()
	for _, angle := range geom.CircleAngles(spec.Count, m.opts.StartAngle) {
		pocket := spec.Pocket
		pocket.Center = geom.PointOnCircle(spec.Center, spec.Radius, angle)
		pocket.Retract = true
		if err := m.emitCircularPocket(b, op, pocket); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}
