package mill

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/grp876/opti-mill/pkg/toolpath"
)

// MillDrillSpec describes a hole milled with a helix from an undersized
// tool. The hole diameter may be up to twice the tool diameter: the helix
// annulus plus the tool's own width then clears the full circle.
type MillDrillSpec struct {
	Center   v2.Vec
	Diameter float64
	ZTop     float64
	Depth    float64
	ZStep    float64
}

func (s MillDrillSpec) validate(op string, t Tool) error {
	if err := s.helix().validate(op, t); err != nil {
		return err
	}
	if s.Diameter > 2*t.Diameter {
		return ValidationError{Op: op, Field: "diameter", Value: s.Diameter,
			Reason: "mill-drill clears at most twice the tool diameter; use a circular pocket"}
	}
	return nil
}

func (s MillDrillSpec) helix() HelixSpec {
	return HelixSpec{
		Center:   s.Center,
		Diameter: s.Diameter,
		ZTop:     s.ZTop,
		Depth:    s.Depth,
		ZStep:    s.ZStep,
		// No retract: the drill finishes at the bottom and exits
		// through the hole center.
	}
}

// MillDrill bores a hole by helixing to depth, feeding to the hole center
// to clear the core, and retracting straight up through the open hole.
func (m *Mill) MillDrill(spec MillDrillSpec) (*toolpath.Sequence, error) {
	const op = "mill-drill"
	if err := spec.validate(op, m.tool); err != nil {
		return nil, err
	}

	b := toolpath.NewBuilder()
	if err := m.emitHelix(b, op, spec.helix()); err != nil {
		return nil, err
	}
	bottom := spec.ZTop - spec.Depth
	b.LinearTo(at(spec.Center, bottom), m.feed())
	b.RapidTo(at(spec.Center, m.opts.SafeZ))
	return b.Finish()
}
