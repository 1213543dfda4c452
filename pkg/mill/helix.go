package mill

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/grp876/opti-mill/pkg/geom"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

// wallClearance is the small radial step off the cut wall taken before a
// retract, in mm, so the flutes do not drag on the finished surface.
const wallClearance = 0.5

// HelixSpec describes a helical cut around a circle: boring a hole when
// the cutter runs inside the nominal diameter, milling a boss when it runs
// outside.
type HelixSpec struct {
	Center   v2.Vec
	Diameter float64 // nominal diameter, mm
	ZTop     float64
	Depth    float64
	ZStep    float64 // z descent per revolution, > 0
	// Outside traces beyond the nominal diameter instead of within it.
	Outside bool
	// Retract lifts clear of the cut when done; leave false to chain.
	Retract bool
}

func (s HelixSpec) validate(op string, t Tool) error {
	if err := checkCenter(op, s.Center); err != nil {
		return err
	}
	if err := checkFinitePositive(op, "diameter", s.Diameter); err != nil {
		return err
	}
	if !s.Outside && s.Diameter <= t.Diameter {
		return ToolTooLargeError{Op: op, Feature: s.Diameter, Tool: t.Diameter}
	}
	if err := checkFinite(op, "z-top", s.ZTop); err != nil {
		return err
	}
	if err := checkFinitePositive(op, "depth", s.Depth); err != nil {
		return err
	}
	return checkFinitePositive(op, "z-step", s.ZStep)
}

func (s HelixSpec) cutRadius(t Tool) float64 {
	if s.Outside {
		return s.Diameter/2 + t.Radius()
	}
	return s.Diameter/2 - t.Radius()
}

// Helix descends in full-circle revolutions of at most ZStep each, with
// the final revolution taking the remainder so the total descent equals
// Depth exactly, then cuts one flat revolution to clean the bottom.
func (m *Mill) Helix(spec HelixSpec) (*toolpath.Sequence, error) {
	const op = "helix"
	if err := spec.validate(op, m.tool); err != nil {
		return nil, err
	}

	b := toolpath.NewBuilder()
	if err := m.emitHelix(b, op, spec); err != nil {
		return nil, err
	}
	return b.Finish()
}

func (m *Mill) emitHelix(b *toolpath.Builder, op string, spec HelixSpec) error {
	radius := spec.cutRadius(m.tool)
	entry := v2.Vec{X: spec.Center.X + radius, Y: spec.Center.Y}
	centerOffset := v2.Vec{X: -radius, Y: 0}

	revs := int(math.Ceil(spec.Depth / spec.ZStep))
	bottom := spec.ZTop - spec.Depth

	b.RapidTo(at(entry, m.opts.SafeZ))
	b.LinearTo(at(entry, spec.ZTop), m.plungeFeed())

	z := spec.ZTop
	for i := 0; i < revs; i++ {
		if i == revs-1 {
			z = bottom
		} else {
			z -= spec.ZStep
		}
		b.ArcTo(at(entry, z), centerOffset, false, m.feed())
	}
	if math.Abs(b.Position().Z-bottom) > 1e-9 {
		return GeometryError{Op: op, Detail: "helix descent does not reach depth", Got: spec.ZTop - b.Position().Z, Want: spec.Depth}
	}

	// Flat revolution to leave a clean floor.
	b.ArcTo(at(entry, bottom), centerOffset, false, m.feed())

	if spec.Retract {
		m.retractFromWall(b, spec.Center, radius, spec.Outside, bottom)
	}
	return nil
}

// retractFromWall steps the cutter off the finished wall and lifts to safe
// height: toward the center for an inside cut, radially outward for an
// outside cut.
func (m *Mill) retractFromWall(b *toolpath.Builder, center v2.Vec, radius float64, outside bool, z float64) {
	relief := wallClearance
	if !outside && relief > radius {
		relief = radius
	}
	dir := -1.0
	if outside {
		dir = 1.0
	}
	off := geom.PointOnCircle(center, radius+dir*relief, 0)
	b.LinearTo(at(off, z), m.feed())
	b.RapidTo(at(off, m.opts.SafeZ))
}
