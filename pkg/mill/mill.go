// Package mill turns parametric shape descriptions plus a cutting tool
// into ordered toolpath sequences for a small CNC mill. One generator per
// shape family composes the geometry kernel and the pass planner; every
// generator re-validates its inputs and produces either a complete
// sequence or an error and no moves at all.
package mill

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/grp876/opti-mill/pkg/feeds"
	"github.com/grp876/opti-mill/pkg/geom"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

// DefaultSafeZ is the rapid clearance height above the work, in mm.
const DefaultSafeZ = 10.0

// defaultPlungeFactor scales the XY feed down for plunge moves.
const defaultPlungeFactor = 0.5

// UndercutPolicy selects where corner reliefs are cut in a pocket.
type UndercutPolicy int

const (
	// UndercutBottomOnly cuts corner reliefs at the final depth only.
	UndercutBottomOnly UndercutPolicy = iota
	// UndercutEveryLevel cuts corner reliefs at every depth level.
	UndercutEveryLevel
)

// Options carries operation-independent engine settings.
type Options struct {
	// SafeZ is the rapid clearance height in mm; zero selects DefaultSafeZ.
	SafeZ float64
	// StartAngle is the angle of the first bolt-circle point, radians.
	StartAngle float64
	// Undercut selects corner relief placement for rectangular pockets.
	Undercut UndercutPolicy
	// PlungeFeedFactor scales the XY feed for plunges; zero selects 0.5.
	PlungeFeedFactor float64
}

// Mill generates toolpaths for one tool at resolved motion parameters.
// It is immutable and safe for concurrent use.
type Mill struct {
	tool  Tool
	speed feeds.Params
	opts  Options
}

// New builds a generator for the tool and resolved feed/speed parameters.
func New(tool Tool, speed feeds.Params, opts Options) (*Mill, error) {
	if err := tool.validate(); err != nil {
		return nil, err
	}
	if !geom.Finite(speed.RPM) || speed.RPM <= 0 {
		return nil, ValidationError{Op: "speeds", Field: "rpm", Value: speed.RPM, Reason: "must be positive and finite"}
	}
	if !geom.Finite(speed.Feed) || speed.Feed <= 0 {
		return nil, ValidationError{Op: "speeds", Field: "feed", Value: speed.Feed, Reason: "must be positive and finite"}
	}
	if opts.SafeZ == 0 {
		opts.SafeZ = DefaultSafeZ
	}
	if opts.PlungeFeedFactor == 0 {
		opts.PlungeFeedFactor = defaultPlungeFactor
	}
	if opts.SafeZ < 0 || opts.PlungeFeedFactor < 0 || opts.PlungeFeedFactor > 1 {
		return nil, ValidationError{Op: "options", Field: "plunge-feed-factor", Value: opts.PlungeFeedFactor, Reason: "must be in (0, 1] with a non-negative safe height"}
	}
	return &Mill{tool: tool, speed: speed, opts: opts}, nil
}

// Tool returns the tool this generator was built for.
func (m *Mill) Tool() Tool {
	return m.tool
}

// Speed returns the resolved motion parameters.
func (m *Mill) Speed() feeds.Params {
	return m.speed
}

func (m *Mill) feed() float64 {
	return m.speed.Feed
}

func (m *Mill) plungeFeed() float64 {
	return m.speed.Feed * m.opts.PlungeFeedFactor
}

func at(p v2.Vec, z float64) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: z}
}

func xy(p v3.Vec) v2.Vec {
	return v2.Vec{X: p.X, Y: p.Y}
}

// emitProfile feeds along a closed profile at constant z. The tool must
// already be at the profile start point.
func (m *Mill) emitProfile(b *toolpath.Builder, elems []geom.Element, z float64) {
	for _, el := range elems {
		if el.IsArc {
			center := el.Center.Sub(xy(b.Position()))
			b.ArcTo(at(el.End, z), center, el.CW, m.feed())
		} else {
			b.LinearTo(at(el.End, z), m.feed())
		}
	}
}

// fullCircle cuts one complete circle of the given radius around center,
// starting and ending at the current position, optionally descending to z.
func (m *Mill) fullCircle(b *toolpath.Builder, center v2.Vec, z float64, cw bool) {
	pos := b.Position()
	offset := center.Sub(xy(pos))
	b.ArcTo(at(xy(pos), z), offset, cw, m.feed())
}

func checkFinitePositive(op, field string, v float64) error {
	if !geom.Finite(v) || v <= 0 {
		return ValidationError{Op: op, Field: field, Value: v, Reason: "must be positive and finite"}
	}
	return nil
}

func checkFinite(op, field string, v float64) error {
	if !geom.Finite(v) {
		return ValidationError{Op: op, Field: field, Value: v, Reason: "must be finite"}
	}
	return nil
}

func checkCenter(op string, c v2.Vec) error {
	if !geom.Finite2(c) {
		return ValidationError{Op: op, Field: "center", Value: c.X, Reason: "must be finite"}
	}
	return nil
}
