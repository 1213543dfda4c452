// Package toolpath defines the shape-agnostic output of the engine: an
// ordered sequence of typed motion commands (rapid, linear, arc) plus the
// builder that accumulates them. A Sequence is owned by the generator that
// builds it until handed to the caller, and a failed generation hands over
// nothing at all.
package toolpath

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/grp876/opti-mill/pkg/geom"
)

// Kind discriminates the motion command variants.
type Kind int

const (
	Rapid Kind = iota
	Linear
	ArcCW
	ArcCCW
)

func (k Kind) String() string {
	switch k {
	case Rapid:
		return "rapid"
	case Linear:
		return "linear"
	case ArcCW:
		return "arc-cw"
	case ArcCCW:
		return "arc-ccw"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Move is a single motion command. For arcs, Center is the offset from the
// move's start point to the arc center in the XY plane (the I/J words of
// G2/G3), and an arc whose target XY equals its start XY is a full circle;
// the Z coordinate is interpolated linearly over the sweep, which is how a
// helix is expressed. Feed is mm/min and zero on rapids. Moves are
// immutable once emitted.
type Move struct {
	Kind   Kind
	To     v3.Vec
	Center v2.Vec
	Feed   float64
}

// IsArc reports whether the move is a clockwise or counter-clockwise arc.
func (m Move) IsArc() bool {
	return m.Kind == ArcCW || m.Kind == ArcCCW
}

// Sequence is the ordered, append-only list of moves produced by one
// generator invocation.
type Sequence struct {
	moves []Move
}

// Moves returns the ordered moves. Callers must not modify the slice.
func (s *Sequence) Moves() []Move {
	return s.moves
}

// Len returns the number of moves.
func (s *Sequence) Len() int {
	return len(s.moves)
}

// End returns the final position of the sequence.
func (s *Sequence) End() (v3.Vec, bool) {
	if len(s.moves) == 0 {
		return v3.Vec{}, false
	}
	return s.moves[len(s.moves)-1].To, true
}

// ErrNonFinite is reported by Builder.Finish when any appended coordinate
// was NaN or infinite. This is an engine invariant violation: no generator
// may emit such a move, and no partial sequence is returned.
var ErrNonFinite = fmt.Errorf("non-finite coordinate in move")

// Builder accumulates an owned Sequence. It records the first invalid
// append and poisons the final result instead of emitting a partial path.
type Builder struct {
	moves []Move
	pos   v3.Vec
	begun bool
	err   error
}

// NewBuilder returns an empty builder. The first move appended must
// establish position with a rapid.
func NewBuilder() *Builder {
	return &Builder{}
}

// Position returns the target of the last appended move.
func (b *Builder) Position() v3.Vec {
	return b.pos
}

func (b *Builder) append(m Move) {
	if b.err != nil {
		return
	}
	if !geom.Finite3(m.To) || !geom.Finite2(m.Center) || math.IsNaN(m.Feed) || math.IsInf(m.Feed, 0) {
		b.err = fmt.Errorf("%w: %s to (%g, %g, %g)", ErrNonFinite, m.Kind, m.To.X, m.To.Y, m.To.Z)
		return
	}
	b.moves = append(b.moves, m)
	b.pos = m.To
	b.begun = true
}

// RapidTo appends a rapid traverse to p.
func (b *Builder) RapidTo(p v3.Vec) {
	b.append(Move{Kind: Rapid, To: p})
}

// LinearTo appends a straight cut to p at the given feed.
func (b *Builder) LinearTo(p v3.Vec, feed float64) {
	b.append(Move{Kind: Linear, To: p, Feed: feed})
}

// ArcTo appends an arc to p about the center offset from the current
// position. Target XY equal to the current XY means a full circle.
func (b *Builder) ArcTo(p v3.Vec, center v2.Vec, cw bool, feed float64) {
	kind := ArcCCW
	if cw {
		kind = ArcCW
	}
	if b.err == nil && !b.begun {
		b.err = fmt.Errorf("arc move before position was established")
		return
	}
	b.append(Move{Kind: kind, To: p, Center: center, Feed: feed})
}

// Finish hands the accumulated sequence to the caller, or the recorded
// error and no sequence at all.
func (b *Builder) Finish() (*Sequence, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Sequence{moves: b.moves}, nil
}
