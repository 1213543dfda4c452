package mill

import "github.com/grp876/opti-mill/pkg/geom"

// Tool describes the cutting tool for one operation. It is immutable once
// resolved; generators take it by value.
type Tool struct {
	Diameter float64 // mm, > 0
	Flutes   int     // optional, 0 = unknown
	Material string  // optional cutter material class
}

// Radius returns half the tool diameter.
func (t Tool) Radius() float64 {
	return t.Diameter / 2
}

func (t Tool) validate() error {
	if !geom.Finite(t.Diameter) || t.Diameter <= 0 {
		return ValidationError{Op: "tool", Field: "diameter", Value: t.Diameter, Reason: "must be positive and finite"}
	}
	if t.Flutes < 0 {
		return ValidationError{Op: "tool", Field: "flutes", Value: float64(t.Flutes), Reason: "must not be negative"}
	}
	return nil
}
