package mill

import "fmt"

// Error kinds mirror the failure taxonomy of the engine: every generator
// validates its full parameter set before emitting a single move, so any
// error below means zero moves were produced for that operation.

// ValidationError reports a malformed shape parameter.
type ValidationError struct {
	Op     string  // operation kind, e.g. "circular-pocket"
	Field  string  // offending parameter
	Value  float64 // value supplied
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s = %g: %s", e.Op, e.Field, e.Value, e.Reason)
}

// ToolTooLargeError reports a tool that cannot fit the requested feature.
type ToolTooLargeError struct {
	Op      string
	Feature float64 // feature dimension, mm
	Tool    float64 // tool diameter, mm
}

func (e ToolTooLargeError) Error() string {
	return fmt.Sprintf("%s: tool diameter %g mm too large for feature size %g mm", e.Op, e.Tool, e.Feature)
}

// InvalidCountError reports a point count below one.
type InvalidCountError struct {
	Op    string
	Count int
}

func (e InvalidCountError) Error() string {
	return fmt.Sprintf("%s: count %d, need at least 1", e.Op, e.Count)
}

// InvalidDimensionError reports extents that collapse under the tool
// radius offset.
type InvalidDimensionError struct {
	Op   string
	X, Y float64 // requested extents, mm
	Min  float64 // smallest usable extent for this tool, mm
}

func (e InvalidDimensionError) Error() string {
	return fmt.Sprintf("%s: extents %g x %g mm collapse under tool offset; both must exceed %g mm", e.Op, e.X, e.Y, e.Min)
}

// GeometryError reports an internal invariant violation. It indicates an
// engine bug and is never silently corrected.
type GeometryError struct {
	Op     string
	Detail string
	Got    float64
	Want   float64
}

func (e GeometryError) Error() string {
	if e.Got == 0 && e.Want == 0 {
		return fmt.Sprintf("%s: internal geometry error: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s: internal geometry error: %s (got %g, want %g)", e.Op, e.Detail, e.Got, e.Want)
}
