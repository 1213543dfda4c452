// Package passes partitions a total depth of cut (or a radial clearing
// width) into an ordered schedule of increments that never exceed a
// configured maximum, with an optional finish allowance left for a final
// precision pass.
package passes

import (
	"fmt"
	"math"

	"github.com/grp876/opti-mill/pkg/geom"
)

// DefaultStepFraction is the fraction of tool diameter used as the maximum
// step when the caller asks for an automatic step.
const DefaultStepFraction = 0.5

// Step is a maximum-increment setting: either an explicit value or Auto,
// which derives a conservative step from the tool diameter. The zero value
// is not valid; construct with Fixed or Auto.
type Step struct {
	value float64
	auto  bool
}

// Fixed returns an explicit maximum step.
func Fixed(v float64) Step {
	return Step{value: v}
}

// Auto returns the automatic setting.
func Auto() Step {
	return Step{auto: true}
}

// IsAuto reports whether the step is automatic.
func (s Step) IsAuto() bool {
	return s.auto
}

// For resolves the setting against a tool diameter.
func (s Step) For(toolDiameter float64) float64 {
	if s.auto {
		return DefaultStepFraction * toolDiameter
	}
	return s.value
}

// InvalidDepthError reports an unusable planning request.
type InvalidDepthError struct {
	Total, MaxStep, Finish float64
	Reason                 string
}

func (e InvalidDepthError) Error() string {
	return fmt.Sprintf("invalid pass plan (total %g, max step %g, finish %g): %s",
		e.Total, e.MaxStep, e.Finish, e.Reason)
}

// Schedule is an ordered list of positive increments summing to the
// requested total. When a finish allowance was requested it is the final
// increment.
type Schedule struct {
	increments []float64
	hasFinish  bool
}

// Increments returns the ordered increments, finish pass last.
func (s Schedule) Increments() []float64 {
	return s.increments
}

// Len returns the number of increments.
func (s Schedule) Len() int {
	return len(s.increments)
}

// HasFinish reports whether the last increment is a finish allowance.
func (s Schedule) HasFinish() bool {
	return s.hasFinish
}

// Total returns the sum of all increments.
func (s Schedule) Total() float64 {
	sum := 0.0
	for _, inc := range s.increments {
		sum += inc
	}
	return sum
}

// Cumulative returns the running totals after each increment. For a depth
// schedule these are the z-levels below the top of cut.
func (s Schedule) Cumulative() []float64 {
	out := make([]float64, len(s.increments))
	sum := 0.0
	for i, inc := range s.increments {
		sum += inc
		out[i] = sum
	}
	return out
}

// Plan partitions total - finish into equal increments no larger than
// maxStep, then appends the finish allowance when positive. Increments are
// equal rather than maximal-then-remainder so the first pass is never
// oversized relative to the rest.
func Plan(total, maxStep, finish float64) (Schedule, error) {
	switch {
	case !geom.Finite(total, maxStep, finish):
		return Schedule{}, InvalidDepthError{total, maxStep, finish, "arguments must be finite"}
	case total <= 0:
		return Schedule{}, InvalidDepthError{total, maxStep, finish, "total must be positive"}
	case maxStep <= 0:
		return Schedule{}, InvalidDepthError{total, maxStep, finish, "max step must be positive"}
	case finish < 0:
		return Schedule{}, InvalidDepthError{total, maxStep, finish, "finish allowance must not be negative"}
	case finish >= total:
		return Schedule{}, InvalidDepthError{total, maxStep, finish, "finish allowance must be smaller than total"}
	}

	bulk := total - finish
	n := int(math.Ceil(bulk / maxStep))
	inc := bulk / float64(n)

	increments := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		increments = append(increments, inc)
	}
	if finish > 0 {
		increments = append(increments, finish)
	}
	return Schedule{increments: increments, hasFinish: finish > 0}, nil
}
