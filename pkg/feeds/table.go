// Package feeds resolves spindle speed and feed rate for a tool diameter
// from a calibration table of measured samples. Resolution interpolates
// between bracketing samples and refuses to extrapolate: a diameter outside
// the calibrated range is a hard failure, never a clamp, because
// extrapolated speeds are unsafe.
package feeds

import (
	"encoding/json"
	"fmt"
	"io"

	"gonum.org/v1/gonum/interp"

	"github.com/grp876/opti-mill/pkg/geom"
)

// Entry is one calibration sample.
type Entry struct {
	Diameter float64 `json:"diameter"` // mm
	RPM      float64 `json:"rpm"`
	Feed     float64 `json:"feed"` // mm/min
}

// InvalidTableError reports a malformed calibration table at load time.
type InvalidTableError struct {
	Index  int // offending entry, -1 when the table as a whole is bad
	Reason string
}

func (e InvalidTableError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid calibration table: %s", e.Reason)
	}
	return fmt.Sprintf("invalid calibration table entry %d: %s", e.Index, e.Reason)
}

// OutOfRangeError reports a resolve request outside the calibrated range.
type OutOfRangeError struct {
	Diameter float64
	Min, Max float64
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("tool diameter %g mm outside calibrated range [%g, %g] mm; no speed is extrapolated",
		e.Diameter, e.Min, e.Max)
}

// Params are the resolved motion parameters for one tool diameter.
type Params struct {
	RPM  float64
	Feed float64 // mm/min
	// Capped is set when the interpolated RPM exceeded the machine's
	// spindle limit and was reduced to it.
	Capped bool
}

// Table is an immutable diameter-indexed calibration table. It is safe for
// concurrent use once constructed.
type Table struct {
	entries  []Entry
	rpm      interp.PiecewiseLinear
	feed     interp.PiecewiseLinear
	min, max float64
	maxRPM   float64
}

// NewTable validates the samples and fits the interpolation curves.
// Diameters must be strictly increasing and every rpm and feed positive.
// maxRPM caps resolved spindle speeds at the machine limit; zero means
// uncapped.
func NewTable(entries []Entry, maxRPM float64) (*Table, error) {
	if len(entries) < 2 {
		return nil, InvalidTableError{Index: -1, Reason: fmt.Sprintf("need at least 2 samples, got %d", len(entries))}
	}
	if maxRPM < 0 {
		return nil, InvalidTableError{Index: -1, Reason: fmt.Sprintf("negative spindle limit %g", maxRPM)}
	}

	diameters := make([]float64, len(entries))
	rpms := make([]float64, len(entries))
	rates := make([]float64, len(entries))
	for i, e := range entries {
		if e.Diameter <= 0 {
			return nil, InvalidTableError{Index: i, Reason: fmt.Sprintf("non-positive diameter %g", e.Diameter)}
		}
		if i > 0 && e.Diameter <= entries[i-1].Diameter {
			return nil, InvalidTableError{Index: i, Reason: fmt.Sprintf("diameter %g not strictly increasing after %g", e.Diameter, entries[i-1].Diameter)}
		}
		if e.RPM <= 0 {
			return nil, InvalidTableError{Index: i, Reason: fmt.Sprintf("non-positive rpm %g", e.RPM)}
		}
		if e.Feed <= 0 {
			return nil, InvalidTableError{Index: i, Reason: fmt.Sprintf("non-positive feed %g", e.Feed)}
		}
		diameters[i] = e.Diameter
		rpms[i] = e.RPM
		rates[i] = e.Feed
	}

	t := &Table{
		entries: append([]Entry(nil), entries...),
		min:     diameters[0],
		max:     diameters[len(diameters)-1],
		maxRPM:  maxRPM,
	}
	if err := t.rpm.Fit(diameters, rpms); err != nil {
		return nil, InvalidTableError{Index: -1, Reason: err.Error()}
	}
	if err := t.feed.Fit(diameters, rates); err != nil {
		return nil, InvalidTableError{Index: -1, Reason: err.Error()}
	}
	return t, nil
}

// LoadTable reads a JSON array of calibration samples.
func LoadTable(r io.Reader, maxRPM float64) (*Table, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, InvalidTableError{Index: -1, Reason: err.Error()}
	}
	return NewTable(entries, maxRPM)
}

// Range returns the calibrated diameter range.
func (t *Table) Range() (min, max float64) {
	return t.min, t.max
}

// Entries returns a copy of the calibration samples.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Resolve interpolates spindle speed and feed rate for the diameter.
// Diameters outside the calibrated range, NaN and Inf included, fail with
// OutOfRangeError.
func (t *Table) Resolve(diameter float64) (Params, error) {
	if !geom.Finite(diameter) || diameter < t.min || diameter > t.max {
		return Params{}, OutOfRangeError{Diameter: diameter, Min: t.min, Max: t.max}
	}
	p := Params{
		RPM:  t.rpm.Predict(diameter),
		Feed: t.feed.Predict(diameter),
	}
	if t.maxRPM > 0 && p.RPM > t.maxRPM {
		p.RPM = t.maxRPM
		p.Capped = true
	}
	return p, nil
}
