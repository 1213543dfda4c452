// Package tapdrill looks up tap and clearance drill sizes for a thread
// designation. This is caller-side reference data; the toolpath engine
// never consults it.
package tapdrill

import (
	"encoding/json"
	"fmt"
	"io"
)

// Thread selects the tap drill thread engagement percentage.
type Thread int

const (
	// Thread75 is 75% engagement, for aluminum, brass, and plastics.
	Thread75 Thread = iota
	// Thread50 is 50% engagement, for steel, stainless, and iron.
	Thread50
)

// Fit selects the clearance drill fit class.
type Fit int

const (
	CloseFit Fit = iota
	FreeFit
)

// DrillSize is a drill designation with its decimal equivalent in inches.
type DrillSize struct {
	Drill   string  `json:"drill"`
	Decimal float64 `json:"dec_eq"`
}

// Entry holds the chart row for one thread designation.
type Entry struct {
	TPI       float64   `json:"tpi"`
	Thread75  DrillSize `json:"thread_75"`
	Thread50  DrillSize `json:"thread_50"`
	Clearance struct {
		CloseFit DrillSize `json:"close_fit"`
		FreeFit  DrillSize `json:"free_fit"`
	} `json:"clearance"`
}

// Chart maps thread designations ("1/4-20", "#6-32", ...) to their rows.
type Chart map[string]Entry

// Load reads a chart from JSON.
func Load(r io.Reader) (Chart, error) {
	var c Chart
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("load tap drill chart: %w", err)
	}
	return c, nil
}

// Sizes lists the thread designations in the chart.
func (c Chart) Sizes() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	return out
}

// Tap returns the tap drill for a designation and thread engagement.
func (c Chart) Tap(designation string, t Thread) (DrillSize, error) {
	e, ok := c[designation]
	if !ok {
		return DrillSize{}, fmt.Errorf("thread %q not in tap drill chart", designation)
	}
	if t == Thread50 {
		return e.Thread50, nil
	}
	return e.Thread75, nil
}

// Clearance returns the clearance drill for a designation and fit.
func (c Chart) Clearance(designation string, f Fit) (DrillSize, error) {
	e, ok := c[designation]
	if !ok {
		return DrillSize{}, fmt.Errorf("thread %q not in tap drill chart", designation)
	}
	if f == FreeFit {
		return e.Clearance.FreeFit, nil
	}
	return e.Clearance.CloseFit, nil
}
