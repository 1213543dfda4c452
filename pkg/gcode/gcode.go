// Package gcode serializes toolpath sequences into RS-274 style machine
// control text. Whether arcs are emitted natively (G2/G3) or flattened to
// line segments is a property of the target dialect, resolved once per
// renderer rather than per call.
package gcode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/grp876/opti-mill/pkg/geom"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

// Dialect describes the capabilities of a target controller.
type Dialect struct {
	Name         string
	SupportsArcs bool
	Precision    int // coordinate decimal places
}

// Built-in dialects.
var (
	LinuxCNC = Dialect{Name: "linuxcnc", SupportsArcs: true, Precision: 4}
	Grbl     = Dialect{Name: "grbl", SupportsArcs: true, Precision: 3}
	// Polyline is for controllers without G2/G3; arcs are flattened to
	// chords within the renderer's tolerance.
	Polyline = Dialect{Name: "polyline", SupportsArcs: false, Precision: 4}
)

// DialectByName returns a built-in dialect.
func DialectByName(name string) (Dialect, bool) {
	for _, d := range []Dialect{LinuxCNC, Grbl, Polyline} {
		if d.Name == name {
			return d, true
		}
	}
	return Dialect{}, false
}

// Renderer writes sequences for one dialect. It is stateless between
// sequences apart from the dialect itself.
type Renderer struct {
	dialect  Dialect
	chordTol float64
}

// NewRenderer returns a renderer for the dialect with the default chord
// tolerance for flattened arcs.
func NewRenderer(d Dialect) *Renderer {
	return &Renderer{dialect: d, chordTol: geom.DefaultChordTolerance}
}

// SetChordTolerance overrides the arc flattening tolerance, in mm.
func (r *Renderer) SetChordTolerance(tol float64) {
	if tol > 0 {
		r.chordTol = tol
	}
}

// Program renders a complete program: preamble, every sequence in caller
// order, and the stop footer.
func (r *Renderer) Program(rpm float64, seqs ...*toolpath.Sequence) (string, error) {
	var out strings.Builder
	out.WriteString("G21\nG90\nG94\n")
	fmt.Fprintf(&out, "S%s M3\n", num(rpm, r.dialect.Precision))
	for _, seq := range seqs {
		text, err := r.Render(seq)
		if err != nil {
			return "", err
		}
		out.WriteString(text)
	}
	out.WriteString("M5\nM2\n")
	return out.String(), nil
}

// Render serializes one sequence.
func (r *Renderer) Render(seq *toolpath.Sequence) (string, error) {
	var out strings.Builder
	var pos v3.Vec
	placed := false

	for i, mv := range seq.Moves() {
		switch mv.Kind {
		case toolpath.Rapid:
			fmt.Fprintf(&out, "G0 %s\n", r.coords(mv.To))
			placed = true
		case toolpath.Linear:
			fmt.Fprintf(&out, "G1 %s F%s\n", r.coords(mv.To), num(mv.Feed, r.dialect.Precision))
			placed = true
		case toolpath.ArcCW, toolpath.ArcCCW:
			if !placed {
				return "", fmt.Errorf("move %d: arc before any positioning move", i)
			}
			if err := r.arc(&out, pos, mv); err != nil {
				return "", fmt.Errorf("move %d: %w", i, err)
			}
		default:
			return "", fmt.Errorf("move %d: unknown kind %v", i, mv.Kind)
		}
		pos = mv.To
	}
	return out.String(), nil
}

func (r *Renderer) arc(out *strings.Builder, from v3.Vec, mv toolpath.Move) error {
	center := v2.Vec{X: from.X + mv.Center.X, Y: from.Y + mv.Center.Y}
	radius := mv.Center.Length()
	endRadius := v2.Vec{X: mv.To.X - center.X, Y: mv.To.Y - center.Y}.Length()
	if radius <= 0 {
		return fmt.Errorf("arc with zero radius")
	}
	if math.Abs(radius-endRadius) > 1e-6 {
		return fmt.Errorf("arc endpoint off the arc: start radius %g, end radius %g", radius, endRadius)
	}

	if r.dialect.SupportsArcs {
		word := "G3"
		if mv.Kind == toolpath.ArcCW {
			word = "G2"
		}
		p := r.dialect.Precision
		fmt.Fprintf(out, "%s %s I%s J%s F%s\n",
			word, r.coords(mv.To), num(mv.Center.X, p), num(mv.Center.Y, p), num(mv.Feed, p))
		return nil
	}

	start := math.Atan2(from.Y-center.Y, from.X-center.X)
	end := math.Atan2(mv.To.Y-center.Y, mv.To.X-center.X)
	sweep := geom.ArcSweep(start, end, mv.Kind == toolpath.ArcCW)
	points := geom.FlattenArc(center, radius, start, sweep, r.chordTol)
	for i, p := range points {
		// Z advances linearly over the sweep, so flattened helixes
		// still land exactly on the arc's final depth.
		z := from.Z + (mv.To.Z-from.Z)*float64(i+1)/float64(len(points))
		fmt.Fprintf(out, "G1 %s F%s\n", r.coords(v3.Vec{X: p.X, Y: p.Y, Z: z}), num(mv.Feed, r.dialect.Precision))
	}
	return nil
}

func (r *Renderer) coords(p v3.Vec) string {
	prec := r.dialect.Precision
	return fmt.Sprintf("X%s Y%s Z%s", num(p.X, prec), num(p.Y, prec), num(p.Z, prec))
}

// num formats a coordinate or feed word, trimming trailing zeroes.
func num(f float64, precision int) string {
	x := strconv.FormatFloat(f, 'f', precision, 64)
	if strings.ContainsRune(x, '.') {
		x = strings.TrimRight(x, "0")
		x = strings.TrimSuffix(x, ".")
	}
	if x == "-0" {
		x = "0"
	}
	return x
}
