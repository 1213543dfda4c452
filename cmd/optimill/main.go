// Command optimill generates G-code programs for common milling operations
// from a JSON operation list, a machine description, and a feed/speed
// calibration table.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/grp876/opti-mill/internal/logger"
	"github.com/grp876/opti-mill/pkg/feeds"
	"github.com/grp876/opti-mill/pkg/gcode"
	"github.com/grp876/opti-mill/pkg/mill"
	"github.com/grp876/opti-mill/pkg/passes"
	"github.com/grp876/opti-mill/pkg/tapdrill"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

type machineConfig struct {
	Name   string  `json:"name"`
	MaxRPM float64 `json:"max_rpm"`
	SafeZ  float64 `json:"safe_z"`
}

type toolConfig struct {
	Type        string  `json:"type,omitempty"`
	Description string  `json:"description,omitempty"`
	Diameter    float64 `json:"diameter,omitempty"`
	Flutes      int     `json:"flutes,omitempty"`
	Material    string  `json:"material,omitempty"`
}

// opConfig is the union of all operation parameters; Kind selects which
// ones apply.
type opConfig struct {
	Kind         string     `json:"kind"`
	Center       [2]float64 `json:"center"`
	Count        int        `json:"count,omitempty"`
	Radius       float64    `json:"radius,omitempty"`
	Diameter     float64    `json:"diameter,omitempty"`
	X            float64    `json:"x,omitempty"`
	Y            float64    `json:"y,omitempty"`
	CornerRadius float64    `json:"corner_radius,omitempty"`
	ZTop         float64    `json:"z_top,omitempty"`
	Depth        float64    `json:"depth"`
	Step         *float64   `json:"step,omitempty"` // null or absent means auto
	ZStep        float64    `json:"z_step,omitempty"`
	Finish       float64    `json:"finish,omitempty"`
	Side         string     `json:"side,omitempty"` // inside, outside, on-path
	Outside      bool       `json:"outside,omitempty"`
	Undercut     bool       `json:"undercut,omitempty"`
	Retract      bool       `json:"retract,omitempty"`
}

type program struct {
	Tool       toolConfig `json:"tool"`
	Operations []opConfig `json:"operations"`
}

func main() {
	machinePath := flag.String("machine", "machine.json", "Machine description JSON file.")
	calibrationPath := flag.String("calibration", "feeds.json", "Feed/speed calibration table JSON file.")
	inventoryPath := flag.String("inventory", "", "Optional tool inventory JSON file, for tools given by description.")
	programPath := flag.String("program", "", "Operation list JSON file.")
	dialectName := flag.String("dialect", "linuxcnc", "Output dialect: linuxcnc, grbl, or polyline.")
	chordTol := flag.Float64("chord-tolerance", 0, "Chord error tolerance in mm for flattened arcs (polyline dialect).")
	outPath := flag.String("o", "", "Output file; stdout when empty.")
	tapChartPath := flag.String("tap-chart", "", "Tap drill chart JSON file, for -tap lookups.")
	tapSize := flag.String("tap", "", "Print tap and clearance drills for a thread designation and exit.")
	steel := flag.Bool("steel", false, "With -tap, use the 50% engagement column (steel, stainless, iron).")
	verbose := flag.Bool("v", false, "Enable debug logging.")
	flag.Parse()

	if *verbose {
		logger.SetLevel(logger.DEBUG)
	}

	if *tapSize != "" {
		if err := tapLookup(*tapChartPath, *tapSize, *steel); err != nil {
			fail(err)
		}
		return
	}
	if *programPath == "" {
		fail(fmt.Errorf("no -program given"))
	}

	out, err := run(*machinePath, *calibrationPath, *inventoryPath, *programPath, *dialectName, *chordTol)
	if err != nil {
		fail(err)
	}

	if *outPath == "" {
		os.Stdout.WriteString(out)
		return
	}
	if err := os.WriteFile(*outPath, []byte(out), 0o644); err != nil {
		fail(err)
	}
	logger.Infof("wrote %s", *outPath)
}

func fail(err error) {
	logger.Errorf("%v", err)
	os.Exit(1)
}

func run(machinePath, calibrationPath, inventoryPath, programPath, dialectName string, chordTol float64) (string, error) {
	var mc machineConfig
	if err := loadJSON(machinePath, &mc); err != nil {
		return "", err
	}
	logger.Debugf("machine %q, spindle limit %g rpm", mc.Name, mc.MaxRPM)

	f, err := os.Open(calibrationPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	table, err := feeds.LoadTable(f, mc.MaxRPM)
	if err != nil {
		return "", err
	}

	var prog program
	if err := loadJSON(programPath, &prog); err != nil {
		return "", err
	}

	tool, err := resolveTool(prog.Tool, inventoryPath)
	if err != nil {
		return "", err
	}

	speed, err := table.Resolve(tool.Diameter)
	if err != nil {
		return "", err
	}
	if speed.Capped {
		logger.Warnf("interpolated rpm exceeds machine limit; capped at %g", speed.RPM)
	}
	logger.Infof("tool %g mm: %g rpm, %g mm/min", tool.Diameter, speed.RPM, speed.Feed)

	gen, err := mill.New(tool, speed, mill.Options{SafeZ: mc.SafeZ})
	if err != nil {
		return "", err
	}

	seqs := make([]*toolpath.Sequence, 0, len(prog.Operations))
	for i, oc := range prog.Operations {
		seq, err := generate(gen, oc)
		if err != nil {
			return "", fmt.Errorf("operation %d (%s): %w", i, oc.Kind, err)
		}
		logger.Debugf("operation %d (%s): %d moves", i, oc.Kind, seq.Len())
		seqs = append(seqs, seq)
	}

	dialect, ok := gcode.DialectByName(dialectName)
	if !ok {
		return "", fmt.Errorf("unknown dialect %q", dialectName)
	}
	renderer := gcode.NewRenderer(dialect)
	if chordTol > 0 {
		renderer.SetChordTolerance(chordTol)
	}
	return renderer.Program(speed.RPM, seqs...)
}

func generate(gen *mill.Mill, oc opConfig) (*toolpath.Sequence, error) {
	center := v2.Vec{X: oc.Center[0], Y: oc.Center[1]}
	step := passes.Auto()
	if oc.Step != nil {
		step = passes.Fixed(*oc.Step)
	}

	switch oc.Kind {
	case "bolt-circle":
		return gen.BoltCircle(mill.BoltCircleSpec{
			Center: center, Count: oc.Count, Radius: oc.Radius,
			ZTop: oc.ZTop, Depth: oc.Depth,
		})
	case "circular-pocket":
		return gen.CircularPocket(mill.CircularPocketSpec{
			Center: center, Diameter: oc.Diameter, ZTop: oc.ZTop, Depth: oc.Depth,
			Step: step, Finish: oc.Finish, Retract: oc.Retract,
		})
	case "frame":
		side, err := parseSide(oc.Side)
		if err != nil {
			return nil, err
		}
		return gen.Frame(mill.FrameSpec{
			Center: center, X: oc.X, Y: oc.Y, CornerRadius: oc.CornerRadius,
			ZTop: oc.ZTop, Depth: oc.Depth, Step: step, Side: side,
		})
	case "rect-pocket":
		return gen.RectPocket(mill.RectPocketSpec{
			Center: center, X: oc.X, Y: oc.Y, CornerRadius: oc.CornerRadius,
			ZTop: oc.ZTop, Depth: oc.Depth, Step: step, Undercut: oc.Undercut,
		})
	case "helix":
		return gen.Helix(mill.HelixSpec{
			Center: center, Diameter: oc.Diameter, ZTop: oc.ZTop, Depth: oc.Depth,
			ZStep: oc.ZStep, Outside: oc.Outside, Retract: oc.Retract,
		})
	case "mill-drill":
		return gen.MillDrill(mill.MillDrillSpec{
			Center: center, Diameter: oc.Diameter, ZTop: oc.ZTop, Depth: oc.Depth,
			ZStep: oc.ZStep,
		})
	case "pocket-circle":
		return gen.PocketCircle(mill.PocketCircleSpec{
			Center: center, Count: oc.Count, Radius: oc.Radius,
			Pocket: mill.CircularPocketSpec{
				Diameter: oc.Diameter, ZTop: oc.ZTop, Depth: oc.Depth,
				Step: step, Finish: oc.Finish,
			},
		})
	}
	return nil, fmt.Errorf("unknown operation kind %q", oc.Kind)
}

func parseSide(s string) (mill.Side, error) {
	switch s {
	case "", "inside":
		return mill.Inside, nil
	case "outside":
		return mill.Outside, nil
	case "on-path":
		return mill.OnPath, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

func resolveTool(tc toolConfig, inventoryPath string) (mill.Tool, error) {
	if tc.Description != "" {
		if inventoryPath == "" {
			return mill.Tool{}, fmt.Errorf("tool given by description %q but no -inventory file", tc.Description)
		}
		f, err := os.Open(inventoryPath)
		if err != nil {
			return mill.Tool{}, err
		}
		defer f.Close()
		inv, err := feeds.LoadInventory(f)
		if err != nil {
			return mill.Tool{}, err
		}
		te, ok := inv.Find(tc.Type, tc.Description)
		if !ok {
			return mill.Tool{}, fmt.Errorf("tool %q / %q not in inventory", tc.Type, tc.Description)
		}
		return mill.Tool{Diameter: te.Diameter, Flutes: te.Flutes, Material: te.Material}, nil
	}
	return mill.Tool{Diameter: tc.Diameter, Flutes: tc.Flutes, Material: tc.Material}, nil
}

func tapLookup(chartPath, designation string, steel bool) error {
	if chartPath == "" {
		return fmt.Errorf("-tap requires -tap-chart")
	}
	f, err := os.Open(chartPath)
	if err != nil {
		return err
	}
	defer f.Close()
	chart, err := tapdrill.Load(f)
	if err != nil {
		return err
	}

	thread := tapdrill.Thread75
	if steel {
		thread = tapdrill.Thread50
	}
	tap, err := chart.Tap(designation, thread)
	if err != nil {
		return err
	}
	clearance, err := chart.Clearance(designation, tapdrill.CloseFit)
	if err != nil {
		return err
	}
	fmt.Printf("tap drill: %s (%.4f)\nclearance drill: %s (%.4f)\n",
		tap.Drill, tap.Decimal, clearance.Drill, clearance.Decimal)
	return nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
