package feeds

import (
	"fmt"
	"math"

	"github.com/grp876/opti-mill/pkg/geom"
)

// SurfaceSpeed returns the cutting surface speed in m/s for a spindle
// speed and tool diameter in mm.
func SurfaceSpeed(rpm, diameter float64) float64 {
	return rpm * math.Pi * diameter / 60000
}

// RPMForSurfaceSpeed converts a desired constant surface speed (m/s) and
// tool diameter (mm) into a spindle speed, capped at maxRPM when the
// machine cannot turn fast enough. A zero maxRPM means uncapped. The
// boolean return reports whether capping occurred. Both css and diameter
// must be positive and finite.
func RPMForSurfaceSpeed(css, diameter, maxRPM float64) (float64, bool, error) {
	if !geom.Finite(css) || css <= 0 {
		return 0, false, fmt.Errorf("surface speed %g m/s: must be positive and finite", css)
	}
	if !geom.Finite(diameter) || diameter <= 0 {
		return 0, false, fmt.Errorf("tool diameter %g mm: must be positive and finite", diameter)
	}
	rpm := css * 60000 / (math.Pi * diameter)
	if maxRPM > 0 && rpm > maxRPM {
		return maxRPM, true, nil
	}
	return rpm, false, nil
}
