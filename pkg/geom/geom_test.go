package geom

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

const epsilon = 1e-9

func TestFinite(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		want bool
	}{
		{"plain values", []float64{0, -3.5, 1e9}, true},
		{"nan", []float64{1, math.NaN()}, false},
		{"positive inf", []float64{math.Inf(1)}, false},
		{"negative inf", []float64{math.Inf(-1)}, false},
		{"empty", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Finite(tt.vals...); got != tt.want {
				t.Errorf("Finite(%v) = %v, want %v", tt.vals, got, tt.want)
			}
		})
	}
}

func TestCircleAngles(t *testing.T) {
	angles := CircleAngles(6, 0)
	if len(angles) != 6 {
		t.Fatalf("got %d angles, want 6", len(angles))
	}
	for i, a := range angles {
		want := float64(i) * math.Pi / 3
		if math.Abs(a-want) > epsilon {
			t.Errorf("angle %d = %v, want %v", i, a, want)
		}
	}

	if got := CircleAngles(0, 0); got != nil {
		t.Errorf("CircleAngles(0, 0) = %v, want nil", got)
	}

	shifted := CircleAngles(4, math.Pi/4)
	if math.Abs(shifted[0]-math.Pi/4) > epsilon {
		t.Errorf("start angle not honored: got %v", shifted[0])
	}
}

func TestPointOnCircle(t *testing.T) {
	center := v2.Vec{X: 2, Y: -1}
	p := PointOnCircle(center, 10, math.Pi/2)
	if math.Abs(p.X-2) > epsilon || math.Abs(p.Y-9) > epsilon {
		t.Errorf("point at 90° = (%v, %v), want (2, 9)", p.X, p.Y)
	}
}
