package mill

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grp876/opti-mill/pkg/toolpath"
)

func TestHelixDescent(t *testing.T) {
	m := testMill(t)
	spec := HelixSpec{Diameter: 10, ZTop: 0, Depth: 5, ZStep: 0.8}
	seq, err := m.Helix(spec)
	moves := movesOf(t, seq, err)

	// Approach and plunge, seven cutting revolutions, one flat bottom
	// revolution. Cut radius is 10/2 - 3 = 2mm inside the bore.
	require.Len(t, moves, 10)
	assertVec3(t, vec3(2, 0, DefaultSafeZ), moves[0].To)
	assertVec3(t, vec3(2, 0, 0), moves[1].To)

	prevZ := 0.0
	for i, mv := range moves[2:9] {
		require.Equal(t, toolpath.ArcCCW, mv.Kind, "revolution %d", i)
		assertVec3(t, vec3(2, 0, mv.To.Z), mv.To, "revolution %d stays on the entry point", i)
		assert.InDelta(t, -2, mv.Center.X, 1e-9)

		drop := prevZ - mv.To.Z
		assert.Greater(t, drop, 0.0, "revolution %d does not descend", i)
		assert.LessOrEqual(t, drop, 0.8+1e-9, "revolution %d exceeds z-step", i)
		prevZ = mv.To.Z
	}
	// Six full steps and a 0.2mm remainder reach depth exactly.
	assert.InDelta(t, -5.0, moves[8].To.Z, 1e-12)

	flat := moves[9]
	assert.Equal(t, toolpath.ArcCCW, flat.Kind)
	assert.InDelta(t, -5.0, flat.To.Z, 1e-12)
}

func TestHelixExactStep(t *testing.T) {
	m := testMill(t)
	// 5mm at 1mm per revolution: five equal turns, no remainder.
	seq, err := m.Helix(HelixSpec{Diameter: 10, Depth: 5, ZStep: 1})
	moves := movesOf(t, seq, err)
	require.Len(t, moves, 8)
	for i, mv := range moves[2:7] {
		assert.InDelta(t, -float64(i+1), mv.To.Z, 1e-12)
	}
}

func TestHelixRetract(t *testing.T) {
	m := testMill(t)
	seq, err := m.Helix(HelixSpec{Diameter: 10, Depth: 5, ZStep: 0.8, Retract: true})
	moves := movesOf(t, seq, err)
	require.Len(t, moves, 12)

	// The cutter steps off the 2mm wall toward the center before lifting.
	off, lift := moves[10], moves[11]
	assert.Equal(t, toolpath.Linear, off.Kind)
	assertVec3(t, vec3(1.5, 0, -5), off.To)
	assert.Equal(t, toolpath.Rapid, lift.Kind)
	assertVec3(t, vec3(1.5, 0, DefaultSafeZ), lift.To)
}

func TestHelixOutside(t *testing.T) {
	m := testMill(t)
	spec := HelixSpec{Diameter: 10, Depth: 3, ZStep: 1, Outside: true, Retract: true}
	seq, err := m.Helix(spec)
	moves := movesOf(t, seq, err)

	// Outside the 10mm boss the tool center runs at 5 + 3 = 8mm.
	assertVec3(t, vec3(8, 0, DefaultSafeZ), moves[0].To)
	off := moves[len(moves)-2]
	assertVec3(t, vec3(8.5, 0, -3), off.To)
}

func TestHelixToolTooLarge(t *testing.T) {
	m := testMill(t)
	seq, err := m.Helix(HelixSpec{Diameter: 6, Depth: 5, ZStep: 1})
	require.Nil(t, seq)
	var ttl ToolTooLargeError
	assert.ErrorAs(t, err, &ttl)

	// An outside helix has no such limit.
	_, err = m.Helix(HelixSpec{Diameter: 6, Depth: 5, ZStep: 1, Outside: true})
	assert.NoError(t, err)
}

func TestHelixInvalid(t *testing.T) {
	m := testMill(t)
	tests := []struct {
		name string
		spec HelixSpec
	}{
		{"zero diameter", HelixSpec{Depth: 5, ZStep: 1}},
		{"zero depth", HelixSpec{Diameter: 10, ZStep: 1}},
		{"zero z-step", HelixSpec{Diameter: 10, Depth: 5}},
		{"nan center", HelixSpec{Center: v2.Vec{Y: math.NaN()}, Diameter: 10, Depth: 5, ZStep: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := m.Helix(tt.spec)
			require.Error(t, err)
			assert.Nil(t, seq)
		})
	}
}
