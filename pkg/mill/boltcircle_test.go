package mill

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grp876/opti-mill/pkg/feeds"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

func TestBoltCircle(t *testing.T) {
	m := testMill(t)
	spec := BoltCircleSpec{
		Center: v2.Vec{X: 50, Y: 20},
		Count:  6,
		Radius: 10,
		ZTop:   0,
		Depth:  5,
	}
	seq, err := m.BoltCircle(spec)
	moves := movesOf(t, seq, err)
	require.Len(t, moves, 18) // rapid, plunge, retract per hole

	for i := 0; i < 6; i++ {
		angle := float64(i) * math.Pi / 3
		x := 50 + 10*math.Cos(angle)
		y := 20 + 10*math.Sin(angle)

		rapid, plunge, retract := moves[3*i], moves[3*i+1], moves[3*i+2]
		assert.Equal(t, toolpath.Rapid, rapid.Kind)
		assertVec3(t, vec3(x, y, DefaultSafeZ), rapid.To, "hole %d approach", i)
		assert.Equal(t, toolpath.Linear, plunge.Kind)
		assertVec3(t, vec3(x, y, -5), plunge.To, "hole %d plunge", i)
		assert.Equal(t, 100.0, plunge.Feed)
		assert.Equal(t, toolpath.Rapid, retract.Kind)
		assertVec3(t, vec3(x, y, DefaultSafeZ), retract.To, "hole %d retract", i)
	}
}

func TestBoltCircleStartAngle(t *testing.T) {
	m, err := New(Tool{Diameter: 6}, feeds.Params{RPM: 2400, Feed: 200},
		Options{StartAngle: math.Pi / 2})
	require.NoError(t, err)

	seq, err := m.BoltCircle(BoltCircleSpec{Count: 4, Radius: 8, Depth: 2})

	moves := movesOf(t, seq, err)
	assertVec3(t, vec3(0, 8, DefaultSafeZ), moves[0].To)
}

func TestBoltCircleInvalid(t *testing.T) {
	m := testMill(t)
	tests := []struct {
		name string
		spec BoltCircleSpec
	}{
		{"zero count", BoltCircleSpec{Radius: 10, Depth: 5}},
		{"negative count", BoltCircleSpec{Count: -2, Radius: 10, Depth: 5}},
		{"negative radius", BoltCircleSpec{Count: 4, Radius: -1, Depth: 5}},
		{"zero depth", BoltCircleSpec{Count: 4, Radius: 10}},
		{"nan center", BoltCircleSpec{Center: v2.Vec{X: math.NaN()}, Count: 4, Radius: 10, Depth: 5}},
		{"inf z-top", BoltCircleSpec{Count: 4, Radius: 10, ZTop: math.Inf(1), Depth: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := m.BoltCircle(tt.spec)
			require.Error(t, err)
			assert.Nil(t, seq)
		})
	}
}

func TestBoltCircleCountError(t *testing.T) {
	m := testMill(t)
	_, err := m.BoltCircle(BoltCircleSpec{Count: 0, Radius: 10, Depth: 5})
	var ice InvalidCountError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, 0, ice.Count)
}
