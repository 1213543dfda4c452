package mill

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grp876/opti-mill/pkg/passes"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

func TestPocketCircle(t *testing.T) {
	m := testMill(t)
	spec := PocketCircleSpec{
		Center: v2.Vec{X: 0, Y: 0},
		Count:  2,
		Radius: 30,
		Pocket: CircularPocketSpec{
			Diameter: 20,
			Depth:    5,
			Step:     passes.Fixed(2.5),
		},
	}
	seq, err := m.PocketCircle(spec)
	moves := movesOf(t, seq, err)

	// Two full pockets, each with its retract forced on so the rapid to
	// the next pattern point happens at safe height.
	require.Len(t, moves, 38)

	// First pocket at angle 0, second at angle π.
	assertVec3(t, vec3(30, 0, DefaultSafeZ), moves[0].To)
	assert.Equal(t, toolpath.Rapid, moves[19].Kind)
	assertVec3(t, vec3(-30, 0, DefaultSafeZ), moves[19].To)

	// Each pocket retracts before the next begins.
	assert.Equal(t, toolpath.Rapid, moves[18].Kind)
	assertVec3(t, vec3(30, 0, DefaultSafeZ), moves[18].To)
}

func TestPocketCircleInvalidCount(t *testing.T) {
	m := testMill(t)
	seq, err := m.PocketCircle(PocketCircleSpec{
		Count: 0, Radius: 30,
		Pocket: CircularPocketSpec{Diameter: 20, Depth: 5, Step: passes.Auto()},
	})
	require.Nil(t, seq)
	var ice InvalidCountError
	assert.ErrorAs(t, err, &ice)
}

func TestPocketCircleInvalidPocket(t *testing.T) {
	m := testMill(t)
	seq, err := m.PocketCircle(PocketCircleSpec{
		Count: 4, Radius: 30,
		Pocket: CircularPocketSpec{Diameter: 5, Depth: 5, Step: passes.Auto()},
	})
	require.Nil(t, seq)
	var ttl ToolTooLargeError
	assert.ErrorAs(t, err, &ttl)
}
