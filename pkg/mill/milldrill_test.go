package mill

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grp876/opti-mill/pkg/toolpath"
)

func TestMillDrill(t *testing.T) {
	m := testMill(t)
	spec := MillDrillSpec{
		Center:   v2.Vec{X: 15, Y: -5},
		Diameter: 10,
		Depth:    5,
		ZStep:    1,
	}
	seq, err := m.MillDrill(spec)
	moves := movesOf(t, seq, err)

	// Helix to depth (approach, plunge, five revolutions, flat pass),
	// then feed to the hole center and retract straight up through it.
	require.Len(t, moves, 10)

	core, retract := moves[8], moves[9]
	assert.Equal(t, toolpath.Linear, core.Kind)
	assertVec3(t, vec3(15, -5, -5), core.To)
	assert.Equal(t, toolpath.Rapid, retract.Kind)
	assertVec3(t, vec3(15, -5, DefaultSafeZ), retract.To)
}

func TestMillDrillDiameterLimit(t *testing.T) {
	m := testMill(t)

	// Exactly twice the tool diameter is the largest hole the annulus
	// plus the tool width can clear.
	_, err := m.MillDrill(MillDrillSpec{Diameter: 12, Depth: 5, ZStep: 1})
	assert.NoError(t, err)

	seq, err := m.MillDrill(MillDrillSpec{Diameter: 12.1, Depth: 5, ZStep: 1})
	require.Nil(t, seq)
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "diameter", ve.Field)
}

func TestMillDrillToolTooLarge(t *testing.T) {
	m := testMill(t)
	seq, err := m.MillDrill(MillDrillSpec{Diameter: 6, Depth: 5, ZStep: 1})
	require.Nil(t, seq)
	var ttl ToolTooLargeError
	assert.ErrorAs(t, err, &ttl)
}
