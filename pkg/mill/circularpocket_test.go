package mill

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grp876/opti-mill/pkg/passes"
	"github.com/grp876/opti-mill/pkg/toolpath"
)

func TestCircularPocket(t *testing.T) {
	m := testMill(t)
	spec := CircularPocketSpec{
		Diameter: 20,
		Depth:    5,
		Step:     passes.Fixed(2.5),
	}
	seq, err := m.CircularPocket(spec)
	moves := movesOf(t, seq, err)

	// Approach (2) plus two depth levels of plunge, three clearing rings
	// (entry + full circle each), and a return to center (8 each).
	require.Len(t, moves, 18)

	assert.Equal(t, toolpath.Rapid, moves[0].Kind)
	assertVec3(t, vec3(0, 0, DefaultSafeZ), moves[0].To)
	assertVec3(t, vec3(0, 0, 0), moves[1].To)

	// First level at z = -2.5: ring radii step by the tool radius out to
	// the finished wall radius of 7mm.
	assertVec3(t, vec3(0, 0, -2.5), moves[2].To)
	for i, r := range []float64{7.0 / 3, 14.0 / 3, 7} {
		entry := moves[3+2*i]
		ring := moves[4+2*i]
		assert.Equal(t, toolpath.Linear, entry.Kind)
		assertVec3(t, vec3(r, 0, -2.5), entry.To, "ring %d entry", i)
		assert.Equal(t, toolpath.ArcCCW, ring.Kind, "ring %d", i)
		assertVec3(t, vec3(r, 0, -2.5), ring.To, "ring %d closes on its entry", i)
		assert.InDelta(t, -r, ring.Center.X, 1e-9)
	}
	assertVec3(t, vec3(0, 0, -2.5), moves[9].To)

	// Second level reaches full depth; the pocket ends at its floor
	// center so a following operation can chain.
	assertVec3(t, vec3(0, 0, -5), moves[10].To)
	assertVec3(t, vec3(0, 0, -5), moves[17].To)
}

func TestCircularPocketRetract(t *testing.T) {
	m := testMill(t)
	spec := CircularPocketSpec{Diameter: 20, Depth: 5, Step: passes.Fixed(2.5), Retract: true}
	seq, err := m.CircularPocket(spec)
	moves := movesOf(t, seq, err)

	require.Len(t, moves, 19)
	last := moves[len(moves)-1]
	assert.Equal(t, toolpath.Rapid, last.Kind)
	assertVec3(t, vec3(0, 0, DefaultSafeZ), last.To)
}

func TestCircularPocketFinishPass(t *testing.T) {
	m := testMill(t)
	spec := CircularPocketSpec{
		Diameter: 20,
		Depth:    4,
		Step:     passes.Fixed(4),
		Finish:   0.5,
	}
	seq, err := m.CircularPocket(spec)
	moves := movesOf(t, seq, err)

	// The clearing rings stop 0.5mm short of the wall; the finish pass
	// runs the full 7mm radius at the bottom.
	n := len(moves)
	finishEntry, finishRing := moves[n-3], moves[n-2]
	assertVec3(t, vec3(7, 0, -4), finishEntry.To)
	assert.Equal(t, toolpath.ArcCCW, finishRing.Kind)
	assertVec3(t, vec3(7, 0, -4), finishRing.To)

	for _, mv := range moves[:n-3] {
		if mv.IsArc() {
			assert.LessOrEqual(t, mv.To.X, 6.5+1e-9, "clearing ring crosses the finish allowance")
		}
	}
}

func TestCircularPocketAutoStep(t *testing.T) {
	m := testMill(t)
	// Auto step for a 6mm tool is 3mm: 5mm of depth takes two levels.
	seq, err := m.CircularPocket(CircularPocketSpec{
		Diameter: 8, Depth: 5, Step: passes.Auto(),
	})
	moves := movesOf(t, seq, err)

	levels := 0
	for _, mv := range moves {
		if mv.Kind == toolpath.Linear && mv.To.X == 0 && mv.To.Y == 0 && mv.Feed == 100 {
			levels++
		}
	}
	// Initial positioning plunge plus one plunge per depth level.
	assert.Equal(t, 3, levels)
}

func TestCircularPocketToolTooLarge(t *testing.T) {
	m := testMill(t)
	seq, err := m.CircularPocket(CircularPocketSpec{Diameter: 5, Depth: 5, Step: passes.Auto()})
	require.Nil(t, seq)
	var ttl ToolTooLargeError
	require.ErrorAs(t, err, &ttl)
	assert.Equal(t, 5.0, ttl.Feature)
	assert.Equal(t, 6.0, ttl.Tool)
}

func TestCircularPocketInvalid(t *testing.T) {
	m := testMill(t)
	tests := []struct {
		name string
		spec CircularPocketSpec
	}{
		{"zero diameter", CircularPocketSpec{Depth: 5, Step: passes.Auto()}},
		{"zero depth", CircularPocketSpec{Diameter: 20, Step: passes.Auto()}},
		{"negative finish", CircularPocketSpec{Diameter: 20, Depth: 5, Step: passes.Auto(), Finish: -1}},
		{"finish swallows pocket", CircularPocketSpec{Diameter: 20, Depth: 5, Step: passes.Auto(), Finish: 7}},
		{"zero fixed step", CircularPocketSpec{Diameter: 20, Depth: 5, Step: passes.Fixed(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := m.CircularPocket(tt.spec)
			require.Error(t, err)
			assert.Nil(t, seq)
		})
	}
}

func TestCircularPocketOffsetCenter(t *testing.T) {
	m := testMill(t)
	center := v2.Vec{X: -12, Y: 30}
	seq, err := m.CircularPocket(CircularPocketSpec{
		Center: center, Diameter: 10, Depth: 2, Step: passes.Fixed(2),
	})
	moves := movesOf(t, seq, err)
	assertVec3(t, vec3(-12, 30, DefaultSafeZ), moves[0].To)
	end := moves[len(moves)-1].To
	assertVec3(t, vec3(-12, 30, -2), end)
}
