package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/state"
)

func TestNewWorldDeterministic(t *testing.T) {
	a := NewWorld("alpha-seed")
	b := NewWorld("alpha-seed")

	ea, err := state.Encode(a)
	require.NoError(t, err)
	eb, err := state.Encode(b)
	require.NoError(t, err)
	assert.Equal(t, ea, eb, "identical seeds must produce byte-identical worlds")

	c := NewWorld("other-seed")
	ec, err := state.Encode(c)
	require.NoError(t, err)
	assert.NotEqual(t, ea, ec)
}

func TestNewWorldShape(t *testing.T) {
	w := NewWorld("shape-check")

	assert.Equal(t, 1, w.Turn)
	assert.False(t, w.Failed)
	require.Len(t, w.Actors, 6)
	for _, id := range state.AllActors() {
		require.Contains(t, w.Actors, id)
	}
	assert.Len(t, w.Player.Politics.Credibility, 6)
	assert.Empty(t, w.Conflicts)
	assert.Empty(t, w.Scheduled)
	assert.NotZero(t, w.NoiseSeed)
	assert.NotEmpty(t, w.Player.Profile.Name)
	assert.NotEmpty(t, w.Player.Profile.Neighbors)
}

func TestNewWorldHasHostileActor(t *testing.T) {
	for _, seed := range []string{"h1", "h2", "h3", "h4", "h5", "h6", "h7", "h8"} {
		w := NewWorld(seed)
		hostile := 0
		for _, a := range w.Actors {
			if a.Posture == state.PostureHostile {
				hostile++
				assert.LessOrEqual(t, a.Trust, 22.0, "seed %s: hostile actor trust stays depressed", seed)
			}
		}
		require.Equal(t, 1, hostile, "seed %s: exactly one actor starts hostile", seed)
	}
}

func TestNewWorldScalarsInRange(t *testing.T) {
	for _, seed := range []string{"r1", "r2", "r3", "r4", "r5"} {
		w := NewWorld(seed)
		check := func(name string, v float64) {
			if v < 0 || v > 100 {
				t.Fatalf("seed %s: %s out of range: %v", seed, name, v)
			}
		}
		p := w.Player
		check("stability", p.Economy.Stability)
		check("inflation", p.Economy.Inflation)
		check("legitimacy", p.Politics.Legitimacy)
		check("unrest", p.Politics.Unrest)
		check("sovereignty", p.Politics.Sovereignty)
		check("readiness", p.Military.Readiness)
		check("intelCapacity", p.Institutions.IntelCapacity)
		check("reserves", p.Resources.Reserves)
		for _, a := range w.Actors {
			check("trust", a.Trust)
			check("escalation", a.EscalationWillingness)
			check("domestic", a.DomesticPressure)
			for _, o := range a.Objectives {
				require.GreaterOrEqual(t, o.Weight, 0.3)
				require.LessOrEqual(t, o.Weight, 1.0)
			}
		}
		check("trade", w.Global.Trade)
		check("energy", w.Global.Energy)
		check("attention", w.Global.Attention)
	}
}

func TestActorBlueprintsCoverMajors(t *testing.T) {
	w := NewWorld("blueprint-check")
	assert.Equal(t, "United States", w.Actors[state.ActorUS].Name)
	assert.Equal(t, "European Union", w.Actors[state.ActorEU].Name)
	for _, a := range w.Actors {
		assert.NotEmpty(t, a.Objectives, "%s needs objectives", a.ID)
		assert.NotEmpty(t, a.RedLines, "%s needs red lines", a.ID)
	}
}

func TestDescribe(t *testing.T) {
	w := NewWorld("describe")
	s := Describe(w)
	assert.Contains(t, s, w.Player.Profile.Name)
	assert.Contains(t, s, w.Player.Profile.Region)
}
