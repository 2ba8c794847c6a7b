package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/state"
	"github.com/talgya/statecraft/internal/worldgen"
)

func healthyWorld(seed string) *state.WorldState {
	w := worldgen.NewWorld(seed)
	p := &w.Player
	p.Politics.Sovereignty = 70
	p.Politics.Legitimacy = 60
	p.Politics.EliteCohesion = 60
	p.Politics.MilitaryLoyalty = 60
	p.Politics.Unrest = 30
	p.Politics.MediaControl = 60
	p.Puppet = false
	p.CapitalOccupied = false
	return w
}

func TestEvaluateFailureSurvivableWorld(t *testing.T) {
	assert.Nil(t, EvaluateFailure(healthyWorld("ok")))
}

func TestLossOfSovereignty(t *testing.T) {
	t.Run("sovereignty floor", func(t *testing.T) {
		w := healthyWorld("sov")
		w.Player.Politics.Sovereignty = 20
		f := EvaluateFailure(w)
		require.NotNil(t, f)
		assert.Equal(t, FailLossOfSovereignty, f.Type)
	})
	t.Run("puppet flag", func(t *testing.T) {
		w := healthyWorld("puppet")
		w.Player.Puppet = true
		f := EvaluateFailure(w)
		require.NotNil(t, f)
		assert.Equal(t, FailLossOfSovereignty, f.Type)
	})
	t.Run("capital occupied", func(t *testing.T) {
		w := healthyWorld("capital")
		w.Player.CapitalOccupied = true
		f := EvaluateFailure(w)
		require.NotNil(t, f)
		assert.Equal(t, FailLossOfSovereignty, f.Type)
		assert.Contains(t, f.Drivers[0], "capital")
	})
	t.Run("just above floor survives", func(t *testing.T) {
		w := healthyWorld("above")
		w.Player.Politics.Sovereignty = 20.5
		assert.Nil(t, EvaluateFailure(w))
	})
}

func TestDomesticOuster(t *testing.T) {
	t.Run("legitimacy collapse needs a crack", func(t *testing.T) {
		w := healthyWorld("legit-only")
		w.Player.Politics.Legitimacy = 20
		assert.Nil(t, EvaluateFailure(w), "low legitimacy alone is survivable")

		w.Player.Politics.EliteCohesion = 30
		f := EvaluateFailure(w)
		require.NotNil(t, f)
		assert.Equal(t, FailDomesticOuster, f.Type)
	})
	t.Run("legitimacy plus disloyal army", func(t *testing.T) {
		w := healthyWorld("loyalty")
		w.Player.Politics.Legitimacy = 20
		w.Player.Politics.MilitaryLoyalty = 30
		require.NotNil(t, EvaluateFailure(w))
	})
	t.Run("legitimacy plus mass unrest", func(t *testing.T) {
		w := healthyWorld("unrest")
		w.Player.Politics.Legitimacy = 20
		w.Player.Politics.Unrest = 75
		require.NotNil(t, EvaluateFailure(w))
	})
	t.Run("open revolt without media control", func(t *testing.T) {
		w := healthyWorld("revolt")
		w.Player.Politics.Unrest = 90
		w.Player.Politics.MediaControl = 35
		f := EvaluateFailure(w)
		require.NotNil(t, f)
		assert.Equal(t, FailDomesticOuster, f.Type)

		// Same unrest with a firm grip on broadcasting survives.
		w.Player.Politics.MediaControl = 60
		assert.Nil(t, EvaluateFailure(w))
	})
}

func TestDriversRankedAndBounded(t *testing.T) {
	w := healthyWorld("drivers")
	w.Player.Politics.Legitimacy = 10
	w.Player.Politics.EliteCohesion = 10
	w.Player.Politics.MilitaryLoyalty = 10
	w.Player.Politics.Unrest = 95
	w.Player.Politics.MediaControl = 10

	f := EvaluateFailure(w)
	require.NotNil(t, f)
	assert.LessOrEqual(t, len(f.Drivers), 3)
	assert.NotEmpty(t, f.Drivers)
	assert.NotEmpty(t, f.PointOfNoReturn)
}
