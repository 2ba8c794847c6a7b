package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/rng"
)

// testWorld builds a minimal world with mid-range scalars and all six actors.
func testWorld() *WorldState {
	actors := make(map[ActorID]*ExternalActorState, 6)
	for _, id := range AllActors() {
		actors[id] = &ExternalActorState{
			ID: id, Name: string(id), Posture: PostureNeutral,
			Trust: 50, EscalationWillingness: 50, DomesticPressure: 50,
			SanctionsPolicy: 50, AllianceCommitment: 50,
		}
	}
	cred := make(map[ActorID]float64, 6)
	for _, id := range AllActors() {
		cred[id] = 50
	}
	w := &WorldState{
		Rng:  rng.Seed("effects-test"),
		Turn: 1,
		Player: PlayerCountryTrue{
			Economy:  Economy{Stability: 50, Inflation: 50, Unemployment: 50, DebtStress: 50},
			Military: Military{Readiness: 50, Logistics: 50, Tech: 50, AirDefense: 50, Cyber: 50},
			Politics: Politics{
				Legitimacy: 50, EliteCohesion: 50, MilitaryLoyalty: 50, PublicApproval: 50,
				MediaControl: 50, Corruption: 50, WarSupport: 50, Unrest: 50,
				Sovereignty: 50, GlobalCredibility: 50, Credibility: cred,
			},
			Institutions: Institutions{IntelCapacity: 50, Bureaucracy: 50, RuleOfLaw: 50},
			Tensions:     Tensions{Ethnic: 50, Border: 50, Separatist: 50},
			Resources:    Resources{EnergySecurity: 50, FoodSecurity: 50, Reserves: 50},
		},
		Global: GlobalSystems{Trade: 50, Energy: 50, Attention: 50},
		Actors: actors,
	}
	return w
}

var allKeys = []MetricKey{
	KeyEconStability, KeyInflation, KeyUnemployment, KeyDebtStress,
	KeyMilReadiness, KeyMilLogistics, KeyLegitimacy, KeyEliteCohesion,
	KeyMilitaryLoyalty, KeyPublicApproval, KeyMediaControl, KeyCorruption,
	KeyWarSupport, KeyUnrest, KeySovereignty, KeyGlobalCredibility,
	KeyGlobalTrade, KeyGlobalEnergy, KeyGlobalAttention,
}

var allActorFields = []ActorField{
	FieldTrust, FieldEscalationWillingness, FieldDomesticPressure,
	FieldSanctionsPolicy, FieldAllianceCommitment, FieldCredibility,
}

func TestDeltaClampsOnWrite(t *testing.T) {
	w := testWorld()

	Apply(w, Delta(KeyUnrest, 500, VisHidden, "overflow"))
	assert.Equal(t, 100.0, w.Player.Politics.Unrest)

	Apply(w, Delta(KeyUnrest, -500, VisHidden, "underflow"))
	assert.Equal(t, 0.0, w.Player.Politics.Unrest)
}

// Property test: thousands of random valid ops never push any scalar out of
// range.
func TestRandomOpsHoldRangeInvariant(t *testing.T) {
	w := testWorld()
	r := rng.Seed("property-ops")

	for i := 0; i < 5000; i++ {
		delta := (r.Float01() - 0.5) * 60
		switch r.IntRange(0, 3) {
		case 0:
			Apply(w, Delta(rng.Pick(r, allKeys), delta, VisHidden, "fuzz"))
		case 1:
			Apply(w, DeltaActor(rng.Pick(r, AllActors()), rng.Pick(r, allActorFields), delta, VisHidden, "fuzz"))
		case 2:
			Apply(w, SetSanctions(r.Chance(0.5), VisHidden, "fuzz"))
		case 3:
			Apply(w, SetPosture(rng.Pick(r, AllActors()), rng.Pick(r, []Posture{PostureHostile, PostureNeutral, PostureFriendly}), VisHidden, "fuzz"))
		}
		assertAllInRange(t, w)
	}
}

func assertAllInRange(t *testing.T, w *WorldState) {
	t.Helper()
	check := func(name string, v float64) {
		if v < 0 || v > 100 {
			t.Fatalf("%s out of range: %v", name, v)
		}
	}
	p := w.Player
	check("stability", p.Economy.Stability)
	check("inflation", p.Economy.Inflation)
	check("unemployment", p.Economy.Unemployment)
	check("debtStress", p.Economy.DebtStress)
	check("readiness", p.Military.Readiness)
	check("logistics", p.Military.Logistics)
	check("legitimacy", p.Politics.Legitimacy)
	check("eliteCohesion", p.Politics.EliteCohesion)
	check("militaryLoyalty", p.Politics.MilitaryLoyalty)
	check("publicApproval", p.Politics.PublicApproval)
	check("mediaControl", p.Politics.MediaControl)
	check("corruption", p.Politics.Corruption)
	check("warSupport", p.Politics.WarSupport)
	check("unrest", p.Politics.Unrest)
	check("sovereignty", p.Politics.Sovereignty)
	check("globalCredibility", p.Politics.GlobalCredibility)
	for id, v := range p.Politics.Credibility {
		check("credibility:"+string(id), v)
	}
	check("trade", w.Global.Trade)
	check("energy", w.Global.Energy)
	check("attention", w.Global.Attention)
	for _, a := range w.Actors {
		check("trust", a.Trust)
		check("escalation", a.EscalationWillingness)
		check("domestic", a.DomesticPressure)
		check("sanctions", a.SanctionsPolicy)
		check("alliance", a.AllianceCommitment)
	}
}

func TestUnknownKeyPanics(t *testing.T) {
	w := testWorld()
	assert.Panics(t, func() { Apply(w, Delta("no_such_key", 1, VisHidden, "boom")) })
	assert.Panics(t, func() { Apply(w, DeltaActor(ActorUS, "no_such_field", 1, VisHidden, "boom")) })
	assert.Panics(t, func() { Apply(w, DeltaActor("NOBODY", FieldTrust, 1, VisHidden, "boom")) })
	assert.Panics(t, func() { Apply(w, EffectOp{Kind: "NO_SUCH_KIND"}) })
	assert.Panics(t, func() { Apply(w, EffectOp{Kind: OpSetFlag, Flag: "no_such_flag"}) })
	assert.Panics(t, func() { Apply(w, EffectOp{Kind: OpStartConflict}) })
}

func TestVisibilityNeverGatesMutation(t *testing.T) {
	a := testWorld()
	b := testWorld()
	Apply(a, Delta(KeyUnrest, 7, VisPublic, "same"))
	Apply(b, Delta(KeyUnrest, 7, VisHidden, "same"))
	require.Equal(t, a.Player.Politics.Unrest, b.Player.Politics.Unrest)
}

func TestStartConflict(t *testing.T) {
	w := testWorld()
	Apply(w, StartConflict(ConflictSpec{
		ID: "war-1", Name: "Border War",
		Belligerents: []ActorID{ActorRival},
		Escalation:   9, // clamps to 5
		Fronts:       []string{"north", "coastal"},
	}, VisPublic, "invasion"))

	require.Len(t, w.Conflicts, 1)
	c := w.Conflicts[0]
	assert.Equal(t, 5, c.Escalation)
	assert.Len(t, c.Fronts, 2)
	for _, f := range c.Fronts {
		assert.Equal(t, FrontContested, f.Control)
	}
}

func TestSetFlags(t *testing.T) {
	w := testWorld()
	Apply(w, SetFlag(FlagPuppet, true, VisHidden, "installed"))
	Apply(w, SetFlag(FlagCapitalOccupied, true, VisHidden, "occupied"))
	assert.True(t, w.Player.Puppet)
	assert.True(t, w.Player.CapitalOccupied)
}

func TestActorCredibilityDelta(t *testing.T) {
	w := testWorld()
	Apply(w, DeltaActor(ActorEU, FieldCredibility, -12.5, VisHidden, "broken promise"))
	assert.Equal(t, 37.5, w.Player.Politics.Credibility[ActorEU])
	// Other actors untouched.
	assert.Equal(t, 50.0, w.Player.Politics.Credibility[ActorUS])
}
