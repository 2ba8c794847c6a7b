package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/state"
	"github.com/talgya/statecraft/internal/worldgen"
)

func TestResolveEventsPartitionsVisibility(t *testing.T) {
	w := worldgen.NewWorld("resolve-events")
	events := []state.IncomingEvent{{
		ID:       "ev-1-1",
		Type:     state.EventUnrestProtest,
		Headline: "Protests swell in the capital",
		Ops: []state.EffectOp{
			state.Delta(state.KeyUnrest, 4, state.VisPublic, "street protests spread"),
			state.Delta(state.KeyPublicApproval, -2, state.VisHidden, "discontent hardens"),
		},
		Scheduled: []state.ScheduledConsequence{
			{ID: "sc-gen-1", DueTurn: 2, Kind: state.ConsInflationLag, Magnitude: 1},
		},
	}}

	res := ResolveIncomingEvents(w, events)

	require.Len(t, res.PublicOps, 1)
	require.Len(t, res.HiddenOps, 1)
	assert.Equal(t, state.KeyUnrest, res.PublicOps[0].Key)
	require.Len(t, res.Scheduled, 1)

	// Consequence text derives only from public ops.
	require.Len(t, res.PublicConsequences, 1)
	assert.Contains(t, res.PublicConsequences[0], "Protests swell")
	assert.Contains(t, res.PublicConsequences[0], "street protests spread")

	require.Len(t, res.SignalsUnknown, 1)
}

func TestResolveEventsDoesNotMutateWorld(t *testing.T) {
	w := worldgen.NewWorld("resolve-pure")
	events := GenerateIncomingEvents(w, EventOptions{ForcePressureEvent: true})
	before, err := state.Encode(w)
	require.NoError(t, err)

	ResolveIncomingEvents(w, events)

	after, err := state.Encode(w)
	require.NoError(t, err)
	assert.Equal(t, before, after, "event resolution only builds ops")
}

func TestHiddenActionPushesOpsAndSignals(t *testing.T) {
	w := worldgen.NewWorld("hidden-action")
	res := ResolvePlayerActions(w, []PlayerAction{{
		Category: CatEconomy, Type: ActSubsidies, Intensity: 2, Visibility: state.VisHidden,
	}})

	assert.Empty(t, res.PublicOps, "a private directive leaves no public trace")
	assert.NotEmpty(t, res.HiddenOps)
	assert.Empty(t, res.PublicConsequences)
	assert.NotEmpty(t, res.SignalsUnknown)
}

func TestPublicActionAnnounces(t *testing.T) {
	w := worldgen.NewWorld("public-action")
	res := ResolvePlayerActions(w, []PlayerAction{{
		Category: CatEconomy, Type: ActSubsidies, Intensity: 2, Visibility: state.VisPublic,
	}})

	assert.NotEmpty(t, res.PublicOps)
	assert.NotEmpty(t, res.HiddenOps, "the fiscal cost stays hidden even for a public action")
	require.Len(t, res.PublicConsequences, 1)
	assert.Contains(t, res.PublicConsequences[0], "subsidies")

	// Subsidies always schedule a delayed inflation hit.
	require.Len(t, res.Scheduled, 1)
	assert.Equal(t, state.ConsInflationLag, res.Scheduled[0].Kind)
	assert.Equal(t, w.Turn+2, res.Scheduled[0].DueTurn)
}

func TestMessageTonesDiffer(t *testing.T) {
	base := PlayerAction{Category: CatDiplomacy, Type: ActMessage, Target: state.ActorUS,
		Topic: "basing rights", Intensity: 2, Visibility: state.VisPublic}

	ca := base
	ca.Tone = ToneConciliatory
	da := base
	da.Tone = ToneDefiant

	// Ops are built, not applied; apply them to compare outcomes.
	cw := worldgen.NewWorld("tones")
	dw := worldgen.NewWorld("tones")
	cres := ResolvePlayerActions(cw, []PlayerAction{ca})
	state.ApplyAll(cw, cres.PublicOps)
	state.ApplyAll(cw, cres.HiddenOps)
	dres := ResolvePlayerActions(dw, []PlayerAction{da})
	state.ApplyAll(dw, dres.PublicOps)
	state.ApplyAll(dw, dres.HiddenOps)

	assert.Greater(t, cw.Actors[state.ActorUS].Trust, dw.Actors[state.ActorUS].Trust)
	assert.Greater(t, dw.Actors[state.ActorUS].EscalationWillingness, cw.Actors[state.ActorUS].EscalationWillingness)
}

func TestBackchannelStaysCovert(t *testing.T) {
	w := worldgen.NewWorld("backchannel")
	res := ResolvePlayerActions(w, []PlayerAction{{
		Category: CatDiplomacy, Type: ActBackchannel, Target: state.ActorChina,
		Intensity: 1, Visibility: state.VisHidden,
	}})
	assert.Empty(t, res.PublicOps)
	assert.Empty(t, res.PublicConsequences)
	assert.NotEmpty(t, res.SignalsUnknown)
}

func TestHardCrackdownRisksEliteSplit(t *testing.T) {
	w := worldgen.NewWorld("crackdown")
	res := ResolvePlayerActions(w, []PlayerAction{{
		Category: CatSecurity, Type: ActCrackdown, Intensity: 3, Visibility: state.VisPublic,
	}})
	require.Len(t, res.Scheduled, 1)
	assert.Equal(t, state.ConsEliteSplitRisk, res.Scheduled[0].Kind)

	// A softer crackdown does not rattle the inner circle.
	w2 := worldgen.NewWorld("crackdown-soft")
	res2 := ResolvePlayerActions(w2, []PlayerAction{{
		Category: CatSecurity, Type: ActCrackdown, Intensity: 1, Visibility: state.VisPublic,
	}})
	assert.Empty(t, res2.Scheduled)
}

func TestScheduledIDsAreDeterministic(t *testing.T) {
	a := worldgen.NewWorld("sched-ids")
	b := worldgen.NewWorld("sched-ids")
	actions := []PlayerAction{{
		Category: CatEconomy, Type: ActSubsidies, Intensity: 3, Visibility: state.VisPublic,
	}}
	ra := ResolvePlayerActions(a, actions)
	rb := ResolvePlayerActions(b, actions)
	require.Equal(t, ra.Scheduled, rb.Scheduled)
	assert.Equal(t, "sc-act-1-1", ra.Scheduled[0].ID)
}
