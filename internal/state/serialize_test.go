package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	w := testWorld()
	w.Scheduled = []ScheduledConsequence{
		{ID: "sc-1", DueTurn: 3, Kind: ConsInflationLag, Severity: 0.5, Magnitude: 2},
	}
	Apply(w, StartConflict(ConflictSpec{ID: "war-1", Name: "Border War", Belligerents: []ActorID{ActorRival}, Escalation: 2, Fronts: []string{"north"}}, VisHidden, "test"))

	b1, err := Encode(w)
	require.NoError(t, err)

	decoded, err := Decode(b1)
	require.NoError(t, err)

	b2, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, b1, b2, "round-trip must be byte-stable")

	// The random stream must survive the trip exactly.
	require.Equal(t, w.Rng.S, decoded.Rng.S)
	assert.Equal(t, w.Rng.NextUint32(), decoded.Rng.NextUint32())
}

func TestDecodeRejectsMissingRng(t *testing.T) {
	_, err := Decode([]byte(`{"turn": 1}`))
	require.Error(t, err)

	_, err = Decode([]byte(`not json`))
	require.Error(t, err)
}

func TestSanitizedStripsHiddenPayload(t *testing.T) {
	e := IncomingEvent{
		ID:       "ev-1",
		Type:     EventLeak,
		Headline: "headline",
		Ops:      []EffectOp{Delta(KeyUnrest, 3, VisHidden, "hidden")},
		Scheduled: []ScheduledConsequence{
			{ID: "sc-1", DueTurn: 2, Kind: ConsInflationLag},
		},
	}
	s := e.Sanitized()
	assert.Nil(t, s.Ops)
	assert.Nil(t, s.Scheduled)
	assert.Equal(t, "headline", s.Headline)
	// Original untouched.
	assert.Len(t, e.Ops, 1)
}
