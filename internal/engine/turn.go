package engine

import (
	"fmt"
	"strings"

	"github.com/talgya/statecraft/internal/state"
	"github.com/talgya/statecraft/internal/worldgen"
)

// TurnOptions configures one turn resolution.
type TurnOptions struct {
	// Author, when set, composes the next turn's briefing and may add one
	// extra event. Failures fall back to deterministic generation.
	Author NarrativeAuthor
	// ExternalTextMode leaves the next turn's briefing and events empty for
	// an external collaborator to fill before the following resolution.
	ExternalTextMode bool
}

// TurnOutcome is everything a turn resolution tells the caller.
type TurnOutcome struct {
	Turn                 int             `json:"turn"`
	Status               string          `json:"status"` // ACTIVE or FAILED
	PublicResolutionText string          `json:"publicResolutionText"`
	Consequences         []string        `json:"consequences"`
	SignalsUnknown       []string        `json:"signalsUnknown"`
	Landed               []string        `json:"landed,omitempty"`
	DriftNotes           []string        `json:"driftNotes,omitempty"`
	Failure              *FailureDetails `json:"failure,omitempty"`
}

// CreateNewGameWorld builds the complete starting world for a seed: hidden
// truth plus the turn-1 briefing with a guaranteed pressure event.
func CreateNewGameWorld(seed string) *state.WorldState {
	w := worldgen.NewWorld(seed)
	RefreshBriefing(w, EventOptions{ForcePressureEvent: true}, nil, false)
	return w
}

// SubmitTurnAndAdvance resolves one full turn against the world in place:
// resolve events, resolve actions, merge and dedupe scheduled consequences,
// apply public ops then hidden ops, land due consequences, drift, detect
// failure, and (if still alive) advance the turn and stage the next briefing.
//
// Input validation happens before any mutation; on error the world is
// untouched. A world already failed rejects with ErrGameOver.
func SubmitTurnAndAdvance(w *state.WorldState, actions []PlayerAction, opts TurnOptions) (*TurnOutcome, error) {
	if w.Failed {
		return nil, ErrGameOver
	}
	if err := ValidateActions(w, actions); err != nil {
		return nil, err
	}

	turn := w.Turn

	eventRes := ResolveIncomingEvents(w, w.Current.IncomingEvents)
	actionRes := ResolvePlayerActions(w, actions)

	mergeScheduled(w, eventRes.Scheduled, actionRes.Scheduled)

	// Deterministic application order: all public ops, then all hidden ops,
	// events before actions within each tier.
	state.ApplyAll(w, eventRes.PublicOps)
	state.ApplyAll(w, actionRes.PublicOps)
	state.ApplyAll(w, eventRes.HiddenOps)
	state.ApplyAll(w, actionRes.HiddenOps)

	landed := ApplyScheduledConsequences(w)
	driftNotes := ApplyBaselineDrift(w)

	consequences := append(append([]string{}, eventRes.PublicConsequences...), actionRes.PublicConsequences...)
	signals := append(append([]string{}, eventRes.SignalsUnknown...), actionRes.SignalsUnknown...)

	outcome := &TurnOutcome{
		Turn:                 turn,
		Status:               "ACTIVE",
		PublicResolutionText: buildResolutionText(turn, consequences, landed, driftNotes),
		Consequences:         consequences,
		SignalsUnknown:       signals,
		Landed:               landed,
		DriftNotes:           driftNotes,
	}

	if failure := EvaluateFailure(w); failure != nil {
		w.Failed = true
		w.FailureType = failure.Type
		outcome.Status = "FAILED"
		outcome.Failure = failure
		return outcome, nil
	}

	w.Turn++
	RefreshBriefing(w, EventOptions{}, opts.Author, opts.ExternalTextMode)
	return outcome, nil
}

func buildResolutionText(turn int, consequences, landed, driftNotes []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn %d resolution.\n", turn)
	for _, c := range consequences {
		b.WriteString("  ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	for _, l := range landed {
		b.WriteString("  ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	for _, d := range driftNotes {
		b.WriteString("  ")
		b.WriteString(d)
		b.WriteString("\n")
	}
	return b.String()
}
