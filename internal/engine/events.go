package engine

import (
	"fmt"

	"github.com/talgya/statecraft/internal/rng"
	"github.com/talgya/statecraft/internal/state"
)

// EventOptions tunes turn-start event generation.
type EventOptions struct {
	// ForcePressureEvent guarantees the international pressure slot fires.
	// Set for turn 1 so every new game opens under credible pressure.
	ForcePressureEvent bool
}

// GenerateIncomingEvents builds this turn's incoming events: at most one
// international pressure event, one domestic event, and an occasional
// security incident. It constructs data only; nothing here mutates the world
// beyond consuming random draws.
func GenerateIncomingEvents(w *state.WorldState, opts EventOptions) []state.IncomingEvent {
	var events []state.IncomingEvent
	seq := 0
	nextID := func() string {
		seq++
		return fmt.Sprintf("ev-%d-%d", w.Turn, seq)
	}

	if opts.ForcePressureEvent || w.Rng.Chance(0.75) {
		events = append(events, pressureEvent(w, nextID()))
	}
	events = append(events, domesticEvent(w, nextID()))
	if w.Rng.Chance(0.65) {
		events = append(events, securityEvent(w, nextID()))
	}
	return events
}

// pressureTarget prefers a currently hostile actor, in canonical order, and
// falls back to a random major power.
func pressureTarget(w *state.WorldState) state.ActorID {
	for _, id := range state.AllActors() {
		if w.Actors[id].Posture == state.PostureHostile {
			return id
		}
	}
	return rng.Pick(w.Rng, state.MajorPowers())
}

func pressureEvent(w *state.WorldState, id string) state.IncomingEvent {
	target := pressureTarget(w)
	name := w.Actors[target].Name

	switch w.Rng.IntRange(0, 2) {
	case 0: // sanctions warning
		severity := 0.4 + 0.5*w.Rng.Float01()
		return state.IncomingEvent{
			ID:       id,
			Type:     state.EventSanctionsWarning,
			Target:   target,
			Headline: fmt.Sprintf("%s circulates draft sanctions resolution", name),
			Body: fmt.Sprintf("Diplomats report %s is canvassing support for restrictive measures against your government, citing recent conduct. A decision is said to be weeks away.", name),
			Ops: []state.EffectOp{
				state.Delta(state.KeyGlobalAttention, 6, state.VisPublic, "sanctions debate draws scrutiny"),
				state.DeltaActor(target, state.FieldSanctionsPolicy, 8, state.VisHidden, "sanctions coalition forming"),
				state.DeltaActor(target, state.FieldTrust, -4, state.VisHidden, "relations sour over sanctions push"),
			},
			Scheduled: []state.ScheduledConsequence{{
				ID:        fmt.Sprintf("sc-gen-%d-%s", w.Turn, id),
				DueTurn:   w.Turn + w.Rng.IntRange(1, 2),
				Kind:      state.ConsSanctionsBite,
				Severity:  severity,
				Magnitude: 6 + 6*severity,
				Actor:     target,
				Note:      fmt.Sprintf("%s sanctions package", name),
			}},
		}
	case 1: // IMF contact
		return state.IncomingEvent{
			ID:       id,
			Type:     state.EventIMFContact,
			Target:   target,
			Headline: "IMF mission requests urgent consultations",
			Body: "A fund delegation has asked for access to treasury accounts before discussing any standby arrangement. Creditor governments are watching the response.",
			Ops: []state.EffectOp{
				state.Delta(state.KeyGlobalAttention, 4, state.VisPublic, "IMF consultations make headlines"),
				state.Delta(state.KeyDebtStress, 3, state.VisHidden, "markets price in program conditions"),
				state.DeltaActor(target, state.FieldDomesticPressure, 5, state.VisHidden, "creditor capitals demand conditionality"),
			},
		}
	default: // alliance signal
		return state.IncomingEvent{
			ID:       id,
			Type:     state.EventAllianceSignal,
			Target:   target,
			Headline: fmt.Sprintf("%s hints at security guarantees for your neighbors", name),
			Body: fmt.Sprintf("Officials from %s spoke of 'extended commitments' in your region. Analysts read it as a signal aimed squarely at your capital.", name),
			Ops: []state.EffectOp{
				state.Delta(state.KeyGlobalAttention, 5, state.VisPublic, "alliance signaling raises the stakes"),
				state.DeltaActor(target, state.FieldAllianceCommitment, 7, state.VisHidden, "commitments harden"),
				state.Delta(state.KeySovereignty, -2, state.VisHidden, "regional alignment narrows your room to maneuver"),
			},
		}
	}
}

func domesticEvent(w *state.WorldState, id string) state.IncomingEvent {
	if w.Rng.Chance(0.70) { // unrest protest
		city := rng.Pick(w.Rng, []string{"the capital", "the second city", "the port district", "the university quarter"})
		return state.IncomingEvent{
			ID:       id,
			Type:     state.EventUnrestProtest,
			Headline: fmt.Sprintf("Protests swell in %s", city),
			Body: fmt.Sprintf("Crowds in %s turned out over prices and layoffs. Organizers promise to return next week; the interior ministry disagrees about the count.", city),
			Ops: []state.EffectOp{
				state.Delta(state.KeyUnrest, 4, state.VisPublic, "street protests spread"),
				state.Delta(state.KeyPublicApproval, -2, state.VisHidden, "discontent hardens"),
				state.Delta(state.KeyGlobalAttention, 2, state.VisHidden, "foreign desks pick up the story"),
			},
		}
	}
	return state.IncomingEvent{
		ID:       id,
		Type:     state.EventLeak,
		Headline: "Leaked documents embarrass the government",
		Body: "A foreign outlet published internal memos on procurement irregularities. The presidency calls them fabricated; the byline says otherwise.",
		Ops: []state.EffectOp{
			state.Delta(state.KeyLegitimacy, -3, state.VisPublic, "leak undermines the government's standing"),
			state.Delta(state.KeyCorruption, 2, state.VisHidden, "networks exposed keep operating"),
			state.Delta(state.KeyGlobalAttention, 3, state.VisHidden, "the story travels"),
		},
	}
}

func securityEvent(w *state.WorldState, id string) state.IncomingEvent {
	switch w.Rng.IntRange(0, 2) {
	case 0:
		rival := w.Actors[state.ActorRival].Name
		return state.IncomingEvent{
			ID:       id,
			Type:     state.EventBorderIncident,
			Target:   state.ActorRival,
			Headline: "Exchange of fire reported on the frontier",
			Body: fmt.Sprintf("A patrol skirmish near the demarcation line left casualties unconfirmed on both sides. The %s denies its units crossed first.", rival),
			Ops: []state.EffectOp{
				state.Delta(state.KeyGlobalAttention, 4, state.VisPublic, "border incident draws attention"),
				state.DeltaActor(state.ActorRival, state.FieldEscalationWillingness, 5, state.VisHidden, "hardliners gain ground across the border"),
				state.Delta(state.KeyMilReadiness, -2, state.VisHidden, "units rotate forward ahead of schedule"),
			},
		}
	case 1:
		return state.IncomingEvent{
			ID:       id,
			Type:     state.EventCyberIntrusion,
			Headline: "Intrusion detected in government networks",
			Body: "The cyber directorate found implants in two ministries' systems. Attribution is pending; exfiltration already happened.",
			Ops: []state.EffectOp{
				state.Delta(state.KeyGlobalAttention, 2, state.VisPublic, "breach disclosed"),
				state.Delta(state.KeySovereignty, -2, state.VisHidden, "foreign services read your cables"),
				state.Delta(state.KeyEliteCohesion, -2, state.VisHidden, "ministers blame each other for the breach"),
			},
		}
	default:
		return state.IncomingEvent{
			ID:       id,
			Type:     state.EventArmsInterdiction,
			Headline: "Arms shipment seized in transit",
			Body: "A third-country port impounded a cargo of spare parts bound for your air-defense units, citing end-user certificate problems.",
			Ops: []state.EffectOp{
				state.Delta(state.KeyGlobalAttention, 3, state.VisPublic, "interdiction reported"),
				state.Delta(state.KeyMilLogistics, -4, state.VisHidden, "spares pipeline interrupted"),
				state.Delta(state.KeyMilReadiness, -2, state.VisHidden, "maintenance backlog grows"),
			},
		}
	}
}
