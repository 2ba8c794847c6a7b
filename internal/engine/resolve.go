package engine

import (
	"fmt"

	"github.com/talgya/statecraft/internal/state"
)

// ResolveResult is the output of resolving either incoming events or player
// actions: effect ops partitioned by visibility (not yet applied), newly
// scheduled consequences, player-visible consequence text, and hints about
// outcomes the player is told remain uncertain.
type ResolveResult struct {
	PublicOps          []state.EffectOp
	HiddenOps          []state.EffectOp
	Scheduled          []state.ScheduledConsequence
	PublicConsequences []string
	SignalsUnknown     []string
}

func (r *ResolveResult) addOp(op state.EffectOp) {
	if op.Visibility == state.VisPublic {
		r.PublicOps = append(r.PublicOps, op)
	} else {
		r.HiddenOps = append(r.HiddenOps, op)
	}
}

func (r *ResolveResult) addOps(ops ...state.EffectOp) {
	for _, op := range ops {
		r.addOp(op)
	}
}

// ResolveIncomingEvents translates this turn's events into effect operations.
// The hidden payload of each event is taken as-is; public consequence text is
// derived from the public ops so the player learns exactly what was announced
// and nothing more.
func ResolveIncomingEvents(w *state.WorldState, events []state.IncomingEvent) ResolveResult {
	var res ResolveResult
	for _, e := range events {
		for _, op := range e.Ops {
			res.addOp(op)
			if op.Visibility == state.VisPublic {
				res.PublicConsequences = append(res.PublicConsequences,
					fmt.Sprintf("%s: %s.", e.Headline, op.Reason))
			}
		}
		res.Scheduled = append(res.Scheduled, e.Scheduled...)
		if hint := eventSignal(e); hint != "" {
			res.SignalsUnknown = append(res.SignalsUnknown, hint)
		}
	}
	return res
}

// eventSignal is the uncertainty hint surfaced for an event whose full payload
// stays hidden.
func eventSignal(e state.IncomingEvent) string {
	switch e.Type {
	case state.EventSanctionsWarning:
		return "How far the sanctions coalition will go remains unclear."
	case state.EventIMFContact:
		return "The fund's real conditions have not been communicated."
	case state.EventAllianceSignal:
		return "Whether the security guarantees are real or rhetorical cannot be confirmed."
	case state.EventUnrestProtest:
		return "Organizers' next move is unknown; infiltration reports conflict."
	case state.EventLeak:
		return "The source of the leak has not been identified."
	case state.EventBorderIncident:
		return "It is unclear who fired first, and whether it will happen again."
	case state.EventCyberIntrusion:
		return "The full extent of the exfiltration is unknown."
	case state.EventArmsInterdiction:
		return "Whether other shipments are flagged cannot be determined."
	default:
		return ""
	}
}

// ResolvePlayerActions converts submitted directives into effect operations.
// Magnitudes scale with intensity; a privately flagged action pushes all of
// its ops to hidden and reports through signals instead of consequences.
// Callers must have validated the actions first.
func ResolvePlayerActions(w *state.WorldState, actions []PlayerAction) ResolveResult {
	var res ResolveResult
	seq := 0
	nextID := func() string {
		seq++
		return fmt.Sprintf("sc-act-%d-%d", w.Turn, seq)
	}
	for _, a := range actions {
		resolveAction(w, a, &res, nextID)
	}
	return res
}

// vis returns the intended visibility, downgraded to hidden for private
// actions.
func vis(a PlayerAction, intended state.Visibility) state.Visibility {
	if a.Visibility == state.VisHidden {
		return state.VisHidden
	}
	return intended
}

// announce records consequence text for a public action, or an uncertainty
// signal for a private one.
func announce(a PlayerAction, res *ResolveResult, public, covert string) {
	if a.Visibility == state.VisPublic {
		res.PublicConsequences = append(res.PublicConsequences, public)
	} else if covert != "" {
		res.SignalsUnknown = append(res.SignalsUnknown, covert)
	}
}

func resolveAction(w *state.WorldState, a PlayerAction, res *ResolveResult, nextID func() string) {
	k := float64(a.Intensity)
	switch a.Type {
	case ActSubsidies:
		res.addOps(
			state.Delta(state.KeyEconStability, 2.0*k, vis(a, state.VisPublic), "subsidies cushion household budgets"),
			state.Delta(state.KeyPublicApproval, 1.5*k, vis(a, state.VisPublic), "subsidies are popular"),
			state.Delta(state.KeyDebtStress, 1.8*k, state.VisHidden, "the treasury borrows to fund subsidies"),
		)
		res.Scheduled = append(res.Scheduled, state.ScheduledConsequence{
			ID: nextID(), DueTurn: w.Turn + 2, Kind: state.ConsInflationLag,
			Severity: 0.5 + 0.15*k, Magnitude: 1.2 * k,
			Note: "subsidy spending feeds through to prices",
		})
		announce(a, res, "Consumer subsidies expanded; queues at fuel stations shortened within days.",
			"Quiet subsidy channels opened; fiscal cost concealed for now.")

	case ActAusterity:
		res.addOps(
			state.Delta(state.KeyDebtStress, -2.2*k, vis(a, state.VisPublic), "spending cuts ease debt pressure"),
			state.Delta(state.KeyPublicApproval, -1.6*k, state.VisHidden, "cuts bite household incomes"),
			state.Delta(state.KeyUnrest, 1.2*k, state.VisHidden, "austerity stokes anger"),
		)
		announce(a, res, "Austerity package announced; creditors signal cautious approval.",
			"Spending quietly trimmed across ministries.")

	case ActPriceControls:
		res.addOps(
			state.Delta(state.KeyInflation, -2.0*k, vis(a, state.VisPublic), "controlled prices slow the index"),
			state.Delta(state.KeyEconStability, -0.8*k, state.VisHidden, "shortages form in controlled goods"),
			state.Delta(state.KeyUnemployment, 0.8*k, state.VisHidden, "retailers shed staff under margin pressure"),
		)
		announce(a, res, "Price ceilings decreed on staple goods.",
			"Informal price guidance issued to major retailers.")

	case ActDebtRestructuring:
		res.addOps(
			state.Delta(state.KeyDebtStress, -2.5*k, vis(a, state.VisPublic), "restructuring talks reprofile maturities"),
			state.Delta(state.KeyGlobalCredibility, -1.2*k, state.VisHidden, "markets read restructuring as distress"),
		)
		if w.Rng.Chance(0.35 + 0.1*k) {
			res.Scheduled = append(res.Scheduled, state.ScheduledConsequence{
				ID: nextID(), DueTurn: w.Turn + 2, Kind: state.ConsTradeDividend,
				Severity: 0.6, Magnitude: 1.5 * k,
				Note: "restructuring unlocks trade finance",
			})
		}
		announce(a, res, "Debt restructuring talks opened with major creditors.",
			"Creditor soundings taken through intermediaries.")

	case ActMessage:
		resolveMessage(w, a, res)

	case ActConcession:
		res.addOps(
			state.DeltaActor(a.Target, state.FieldTrust, 3.0*k, vis(a, state.VisPublic), "concession lands well"),
			state.DeltaActor(a.Target, state.FieldDomesticPressure, -2.0*k, state.VisHidden, "their hawks lose a talking point"),
			state.Delta(state.KeySovereignty, -1.0*k, state.VisHidden, "a concession sets a precedent"),
			state.Delta(state.KeyWarSupport, -0.8*k, state.VisHidden, "nationalists read weakness"),
		)
		announce(a, res, fmt.Sprintf("Public concession offered to %s.", w.Actors[a.Target].Name),
			fmt.Sprintf("Private assurances conveyed to %s.", w.Actors[a.Target].Name))

	case ActBackchannel:
		res.addOps(
			state.DeltaActor(a.Target, state.FieldTrust, 1.8*k, state.VisHidden, "quiet contact rebuilds trust"),
		)
		if w.Rng.Chance(0.12 * float64(a.Intensity)) {
			// Back channels leak; the revelation lands later.
			res.Scheduled = append(res.Scheduled, state.ScheduledConsequence{
				ID: nextID(), DueTurn: w.Turn + 1, Kind: state.ConsIntelRevelation,
				Severity: 0.7, Magnitude: 2.0 * k,
				Actor: a.Target, Note: "back-channel contact exposed",
			})
		}
		res.SignalsUnknown = append(res.SignalsUnknown,
			fmt.Sprintf("Whether the channel to %s holds, and who else knows of it, is uncertain.", w.Actors[a.Target].Name))

	case ActCrackdown:
		res.addOps(
			state.Delta(state.KeyUnrest, -2.5*k, vis(a, state.VisPublic), "security forces clear the squares"),
			state.Delta(state.KeyLegitimacy, -1.2*k, state.VisHidden, "force delegitimizes the government"),
			state.Delta(state.KeyGlobalAttention, 1.5*k, vis(a, state.VisPublic), "crackdown footage circulates abroad"),
			state.DeltaActor(state.ActorEU, state.FieldDomesticPressure, 1.5*k, state.VisHidden, "European publics demand a response"),
		)
		if a.Intensity >= 3 {
			res.Scheduled = append(res.Scheduled, state.ScheduledConsequence{
				ID: nextID(), DueTurn: w.Turn + 1, Kind: state.ConsEliteSplitRisk,
				Severity: 0.6, Magnitude: 4,
				Note: "hard crackdown unsettles the inner circle",
			})
		}
		announce(a, res, "Security crackdown ordered; the squares are quiet tonight.",
			"Selective detentions carried out away from cameras.")

	case ActMobilize:
		res.addOps(
			state.Delta(state.KeyMilReadiness, 2.0*k, vis(a, state.VisPublic), "reserves report to depots"),
			state.Delta(state.KeyGlobalAttention, 1.2*k, vis(a, state.VisPublic), "mobilization is noticed"),
			state.Delta(state.KeyEconStability, -0.6*k, state.VisHidden, "workers leave payrolls for barracks"),
			state.DeltaActor(state.ActorRival, state.FieldEscalationWillingness, 1.5*k, state.VisHidden, "across the border, mobilization reads as threat"),
		)
		announce(a, res, "Reserve mobilization announced.", "Staged call-ups conducted under exercise cover.")

	case ActCyberOperation:
		res.addOps(
			state.DeltaActor(a.Target, state.FieldTrust, -1.5*k, state.VisHidden, "operation, if traced, will not be forgiven"),
			state.DeltaActor(a.Target, state.FieldEscalationWillingness, 1.0*k, state.VisHidden, "their services push for a response"),
		)
		if w.Rng.Chance(0.20 + 0.08*k) {
			res.Scheduled = append(res.Scheduled, state.ScheduledConsequence{
				ID: nextID(), DueTurn: w.Turn + w.Rng.IntRange(1, 2), Kind: state.ConsIntelRevelation,
				Severity: 0.8, Magnitude: 2.5 * k,
				Actor: a.Target, Note: "cyber operation attributed",
			})
		}
		res.SignalsUnknown = append(res.SignalsUnknown,
			"Results of the cyber operation are compartmented; attribution risk unknown.")

	case ActBorderReinforce:
		res.addOps(
			state.Delta(state.KeyMilReadiness, 1.2*k, vis(a, state.VisPublic), "frontier positions strengthened"),
			state.Delta(state.KeyMilLogistics, -0.8*k, state.VisHidden, "forward deployment strains supply"),
			state.DeltaActor(state.ActorRival, state.FieldEscalationWillingness, 1.2*k, state.VisHidden, "reinforcement invites mirroring"),
		)
		announce(a, res, "Border garrisons reinforced.", "Frontier units rotated forward without announcement.")

	case ActCampaign:
		res.addOps(
			state.Delta(state.KeyPublicApproval, 1.8*k, vis(a, state.VisPublic), "the campaign dominates the airwaves"),
			state.Delta(state.KeyMediaControl, 1.0*k, state.VisHidden, "friendly outlets consolidate"),
			state.Delta(state.KeyGlobalCredibility, -0.5*k, state.VisHidden, "foreign observers note the propaganda"),
		)
		announce(a, res, "National media campaign launched.", "Influence placements seeded across sympathetic outlets.")

	case ActCensor:
		res.addOps(
			state.Delta(state.KeyMediaControl, 2.5*k, vis(a, state.VisPublic), "editors receive new guidance"),
			state.Delta(state.KeyLegitimacy, -1.0*k, state.VisHidden, "censorship corrodes consent"),
			state.Delta(state.KeyUnrest, 0.8*k, state.VisHidden, "silenced grievances move to the street"),
		)
		announce(a, res, "Press restrictions tightened.", "Quiet takedowns and license reviews initiated.")

	default:
		// Unreachable after validation; the action vocabulary is closed.
		panic(fmt.Sprintf("engine: unhandled action type %q", a.Type))
	}
}

func resolveMessage(w *state.WorldState, a PlayerAction, res *ResolveResult) {
	k := float64(a.Intensity)
	target := w.Actors[a.Target]
	switch a.Tone {
	case ToneConciliatory:
		res.addOps(
			state.DeltaActor(a.Target, state.FieldTrust, 2.0*k, vis(a, state.VisPublic), "conciliatory signal received"),
			state.DeltaActor(a.Target, state.FieldDomesticPressure, -1.2*k, state.VisHidden, "their moderates gain an argument"),
			state.DeltaActor(a.Target, state.FieldCredibility, 1.0*k, state.VisHidden, "following through would cement credibility"),
		)
		announce(a, res, fmt.Sprintf("Conciliatory message delivered to %s on %s.", target.Name, a.Topic),
			fmt.Sprintf("A private conciliatory note reached %s; the reply is pending.", target.Name))
	case ToneFirm:
		res.addOps(
			state.DeltaActor(a.Target, state.FieldTrust, 0.5*k, state.VisHidden, "clarity is respected, barely"),
			state.Delta(state.KeyGlobalCredibility, 0.5*k, state.VisHidden, "a firm line is noted abroad"),
		)
		announce(a, res, fmt.Sprintf("Firm position communicated to %s on %s.", target.Name, a.Topic),
			fmt.Sprintf("A firm private message went to %s.", target.Name))
	case ToneDefiant:
		res.addOps(
			state.DeltaActor(a.Target, state.FieldTrust, -2.0*k, vis(a, state.VisPublic), "defiance lands badly"),
			state.DeltaActor(a.Target, state.FieldEscalationWillingness, 1.5*k, state.VisHidden, "their hardliners pocket the quote"),
			state.Delta(state.KeyWarSupport, 1.2*k, state.VisHidden, "defiance plays well at home"),
			state.Delta(state.KeyGlobalAttention, 1.0*k, vis(a, state.VisPublic), "the exchange makes headlines"),
		)
		announce(a, res, fmt.Sprintf("Defiant response issued to %s on %s.", target.Name, a.Topic),
			fmt.Sprintf("A defiant message was passed to %s out of public view.", target.Name))
	}
	res.SignalsUnknown = append(res.SignalsUnknown,
		fmt.Sprintf("How %s will actually respond is not yet known.", target.Name))
}
