package engine

import (
	"fmt"

	"github.com/talgya/statecraft/internal/state"
)

// eliteSplitCapPerTurn limits how many ELITE_SPLIT_RISK consequences can land
// in one turn. Without the cap a bad turn can chain cohesion losses into an
// unrecoverable collapse in a single resolution.
const eliteSplitCapPerTurn = 1

// ApplyScheduledConsequences pops every consequence with DueTurn <= turn,
// applies its effect through the effect gateway, and returns flavor text for
// each that landed. A due consequence is consumed exactly once whether or not
// its probabilistic effect fires.
func ApplyScheduledConsequences(w *state.WorldState) []string {
	var landed []string
	var remaining []state.ScheduledConsequence
	eliteSplits := 0

	for _, c := range w.Scheduled {
		if c.DueTurn > w.Turn {
			remaining = append(remaining, c)
			continue
		}
		if c.Kind == state.ConsEliteSplitRisk {
			if eliteSplits >= eliteSplitCapPerTurn {
				// Consumed without landing: the cap absorbed it.
				continue
			}
			eliteSplits++
		}
		if note := landConsequence(w, c); note != "" {
			landed = append(landed, note)
		}
	}
	w.Scheduled = remaining
	return landed
}

func landConsequence(w *state.WorldState, c state.ScheduledConsequence) string {
	switch c.Kind {
	case state.ConsSanctionsBite:
		// Activation is probabilistic, scaled by severity. A due package can
		// still stall in committee.
		if !w.Global.SanctionsActive {
			if !w.Rng.Chance(0.35 + 0.55*c.Severity) {
				return fmt.Sprintf("%s stalls short of adoption.", c.Note)
			}
			state.Apply(w, state.SetSanctions(true, state.VisPublic, c.Note))
		}
		state.ApplyAll(w, []state.EffectOp{
			state.Delta(state.KeyGlobalTrade, -c.Magnitude, state.VisHidden, "sanctions constrict trade"),
			state.Delta(state.KeyEconStability, -0.6*c.Magnitude, state.VisHidden, "sanctions bite the real economy"),
			state.Delta(state.KeyInflation, 0.5*c.Magnitude, state.VisHidden, "import costs climb under sanctions"),
		})
		return fmt.Sprintf("Sanctions take hold: %s.", c.Note)

	case state.ConsWarFatigue:
		state.ApplyAll(w, []state.EffectOp{
			state.Delta(state.KeyWarSupport, -c.Magnitude, state.VisHidden, "the war grinds on"),
			state.Delta(state.KeyPublicApproval, -0.5*c.Magnitude, state.VisHidden, "funerals reach more districts"),
		})
		return "War fatigue deepens; support for the fighting erodes."

	case state.ConsInsurgencySpike:
		for _, conflict := range w.Conflicts {
			conflict.InsurgencyRisk = clampConflict(conflict.InsurgencyRisk + c.Magnitude)
		}
		state.Apply(w, state.Delta(state.KeyUnrest, 0.6*c.Magnitude, state.VisHidden, "insurgent activity spills inward"))
		return "Insurgent cells step up attacks in contested districts."

	case state.ConsInflationLag:
		state.Apply(w, state.Delta(state.KeyInflation, c.Magnitude, state.VisHidden, c.Note))
		return "Earlier spending reaches the price index."

	case state.ConsEliteSplitRisk:
		if w.Rng.Chance(0.30 + 0.5*c.Severity) {
			state.ApplyAll(w, []state.EffectOp{
				state.Delta(state.KeyEliteCohesion, -c.Magnitude, state.VisHidden, c.Note),
				state.Delta(state.KeyMilitaryLoyalty, -0.4*c.Magnitude, state.VisHidden, "officers take sides"),
			})
			return "A faction of the inner circle breaks ranks."
		}
		return "Grumbling in the inner circle stays private, for now."

	case state.ConsIntelRevelation:
		state.ApplyAll(w, []state.EffectOp{
			state.Delta(state.KeyLegitimacy, -c.Magnitude, state.VisHidden, c.Note),
			state.Delta(state.KeyGlobalCredibility, -0.8*c.Magnitude, state.VisHidden, "exposure costs standing abroad"),
			state.Delta(state.KeyGlobalAttention, 0.6*c.Magnitude, state.VisPublic, "the revelation makes front pages"),
		})
		if c.Actor != "" {
			state.Apply(w, state.DeltaActor(c.Actor, state.FieldTrust, -c.Magnitude, state.VisHidden, c.Note))
		}
		return fmt.Sprintf("Exposed: %s.", c.Note)

	case state.ConsTradeDividend:
		state.ApplyAll(w, []state.EffectOp{
			state.Delta(state.KeyGlobalTrade, c.Magnitude, state.VisHidden, c.Note),
			state.Delta(state.KeyEconStability, 0.5*c.Magnitude, state.VisHidden, "trade flows support output"),
		})
		return fmt.Sprintf("Trade dividend arrives: %s.", c.Note)

	case state.ConsEnergyDividend:
		state.ApplyAll(w, []state.EffectOp{
			state.Delta(state.KeyGlobalEnergy, c.Magnitude, state.VisHidden, c.Note),
			state.Delta(state.KeyEconStability, 0.4*c.Magnitude, state.VisHidden, "cheaper energy eases input costs"),
		})
		return fmt.Sprintf("Energy dividend arrives: %s.", c.Note)

	default:
		panic(fmt.Sprintf("engine: unknown consequence kind %q", c.Kind))
	}
}

// mergeScheduled appends new consequences to the world queue, skipping ids
// already present. Both resolvers can surface entries derived from the same
// pre-turn queue, so the merge must be idempotent per id.
func mergeScheduled(w *state.WorldState, batches ...[]state.ScheduledConsequence) {
	seen := make(map[string]bool, len(w.Scheduled))
	for _, c := range w.Scheduled {
		seen[c.ID] = true
	}
	for _, batch := range batches {
		for _, c := range batch {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			w.Scheduled = append(w.Scheduled, c)
		}
	}
}
