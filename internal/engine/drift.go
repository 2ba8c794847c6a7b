package engine

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/statecraft/internal/mathx"
	"github.com/talgya/statecraft/internal/state"
)

// Noise channel offsets for the global index curves. Fixed constants: the
// three curves must be independent samples of the same seeded field.
const (
	noiseChanTrade  = 0.0
	noiseChanEnergy = 17.3
	noiseStep       = 0.35
)

// ApplyBaselineDrift applies the continuous background change every turn:
// economic erosion, unrest and legitimacy pressure, sovereignty slippage,
// smooth global-index movement, the grind of any active wars, and the slower
// realignment of foreign postures, including the outbreak of a new war.
// Returns short notes for drifts worth telling the player about.
func ApplyBaselineDrift(w *state.WorldState) []string {
	var notes []string

	notes = append(notes, driftEconomy(w)...)
	notes = append(notes, driftPolitics(w)...)
	driftGlobalIndices(w)
	notes = append(notes, driftConflicts(w)...)
	notes = append(notes, driftPostures(w)...)
	notes = append(notes, driftWarOutbreak(w)...)
	notes = append(notes, driftClientStateRisk(w)...)

	return notes
}

// Posture thresholds. Relationship scalars move every turn through events,
// actions, and consequences; postures follow them with hysteresis so a single
// good or bad week does not flip an alignment.
const (
	hostileTrustCeiling   = 22
	hostileEscFloor       = 65
	detenteTrustFloor     = 55
	friendlyTrustFloor    = 75
	friendlyCommitFloor   = 60
	estrangedTrustCeiling = 45
)

// driftPostures realigns actor postures against the relationship scalars, in
// canonical actor order. No draws: flips are pure threshold crossings.
func driftPostures(w *state.WorldState) []string {
	var notes []string
	for _, id := range state.AllActors() {
		a := w.Actors[id]
		switch a.Posture {
		case state.PostureHostile:
			if a.Trust >= detenteTrustFloor {
				state.Apply(w, state.SetPosture(id, state.PostureNeutral, state.VisPublic, "detente takes hold"))
				notes = append(notes, fmt.Sprintf("%s has stepped back from open hostility.", a.Name))
			}
		case state.PostureNeutral:
			if a.Trust <= hostileTrustCeiling && a.EscalationWillingness >= hostileEscFloor {
				state.Apply(w, state.SetPosture(id, state.PostureHostile, state.VisPublic, "relations rupture"))
				notes = append(notes, fmt.Sprintf("%s has turned openly hostile.", a.Name))
			} else if a.Trust >= friendlyTrustFloor && a.AllianceCommitment >= friendlyCommitFloor {
				state.Apply(w, state.SetPosture(id, state.PostureFriendly, state.VisPublic, "partnership deepens"))
				notes = append(notes, fmt.Sprintf("%s now counts itself a partner of your government.", a.Name))
			}
		case state.PostureFriendly:
			if a.Trust <= estrangedTrustCeiling {
				state.Apply(w, state.SetPosture(id, state.PostureNeutral, state.VisPublic, "the partnership cools"))
				notes = append(notes, fmt.Sprintf("%s has cooled toward your government.", a.Name))
			}
		}
	}
	return notes
}

// driftWarOutbreak lets a hostile rival start a shooting war. The risk builds
// from the rival's escalation appetite and collapsed trust, scaled by border
// tension; at the extremes the outbreak is certain.
func driftWarOutbreak(w *state.WorldState) []string {
	if len(w.Conflicts) > 0 {
		return nil
	}
	rival := w.Actors[state.ActorRival]
	if rival.Posture != state.PostureHostile {
		return nil
	}

	risk := mathx.Clamp01((rival.EscalationWillingness - 60) / 40)
	risk *= mathx.Clamp01((100 - rival.Trust) / 80)
	risk *= 0.25 + 0.75*mathx.Clamp01(w.Player.Tensions.Border/100)
	if !w.Rng.Chance(risk) {
		return nil
	}

	level := 1 + int(rival.EscalationWillingness/25)
	fronts := []string{"main frontier"}
	if level >= 3 {
		fronts = append(fronts, "secondary axis")
	}
	state.Apply(w, state.StartConflict(state.ConflictSpec{
		ID:           fmt.Sprintf("war-%d", w.Turn),
		Name:         fmt.Sprintf("Border war with %s", rival.Name),
		Belligerents: []state.ActorID{state.ActorRival},
		Escalation:   level,
		Fronts:       fronts,
	}, state.VisPublic, "border war erupts"))
	state.ApplyAll(w, []state.EffectOp{
		state.Delta(state.KeyWarSupport, 8, state.VisHidden, "the flag rallies the public, for now"),
		state.Delta(state.KeyGlobalAttention, 12, state.VisPublic, "the war leads every bulletin"),
	})
	return []string{fmt.Sprintf("%s forces crossed the frontier; a shooting war has begun.", rival.Name)}
}

// driftClientStateRisk models the quiet coup: with sovereignty nearly spent
// and the inner circle fraying, a hostile power can install a client
// government. Sets the puppet flag, which failure detection reads this same
// turn.
func driftClientStateRisk(w *state.WorldState) []string {
	p := &w.Player
	if p.Puppet {
		return nil
	}
	hostile := false
	for _, id := range state.AllActors() {
		if w.Actors[id].Posture == state.PostureHostile {
			hostile = true
			break
		}
	}
	if !hostile || p.Politics.Sovereignty > 30 || p.Politics.EliteCohesion > 45 {
		return nil
	}

	risk := mathx.Clamp01((30 - p.Politics.Sovereignty) / 12)
	risk *= mathx.Clamp01((45 - p.Politics.EliteCohesion) / 30)
	if !w.Rng.Chance(risk) {
		return nil
	}
	state.Apply(w, state.SetFlag(state.FlagPuppet, true, state.VisHidden, "a client government takes office"))
	return []string{"Ministers you did not appoint now clear their decisions abroad."}
}

func driftEconomy(w *state.WorldState) []string {
	var notes []string
	p := &w.Player

	erosion := 0.025*(p.Economy.DebtStress-50) + 0.03*(p.Economy.Inflation-45)
	if w.Global.SanctionsActive {
		erosion += 1.5
	}
	if erosion > 0 {
		// Damp erosion when stability is already critical so the spiral
		// stays escapable.
		if p.Economy.Stability < 20 {
			erosion *= 0.5
		}
		state.Apply(w, state.Delta(state.KeyEconStability, -erosion, state.VisHidden, "structural pressure erodes stability"))
		if erosion > 1.5 {
			notes = append(notes, "The economy is visibly deteriorating under debt and price pressure.")
		}
	}
	return notes
}

func driftPolitics(w *state.WorldState) []string {
	var notes []string
	p := &w.Player

	unrestRise := 0.04*(p.Economy.Inflation-40) + 0.05*(52-p.Economy.Stability)
	if unrestRise > 0 {
		state.Apply(w, state.Delta(state.KeyUnrest, unrestRise, state.VisHidden, "grievances accumulate"))
	}

	legitDrift := 0.03*(p.Economy.Stability-50) - 0.03*(p.Politics.Corruption-50) - 0.04*(p.Politics.Unrest-40)
	state.Apply(w, state.Delta(state.KeyLegitimacy, legitDrift, state.VisHidden, "standing shifts with conditions"))

	sovSlip := 0.03*(w.Global.Attention-40) + 0.03*(50-w.Player.Military.Readiness)
	if sovSlip > 0 {
		state.Apply(w, state.Delta(state.KeySovereignty, -sovSlip, state.VisHidden, "external leverage accumulates"))
		if sovSlip > 1.2 {
			notes = append(notes, "Foreign leverage over your government is growing.")
		}
	}
	return notes
}

// driftGlobalIndices moves trade and energy along smooth seeded noise curves
// sampled at the turn number, and relaxes global attention toward its resting
// level. The curves are a function of (noise seed, turn) only, so replays
// agree.
func driftGlobalIndices(w *state.WorldState) {
	noise := opensimplex.NewNormalized(w.NoiseSeed)
	x := float64(w.Turn) * noiseStep

	tradeTarget := 30 + 40*noise.Eval2(x, noiseChanTrade)
	energyTarget := 30 + 40*noise.Eval2(x, noiseChanEnergy)
	if w.Global.SanctionsActive {
		tradeTarget -= 12
	}

	state.Apply(w, state.Delta(state.KeyGlobalTrade, 0.25*(tradeTarget-w.Global.Trade), state.VisHidden, "trade cycles turn"))
	state.Apply(w, state.Delta(state.KeyGlobalEnergy, 0.25*(energyTarget-w.Global.Energy), state.VisHidden, "energy markets move"))
	state.Apply(w, state.Delta(state.KeyGlobalAttention, -0.12*(w.Global.Attention-20), state.VisHidden, "the news cycle moves on"))
}

func driftConflicts(w *state.WorldState) []string {
	if len(w.Conflicts) == 0 {
		return nil
	}
	var notes []string
	totalEsc := 0

	for _, c := range w.Conflicts {
		esc := float64(c.Escalation)
		totalEsc += c.Escalation
		for i := range c.Fronts {
			f := &c.Fronts[i]
			f.Intensity = clampConflict(f.Intensity + 1.5*esc)
			c.Attrition = clampConflict(c.Attrition + 0.8*esc)
			c.CivilianHarm = clampConflict(c.CivilianHarm + 0.5*esc)
			c.InsurgencyRisk = clampConflict(c.InsurgencyRisk + 0.3*esc)
		}
		c.Casualties += w.Rng.IntRange(20, 60) * c.Escalation

		state.ApplyAll(w, []state.EffectOp{
			state.Delta(state.KeyMilReadiness, -0.5*esc, state.VisHidden, "combat consumes readiness"),
			state.Delta(state.KeyMilLogistics, -0.4*esc, state.VisHidden, "supply lines wear down"),
			state.Delta(state.KeyEconStability, -0.3*esc, state.VisHidden, "the war economy distorts output"),
		})
	}
	notes = append(notes, "Fighting continues; attrition and civilian harm mount.")

	// Keep exactly one WAR_FATIGUE consequence pending while any war burns.
	fatiguePending := false
	for _, c := range w.Scheduled {
		if c.Kind == state.ConsWarFatigue {
			fatiguePending = true
			break
		}
	}
	if !fatiguePending {
		w.Scheduled = append(w.Scheduled, state.ScheduledConsequence{
			ID:        fmt.Sprintf("sc-drift-%d-fatigue", w.Turn),
			DueTurn:   w.Turn + 1,
			Kind:      state.ConsWarFatigue,
			Severity:  0.5,
			Magnitude: 2 + 0.8*float64(totalEsc),
			Note:      "prolonged fighting",
		})
	}

	// Rare catastrophic collapse: probability scales with average escalation
	// and military weakness. Sets the capital-occupied flag and crushes
	// sovereignty to at most 15, the doorstep of failure.
	if !w.Player.CapitalOccupied {
		avgEsc := float64(totalEsc) / float64(len(w.Conflicts))
		weakness := mathx.Clamp01((55 - w.Player.Military.Readiness) / 55)
		p := 0.002 * avgEsc * (1 + 2*weakness)
		if w.Rng.Chance(p) {
			state.Apply(w, state.SetFlag(state.FlagCapitalOccupied, true, state.VisPublic, "enemy columns enter the capital"))
			if over := w.Player.Politics.Sovereignty - 15; over > 0 {
				state.Apply(w, state.Delta(state.KeySovereignty, -over, state.VisHidden, "occupation ends effective self-rule"))
			}
			notes = append(notes, "Enemy forces have entered the capital.")
		}
	}
	return notes
}

// clampConflict bounds a conflict scalar to 0–100. Conflict-internal fields
// are the one family outside the effect whitelist; drift owns them and clamps
// on every write.
func clampConflict(v float64) float64 {
	return mathx.Round1(mathx.Clamp100(v))
}
