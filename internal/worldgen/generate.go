package worldgen

import (
	"fmt"

	"github.com/talgya/statecraft/internal/mathx"
	"github.com/talgya/statecraft/internal/rng"
	"github.com/talgya/statecraft/internal/state"
)

// NewWorld builds the hidden world for one game from a seed string. The
// caller (the turn engine) is responsible for generating the turn-1 briefing
// and events afterward; this function only lays down the starting truth.
//
// Draw order is load-bearing: every call against the world's random stream
// happens in a fixed sequence, so identical seeds produce identical worlds.
func NewWorld(seed string) *state.WorldState {
	r := rng.Seed(seed)

	tpl := rng.Pick(r, catalogIndexes())
	t := catalog[tpl]

	w := &state.WorldState{
		Rng:  r,
		Seed: seed,
		Turn: 1,
	}
	// The drift curves sample seeded simplex noise at the turn number; the
	// noise seed is itself a stream draw so it varies with the game seed.
	w.NoiseSeed = int64(r.NextUint32())<<32 | int64(r.NextUint32())

	w.Player = rollPlayer(r, t)
	w.Actors = rollActors(r, t)
	w.Global = state.GlobalSystems{
		Trade:     drawRange(r, Range{45, 65}),
		Energy:    drawRange(r, Range{40, 60}),
		Attention: drawRange(r, Range{15, 35}),
	}
	w.Conflicts = []*state.ActiveConflict{}
	w.Scheduled = []state.ScheduledConsequence{}

	pickHostileActor(r, w)
	return w
}

func catalogIndexes() []int {
	idx := make([]int, len(catalog))
	for i := range catalog {
		idx[i] = i
	}
	return idx
}

func drawRange(r *rng.State, rg Range) float64 {
	return mathx.Round1(rg.Lo + r.Float01()*(rg.Hi-rg.Lo))
}

func rollPlayer(r *rng.State, t Template) state.PlayerCountryTrue {
	p := state.PlayerCountryTrue{
		Profile: state.CountryIdentity{
			Name:      rng.Pick(r, t.NamePool),
			Region:    t.Region,
			Regime:    rng.Pick(r, t.RegimePool),
			Geography: rng.Pick(r, t.GeoPool),
			Neighbors: rng.Pick(r, t.NeighborSets),
		},
		Economy: state.Economy{
			Stability:    drawRange(r, t.Econ.Stability),
			Inflation:    drawRange(r, t.Econ.Inflation),
			Unemployment: drawRange(r, t.Econ.Unemployment),
			DebtStress:   drawRange(r, t.Econ.DebtStress),
		},
		Military: state.Military{
			Readiness:  drawRange(r, t.Mil.Readiness),
			Logistics:  drawRange(r, t.Mil.Logistics),
			Tech:       drawRange(r, t.Mil.Tech),
			AirDefense: drawRange(r, t.Mil.AirDefense),
			Cyber:      drawRange(r, t.Mil.Cyber),
		},
		Politics: state.Politics{
			Legitimacy:        drawRange(r, t.Pol.Legitimacy),
			EliteCohesion:     drawRange(r, t.Pol.EliteCohesion),
			MilitaryLoyalty:   drawRange(r, t.Pol.MilitaryLoyalty),
			PublicApproval:    drawRange(r, t.Pol.PublicApproval),
			MediaControl:      drawRange(r, t.Pol.MediaControl),
			Corruption:        drawRange(r, t.Pol.Corruption),
			WarSupport:        drawRange(r, t.Pol.WarSupport),
			Unrest:            drawRange(r, t.Pol.Unrest),
			Sovereignty:       drawRange(r, t.Pol.Sovereignty),
			GlobalCredibility: drawRange(r, t.Pol.GlobalCredibility),
			Credibility:       map[state.ActorID]float64{},
		},
		Institutions: state.Institutions{
			IntelCapacity: drawRange(r, t.Inst.IntelCapacity),
			Bureaucracy:   drawRange(r, t.Inst.Bureaucracy),
			RuleOfLaw:     drawRange(r, t.Inst.RuleOfLaw),
		},
		Tensions: state.Tensions{
			Ethnic:     drawRange(r, t.Tensions.Ethnic),
			Border:     drawRange(r, t.Tensions.Border),
			Separatist: drawRange(r, t.Tensions.Separatist),
		},
		Resources: state.Resources{
			EnergySecurity: drawRange(r, t.Resources.EnergySecurity),
			FoodSecurity:   drawRange(r, t.Resources.FoodSecurity),
			Reserves:       drawRange(r, t.Resources.Reserves),
		},
	}

	for _, id := range state.AllActors() {
		p.Politics.Credibility[id] = drawRange(r, Range{35, 60})
	}

	correlate(&p)
	return p
}

// correlate pulls the raw draws toward plausible joint distributions: graft
// and debt corrode legitimacy, and weak legitimacy plus dear bread raise the
// temperature on the street.
func correlate(p *state.PlayerCountryTrue) {
	legit := p.Politics.Legitimacy
	legit -= 0.15 * (p.Politics.Corruption - 50)
	legit -= 0.10 * (p.Economy.DebtStress - 50)
	p.Politics.Legitimacy = mathx.Round1(mathx.Clamp100(legit))

	unrest := p.Politics.Unrest
	unrest += 0.20 * (50 - p.Politics.Legitimacy)
	unrest += 0.15 * (p.Economy.Inflation - 50)
	p.Politics.Unrest = mathx.Round1(mathx.Clamp100(unrest))

	approval := p.Politics.PublicApproval
	approval -= 0.10 * (p.Politics.Unrest - 40)
	p.Politics.PublicApproval = mathx.Round1(mathx.Clamp100(approval))
}

// actorBlueprint is the static personality of one external power; weights and
// relationship scalars are drawn per game around these.
type actorBlueprint struct {
	id       state.ActorID
	name     string
	goals    []string
	redLines []string
	trust    Range
	escal    Range
	domestic Range
	sanction Range
	alliance Range
}

func blueprints(t Template) []actorBlueprint {
	return []actorBlueprint{
		{
			id:   state.ActorUS,
			name: "United States",
			goals: []string{
				"regional stability on favorable terms",
				"counter rival-power influence",
				"open markets and investor protection",
			},
			redLines: []string{
				"harm to its nationals or diplomatic staff",
				"disruption of strategic shipping lanes",
			},
			trust:    Range{30, 55},
			escal:    Range{25, 45},
			domestic: Range{30, 55},
			sanction: Range{55, 80},
			alliance: Range{45, 70},
		},
		{
			id:   state.ActorEU,
			name: "European Union",
			goals: []string{
				"migration containment",
				"rule-of-law conditionality",
				"energy supply diversification",
			},
			redLines: []string{
				"mass displacement toward its borders",
				"suppression of election observers",
			},
			trust:    Range{35, 60},
			escal:    Range{10, 25},
			domestic: Range{35, 60},
			sanction: Range{45, 70},
			alliance: Range{40, 65},
		},
		{
			id:   state.ActorRussia,
			name: "Russia",
			goals: []string{
				"security-service access and basing rights",
				"arms-sales dependency",
				"keeping Western alignment off the table",
			},
			redLines: []string{
				"NATO-leaning defense agreements",
				"expulsion of its advisors",
			},
			trust:    Range{25, 50},
			escal:    Range{40, 65},
			domestic: Range{20, 40},
			sanction: Range{15, 35},
			alliance: Range{30, 55},
		},
		{
			id:   state.ActorChina,
			name: "China",
			goals: []string{
				"infrastructure concessions and port access",
				"debt leverage",
				"diplomatic alignment in international fora",
			},
			redLines: []string{
				"default on belt-corridor loans",
				"recognition moves against its claims",
			},
			trust:    Range{35, 60},
			escal:    Range{15, 35},
			domestic: Range{15, 35},
			sanction: Range{20, 40},
			alliance: Range{35, 60},
		},
		{
			id:   state.ActorRival,
			name: t.RivalName,
			goals: []string{
				"contested-border revision",
				"protection of co-ethnic minorities abroad",
			},
			redLines: []string{
				"military buildup on the shared frontier",
				"treatment of its kin populations",
			},
			trust:    Range{15, 38},
			escal:    Range{45, 70},
			domestic: Range{45, 70},
			sanction: Range{25, 50},
			alliance: Range{25, 50},
		},
		{
			id:   state.ActorPatron,
			name: t.PatronName,
			goals: []string{
				"regional bloc cohesion",
				"transit-fee revenue",
			},
			redLines: []string{
				"bypassing bloc trade arrangements",
			},
			trust:    Range{45, 70},
			escal:    Range{15, 35},
			domestic: Range{30, 55},
			sanction: Range{15, 35},
			alliance: Range{50, 75},
		},
	}
}

func rollActors(r *rng.State, t Template) map[state.ActorID]*state.ExternalActorState {
	actors := make(map[state.ActorID]*state.ExternalActorState, 6)
	for _, bp := range blueprints(t) {
		objectives := make([]state.Objective, 0, len(bp.goals))
		for _, g := range bp.goals {
			objectives = append(objectives, state.Objective{
				Goal:   g,
				Weight: drawRange(r, Range{0.3, 1.0}),
			})
		}
		actors[bp.id] = &state.ExternalActorState{
			ID:                    bp.id,
			Name:                  bp.name,
			Objectives:            objectives,
			RedLines:              bp.redLines,
			Trust:                 drawRange(r, bp.trust),
			EscalationWillingness: drawRange(r, bp.escal),
			DomesticPressure:      drawRange(r, bp.domestic),
			SanctionsPolicy:       drawRange(r, bp.sanction),
			AllianceCommitment:    drawRange(r, bp.alliance),
			Posture:               state.PostureNeutral,
		}
	}
	return actors
}

// pickHostileActor guarantees turn 1 opens under real pressure: one power
// starts hostile with depressed trust and an agitated home audience.
func pickHostileActor(r *rng.State, w *state.WorldState) {
	candidates := []state.ActorID{state.ActorUS, state.ActorRussia, state.ActorRival, state.ActorRival}
	id := rng.Pick(r, candidates)
	a := w.Actors[id]
	a.Posture = state.PostureHostile
	a.Trust = drawRange(r, Range{8, 22})
	a.DomesticPressure = mathx.Round1(mathx.Clamp100(a.DomesticPressure + drawRange(r, Range{15, 30})))
	a.EscalationWillingness = mathx.Round1(mathx.Clamp100(a.EscalationWillingness + drawRange(r, Range{5, 18})))
}

// Describe returns a one-line flavor summary used in logs and the CLI.
func Describe(w *state.WorldState) string {
	p := w.Player.Profile
	return fmt.Sprintf("%s, %s (%s)", p.Name, p.Region, p.Regime)
}
