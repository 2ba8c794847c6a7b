package state

import (
	"fmt"

	"github.com/talgya/statecraft/internal/mathx"
)

// MetricKey names a scalar the OpDelta effect may nudge. The whitelist is
// closed; an unknown key in Apply is a programming error, not user input.
type MetricKey string

const (
	KeyEconStability     MetricKey = "econ_stability"
	KeyInflation         MetricKey = "inflation"
	KeyUnemployment      MetricKey = "unemployment"
	KeyDebtStress        MetricKey = "debt_stress"
	KeyMilReadiness      MetricKey = "mil_readiness"
	KeyMilLogistics      MetricKey = "mil_logistics"
	KeyLegitimacy        MetricKey = "legitimacy"
	KeyEliteCohesion     MetricKey = "elite_cohesion"
	KeyMilitaryLoyalty   MetricKey = "military_loyalty"
	KeyPublicApproval    MetricKey = "public_approval"
	KeyMediaControl      MetricKey = "media_control"
	KeyCorruption        MetricKey = "corruption"
	KeyWarSupport        MetricKey = "war_support"
	KeyUnrest            MetricKey = "unrest"
	KeySovereignty       MetricKey = "sovereignty"
	KeyGlobalCredibility MetricKey = "global_credibility"
	KeyGlobalTrade       MetricKey = "global_trade"
	KeyGlobalEnergy      MetricKey = "global_energy"
	KeyGlobalAttention   MetricKey = "global_attention"
)

// ActorField names a relationship scalar the OpDeltaActor effect may nudge.
// FieldCredibility is the odd one out: it lives on the player side (the
// player's standing with that actor) but is keyed per actor, so it rides the
// same op.
type ActorField string

const (
	FieldTrust                 ActorField = "trust"
	FieldEscalationWillingness ActorField = "escalation_willingness"
	FieldDomesticPressure      ActorField = "domestic_pressure"
	FieldSanctionsPolicy       ActorField = "sanctions_policy"
	FieldAllianceCommitment    ActorField = "alliance_commitment"
	FieldCredibility           ActorField = "credibility"
)

// FlagKey names a terminal boolean flag for OpSetFlag.
type FlagKey string

const (
	FlagPuppet          FlagKey = "puppet"
	FlagCapitalOccupied FlagKey = "capital_occupied"
)

// EffectKind discriminates the closed EffectOp union.
type EffectKind string

const (
	OpDelta         EffectKind = "DELTA"
	OpDeltaActor    EffectKind = "DELTA_ACTOR"
	OpSetPosture    EffectKind = "SET_POSTURE"
	OpSetSanctions  EffectKind = "SET_SANCTIONS"
	OpStartConflict EffectKind = "START_CONFLICT"
	OpSetFlag       EffectKind = "SET_FLAG"
)

// ConflictSpec describes a war to create via OpStartConflict.
type ConflictSpec struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Belligerents []ActorID `json:"belligerents"`
	Escalation   int       `json:"escalation"`
	Fronts       []string  `json:"fronts"`
}

// EffectOp is the single mutation vocabulary for WorldState. Which fields are
// meaningful depends on Kind. Visibility gates only what text the player sees;
// the mutation always happens.
type EffectOp struct {
	Kind EffectKind `json:"kind"`

	Key   MetricKey `json:"key,omitempty"`
	Delta float64   `json:"delta,omitempty"`

	Actor ActorID    `json:"actor,omitempty"`
	Field ActorField `json:"field,omitempty"`

	Posture  Posture       `json:"posture,omitempty"`
	Active   bool          `json:"active,omitempty"`
	Conflict *ConflictSpec `json:"conflict,omitempty"`
	Flag     FlagKey       `json:"flag,omitempty"`
	Value    bool          `json:"value,omitempty"`

	Reason     string     `json:"reason"`
	Visibility Visibility `json:"visibility"`
}

// Delta builds an OpDelta.
func Delta(key MetricKey, delta float64, vis Visibility, reason string) EffectOp {
	return EffectOp{Kind: OpDelta, Key: key, Delta: delta, Visibility: vis, Reason: reason}
}

// DeltaActor builds an OpDeltaActor.
func DeltaActor(actor ActorID, field ActorField, delta float64, vis Visibility, reason string) EffectOp {
	return EffectOp{Kind: OpDeltaActor, Actor: actor, Field: field, Delta: delta, Visibility: vis, Reason: reason}
}

// SetPosture builds an OpSetPosture.
func SetPosture(actor ActorID, p Posture, vis Visibility, reason string) EffectOp {
	return EffectOp{Kind: OpSetPosture, Actor: actor, Posture: p, Visibility: vis, Reason: reason}
}

// SetSanctions builds an OpSetSanctions.
func SetSanctions(active bool, vis Visibility, reason string) EffectOp {
	return EffectOp{Kind: OpSetSanctions, Active: active, Visibility: vis, Reason: reason}
}

// StartConflict builds an OpStartConflict.
func StartConflict(spec ConflictSpec, vis Visibility, reason string) EffectOp {
	return EffectOp{Kind: OpStartConflict, Conflict: &spec, Visibility: vis, Reason: reason}
}

// SetFlag builds an OpSetFlag.
func SetFlag(flag FlagKey, value bool, vis Visibility, reason string) EffectOp {
	return EffectOp{Kind: OpSetFlag, Flag: flag, Value: value, Visibility: vis, Reason: reason}
}

// Apply is the single mutation gateway. Every scalar write clamps to its
// declared range and rounds to one decimal so serialized state is stable.
// Unknown kinds, keys, fields, or actors panic: the unions are closed, so a
// miss here is a defect in the caller, never user input.
func Apply(w *WorldState, op EffectOp) {
	switch op.Kind {
	case OpDelta:
		applyDelta(w, op.Key, op.Delta)
	case OpDeltaActor:
		applyDeltaActor(w, op.Actor, op.Field, op.Delta)
	case OpSetPosture:
		actorOrPanic(w, op.Actor).Posture = op.Posture
	case OpSetSanctions:
		w.Global.SanctionsActive = op.Active
	case OpStartConflict:
		startConflict(w, op.Conflict)
	case OpSetFlag:
		switch op.Flag {
		case FlagPuppet:
			w.Player.Puppet = op.Value
		case FlagCapitalOccupied:
			w.Player.CapitalOccupied = op.Value
		default:
			panic(fmt.Sprintf("state: unknown flag %q", op.Flag))
		}
	default:
		panic(fmt.Sprintf("state: unknown effect kind %q", op.Kind))
	}
}

// ApplyAll applies ops in order.
func ApplyAll(w *WorldState, ops []EffectOp) {
	for _, op := range ops {
		Apply(w, op)
	}
}

func applyDelta(w *WorldState, key MetricKey, delta float64) {
	target := metricPtr(w, key)
	*target = mathx.Round1(mathx.Clamp100(*target + delta))
}

// metricPtr maps a whitelisted key to its storage location.
func metricPtr(w *WorldState, key MetricKey) *float64 {
	p := &w.Player
	switch key {
	case KeyEconStability:
		return &p.Economy.Stability
	case KeyInflation:
		return &p.Economy.Inflation
	case KeyUnemployment:
		return &p.Economy.Unemployment
	case KeyDebtStress:
		return &p.Economy.DebtStress
	case KeyMilReadiness:
		return &p.Military.Readiness
	case KeyMilLogistics:
		return &p.Military.Logistics
	case KeyLegitimacy:
		return &p.Politics.Legitimacy
	case KeyEliteCohesion:
		return &p.Politics.EliteCohesion
	case KeyMilitaryLoyalty:
		return &p.Politics.MilitaryLoyalty
	case KeyPublicApproval:
		return &p.Politics.PublicApproval
	case KeyMediaControl:
		return &p.Politics.MediaControl
	case KeyCorruption:
		return &p.Politics.Corruption
	case KeyWarSupport:
		return &p.Politics.WarSupport
	case KeyUnrest:
		return &p.Politics.Unrest
	case KeySovereignty:
		return &p.Politics.Sovereignty
	case KeyGlobalCredibility:
		return &p.Politics.GlobalCredibility
	case KeyGlobalTrade:
		return &w.Global.Trade
	case KeyGlobalEnergy:
		return &w.Global.Energy
	case KeyGlobalAttention:
		return &w.Global.Attention
	default:
		panic(fmt.Sprintf("state: unknown metric key %q", key))
	}
}

func applyDeltaActor(w *WorldState, id ActorID, field ActorField, delta float64) {
	if field == FieldCredibility {
		if _, ok := w.Player.Politics.Credibility[id]; !ok {
			panic(fmt.Sprintf("state: unknown actor %q", id))
		}
		v := mathx.Round1(mathx.Clamp100(w.Player.Politics.Credibility[id] + delta))
		w.Player.Politics.Credibility[id] = v
		return
	}

	a := actorOrPanic(w, id)
	var target *float64
	switch field {
	case FieldTrust:
		target = &a.Trust
	case FieldEscalationWillingness:
		target = &a.EscalationWillingness
	case FieldDomesticPressure:
		target = &a.DomesticPressure
	case FieldSanctionsPolicy:
		target = &a.SanctionsPolicy
	case FieldAllianceCommitment:
		target = &a.AllianceCommitment
	default:
		panic(fmt.Sprintf("state: unknown actor field %q", field))
	}
	*target = mathx.Round1(mathx.Clamp100(*target + delta))
}

func actorOrPanic(w *WorldState, id ActorID) *ExternalActorState {
	a, ok := w.Actors[id]
	if !ok {
		panic(fmt.Sprintf("state: unknown actor %q", id))
	}
	return a
}

func startConflict(w *WorldState, spec *ConflictSpec) {
	if spec == nil {
		panic("state: START_CONFLICT without conflict spec")
	}
	esc := spec.Escalation
	if esc < 1 {
		esc = 1
	}
	if esc > 5 {
		esc = 5
	}
	fronts := make([]Front, 0, len(spec.Fronts))
	for _, name := range spec.Fronts {
		fronts = append(fronts, Front{Name: name, Control: FrontContested, Intensity: 30})
	}
	w.Conflicts = append(w.Conflicts, &ActiveConflict{
		ID:           spec.ID,
		Name:         spec.Name,
		Belligerents: spec.Belligerents,
		Escalation:   esc,
		Fronts:       fronts,
	})
}
