// Package engine runs one game turn end to end: event generation, action and
// event resolution, delayed consequences, baseline drift, and failure
// detection. All mutation flows through state.Apply; all randomness flows
// through the world's own stream.
package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/statecraft/internal/state"
)

// ActionLimit is the hard cap on player actions per turn. Exceeding it is a
// rejected input, never a silent truncation.
const ActionLimit = 2

var (
	// ErrTooManyActions rejects a turn submission above ActionLimit.
	ErrTooManyActions = errors.New("too many actions for one turn")
	// ErrInvalidAction rejects a structurally invalid action.
	ErrInvalidAction = errors.New("invalid action")
	// ErrGameOver rejects turn submissions on a failed world.
	ErrGameOver = errors.New("game already ended")
)

// ActionCategory groups the directive vocabulary.
type ActionCategory string

const (
	CatEconomy   ActionCategory = "ECONOMY"
	CatDiplomacy ActionCategory = "DIPLOMACY"
	CatSecurity  ActionCategory = "SECURITY"
	CatMedia     ActionCategory = "MEDIA"
)

// Action types per category.
const (
	ActSubsidies         = "SUBSIDIES"
	ActAusterity         = "AUSTERITY"
	ActPriceControls     = "PRICE_CONTROLS"
	ActDebtRestructuring = "DEBT_RESTRUCTURING"

	ActMessage     = "MESSAGE"
	ActConcession  = "CONCESSION"
	ActBackchannel = "BACKCHANNEL"

	ActCrackdown       = "CRACKDOWN"
	ActMobilize        = "MOBILIZE"
	ActCyberOperation  = "CYBER_OPERATION"
	ActBorderReinforce = "BORDER_REINFORCE"

	ActCampaign = "CAMPAIGN"
	ActCensor   = "CENSOR"
)

// Tones for diplomatic messages.
const (
	ToneConciliatory = "conciliatory"
	ToneFirm         = "firm"
	ToneDefiant      = "defiant"
)

// PlayerAction is one directive submitted for the turn.
type PlayerAction struct {
	Category   ActionCategory   `json:"category"`
	Type       string           `json:"type"`
	Target     state.ActorID    `json:"target,omitempty"`
	Topic      string           `json:"topic,omitempty"`
	Tone       string           `json:"tone,omitempty"`
	Intensity  int              `json:"intensity"` // 1–3
	Visibility state.Visibility `json:"visibility"`
}

// ActionTemplate describes one available directive for the snapshot.
type ActionTemplate struct {
	Category    ActionCategory `json:"category"`
	Type        string         `json:"type"`
	Label       string         `json:"label"`
	NeedsTarget bool           `json:"needsTarget"`
	Tones       []string       `json:"tones,omitempty"`
}

// ActionTemplates returns the directive catalog surfaced to the player.
func ActionTemplates() []ActionTemplate {
	return []ActionTemplate{
		{Category: CatEconomy, Type: ActSubsidies, Label: "Expand consumer subsidies"},
		{Category: CatEconomy, Type: ActAusterity, Label: "Impose austerity measures"},
		{Category: CatEconomy, Type: ActPriceControls, Label: "Decree price controls"},
		{Category: CatEconomy, Type: ActDebtRestructuring, Label: "Open debt restructuring talks"},
		{Category: CatDiplomacy, Type: ActMessage, Label: "Send a diplomatic message", NeedsTarget: true,
			Tones: []string{ToneConciliatory, ToneFirm, ToneDefiant}},
		{Category: CatDiplomacy, Type: ActConcession, Label: "Offer a public concession", NeedsTarget: true},
		{Category: CatDiplomacy, Type: ActBackchannel, Label: "Open a back channel", NeedsTarget: true},
		{Category: CatSecurity, Type: ActCrackdown, Label: "Order a security crackdown"},
		{Category: CatSecurity, Type: ActMobilize, Label: "Mobilize reserve forces"},
		{Category: CatSecurity, Type: ActCyberOperation, Label: "Authorize a cyber operation", NeedsTarget: true},
		{Category: CatSecurity, Type: ActBorderReinforce, Label: "Reinforce the border"},
		{Category: CatMedia, Type: ActCampaign, Label: "Launch a media campaign"},
		{Category: CatMedia, Type: ActCensor, Label: "Tighten censorship"},
	}
}

var validTypes = map[ActionCategory]map[string]bool{
	CatEconomy:   {ActSubsidies: true, ActAusterity: true, ActPriceControls: true, ActDebtRestructuring: true},
	CatDiplomacy: {ActMessage: true, ActConcession: true, ActBackchannel: true},
	CatSecurity:  {ActCrackdown: true, ActMobilize: true, ActCyberOperation: true, ActBorderReinforce: true},
	CatMedia:     {ActCampaign: true, ActCensor: true},
}

var needsTarget = map[string]bool{
	ActMessage: true, ActConcession: true, ActBackchannel: true, ActCyberOperation: true,
}

// ValidateActions checks a submission before any world mutation. It returns
// an error wrapping ErrTooManyActions or ErrInvalidAction; on error the world
// must be left untouched by the caller.
func ValidateActions(w *state.WorldState, actions []PlayerAction) error {
	if len(actions) > ActionLimit {
		return fmt.Errorf("%w: got %d, limit %d", ErrTooManyActions, len(actions), ActionLimit)
	}
	for i, a := range actions {
		types, ok := validTypes[a.Category]
		if !ok {
			return fmt.Errorf("%w: action %d: unknown category %q", ErrInvalidAction, i, a.Category)
		}
		if !types[a.Type] {
			return fmt.Errorf("%w: action %d: unknown type %q for category %q", ErrInvalidAction, i, a.Type, a.Category)
		}
		if a.Intensity < 1 || a.Intensity > 3 {
			return fmt.Errorf("%w: action %d: intensity %d out of range 1–3", ErrInvalidAction, i, a.Intensity)
		}
		if a.Visibility != state.VisPublic && a.Visibility != state.VisHidden {
			return fmt.Errorf("%w: action %d: visibility %q", ErrInvalidAction, i, a.Visibility)
		}
		if needsTarget[a.Type] {
			if _, ok := w.Actors[a.Target]; !ok {
				return fmt.Errorf("%w: action %d: %s requires a valid target actor, got %q", ErrInvalidAction, i, a.Type, a.Target)
			}
		}
		if a.Type == ActMessage {
			switch a.Tone {
			case ToneConciliatory, ToneFirm, ToneDefiant:
			default:
				return fmt.Errorf("%w: action %d: unknown tone %q", ErrInvalidAction, i, a.Tone)
			}
		}
	}
	return nil
}
