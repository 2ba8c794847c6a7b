// Package state defines the hidden "true" world model for one game and the
// closed effect vocabulary through which it is mutated. Nothing outside this
// package writes to a world scalar directly; every change funnels through
// Apply, which clamps on write.
package state

import "github.com/talgya/statecraft/internal/rng"

// ActorID identifies one of the six external powers. The set is closed.
type ActorID string

const (
	ActorUS     ActorID = "US"
	ActorEU     ActorID = "EU"
	ActorRussia ActorID = "RU"
	ActorChina  ActorID = "CN"
	ActorRival  ActorID = "REGIONAL_RIVAL"
	ActorPatron ActorID = "REGIONAL_PATRON"
)

// AllActors returns the closed actor set in canonical order. Engine code
// iterates actors through this, never through the map, so draws from the
// random stream happen in a fixed order.
func AllActors() []ActorID {
	return []ActorID{ActorUS, ActorEU, ActorRussia, ActorChina, ActorRival, ActorPatron}
}

// MajorPowers returns the four global powers.
func MajorPowers() []ActorID {
	return []ActorID{ActorUS, ActorEU, ActorRussia, ActorChina}
}

// Posture is an actor's disposition toward the player.
type Posture string

const (
	PostureHostile  Posture = "HOSTILE"
	PostureNeutral  Posture = "NEUTRAL"
	PostureFriendly Posture = "FRIENDLY"
)

// Visibility tags an effect as surfaced to the player or concealed. It gates
// text only, never the mutation itself.
type Visibility string

const (
	VisPublic Visibility = "PUBLIC"
	VisHidden Visibility = "HIDDEN"
)

// WorldState is the root aggregate: the complete hidden truth for one game.
// One instance per game, mutated in place by the turn pipeline. Callers must
// serialize turn submissions per game; the struct is not safe for concurrent
// mutation.
type WorldState struct {
	Rng       *rng.State `json:"rng"`
	Seed      string     `json:"seed"`
	NoiseSeed int64      `json:"noiseSeed"`
	Turn      int        `json:"turn"`

	Player    PlayerCountryTrue               `json:"player"`
	Actors    map[ActorID]*ExternalActorState `json:"actors"`
	Global    GlobalSystems                   `json:"global"`
	Conflicts []*ActiveConflict               `json:"conflicts"`
	Scheduled []ScheduledConsequence          `json:"scheduled"`
	Current   TurnBriefing                    `json:"current"`

	// Terminal bookkeeping. Once Failed is set the turn engine rejects
	// further submissions for this world.
	Failed      bool   `json:"failed"`
	FailureType string `json:"failureType,omitempty"`
}

// TurnBriefing is the player-facing portion of the current turn: briefing
// prose plus the incoming events (whose effect payloads stay hidden).
type TurnBriefing struct {
	Briefing       string          `json:"briefing"`
	IncomingEvents []IncomingEvent `json:"incomingEvents"`
	// ExternallyAuthored marks briefing/events overwritten by the optional
	// text-generation collaborator. The resolver treats both sources the same.
	ExternallyAuthored bool `json:"externallyAuthored,omitempty"`
}

// CountryIdentity is the fixed flavor of the generated player country.
type CountryIdentity struct {
	Name      string   `json:"name"`
	Region    string   `json:"region"`
	Regime    string   `json:"regime"`
	Geography string   `json:"geography"`
	Neighbors []string `json:"neighbors"`
}

// Economy metrics, 0–100.
type Economy struct {
	Stability    float64 `json:"stability"`
	Inflation    float64 `json:"inflation"`
	Unemployment float64 `json:"unemployment"`
	DebtStress   float64 `json:"debtStress"`
}

// Military metrics, 0–100.
type Military struct {
	Readiness  float64 `json:"readiness"`
	Logistics  float64 `json:"logistics"`
	Tech       float64 `json:"tech"`
	AirDefense float64 `json:"airDefense"`
	Cyber      float64 `json:"cyber"`
}

// Politics metrics, 0–100. Credibility is the player's standing with each
// actor individually; GlobalCredibility is the aggregate reputation.
type Politics struct {
	Legitimacy        float64             `json:"legitimacy"`
	EliteCohesion     float64             `json:"eliteCohesion"`
	MilitaryLoyalty   float64             `json:"militaryLoyalty"`
	PublicApproval    float64             `json:"publicApproval"`
	MediaControl      float64             `json:"mediaControl"`
	Corruption        float64             `json:"corruption"`
	WarSupport        float64             `json:"warSupport"`
	Unrest            float64             `json:"unrest"`
	Sovereignty       float64             `json:"sovereignty"`
	GlobalCredibility float64             `json:"globalCredibility"`
	Credibility       map[ActorID]float64 `json:"credibility"`
}

// Institutions metrics, 0–100.
type Institutions struct {
	IntelCapacity float64 `json:"intelCapacity"`
	Bureaucracy   float64 `json:"bureaucracy"`
	RuleOfLaw     float64 `json:"ruleOfLaw"`
}

// Tensions metrics, 0–100.
type Tensions struct {
	Ethnic     float64 `json:"ethnic"`
	Border     float64 `json:"border"`
	Separatist float64 `json:"separatist"`
}

// Resources metrics, 0–100.
type Resources struct {
	EnergySecurity float64 `json:"energySecurity"`
	FoodSecurity   float64 `json:"foodSecurity"`
	Reserves       float64 `json:"reserves"`
}

// PlayerCountryTrue is the ground-truth record for the player country. The
// player never sees these values directly, only the intel projection.
type PlayerCountryTrue struct {
	Profile      CountryIdentity `json:"profile"`
	Economy      Economy         `json:"economy"`
	Military     Military        `json:"military"`
	Politics     Politics        `json:"politics"`
	Institutions Institutions    `json:"institutions"`
	Tensions     Tensions        `json:"tensions"`
	Resources    Resources       `json:"resources"`

	// Terminal flags. Sticky once set.
	Puppet          bool `json:"puppet"`
	CapitalOccupied bool `json:"capitalOccupied"`
}

// Objective is a weighted goal an external actor pursues.
type Objective struct {
	Goal   string  `json:"goal"`
	Weight float64 `json:"weight"`
}

// ExternalActorState is the truth about one external power's stance.
// Red lines are advisory flavor for briefings, not mechanically enforced.
type ExternalActorState struct {
	ID         ActorID     `json:"id"`
	Name       string      `json:"name"`
	Objectives []Objective `json:"objectives"`
	RedLines   []string    `json:"redLines"`

	Trust                 float64 `json:"trust"`
	EscalationWillingness float64 `json:"escalationWillingness"`
	DomesticPressure      float64 `json:"domesticPressure"`
	SanctionsPolicy       float64 `json:"sanctionsPolicy"`
	AllianceCommitment    float64 `json:"allianceCommitment"`

	Posture Posture `json:"posture"`
}

// GlobalSystems are the shared world scalars, 0–100.
type GlobalSystems struct {
	Trade           float64 `json:"trade"`
	Energy          float64 `json:"energy"`
	Attention       float64 `json:"attention"`
	SanctionsActive bool    `json:"sanctionsActive"`
}

// FrontControl is the control state of one conflict front.
type FrontControl string

const (
	FrontContested FrontControl = "CONTESTED"
	FrontHeld      FrontControl = "HELD"
	FrontLost      FrontControl = "LOST"
)

// Front is one axis of an active conflict.
type Front struct {
	Name      string       `json:"name"`
	Control   FrontControl `json:"control"`
	Intensity float64      `json:"intensity"` // 0–100
}

// ActiveConflict is one ongoing war. Created only by OpStartConflict.
// There is deliberately no effect that removes a conflict: termination
// semantics are undefined in the current design (see DESIGN.md) and wars
// persist until that is settled.
type ActiveConflict struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Belligerents []ActorID `json:"belligerents"`
	Escalation   int       `json:"escalation"` // 1–5
	Fronts       []Front   `json:"fronts"`

	Attrition        float64 `json:"attrition"`
	OccupationBurden float64 `json:"occupationBurden"`
	InsurgencyRisk   float64 `json:"insurgencyRisk"`
	CivilianHarm     float64 `json:"civilianHarm"`
	Casualties       int     `json:"casualties"` // monotonically increasing
}

// ConsequenceKind is the closed set of delayed-consequence types.
type ConsequenceKind string

const (
	ConsSanctionsBite   ConsequenceKind = "SANCTIONS_BITE"
	ConsWarFatigue      ConsequenceKind = "WAR_FATIGUE"
	ConsInsurgencySpike ConsequenceKind = "INSURGENCY_SPIKE"
	ConsInflationLag    ConsequenceKind = "INFLATION_LAG"
	ConsEliteSplitRisk  ConsequenceKind = "ELITE_SPLIT_RISK"
	ConsIntelRevelation ConsequenceKind = "INTEL_REVELATION"
	ConsTradeDividend   ConsequenceKind = "TRADE_DIVIDEND"
	ConsEnergyDividend  ConsequenceKind = "ENERGY_DIVIDEND"
)

// ScheduledConsequence is an effect deferred to a future turn. Consumed and
// removed exactly once when DueTurn <= world.Turn.
type ScheduledConsequence struct {
	ID        string          `json:"id"`
	DueTurn   int             `json:"dueTurn"`
	Kind      ConsequenceKind `json:"kind"`
	Severity  float64         `json:"severity"`  // 0–1, scales landing probability where probabilistic
	Magnitude float64         `json:"magnitude"` // effect size in scalar points
	Actor     ActorID         `json:"actor,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// EventType is the closed set of generated incoming event types.
type EventType string

const (
	EventSanctionsWarning EventType = "SANCTIONS_WARNING"
	EventIMFContact       EventType = "IMF_CONTACT"
	EventAllianceSignal   EventType = "ALLIANCE_SIGNAL"
	EventUnrestProtest    EventType = "UNREST_PROTEST"
	EventLeak             EventType = "LEAK"
	EventBorderIncident   EventType = "BORDER_INCIDENT"
	EventCyberIntrusion   EventType = "CYBER_INTRUSION"
	EventArmsInterdiction EventType = "ARMS_INTERDICTION"
	EventInjected         EventType = "INJECTED"
)

// IncomingEvent is one turn event: visible flavor plus a hidden effect
// payload. Snapshots strip Ops and Scheduled before showing it to the player.
type IncomingEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Headline  string                 `json:"headline"`
	Body      string                 `json:"body"`
	Target    ActorID                `json:"target,omitempty"`
	Ops       []EffectOp             `json:"ops,omitempty"`
	Scheduled []ScheduledConsequence `json:"scheduled,omitempty"`
}

// Sanitized returns a copy safe to show the player: hidden payload stripped.
func (e IncomingEvent) Sanitized() IncomingEvent {
	e.Ops = nil
	e.Scheduled = nil
	return e
}
