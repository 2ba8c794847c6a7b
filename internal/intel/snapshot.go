package intel

import (
	"fmt"

	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/state"
)

// CountryProfile is the public dossier of the player country.
type CountryProfile struct {
	Name       string   `json:"name"`
	Region     string   `json:"region"`
	Regime     string   `json:"regime"`
	Geography  string   `json:"geography"`
	Neighbors  []string `json:"neighbors"`
	Summary    string   `json:"summary"`
	Indicators []string `json:"indicators,omitempty"`
}

// BuildCountryProfile assembles the dossier from world truth plus whatever
// headline indicators the caller wants carried along (used at creation and to
// backfill snapshots that predate the dossier format).
func BuildCountryProfile(w *state.WorldState, indicators []string) CountryProfile {
	p := w.Player.Profile
	return CountryProfile{
		Name:      p.Name,
		Region:    p.Region,
		Regime:    p.Regime,
		Geography: p.Geography,
		Neighbors: p.Neighbors,
		Summary: fmt.Sprintf("%s is a %s in the %s: %s.",
			p.Name, p.Regime, p.Region, p.Geography),
		Indicators: indicators,
	}
}

// GameSnapshot is the engine's sole output contract to its callers: the full
// player-facing view for one turn. Rebuilt fresh every time and discarded.
type GameSnapshot struct {
	GameID   string                    `json:"gameId"`
	Turn     int                       `json:"turn"`
	Status   string                    `json:"status"` // ACTIVE or FAILED
	Briefing string                    `json:"briefing"`
	Dossier  CountryProfile            `json:"dossier"`
	Metrics  map[string]ObservedMetric `json:"metrics"`

	IncomingEvents  []state.IncomingEvent   `json:"incomingEvents"`
	ActionTemplates []engine.ActionTemplate `json:"actionTemplates"`
	ActionLimit     int                     `json:"actionLimit"`
}

// metricNames fixes the projection order so the observation fork is consumed
// identically on every build.
var metricNames = []string{
	"economicStability",
	"inflation",
	"unemployment",
	"legitimacy",
	"publicApproval",
	"unrest",
	"militaryReadiness",
	"eliteCohesion",
	"warSupport",
	"sovereigntyIntegrity",
	"globalCredibility",
}

// BuildSnapshot projects the world into the player-facing view. Status is
// supplied by the caller, which owns game-over bookkeeping at its boundary.
func BuildSnapshot(gameID string, w *state.WorldState, status string) GameSnapshot {
	obs := w.Rng.Fork(fmt.Sprintf("observe-%d", w.Turn))
	p := w.Player

	truth := map[string]struct {
		value float64
		opts  ObserveOptions
	}{
		"economicStability": {p.Economy.Stability, ObserveOptions{
			KnownDrivers: []string{"debt stress", "price pressure", "sanctions exposure"}}},
		"inflation": {p.Economy.Inflation, ObserveOptions{
			KnownDrivers: []string{"import costs", "fiscal expansion"}}},
		"unemployment": {p.Economy.Unemployment, ObserveOptions{
			KnownDrivers: []string{"layoffs", "informal-sector absorption"}}},
		"legitimacy": {p.Politics.Legitimacy, ObserveOptions{
			KnownDrivers: []string{"corruption perception", "performance record"}}},
		"publicApproval": {p.Politics.PublicApproval, ObserveOptions{
			KnownDrivers: []string{"household conditions", "media tone"}}},
		"unrest": {p.Politics.Unrest, ObserveOptions{
			KnownDrivers:     []string{"protest turnout", "strike activity"},
			ExtraUncertainty: 3}},
		"militaryReadiness": {p.Military.Readiness, ObserveOptions{
			KnownDrivers: []string{"maintenance rates", "exercise performance"}}},
		"eliteCohesion": {p.Politics.EliteCohesion, ObserveOptions{
			KnownDrivers:     []string{"patronage flows", "defection rumors"},
			ExtraUncertainty: 2}},
		"warSupport": {p.Politics.WarSupport, ObserveOptions{
			KnownDrivers: []string{"polling", "enlistment numbers"}}},
		"sovereigntyIntegrity": {p.Politics.Sovereignty, ObserveOptions{
			KnownDrivers: []string{"foreign leverage", "treaty constraints"}}},
		"globalCredibility": {p.Politics.GlobalCredibility, ObserveOptions{
			KnownDrivers: []string{"diplomatic reception", "press abroad"}}},
	}

	metrics := make(map[string]ObservedMetric, len(metricNames))
	for _, name := range metricNames {
		t := truth[name]
		metrics[name] = ObserveMetric(w, obs, t.value, t.opts)
	}

	events := make([]state.IncomingEvent, 0, len(w.Current.IncomingEvents))
	for _, e := range w.Current.IncomingEvents {
		events = append(events, e.Sanitized())
	}

	return GameSnapshot{
		GameID:          gameID,
		Turn:            w.Turn,
		Status:          status,
		Briefing:        w.Current.Briefing,
		Dossier:         BuildCountryProfile(w, nil),
		Metrics:         metrics,
		IncomingEvents:  events,
		ActionTemplates: engine.ActionTemplates(),
		ActionLimit:     engine.ActionLimit,
	}
}
