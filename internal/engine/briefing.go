package engine

import (
	"fmt"
	"strings"

	"github.com/talgya/statecraft/internal/state"
)

// NarrativeAuthor is the optional external text-generation collaborator. It
// may rewrite the briefing and contribute one extra incoming event. Any error
// (or invalid content) makes the engine fall back to its own deterministic
// prose; the collaborator can never block a turn.
type NarrativeAuthor interface {
	ComposeTurn(w *state.WorldState, events []state.IncomingEvent) (briefing string, extra *state.IncomingEvent, err error)
}

// BuildBriefing composes the deterministic morning briefing from world truth.
// Pure text assembly: no draws, no mutation.
func BuildBriefing(w *state.WorldState, events []state.IncomingEvent) string {
	var b strings.Builder
	p := w.Player

	fmt.Fprintf(&b, "Turn %d. %s, %s.\n\n", w.Turn, p.Profile.Name, p.Profile.Region)

	var hostiles []string
	for _, id := range state.AllActors() {
		if w.Actors[id].Posture == state.PostureHostile {
			hostiles = append(hostiles, w.Actors[id].Name)
		}
	}
	if len(hostiles) > 0 {
		fmt.Fprintf(&b, "The foreign ministry flags open hostility from %s. ", strings.Join(hostiles, ", "))
	}
	if w.Global.SanctionsActive {
		b.WriteString("Sanctions remain in force; the central bank reports reserves under strain. ")
	}
	if len(w.Conflicts) > 0 {
		fmt.Fprintf(&b, "%d active conflict(s) continue to drain readiness and attention. ", len(w.Conflicts))
	}
	b.WriteString("\n")

	if len(events) > 0 {
		b.WriteString("\nOvernight developments:\n")
		for _, e := range events {
			fmt.Fprintf(&b, "  - %s\n", e.Headline)
		}
	}
	return b.String()
}

// RefreshBriefing fills world.Current for the coming turn. With an author
// present it tries external composition first and falls back closed on any
// failure. With skipGeneration set (external text mode), briefing and events
// are left empty for the collaborator to fill later.
func RefreshBriefing(w *state.WorldState, opts EventOptions, author NarrativeAuthor, skipGeneration bool) {
	if skipGeneration {
		w.Current = state.TurnBriefing{}
		return
	}

	events := GenerateIncomingEvents(w, opts)
	briefing := BuildBriefing(w, events)

	if author != nil {
		if text, extra, err := author.ComposeTurn(w, events); err == nil {
			if strings.TrimSpace(text) != "" {
				briefing = text
			}
			if extra != nil {
				events = append(events, *extra)
			}
			w.Current = state.TurnBriefing{Briefing: briefing, IncomingEvents: events, ExternallyAuthored: true}
			return
		}
		// Author failed: deterministic content stands.
	}
	w.Current = state.TurnBriefing{Briefing: briefing, IncomingEvents: events}
}
