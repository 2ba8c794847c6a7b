package llm

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/talgya/statecraft/internal/state"
)

//go:embed injected_event.schema.json
var authoredContentSchema string

// Author rewrites turn briefings and may inject one extra incoming event.
// It satisfies the engine's NarrativeAuthor interface. Model output is
// schema-validated and bounds-checked before a single byte reaches the
// world; anything questionable is discarded in favor of deterministic text.
type Author struct {
	client *Client
	schema *jsonschema.Schema
}

// NewAuthor builds an Author around a client. A nil or disabled client is
// allowed; ComposeTurn will simply report failure and the engine falls back.
func NewAuthor(client *Client) (*Author, error) {
	schema, err := jsonschema.CompileString("injected_event.schema.json", authoredContentSchema)
	if err != nil {
		return nil, fmt.Errorf("compile authored-content schema: %w", err)
	}
	return &Author{client: client, schema: schema}, nil
}

const composeSystem = `You are the intelligence briefer for a head of state in a geopolitical simulation. You receive the true situation and this turn's incoming events. Respond with JSON only, matching this shape:

{"briefing": "<morning briefing, 2-4 paragraphs, somber professional register>",
 "event": {"headline": "...", "body": "...", "ops": [{"key": "<metric key>", "delta": <number, -6..6>, "reason": "..."}]}}

The "event" field is optional: include it only when a plausible additional development suggests itself. Never mention game mechanics or numbers in prose.`

// authoredContent mirrors the schema.
type authoredContent struct {
	Briefing string `json:"briefing"`
	Event    *struct {
		Headline string `json:"headline"`
		Body     string `json:"body"`
		Ops      []struct {
			Key    string  `json:"key"`
			Delta  float64 `json:"delta"`
			Reason string  `json:"reason"`
		} `json:"ops"`
	} `json:"event"`
}

// ComposeTurn asks the model for a briefing and optional extra event. Any
// failure — transport, malformed JSON, schema violation — returns an error
// and the caller proceeds with deterministic content.
func (a *Author) ComposeTurn(w *state.WorldState, events []state.IncomingEvent) (string, *state.IncomingEvent, error) {
	if !a.client.Enabled() {
		return "", nil, fmt.Errorf("text generation disabled")
	}

	raw, err := a.client.Complete(composeSystem, composePrompt(w, events), 1200)
	if err != nil {
		return "", nil, fmt.Errorf("compose turn: %w", err)
	}

	raw = stripCodeFence(raw)

	var generic any
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		return "", nil, fmt.Errorf("authored content is not JSON: %w", err)
	}
	if err := a.schema.Validate(generic); err != nil {
		slog.Debug("authored content rejected by schema", "error", err)
		return "", nil, fmt.Errorf("authored content failed validation: %w", err)
	}

	var content authoredContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return "", nil, fmt.Errorf("decode authored content: %w", err)
	}

	var extra *state.IncomingEvent
	if content.Event != nil {
		ops := make([]state.EffectOp, 0, len(content.Event.Ops))
		for _, op := range content.Event.Ops {
			// The schema already bounds delta and restricts key to the
			// whitelist; visibility is always hidden for injected payloads.
			ops = append(ops, state.Delta(state.MetricKey(op.Key), op.Delta, state.VisHidden, op.Reason))
		}
		extra = &state.IncomingEvent{
			ID:       fmt.Sprintf("ev-llm-%d", w.Turn),
			Type:     state.EventInjected,
			Headline: content.Event.Headline,
			Body:     content.Event.Body,
			Ops:      ops,
		}
	}
	return content.Briefing, extra, nil
}

func composePrompt(w *state.WorldState, events []state.IncomingEvent) string {
	var b strings.Builder
	p := w.Player
	fmt.Fprintf(&b, "Country: %s, %s, %s.\n", p.Profile.Name, p.Profile.Region, p.Profile.Regime)
	fmt.Fprintf(&b, "Turn %d. Stability %.0f, legitimacy %.0f, unrest %.0f, sovereignty %.0f.\n",
		w.Turn, p.Economy.Stability, p.Politics.Legitimacy, p.Politics.Unrest, p.Politics.Sovereignty)
	if w.Global.SanctionsActive {
		b.WriteString("Sanctions are in force.\n")
	}
	for _, id := range state.AllActors() {
		a := w.Actors[id]
		if a.Posture == state.PostureHostile {
			fmt.Fprintf(&b, "%s is hostile (trust %.0f).\n", a.Name, a.Trust)
		}
	}
	if len(w.Conflicts) > 0 {
		fmt.Fprintf(&b, "Active conflicts: %d.\n", len(w.Conflicts))
	}
	b.WriteString("\nIncoming events:\n")
	for _, e := range events {
		fmt.Fprintf(&b, "- %s: %s\n", e.Headline, e.Body)
	}
	return b.String()
}

// stripCodeFence removes a surrounding markdown fence if the model added one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
