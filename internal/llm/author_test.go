package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/worldgen"
)

func validateRaw(t *testing.T, a *Author, raw string) error {
	t.Helper()
	var generic any
	require.NoError(t, json.Unmarshal([]byte(raw), &generic))
	return a.schema.Validate(generic)
}

func TestNewAuthorCompilesSchema(t *testing.T) {
	a, err := NewAuthor(nil)
	require.NoError(t, err)
	require.NotNil(t, a.schema)
}

func TestComposeTurnDisabledClient(t *testing.T) {
	a, err := NewAuthor(NewClient(""))
	require.NoError(t, err)

	w := worldgen.NewWorld("llm-disabled")
	_, _, err = a.ComposeTurn(w, nil)
	require.Error(t, err, "a keyless client must report failure, not block")
}

func TestSchemaAcceptsWellFormedContent(t *testing.T) {
	a, err := NewAuthor(nil)
	require.NoError(t, err)

	assert.NoError(t, validateRaw(t, a, `{"briefing":"A quiet morning, for once."}`))

	assert.NoError(t, validateRaw(t, a, `{
		"briefing": "Pressure is building on two fronts.",
		"event": {
			"headline": "Port workers threaten a general strike",
			"body": "Union leadership set a deadline of Friday.",
			"ops": [
				{"key": "unrest", "delta": 3, "reason": "strike threat mobilizes others"},
				{"key": "econ_stability", "delta": -2, "reason": "port throughput at risk"}
			]
		}
	}`))
}

func TestSchemaRejectsBadContent(t *testing.T) {
	a, err := NewAuthor(nil)
	require.NoError(t, err)

	cases := []struct {
		name string
		raw  string
	}{
		{"missing briefing", `{"event":{"headline":"h","body":"b","ops":[{"key":"unrest","delta":1,"reason":"r"}]}}`},
		{"unknown metric key", `{"briefing":"b","event":{"headline":"h","body":"b","ops":[{"key":"nuclear_arsenal","delta":1,"reason":"r"}]}}`},
		{"delta too large", `{"briefing":"b","event":{"headline":"h","body":"b","ops":[{"key":"unrest","delta":40,"reason":"r"}]}}`},
		{"delta too negative", `{"briefing":"b","event":{"headline":"h","body":"b","ops":[{"key":"unrest","delta":-40,"reason":"r"}]}}`},
		{"no ops", `{"briefing":"b","event":{"headline":"h","body":"b","ops":[]}}`},
		{"too many ops", `{"briefing":"b","event":{"headline":"h","body":"b","ops":[
			{"key":"unrest","delta":1,"reason":"r"},
			{"key":"inflation","delta":1,"reason":"r"},
			{"key":"legitimacy","delta":1,"reason":"r"},
			{"key":"war_support","delta":1,"reason":"r"}]}}`},
		{"extra field", `{"briefing":"b","surprise":true}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, validateRaw(t, a, tc.raw))
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("  {\"a\":1}  "))
}

func TestClientNilSafety(t *testing.T) {
	var c *Client
	assert.False(t, c.Enabled())
	assert.Nil(t, NewClient(""))
	assert.True(t, NewClient("sk-test").Enabled())
}
