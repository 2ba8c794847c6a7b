package state

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a world to canonical JSON. encoding/json sorts map keys,
// and every scalar is rounded on write, so two worlds that evolved through
// identical draws encode to identical bytes. Determinism tests diff these.
func Encode(w *WorldState) ([]byte, error) {
	b, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode world: %w", err)
	}
	return b, nil
}

// Decode restores a world previously produced by Encode.
func Decode(b []byte) (*WorldState, error) {
	var w WorldState
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("decode world: %w", err)
	}
	if w.Rng == nil {
		return nil, fmt.Errorf("decode world: missing rng state")
	}
	return &w, nil
}
