// Package game is the service boundary around the engine: it owns game ids,
// persistence, per-game turn serialization, and the optional text-generation
// hookup. All rules live below it.
package game

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/intel"
	"github.com/talgya/statecraft/internal/persistence"
	"github.com/talgya/statecraft/internal/state"
)

// Service coordinates games across storage and the engine.
type Service struct {
	db     *persistence.DB
	author engine.NarrativeAuthor

	// One mutex per game: WorldState is mutated in place, so at most one
	// turn resolution may be in flight per game.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService builds a Service. author may be nil (deterministic text only).
func NewService(db *persistence.DB, author engine.NarrativeAuthor) *Service {
	return &Service{
		db:     db,
		author: author,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Service) gameLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// CreateGame builds a new world from the seed (a random seed if empty),
// persists it, and returns the game id with the opening snapshot.
func (s *Service) CreateGame(seed string) (string, intel.GameSnapshot, error) {
	if seed == "" {
		seed = uuid.NewString()
	}
	id := uuid.NewString()

	w := engine.CreateNewGameWorld(seed)
	blob, err := state.Encode(w)
	if err != nil {
		return "", intel.GameSnapshot{}, err
	}
	if err := s.db.CreateGame(id, seed, w.Turn, blob); err != nil {
		return "", intel.GameSnapshot{}, err
	}

	snap := intel.BuildSnapshot(id, w, "ACTIVE")
	s.archive(id, w.Turn, snap)

	slog.Info("game created", "game_id", id, "country", w.Player.Profile.Name, "region", w.Player.Profile.Region)
	return id, snap, nil
}

// Snapshot rebuilds the current player view for a game.
func (s *Service) Snapshot(gameID string) (intel.GameSnapshot, error) {
	rec, blob, err := s.db.LoadGame(gameID)
	if err != nil {
		return intel.GameSnapshot{}, err
	}
	w, err := state.Decode(blob)
	if err != nil {
		return intel.GameSnapshot{}, fmt.Errorf("game %s: %w", gameID, err)
	}
	return intel.BuildSnapshot(gameID, w, rec.Status), nil
}

// SubmitTurn resolves one turn for a game. Submissions are serialized per
// game id; a finished game rejects with engine.ErrGameOver before any load.
func (s *Service) SubmitTurn(gameID string, actions []engine.PlayerAction) (*engine.TurnOutcome, intel.GameSnapshot, error) {
	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	rec, blob, err := s.db.LoadGame(gameID)
	if err != nil {
		return nil, intel.GameSnapshot{}, err
	}
	if rec.Status == "FAILED" {
		return nil, intel.GameSnapshot{}, engine.ErrGameOver
	}
	w, err := state.Decode(blob)
	if err != nil {
		return nil, intel.GameSnapshot{}, fmt.Errorf("game %s: %w", gameID, err)
	}

	outcome, err := engine.SubmitTurnAndAdvance(w, actions, engine.TurnOptions{Author: s.author})
	if err != nil {
		return nil, intel.GameSnapshot{}, err
	}

	newBlob, err := state.Encode(w)
	if err != nil {
		return nil, intel.GameSnapshot{}, err
	}
	if err := s.db.SaveGame(gameID, outcome.Status, w.Turn, newBlob); err != nil {
		return nil, intel.GameSnapshot{}, err
	}

	snap := intel.BuildSnapshot(gameID, w, outcome.Status)
	s.archive(gameID, w.Turn, snap)
	s.recordHistory(gameID, outcome)

	slog.Info("turn resolved",
		"game_id", gameID,
		"turn", outcome.Turn,
		"status", outcome.Status,
		"actions", len(actions),
	)
	return outcome, snap, nil
}

// ListGames returns the persisted game index.
func (s *Service) ListGames() ([]persistence.GameRecord, error) {
	return s.db.ListGames()
}

// recordHistory persists the turn's resolution text and, on a terminal
// outcome, fills the failure report's recent-history window from the last
// three turns. Storage failures are logged, never fatal.
func (s *Service) recordHistory(gameID string, outcome *engine.TurnOutcome) {
	summary := strings.TrimSpace(outcome.PublicResolutionText)
	if err := s.db.AppendHistory(gameID, outcome.Turn, summary); err != nil {
		slog.Warn("history append failed", "game_id", gameID, "turn", outcome.Turn, "error", err)
	}
	if outcome.Failure == nil {
		return
	}
	hist, err := s.db.RecentHistory(gameID, 3)
	if err != nil {
		slog.Warn("history load failed", "game_id", gameID, "error", err)
		return
	}
	outcome.Failure.RecentHistory = hist
}

// archive stores the snapshot for later reconstruction; failures are logged,
// never fatal. The authoritative state is the world blob.
func (s *Service) archive(gameID string, turn int, snap intel.GameSnapshot) {
	b, err := json.Marshal(snap)
	if err == nil {
		err = s.db.ArchiveSnapshot(gameID, turn, b)
	}
	if err != nil {
		slog.Warn("snapshot archive failed", "game_id", gameID, "turn", turn, "error", err)
	}
}
