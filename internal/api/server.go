// Package api exposes the game service over HTTP. Thin by design: request
// decoding, error mapping, rate limits. Every rule lives in the engine.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/persistence"
)

// Server serves the game API.
type Server struct {
	Svc  *game.Service
	Port int
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	createLimiter := NewRateLimiter(20, time.Hour)
	turnLimiter := NewRateLimiter(600, time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/games", Limit(createLimiter, s.handleCreate))
	mux.HandleFunc("GET /api/v1/games", s.handleList)
	mux.HandleFunc("GET /api/v1/games/{id}", s.handleSnapshot)
	mux.HandleFunc("POST /api/v1/games/{id}/turn", Limit(turnLimiter, s.handleTurn))
	return mux
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("api listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type createRequest struct {
	Seed string `json:"seed"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	// An absent or empty body means "random seed".
	_ = json.NewDecoder(r.Body).Decode(&req)
	id, snap, err := s.Svc.CreateGame(req.Seed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"gameId": id, "snapshot": snap})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	games, err := s.Svc.ListGames()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Svc.Snapshot(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type turnRequest struct {
	Actions []engine.PlayerAction `json:"actions"`
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	outcome, snap, err := s.Svc.SubmitTurn(r.PathValue("id"), req.Actions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcome": outcome, "snapshot": snap})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, engine.ErrGameOver):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, engine.ErrTooManyActions), errors.Is(err, engine.ErrInvalidAction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
