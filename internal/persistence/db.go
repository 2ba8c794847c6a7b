// Package persistence stores games in SQLite. World blobs are opaque to this
// layer: canonical JSON from the state package, gzip-compressed, round-tripped
// verbatim so a resumed game continues bit-for-bit.
package persistence

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/gzip"
	_ "modernc.org/sqlite"
)

// ErrNotFound reports a missing game.
var ErrNotFound = errors.New("game not found")

// DB wraps a SQLite connection for game storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		seed TEXT NOT NULL,
		status TEXT NOT NULL,
		turn INTEGER NOT NULL,
		world BLOB NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		snapshot TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (game_id, turn),
		FOREIGN KEY (game_id) REFERENCES games(id)
	);

	CREATE TABLE IF NOT EXISTS history (
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		summary TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (game_id, turn),
		FOREIGN KEY (game_id) REFERENCES games(id)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// GameRecord is one persisted game row, world blob excluded.
type GameRecord struct {
	ID        string `db:"id" json:"id"`
	Seed      string `db:"seed" json:"seed"`
	Status    string `db:"status" json:"status"`
	Turn      int    `db:"turn" json:"turn"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

// CreateGame inserts a new game with its initial world blob.
func (db *DB) CreateGame(id, seed string, turn int, world []byte) error {
	blob, err := compress(world)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.conn.Exec(
		`INSERT INTO games (id, seed, status, turn, world, created_at, updated_at)
		 VALUES (?, ?, 'ACTIVE', ?, ?, ?, ?)`,
		id, seed, turn, blob, now, now)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", id, err)
	}
	return nil
}

// LoadGame returns a game's record and its decompressed world blob.
func (db *DB) LoadGame(id string) (GameRecord, []byte, error) {
	var rec GameRecord
	var blob []byte
	row := db.conn.QueryRow(
		`SELECT id, seed, status, turn, world, created_at, updated_at FROM games WHERE id = ?`, id)
	err := row.Scan(&rec.ID, &rec.Seed, &rec.Status, &rec.Turn, &blob, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GameRecord{}, nil, ErrNotFound
	}
	if err != nil {
		return GameRecord{}, nil, fmt.Errorf("load game %s: %w", id, err)
	}
	world, err := decompress(blob)
	if err != nil {
		return GameRecord{}, nil, fmt.Errorf("load game %s: %w", id, err)
	}
	return rec, world, nil
}

// SaveGame updates a game's status, turn, and world blob.
func (db *DB) SaveGame(id, status string, turn int, world []byte) error {
	blob, err := compress(world)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.conn.Exec(
		`UPDATE games SET status = ?, turn = ?, world = ?, updated_at = ? WHERE id = ?`,
		status, turn, blob, now, id)
	if err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListGames returns all game records, most recently updated first.
func (db *DB) ListGames() ([]GameRecord, error) {
	var recs []GameRecord
	err := db.conn.Select(&recs,
		`SELECT id, seed, status, turn, created_at, updated_at FROM games ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return recs, nil
}

// ArchiveSnapshot stores the player-facing snapshot JSON for one turn so old
// views can be reconstructed without replaying the world.
func (db *DB) ArchiveSnapshot(gameID string, turn int, snapshot []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := db.conn.Exec(
		`INSERT OR REPLACE INTO snapshots (game_id, turn, snapshot, created_at) VALUES (?, ?, ?, ?)`,
		gameID, turn, string(snapshot), now)
	if err != nil {
		return fmt.Errorf("archive snapshot %s/%d: %w", gameID, turn, err)
	}
	return nil
}

// LoadSnapshot returns the archived snapshot JSON for one turn.
func (db *DB) LoadSnapshot(gameID string, turn int) ([]byte, error) {
	var snap string
	err := db.conn.Get(&snap,
		`SELECT snapshot FROM snapshots WHERE game_id = ? AND turn = ?`, gameID, turn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s/%d: %w", gameID, turn, err)
	}
	return []byte(snap), nil
}

// AppendHistory records the resolution summary for one turn. Resubmitting a
// turn overwrites its entry.
func (db *DB) AppendHistory(gameID string, turn int, summary string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := db.conn.Exec(
		`INSERT OR REPLACE INTO history (game_id, turn, summary, created_at) VALUES (?, ?, ?, ?)`,
		gameID, turn, summary, now)
	if err != nil {
		return fmt.Errorf("append history %s/%d: %w", gameID, turn, err)
	}
	return nil
}

// RecentHistory returns the last n turn summaries for a game in chronological
// order. Fewer rows than n is not an error.
func (db *DB) RecentHistory(gameID string, n int) ([]string, error) {
	var summaries []string
	err := db.conn.Select(&summaries,
		`SELECT summary FROM (
			SELECT turn, summary FROM history WHERE game_id = ? ORDER BY turn DESC LIMIT ?
		) ORDER BY turn ASC`, gameID, n)
	if err != nil {
		return nil, fmt.Errorf("recent history %s: %w", gameID, err)
	}
	return summaries, nil
}

func compress(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		return nil, fmt.Errorf("compress world: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress world: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decompress world: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress world: %w", err)
	}
	return out, nil
}
