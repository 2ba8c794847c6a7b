package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/intel"
	"github.com/talgya/statecraft/internal/persistence"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := &Server{Svc: game.NewService(db, nil)}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func createGame(t *testing.T, ts *httptest.Server, seed string) string {
	t.Helper()
	body := bytes.NewBufferString(fmt.Sprintf(`{"seed":%q}`, seed))
	resp, err := http.Post(ts.URL+"/api/v1/games", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		GameID   string             `json:"gameId"`
		Snapshot intel.GameSnapshot `json:"snapshot"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.GameID)
	return out.GameID
}

func TestCreateGameEndpoint(t *testing.T) {
	ts := newTestServer(t)
	body := bytes.NewBufferString(`{"seed":"api-seed"}`)
	resp, err := http.Post(ts.URL+"/api/v1/games", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		GameID   string             `json:"gameId"`
		Snapshot intel.GameSnapshot `json:"snapshot"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.GameID)
	assert.Equal(t, 1, out.Snapshot.Turn)
	assert.NotEmpty(t, out.Snapshot.Briefing)
	assert.NotEmpty(t, out.Snapshot.Metrics)
}

func TestCreateGameEmptyBody(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/v1/games", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "empty body means random seed")
}

func TestSnapshotEndpoint(t *testing.T) {
	ts := newTestServer(t)
	id := createGame(t, ts, "snap-seed")

	resp, err := http.Get(ts.URL + "/api/v1/games/" + id)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap intel.GameSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, id, snap.GameID)

	// Hidden payloads never cross the wire.
	for _, e := range snap.IncomingEvents {
		assert.Nil(t, e.Ops)
		assert.Nil(t, e.Scheduled)
	}
}

func TestSnapshotMissingGame(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/games/no-such-id")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListEndpoint(t *testing.T) {
	ts := newTestServer(t)
	createGame(t, ts, "list-1")
	createGame(t, ts, "list-2")

	resp, err := http.Get(ts.URL + "/api/v1/games")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Games []persistence.GameRecord `json:"games"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Games, 2)
}

func TestTurnEndpoint(t *testing.T) {
	ts := newTestServer(t)
	id := createGame(t, ts, "turn-seed")

	body := bytes.NewBufferString(`{"actions":[
		{"category":"ECONOMY","type":"SUBSIDIES","intensity":2,"visibility":"PUBLIC"}
	]}`)
	resp, err := http.Post(ts.URL+"/api/v1/games/"+id+"/turn", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Outcome  json.RawMessage    `json:"outcome"`
		Snapshot intel.GameSnapshot `json:"snapshot"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Outcome)
}

func TestTurnEndpointErrorMapping(t *testing.T) {
	ts := newTestServer(t)
	id := createGame(t, ts, "errors-seed")

	post := func(body string) *http.Response {
		resp, err := http.Post(ts.URL+"/api/v1/games/"+id+"/turn", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	assert.Equal(t, http.StatusBadRequest, post(`not json`).StatusCode)

	tooMany := `{"actions":[
		{"category":"ECONOMY","type":"SUBSIDIES","intensity":1,"visibility":"PUBLIC"},
		{"category":"MEDIA","type":"CENSOR","intensity":1,"visibility":"PUBLIC"},
		{"category":"MEDIA","type":"CAMPAIGN","intensity":1,"visibility":"PUBLIC"}
	]}`
	assert.Equal(t, http.StatusBadRequest, post(tooMany).StatusCode)

	invalid := `{"actions":[{"category":"ECONOMY","type":"PRINT_MONEY","intensity":1,"visibility":"PUBLIC"}]}`
	assert.Equal(t, http.StatusBadRequest, post(invalid).StatusCode)

	resp, err := http.Post(ts.URL+"/api/v1/games/missing/turn", "application/json", strings.NewReader(`{"actions":[]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
