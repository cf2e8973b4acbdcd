package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/hint"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/rankdb"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/search"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/store"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/words"
)

const testSecret = "test_secret"

func newTestServer(t *testing.T, withDB bool) *Server {
	t.Helper()
	lists := words.New(
		[]hint.Word{"allot", "crane", "robot", "speed", "xxxxe"},
		[]hint.Word{"abide", "llama", "slate", "eerie", "geese", "exxxe", "books", "kayak", "abbey", "eaten"},
	)
	o := Options{Lists: lists, Jobs: store.NewMemoryStore(), JWTSecret: testSecret, Workers: 2}
	if withDB {
		db, err := rankdb.Open(filepath.Join(t.TempDir(), "rankings.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		o.DB = db
	}
	return New(o)
}

func do(t *testing.T, s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestHint(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodPost, "/hint", `{"secret":"ALLOT","guess":"llama"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"hint":"12100",
		"marks":["present","correct","present","absent","absent"],
		"counts":{"absent":2,"present":2,"correct":1}
	}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/hint", `{"secret":"allot","guess":"zzzzz"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_in_word_list")

	rec = do(t, s, http.MethodPost, "/hint", `{"secret":"allot","guess":"lla"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_length")
}

func TestWordspace(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/wordspace", `{"guess":"crane","hint":"22222"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res wordspaceRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, 15, res.Total)

	rec = do(t, s, http.MethodPost, "/wordspace", `{"guess":"llama","secret":"allot"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "12100", res.Hint)
	assert.Equal(t, 1, res.Remaining)

	rec = do(t, s, http.MethodPost, "/wordspace", `{"guess":"crane","hint":"222"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRequiresToken(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodPost, "/search", `{"mode":"reduction"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	bad, _, err := SignToken("other_secret", "ops", 1)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/search", `{"mode":"reduction"}`, bad)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSearchJobLifecycle(t *testing.T) {
	s := newTestServer(t, true)
	tok, _, err := SignToken(testSecret, "ops", 1)
	require.NoError(t, err)

	rec := do(t, s, http.MethodPost, "/search", `{"mode":"entropy"}`, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/search", `{"mode":"reduction"}`, tok)
	require.Equal(t, http.StatusAccepted, rec.Code)
	var started startRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
	require.NotEmpty(t, started.JobID)
	assert.Equal(t, search.Reduction, started.Mode)
	assert.Equal(t, 15, started.Total)

	var job struct {
		Status string          `json:"status"`
		Done   int             `json:"done"`
		Best   []search.Scored `json:"best"`
		Worst  []search.Scored `json:"worst"`
	}
	require.Eventually(t, func() bool {
		rec := do(t, s, http.MethodGet, "/search/"+started.JobID+"?top=3", "", "")
		if rec.Code != http.StatusOK {
			return false
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &job)
		return job.Status == string(store.StatusDone)
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, 15, job.Done)
	require.Len(t, job.Best, 3)
	assert.Equal(t, hint.Word("slate"), job.Best[0].Word)
	assert.Equal(t, hint.Word("kayak"), job.Worst[0].Word)

	rec = do(t, s, http.MethodGet, "/rankings/latest?mode=reduction&top=2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var run rankdb.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, search.Reduction, run.Mode)
	require.Len(t, run.Entries, 2)
	assert.Equal(t, job.Best[:2], run.Entries)

	rec = do(t, s, http.MethodGet, "/rankings/latest?mode=weighted", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchOneJobAtATime(t *testing.T) {
	s := newTestServer(t, false)
	tok, _, err := SignToken(testSecret, "ops", 1)
	require.NoError(t, err)

	s.running.Store(true)
	rec := do(t, s, http.MethodPost, "/search", `{"mode":"weighted"}`, tok)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "search_running")

	s.running.Store(false)
	rec = do(t, s, http.MethodPost, "/search", `{"mode":"weighted"}`, tok)
	require.Equal(t, http.StatusAccepted, rec.Code)
	var started startRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))

	require.Eventually(t, func() bool {
		j, err := s.jobs.Get(context.Background(), started.JobID)
		return err == nil && j.Status == store.StatusDone
	}, 5*time.Second, 10*time.Millisecond)
	assert.False(t, s.running.Load())

	rec = do(t, s, http.MethodPost, "/search", `{"mode":"weighted"}`, tok)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestSearchJobNotFound(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/search/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatestWithoutDatabase(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/rankings/latest", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
