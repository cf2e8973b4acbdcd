// internal/httpserver/server.go
//
// HTTP server wiring for the guess ranker.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Evaluation endpoints: POST /hint, POST /wordspace.
//   - Search jobs (bearer token required to start, one at a time): mounted under /search.
//   - Persisted rankings: GET /rankings/latest.
//
// Notes:
//   - Searches are CPU heavy and run in the background; the request only
//     starts them, so the handler timeout does not apply to the search.
//   - The rankings endpoint answers 503 when no database is configured.

package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/hint"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/rankdb"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/search"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/store"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/words"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/wordspace"
)

// Options carries the server's collaborators.
type Options struct {
	Lists     *words.Lists
	Jobs      store.Store
	DB        *rankdb.DB // optional
	JWTSecret string
	Workers   int
}

// Server bundles router, job store, word lists and DB handle.
type Server struct {
	r      *chi.Mux
	jobs   store.Store
	db     *rankdb.DB
	lists  *words.Lists
	vocab  []hint.Word
	secret string
	opts   search.Options

	running atomic.Bool // set while a search job runs
}

// New constructs a Server, installs middleware, and registers routes.
func New(o Options) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		jobs:   o.Jobs,
		db:     o.DB,
		lists:  o.Lists,
		vocab:  o.Lists.Vocabulary(),
		secret: o.JWTSecret,
		opts:   search.Options{Workers: o.Workers},
	}
	if s.jobs == nil {
		s.jobs = store.NewMemoryStore()
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"guess-ranker","endpoints":["/health","POST /hint","POST /wordspace","POST /search","/rankings/latest","/metrics"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Handle("/metrics", promhttp.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.lists.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g, "vocabulary": len(s.vocab)})
	})

	// Evaluation of single pairs (public)
	s.r.Post("/hint", s.handleHint)
	s.r.Post("/wordspace", s.handleWordspace)

	// Search jobs; starting one requires a token
	s.mountSearch(s.r)

	s.r.Get("/rankings/latest", s.handleLatest)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ HINT ---------------------------------------

// hintReq/Res payloads for POST /hint.
type hintReq struct {
	Secret string `json:"secret"`
	Guess  string `json:"guess"`
}
type hintRes struct {
	Hint   string         `json:"hint"`  // digits, e.g. "12100"
	Marks  hint.Hint      `json:"marks"` // names per position
	Counts map[string]int `json:"counts"`
}

// handleHint classifies one (secret, guess) pair.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	secret, guess := normalize(req.Secret), normalize(req.Guess)
	if err := s.checkWords(secret, guess); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	h := hint.Classify(secret, guess)
	c := hint.CountMarks(h)
	_ = json.NewEncoder(w).Encode(hintRes{
		Hint:  h.String(),
		Marks: h,
		Counts: map[string]int{
			hint.Absent.String():  c[hint.Absent],
			hint.Present.String(): c[hint.Present],
			hint.Correct.String(): c[hint.Correct],
		},
	})
}

// ---------------------------- WORDSPACE ------------------------------------

// wordspaceReq is the payload for POST /wordspace. Either Hint or Secret
// must be set; a Secret is classified first.
type wordspaceReq struct {
	Guess  string `json:"guess"`
	Hint   string `json:"hint"`
	Secret string `json:"secret"`
}
type wordspaceRes struct {
	Hint      string `json:"hint"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
}

// handleWordspace counts the vocabulary words consistent with (guess, hint).
func (s *Server) handleWordspace(w http.ResponseWriter, r *http.Request) {
	var req wordspaceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	guess := normalize(req.Guess)
	var h hint.Hint
	switch {
	case req.Secret != "":
		secret := normalize(req.Secret)
		if err := s.checkWords(secret, guess); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		h = hint.Classify(secret, guess)
	default:
		if err := s.checkWords(guess); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		parsed, err := hint.ParseHint(req.Hint)
		if err != nil || len(parsed) != len(guess) {
			http.Error(w, `{"error":"invalid_hint"}`, http.StatusBadRequest)
			return
		}
		h = parsed
	}
	n := wordspace.CountConsistent(guess, h, s.vocab)
	_ = json.NewEncoder(w).Encode(wordspaceRes{Hint: h.String(), Remaining: n, Total: len(s.vocab)})
}

// --------------------------- RANKINGS --------------------------------------

// handleLatest returns the most recent persisted run for ?mode= (default reduction).
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		http.Error(w, `{"error":"no_database"}`, http.StatusServiceUnavailable)
		return
	}
	mode, err := search.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}
	run, err := s.db.Latest(r.Context(), mode, queryInt(r, "top", 10))
	if errors.Is(err, rankdb.ErrNoRuns) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("load latest ranking")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(run)
}

// ------------------------------- small util --------------------------------

// normalize lowercases and trims a submitted word.
func normalize(s string) hint.Word {
	return hint.Word(strings.ToLower(strings.TrimSpace(s)))
}

// checkWords enforces the vocabulary word length and the allowed list.
func (s *Server) checkWords(ws ...hint.Word) error {
	if len(s.vocab) == 0 {
		return errors.New("empty_vocabulary")
	}
	n := len(s.vocab[0])
	for _, w := range ws {
		if len(w) != n {
			return errors.New("invalid_length")
		}
		if !s.lists.IsAllowed(string(w)) {
			return errors.New("not_in_word_list")
		}
	}
	return nil
}

// queryInt parses a positive integer query parameter.
func queryInt(r *http.Request, k string, def int) int {
	if v := r.URL.Query().Get(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
