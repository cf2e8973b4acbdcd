// internal/httpserver/routes_search.go
//
// HTTP routes for background search jobs.
// Exposes two endpoints under /search:
//   - POST /search      → start a search over the loaded lists (token required)
//   - GET  /search/{id} → job status, progress, and best/worst slices once done
//
// Jobs live in the in-memory store while the process runs. Finished rankings
// are also written to the database when one is configured.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/search"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/store"
)

// mountSearch registers all /search routes.
func (s *Server) mountSearch(r chi.Router) {
	r.Route("/search", func(r chi.Router) {
		r.With(s.requireAuth()).Post("/", s.handleStartSearch)
		r.Get("/{id}", s.handleGetSearch)
	})
}

// startReq is the payload for POST /search.
type startReq struct {
	Mode string `json:"mode"` // "reduction" (default) | "weighted"
}

// startRes is returned by POST /search.
type startRes struct {
	JobID string      `json:"jobId"`
	Mode  search.Mode `json:"mode"`
	Total int         `json:"total"`
}

// handleStartSearch validates the mode, records a running job and starts the
// search in the background. Only one search runs at a time; a second request
// gets 409 until the first finishes.
func (s *Server) handleStartSearch(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	mode, err := search.ParseMode(req.Mode)
	if err != nil {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}

	if !s.running.CompareAndSwap(false, true) {
		http.Error(w, `{"error":"search_running"}`, http.StatusConflict)
		return
	}

	job := &store.Job{
		ID:        genID(),
		Mode:      mode,
		Status:    store.StatusRunning,
		Total:     len(s.vocab),
		StartedAt: time.Now().UTC(),
	}
	if err := s.jobs.Save(r.Context(), job); err != nil {
		s.running.Store(false)
		log.Error().Err(err).Msg("save job")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	sub, _ := r.Context().Value(ctxSubjectKey{}).(string)
	log.Info().Str("job", job.ID).Str("mode", mode.String()).Str("subject", sub).Msg("search job started")

	go s.runJob(job.ID, mode)

	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(startRes{JobID: job.ID, Mode: mode, Total: job.Total})
}

// runJob executes one search and records its outcome. It outlives the request.
func (s *Server) runJob(id string, mode search.Mode) {
	ctx := context.Background()
	opts := s.opts
	opts.Progress = func(done, total int) {
		_ = s.jobs.Update(ctx, id, func(j *store.Job) {
			if done > j.Done {
				j.Done = done
			}
		})
	}

	ranking, err := search.Search(ctx, s.vocab, s.lists.Secrets, mode, opts)
	if err == nil && s.db != nil {
		if _, derr := s.db.Save(ctx, ranking, len(s.lists.Secrets)); derr != nil {
			log.Warn().Err(derr).Str("job", id).Msg("persist ranking")
		}
	}
	s.running.Store(false)
	_ = s.jobs.Update(ctx, id, func(j *store.Job) {
		j.FinishedAt = time.Now().UTC()
		if err != nil {
			j.Status = store.StatusFailed
			j.Error = err.Error()
			return
		}
		j.Status = store.StatusDone
		j.Ranking = ranking
	})
	if err != nil {
		log.Error().Err(err).Str("job", id).Msg("search job failed")
	}
}

// jobRes is returned by GET /search/{id}.
type jobRes struct {
	*store.Job
	Best  []search.Scored `json:"best,omitempty"`
	Worst []search.Scored `json:"worst,omitempty"`
}

// handleGetSearch reports a job; ?top= bounds the best/worst slices (default 10).
func (s *Server) handleGetSearch(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"store_error"}`, http.StatusInternalServerError)
		return
	}
	res := jobRes{Job: job}
	if job.Ranking != nil {
		k := queryInt(r, "top", 10)
		res.Best = job.Ranking.Best(k)
		res.Worst = job.Ranking.Worst(k)
	}
	_ = json.NewEncoder(w).Encode(res)
}
