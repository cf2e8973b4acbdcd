// internal/search/search.go
//
// Parallel search over every candidate guess.
// Responsibilities:
//   - Validate the vocabulary and secret lists before any work starts.
//   - Split the vocabulary into contiguous chunks, one worker per chunk.
//   - Score each guess with the selected Mode and merge into a Ranking.
//
// Notes:
//   - Inputs are read-only for the whole run and shared by all workers.
//   - Each worker writes only the result slots of its own chunk, so the
//     result table needs no locking.
//   - The context is checked between guesses; a cancelled search returns
//     the context error and no partial ranking.
package search

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/hint"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/wordspace"
)

// Options tune a search. The zero value is usable.
type Options struct {
	// Workers is the number of parallel workers; 0 means runtime.NumCPU().
	Workers int
	// WordLength is the required length of every word; 0 takes it from the
	// first vocabulary word.
	WordLength int
	// Weights are used by the Weighted mode; the zero value means
	// wordspace.DefaultWeights.
	Weights wordspace.Weights
	// Progress, if set, is called after each scored guess with the number of
	// guesses done so far. It is called from worker goroutines concurrently.
	Progress func(done, total int)
}

// scoreFunc scores a single guess. It must be safe for concurrent use.
type scoreFunc func(guess hint.Word) float64

// Search scores every word of vocab against secrets and returns them ranked
// best first.
func Search(ctx context.Context, vocab, secrets []hint.Word, mode Mode, opts Options) (*Ranking, error) {
	if err := validate(vocab, secrets, opts.WordLength); err != nil {
		searchErrors.WithLabelValues("input").Inc()
		return nil, err
	}

	var score scoreFunc
	switch mode {
	case Reduction:
		score = func(g hint.Word) float64 { return wordspace.AverageReduction(g, secrets, vocab) }
	case Weighted:
		w := opts.Weights
		if w == (wordspace.Weights{}) {
			w = wordspace.DefaultWeights
		}
		if err := w.Validate(); err != nil {
			searchErrors.WithLabelValues("input").Inc()
			return nil, err
		}
		score = func(g hint.Word) float64 { return wordspace.WeightedScore(g, secrets, w) }
	default:
		searchErrors.WithLabelValues("input").Inc()
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	log.Info().
		Str("mode", mode.String()).
		Int("guesses", len(vocab)).
		Int("secrets", len(secrets)).
		Int("combinations", len(vocab)*len(secrets)).
		Msg("search started")

	t0 := time.Now()
	r, err := run(ctx, vocab, mode, score, opts)
	if err != nil {
		kind := "worker"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			kind = "canceled"
		}
		searchErrors.WithLabelValues(kind).Inc()
		return nil, err
	}
	elapsed := time.Since(t0)
	searchDuration.WithLabelValues(mode.String()).Observe(elapsed.Seconds())
	log.Info().Str("mode", mode.String()).Dur("elapsed", elapsed).Int("ranked", len(r.Entries)).Msg("search finished")
	return r, nil
}

// validate fails fast on empty lists and words of the wrong length.
func validate(vocab, secrets []hint.Word, n int) error {
	if len(vocab) == 0 {
		return ErrEmptyVocabulary
	}
	if len(secrets) == 0 {
		return ErrEmptySecrets
	}
	if n == 0 {
		n = len(vocab[0])
	}
	if n == 0 {
		return fmt.Errorf("%w: empty word", ErrLengthMismatch)
	}
	for _, list := range [][]hint.Word{vocab, secrets} {
		for _, w := range list {
			if err := hint.ValidateLength(w, n); err != nil {
				return fmt.Errorf("%w: %w", ErrLengthMismatch, err)
			}
		}
	}
	return nil
}

// span is a half-open range [lo, hi) of vocabulary indexes.
type span struct{ lo, hi int }

// partition splits n items into contiguous spans of n/workers items each;
// the last span absorbs the remainder. workers is capped at n so no span is empty.
func partition(n, workers int) []span {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	per := n / workers
	out := make([]span, workers)
	for i := range out {
		out[i] = span{lo: i * per, hi: (i + 1) * per}
	}
	out[workers-1].hi = n
	return out
}

// run fans the vocabulary out over workers and merges their slots.
func run(ctx context.Context, vocab []hint.Word, mode Mode, score scoreFunc, opts Options) (*Ranking, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	spans := partition(len(vocab), workers)

	slots := make([]float64, len(vocab))
	filled := make([]bool, len(vocab))
	total := len(vocab)
	evaluated := guessesEvaluated.WithLabelValues(mode.String())
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for _, sp := range spans {
		sp := sp
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: guesses %d..%d: %v", ErrWorkerFailure, sp.lo, sp.hi, r)
				}
			}()
			for i := sp.lo; i < sp.hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				slots[i] = score(vocab[i])
				filled[i] = true
				evaluated.Inc()
				n := done.Add(1)
				if opts.Progress != nil {
					opts.Progress(int(n), total)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merge(vocab, slots, filled, mode)
}

// merge builds the ranking. Duplicate words keep their first slot; ties
// keep vocabulary order so the result does not depend on partitioning.
func merge(vocab []hint.Word, slots []float64, filled []bool, mode Mode) (*Ranking, error) {
	seen := make(map[hint.Word]struct{}, len(vocab))
	entries := make([]Scored, 0, len(vocab))
	for i, w := range vocab {
		if !filled[i] {
			return nil, fmt.Errorf("%w: %q at %d", ErrIncompleteResults, string(w), i)
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		entries = append(entries, Scored{Word: w, Score: slots[i]})
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return mode.better(entries[a].Score, entries[b].Score)
	})
	return &Ranking{Mode: mode, Entries: entries}, nil
}
