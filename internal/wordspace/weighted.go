package wordspace

import (
	"errors"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/hint"
)

// Weights values each mark in the weighted score.
type Weights [3]float64

// DefaultWeights are the historical constants: absent 0, present 0.02, correct 0.05.
var DefaultWeights = Weights{0.0, 0.02, 0.05}

// ErrBadWeights is returned when weights are negative or not ordered
// Absent <= Present <= Correct.
var ErrBadWeights = errors.New("wordspace: weights must be non-negative and ordered absent <= present <= correct")

// Validate checks the ordering constraint.
func (w Weights) Validate() error {
	if w[hint.Absent] < 0 || w[hint.Absent] > w[hint.Present] || w[hint.Present] > w[hint.Correct] {
		return ErrBadWeights
	}
	return nil
}

// Score applies the weights to accumulated counts.
func (w Weights) Score(c hint.Counts) float64 {
	return float64(c[hint.Absent])*w[hint.Absent] +
		float64(c[hint.Present])*w[hint.Present] +
		float64(c[hint.Correct])*w[hint.Correct]
}

// WeightedScore sums the marks guess receives against every secret and
// weighs the totals. No vocabulary scan is involved.
func WeightedScore(guess hint.Word, secrets []hint.Word, w Weights) float64 {
	var total hint.Counts
	buf := make(hint.Hint, len(guess))
	for _, s := range secrets {
		total.Add(hint.CountMarks(hint.ClassifyInto(buf, s, guess)))
	}
	return w.Score(total)
}
