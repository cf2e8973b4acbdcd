package search

import "github.com/robalobadob/wordle/apps/guess-ranker/internal/hint"

// Scored is one guess and its score under a Ranking's mode.
type Scored struct {
	Word  hint.Word `json:"word"`
	Score float64   `json:"score"`
}

// Ranking holds every scored guess, best first.
type Ranking struct {
	Mode    Mode     `json:"mode"`
	Entries []Scored `json:"entries"`
}

// Best returns up to k entries, best first.
func (r *Ranking) Best(k int) []Scored {
	if k > len(r.Entries) {
		k = len(r.Entries)
	}
	if k < 0 {
		k = 0
	}
	return append([]Scored(nil), r.Entries[:k]...)
}

// Worst returns up to k entries, worst first.
func (r *Ranking) Worst(k int) []Scored {
	if k > len(r.Entries) {
		k = len(r.Entries)
	}
	out := make([]Scored, 0, max(k, 0))
	for i := len(r.Entries) - 1; i >= len(r.Entries)-k; i-- {
		out = append(out, r.Entries[i])
	}
	return out
}

// Reversed returns all entries worst first.
func (r *Ranking) Reversed() []Scored {
	return r.Worst(len(r.Entries))
}
