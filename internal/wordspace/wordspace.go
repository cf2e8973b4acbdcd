// internal/wordspace/wordspace.go
//
// Wordspace reduction for a single guess.
// Responsibilities:
//   - Decide whether a vocabulary word is consistent with (guess, hint).
//   - Count the consistent words in a vocabulary.
//   - Score one guess against every secret, either by the average number of
//     remaining candidates (lower is better) or by a weighted mark sum
//     (higher is better).
//
// Counting is inclusive: the guess itself and the true secret are counted
// whenever they pass the rules.
package wordspace

import (
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/hint"
)

// Consistent reports whether w could still be the secret after guess received h.
//
// Rules by position:
//   - Correct: w has the guessed letter at that position.
//   - Present: w has a different letter there but contains the guessed letter.
//   - Absent:  w lacks the guessed letter, or the letter is already accounted
//     for by an earlier position of the guess marked Present or Correct. A
//     later Correct of the same letter also accounts for it, provided w does
//     not have the letter at this position.
//
// Words of a different length than guess are never consistent.
func Consistent(w, guess hint.Word, h hint.Hint) bool {
	if len(w) != len(guess) || len(h) != len(guess) {
		return false
	}
	for i := 0; i < len(guess); i++ {
		g := guess[i]
		switch h[i] {
		case hint.Correct:
			if w[i] != g {
				return false
			}
		case hint.Present:
			if w[i] == g || !contains(w, g) {
				return false
			}
		default:
			if contains(w, g) && !accounted(w, guess, h, i) {
				return false
			}
		}
	}
	return true
}

// CountConsistent returns how many vocabulary words are consistent with (guess, h).
func CountConsistent(guess hint.Word, h hint.Hint, vocab []hint.Word) int {
	n := 0
	for _, w := range vocab {
		if Consistent(w, guess, h) {
			n++
		}
	}
	return n
}

// AverageReduction classifies guess against every secret, counts the
// vocabulary words left by each hint, and returns the mean count.
// secrets must be non-empty.
func AverageReduction(guess hint.Word, secrets, vocab []hint.Word) float64 {
	buf := make(hint.Hint, len(guess))
	total := 0
	for _, s := range secrets {
		h := hint.ClassifyInto(buf, s, guess)
		total += CountConsistent(guess, h, vocab)
	}
	return float64(total) / float64(len(secrets))
}

// accounted reports whether the Absent guess[i] is explained by another
// marker of the same letter. An earlier Present or Correct always explains
// it. Present markers are handed out left to right, so a later marker can
// only be a Correct; that one explains it only when w[i] differs from the
// letter, since w with the letter at i would have earned a Correct there.
func accounted(w, guess hint.Word, h hint.Hint, i int) bool {
	g := guess[i]
	for j := 0; j < i; j++ {
		if guess[j] == g && h[j] != hint.Absent {
			return true
		}
	}
	if w[i] == g {
		return false
	}
	for j := i + 1; j < len(guess); j++ {
		if guess[j] == g && h[j] != hint.Absent {
			return true
		}
	}
	return false
}

func contains(w hint.Word, c byte) bool {
	for i := 0; i < len(w); i++ {
		if w[i] == c {
			return true
		}
	}
	return false
}
