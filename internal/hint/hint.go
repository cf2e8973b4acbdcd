// internal/hint/hint.go
//
// Hint engine for (secret, guess) pairs.
// Responsibilities:
//   - Classify every guess position as Correct, Present or Absent.
//   - Produce the position-free Counts used by the weighted score.
//   - Validate that words share the expected length.
//
// Notes:
//   - Letters are compared as bytes, so any single-byte alphabet works.
//   - ClassifyInto reuses a caller buffer; the search hot path calls it
//     once per (guess, secret) pair.
package hint

import (
	"errors"
	"fmt"
)

// ErrLength is returned when a word does not have the expected length.
var ErrLength = errors.New("hint: word length mismatch")

// ValidateLength returns ErrLength (wrapped with the word) if len(w) != n.
func ValidateLength(w Word, n int) error {
	if len(w) != n {
		return fmt.Errorf("%w: %q has %d letters, want %d", ErrLength, string(w), len(w), n)
	}
	return nil
}

// Classify compares guess against secret and returns a new Hint.
// Both words must have the same length.
func Classify(secret, guess Word) Hint {
	return ClassifyInto(make(Hint, len(guess)), secret, guess)
}

// ClassifyInto implements the two-pass allocation and writes the result into dst.
//
// Pass 1:
//   - Mark exact matches as Correct and allocate one occurrence of that letter.
//
// Pass 2 (left to right):
//   - For each remaining position, mark Present while the letter still has
//     unallocated occurrences in the secret; otherwise mark Absent.
//
// The Present+Correct markers for a letter never exceed its count in the secret.
// dst must have len(guess) elements; it is returned for convenience.
func ClassifyInto(dst Hint, secret, guess Word) Hint {
	n := len(guess)
	if len(secret) != n || len(dst) != n {
		panic(fmt.Sprintf("hint: ClassifyInto lengths secret=%d guess=%d dst=%d", len(secret), n, len(dst)))
	}

	var total, allocated [256]int
	for i := 0; i < n; i++ {
		total[secret[i]]++
	}

	// First pass: exact matches.
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			dst[i] = Correct
			allocated[guess[i]]++
		} else {
			dst[i] = Absent
		}
	}

	// Second pass: presents from what is left.
	for i := 0; i < n; i++ {
		if dst[i] == Correct {
			continue
		}
		c := guess[i]
		if allocated[c] < total[c] {
			dst[i] = Present
			allocated[c]++
		}
	}
	return dst
}

// Aggregate returns only how many positions received each mark.
func Aggregate(secret, guess Word) Counts {
	var buf [32]Mark
	var h Hint
	if len(guess) <= len(buf) {
		h = buf[:len(guess)]
	} else {
		h = make(Hint, len(guess))
	}
	return CountMarks(ClassifyInto(h, secret, guess))
}

// CountMarks projects a hint onto its Counts.
func CountMarks(h Hint) Counts {
	var c Counts
	for _, m := range h {
		c[m]++
	}
	return c
}
