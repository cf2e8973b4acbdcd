// internal/hint/types.go
//
// Core type definitions for hint evaluation.
// Defines:
//   - Word: a fixed-length guess or secret.
//   - Mark: per-letter result of a guess (absent/present/correct).
//   - Hint: the positional marks for one (secret, guess) pair.
//   - Counts: the marks of a hint without positions.

package hint

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLength is the word length of the classic game.
const DefaultLength = 5

// Word is a guess or secret. All words compared with each other must share a length.
type Word string

// Mark represents the evaluation result for a single letter in a guess.
// The numeric values match the 0/1/2 digits used in reports:
//   - Absent:  letter is not (or no longer) available in the secret.
//   - Present: letter exists in the secret at a different position.
//   - Correct: letter is in the correct position.
type Mark uint8

const (
	Absent Mark = iota
	Present
	Correct
)

// numMarks is the size of the closed Mark label set.
const numMarks = 3

func (m Mark) String() string {
	switch m {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return fmt.Sprintf("mark(%d)", uint8(m))
}

// MarshalText encodes a mark by name, so a Hint marshals as a list of names.
func (m Mark) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Hint holds one Mark per position of the guess.
type Hint []Mark

// String renders the hint as digits, e.g. "10200".
func (h Hint) String() string {
	var b strings.Builder
	b.Grow(len(h))
	for _, m := range h {
		b.WriteByte('0' + byte(m))
	}
	return b.String()
}

// AllCorrect reports whether every position is Correct.
func (h Hint) AllCorrect() bool {
	for _, m := range h {
		if m != Correct {
			return false
		}
	}
	return true
}

// ErrBadHint is returned by ParseHint for anything other than 0/1/2 digits.
var ErrBadHint = errors.New("hint: digits must be 0, 1 or 2")

// ParseHint parses the digit form produced by Hint.String.
func ParseHint(s string) (Hint, error) {
	s = strings.TrimSpace(s)
	h := make(Hint, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '2' {
			return nil, fmt.Errorf("%w: %q", ErrBadHint, s)
		}
		h[i] = Mark(s[i] - '0')
	}
	return h, nil
}

// Counts is a hint without positional information, indexed by Mark.
type Counts [numMarks]int

// Add accumulates o into c.
func (c *Counts) Add(o Counts) {
	for i := range c {
		c[i] += o[i]
	}
}
