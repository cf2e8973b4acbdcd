package search

import (
	"fmt"
	"strings"
)

// Mode selects how a guess is scored and which direction of the score is better.
type Mode int

const (
	// Reduction scores a guess by the average number of vocabulary words
	// left after its hint. Lower is better.
	Reduction Mode = iota
	// Weighted scores a guess by a weighted sum of the marks it earns
	// across all secrets. Higher is better.
	Weighted
)

func (m Mode) String() string {
	switch m {
	case Reduction:
		return "reduction"
	case Weighted:
		return "weighted"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reduction", "reduced", "wordspace":
		return Reduction, nil
	case "weighted", "weight":
		return Weighted, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// better reports whether score a ranks ahead of score b under m.
func (m Mode) better(a, b float64) bool {
	if m == Weighted {
		return a > b
	}
	return a < b
}
