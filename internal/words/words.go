// internal/words/words.go
//
// Word list management for the ranker.
//
// Responsibilities:
//   - Load the secret (answer) and allowed guess lists from files, or fall
//     back to the embedded defaults in the assets package.
//   - Normalize entries to lowercase and reject any word whose length is
//     not the configured word length.
//   - Build the working vocabulary explicitly before a search starts.
//
// Selection (Load):
//   1. AnswersFile and AllowedFile both set: read each file.
//   2. Only AllowedFile set: use that list for both answers and guesses.
//   3. Neither set: use the embedded answers.txt / allowed.txt.
//
// File format:
//   • One word per line; blank lines and lines starting with '#' are skipped.
//   • Letters must be a–z after lowercasing.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/guess-ranker/assets"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/hint"
)

var (
	// ErrWordLength is returned for list entries of the wrong length.
	ErrWordLength = errors.New("words: wrong word length")
	// ErrWordChar is returned for list entries with characters outside a–z.
	ErrWordChar = errors.New("words: non-alphabetic word")
	// ErrEmptyList is returned when a list has no words.
	ErrEmptyList = errors.New("words: list is empty")
)

// Source says where the lists come from.
type Source struct {
	AnswersFile string
	AllowedFile string
	Length      int // 0 means hint.DefaultLength
}

// Lists holds the loaded secret and allowed guess lists, in file order.
type Lists struct {
	Secrets []hint.Word
	Allowed []hint.Word
	allowed map[hint.Word]struct{}
}

// Load reads both lists according to src.
func Load(src Source) (*Lists, error) {
	n := src.Length
	if n == 0 {
		n = hint.DefaultLength
	}

	var secrets, allowed []hint.Word
	var err error
	switch {
	// Case 1: both lists provided
	case src.AnswersFile != "" && src.AllowedFile != "":
		if secrets, err = ReadWordFile(src.AnswersFile, n); err != nil {
			return nil, err
		}
		if allowed, err = ReadWordFile(src.AllowedFile, n); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case src.AllowedFile != "":
		if allowed, err = ReadWordFile(src.AllowedFile, n); err != nil {
			return nil, err
		}
		secrets = allowed

	// Case 3: embedded defaults
	default:
		if secrets, err = readEmbedded(assets.AnswersFile, n); err != nil {
			return nil, err
		}
		if allowed, err = readEmbedded(assets.AllowedFile, n); err != nil {
			return nil, err
		}
	}

	if len(secrets) == 0 {
		return nil, fmt.Errorf("%w: answers", ErrEmptyList)
	}
	l := New(secrets, allowed)
	log.Debug().Int("answers", len(secrets)).Int("allowed", len(l.allowed)).Msg("word lists loaded")
	return l, nil
}

// New wraps already-loaded lists. Answers are always allowed guesses.
func New(secrets, allowed []hint.Word) *Lists {
	l := &Lists{Secrets: secrets, Allowed: allowed, allowed: toSet(allowed)}
	for _, w := range secrets {
		l.allowed[w] = struct{}{}
	}
	return l
}

// Vocabulary returns the guess universe: allowed words followed by secrets,
// without duplicates.
func (l *Lists) Vocabulary() []hint.Word {
	return BuildVocabulary(l.Allowed, l.Secrets)
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.allowed[hint.Word(strings.ToLower(strings.TrimSpace(w)))]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lists) Stats() (answersCount int, allowedCount int) {
	return len(l.Secrets), len(l.allowed)
}

// BuildVocabulary appends secrets to allowed, keeping the first occurrence
// of every word. Neither input is modified.
func BuildVocabulary(allowed, secrets []hint.Word) []hint.Word {
	seen := make(map[hint.Word]struct{}, len(allowed)+len(secrets))
	out := make([]hint.Word, 0, len(allowed)+len(secrets))
	for _, list := range [][]hint.Word{allowed, secrets} {
		for _, w := range list {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

// ReadWordFile loads one word per line from a file.
func ReadWordFile(path string, n int) ([]hint.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := Parse(f, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func readEmbedded(name string, n int) ([]hint.Word, error) {
	f, err := assets.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := Parse(f, n)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", name, err)
	}
	return out, nil
}

// Parse reads a word list, lowercasing and trimming each line. A word of the
// wrong length or with non a–z characters fails the whole list.
func Parse(r io.Reader, n int) ([]hint.Word, error) {
	var out []hint.Word
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if len(w) != n {
			return nil, fmt.Errorf("%w: line %d %q has %d letters, want %d", ErrWordLength, line, w, len(w), n)
		}
		if !isAlpha(w) {
			return nil, fmt.Errorf("%w: line %d %q", ErrWordChar, line, w)
		}
		out = append(out, hint.Word(w))
	}
	return out, sc.Err()
}

// toSet converts a list of words into a lookup set.
func toSet(list []hint.Word) map[hint.Word]struct{} {
	m := make(map[hint.Word]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
