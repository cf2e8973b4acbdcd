// internal/report/report.go
//
// Report output for a finished ranking.
//   - WriteCSV: flat `word,score` table in exactly the order given.
//   - Summary:  numbered best/worst listing for the terminal.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/search"
)

// Header is the first CSV row.
var Header = []string{"word", "score"}

// WriteCSV writes the header and one row per entry. Entries are not re-sorted.
func WriteCSV(w io.Writer, entries []search.Scored) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{string(e.Word), strconv.FormatFloat(e.Score, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile creates (or truncates) path and writes the entries to it.
func WriteCSVFile(path string, entries []search.Scored) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, entries); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Summary prints the best k and worst k entries of r.
func Summary(w io.Writer, r *search.Ranking, k int) error {
	if err := list(w, "Best", r.Best(k)); err != nil {
		return err
	}
	return list(w, "Worst", r.Worst(k))
}

func list(w io.Writer, label string, entries []search.Scored) error {
	if _, err := fmt.Fprintf(w, "Top %d %s 1st Guess Words:\n", len(entries), label); err != nil {
		return err
	}
	for i, e := range entries {
		if _, err := fmt.Fprintf(w, "%d. %s\t%.2f\n", i+1, e.Word, e.Score); err != nil {
			return err
		}
	}
	return nil
}
