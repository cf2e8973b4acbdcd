package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/rankdb"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/report"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/search"
)

func newRankCmd() *cobra.Command {
	var (
		mode     string
		top      int
		workers  int
		out      string
		order    string
		persist  bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Score every allowed guess against every secret and write the ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := search.ParseMode(mode)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Workers
			}
			if out == "" {
				out = cfg.ReportFile
			}
			if order != "best" && order != "worst" {
				return fmt.Errorf("--order must be best or worst, got %q", order)
			}

			lists, err := loadLists(cmd)
			if err != nil {
				return err
			}
			vocab := lists.Vocabulary()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p := newProgressLogger(interval)
			ranking, err := search.Search(ctx, vocab, lists.Secrets, m, search.Options{
				Workers:    workers,
				WordLength: len(vocab[0]),
				Progress:   p.report,
			})
			if err != nil {
				return err
			}

			entries := ranking.Entries
			if order == "worst" {
				entries = ranking.Reversed()
			}
			if err := report.WriteCSVFile(out, entries); err != nil {
				return err
			}
			log.Info().Str("file", out).Int("rows", len(entries)).Msg("ranking written")

			if persist {
				db, err := rankdb.Open(cfg.DBPath)
				if err != nil {
					return err
				}
				defer db.Close()
				id, err := db.Save(ctx, ranking, len(lists.Secrets))
				if err != nil {
					return err
				}
				log.Info().Int64("run", id).Str("db", cfg.DBPath).Msg("ranking persisted")
			}
			return report.Summary(cmd.OutOrStdout(), ranking, top)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "reduction", "scoring mode: reduction or weighted")
	cmd.Flags().IntVar(&top, "top", 10, "number of best and worst guesses to print")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (default: WORKERS or CPU count)")
	cmd.Flags().StringVar(&out, "out", "", "CSV output file (default: REPORT_FILE)")
	cmd.Flags().StringVar(&order, "order", "best", "CSV row order: best or worst first")
	cmd.Flags().BoolVar(&persist, "persist", false, "also store the ranking in the SQLite database at DB_PATH")
	cmd.Flags().DurationVar(&interval, "progress", 5*time.Second, "progress log interval")
	return cmd
}

// progressLogger logs search progress at most once per interval. An interval
// of zero or less logs every call.
type progressLogger struct {
	start  time.Time
	every  rate.Sometimes
	logger zerolog.Logger
}

func newProgressLogger(every time.Duration) *progressLogger {
	p := &progressLogger{start: time.Now(), logger: log.Logger}
	if every > 0 {
		p.every.Interval = every
	} else {
		p.every.Every = 1
	}
	return p
}

// report is passed to search.Options.Progress; workers call it concurrently.
func (p *progressLogger) report(done, total int) {
	p.every.Do(func() {
		p.logger.Info().
			Int("done", done).
			Int("total", total).
			Str("pct", fmt.Sprintf("%.1f%%", 100*float64(done)/float64(total))).
			Dur("elapsed", time.Since(p.start)).
			Msg("progress")
	})
}
