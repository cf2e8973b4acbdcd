package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/config"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/words"
)

// cfg is filled from .env and the environment before any command runs.
var cfg config.Config

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "guessrank",
		Short:         "Rank first guesses by how far they narrow the secret word list",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			setupLogging(cfg.LogLevel)
		},
	}
	root.PersistentFlags().String("answers", "", "secret word list file (default: WORDS_ANSWERS_FILE or embedded)")
	root.PersistentFlags().String("allowed", "", "allowed guess list file (default: WORDS_ALLOWED_FILE or embedded)")
	root.PersistentFlags().Int("length", 0, "word length (default: WORD_LENGTH or 5)")

	root.AddCommand(newRankCmd(), newHintCmd(), newServeCmd(), newTokenCmd())
	return root
}

// setupLogging applies the level and switches to console output on a terminal.
func setupLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadLists resolves the list flags against the config and loads both lists.
func loadLists(cmd *cobra.Command) (*words.Lists, error) {
	src := words.Source{
		AnswersFile: cfg.AnswersFile,
		AllowedFile: cfg.AllowedFile,
		Length:      cfg.WordLength,
	}
	if v, _ := cmd.Flags().GetString("answers"); v != "" {
		src.AnswersFile = v
	}
	if v, _ := cmd.Flags().GetString("allowed"); v != "" {
		src.AllowedFile = v
	}
	if v, _ := cmd.Flags().GetInt("length"); v > 0 {
		src.Length = v
	}
	return words.Load(src)
}
