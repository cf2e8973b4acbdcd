package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/hint"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/wordspace"
)

func newHintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hint SECRET GUESS",
		Short: "Print the hint for one pair and how many words it leaves",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := hint.Word(strings.ToLower(strings.TrimSpace(args[0])))
			guess := hint.Word(strings.ToLower(strings.TrimSpace(args[1])))
			if err := hint.ValidateLength(secret, len(guess)); err != nil {
				return err
			}

			lists, err := loadLists(cmd)
			if err != nil {
				return err
			}
			vocab := lists.Vocabulary()
			if err := hint.ValidateLength(guess, len(vocab[0])); err != nil {
				return err
			}

			h := hint.Classify(secret, guess)
			n := wordspace.CountConsistent(guess, h, vocab)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s remaining=%d/%d\n", secret, guess, h, n, len(vocab))
			return err
		},
	}
}
