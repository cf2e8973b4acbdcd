package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/httpserver"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		days    int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for POST /search",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = cfg.JWTExpiresDays
			}
			tok, exp, err := httpserver.SignToken(cfg.JWTSecret, subject, days)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\nexpires %s\n", tok, exp.UTC().Format(time.RFC3339))
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	cmd.Flags().IntVar(&days, "days", 14, "days until expiry (default: JWT_EXPIRES_DAYS)")
	return cmd
}
