package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/httpserver"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/rankdb"
	"github.com/robalobadob/wordle/apps/guess-ranker/internal/store"
)

func newServeCmd() *cobra.Command {
	var noDB bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve hints, wordspace counts and background searches over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := loadLists(cmd)
			if err != nil {
				return err
			}

			var db *rankdb.DB
			if !noDB {
				if db, err = rankdb.Open(cfg.DBPath); err != nil {
					return err
				}
				defer db.Close()
			}

			srv := httpserver.New(httpserver.Options{
				Lists:     lists,
				Jobs:      store.NewMemoryStore(),
				DB:        db,
				JWTSecret: cfg.JWTSecret,
				Workers:   cfg.Workers,
			})
			log.Info().Str("port", cfg.Port).Msg("starting guess-ranker")
			return srv.Start(":" + cfg.Port)
		},
	}
	cmd.Flags().BoolVar(&noDB, "no-db", false, "do not open the rankings database")
	return cmd
}
