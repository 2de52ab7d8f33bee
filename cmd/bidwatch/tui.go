package main

import (
	"github.com/spf13/cobra"

	"github.com/mattjh/bidwatch/internal/filter"
	"github.com/mattjh/bidwatch/internal/store"
	"github.com/mattjh/bidwatch/internal/tui"
)

func tuiCmd() *cobra.Command {
	var fromURL string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse opportunities interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			var session *store.FilterStore
			if fromURL != "" {
				session = store.NewFromQuery(ctx, db, fromURL)
			} else {
				session = store.New(ctx, db)
			}

			return tui.Run(ctx, tui.Config{
				Store:   session,
				Records: db,
				Engine:  filter.New(),
			})
		},
	}

	cmd.Flags().StringVar(&fromURL, "from-url", "", "seed criteria from a shared query string")
	return cmd
}
