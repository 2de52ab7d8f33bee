package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattjh/bidwatch/internal/cli"
	"github.com/mattjh/bidwatch/internal/codec"
	"github.com/mattjh/bidwatch/internal/store"
)

func shareCmd() *cobra.Command {
	var editable bool

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print the current filters as a shareable query string",
		Long:  `Encode the committed filter criteria as a flat query string. Feeding the output to 'bidwatch list --from-url' reproduces the same result set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			session := store.New(ctx, db)
			criteria := session.Committed()
			if editable {
				criteria = session.Editable()
			}

			query := codec.EncodeQuery(criteria)
			if query == "" {
				fmt.Println(cli.InfoStyle.Render("No filters active; nothing to share."))
				return nil
			}

			fmt.Println(query)
			return nil
		},
	}

	cmd.Flags().BoolVar(&editable, "editable", false, "encode the editable (not yet applied) criteria")
	return cmd
}
