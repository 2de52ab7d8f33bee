package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattjh/bidwatch/internal/cli"
	"github.com/mattjh/bidwatch/internal/common"
)

func submitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "Mark an opportunity as submitted",
		Long:  `Transition a Draft or Ready opportunity to Submitted and set its completion to 100%. Opportunities already past Ready are left untouched.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			changed, err := db.MarkSubmitted(ctx, args[0])
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("no opportunity with id %q", args[0]), nil)
			}
			if err != nil {
				return err
			}

			if changed {
				fmt.Println(cli.SuccessStyle.Render("Marked as Submitted"))
			} else {
				fmt.Println(cli.InfoStyle.Render("No change: opportunity is already past Ready"))
			}
			return nil
		},
	}
}
