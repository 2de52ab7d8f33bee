package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattjh/bidwatch/internal/cli"
	"github.com/mattjh/bidwatch/internal/common"
	"github.com/mattjh/bidwatch/internal/importer"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import opportunity records from a seed file",
		Long:  `Load opportunity records from a .json, .yaml or .yml file into the local collection. Records with an existing id are updated in place.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			count, err := importer.ImportFile(ctx, db, args[0])
			if err != nil {
				return err
			}

			common.LogInfo("import complete", common.Fields{
				"file":  args[0],
				"count": count,
			})
			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Imported %d opportunities from %s", count, args[0])))
			return nil
		},
	}
}
