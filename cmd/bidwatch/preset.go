package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattjh/bidwatch/internal/cli"
	"github.com/mattjh/bidwatch/internal/codec"
	"github.com/mattjh/bidwatch/internal/store"
)

func presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Save, load and inspect the filter preset",
	}

	cmd.AddCommand(savePresetCmd())
	cmd.AddCommand(loadPresetCmd())
	cmd.AddCommand(showPresetCmd())
	cmd.AddCommand(clearPresetCmd())

	return cmd
}

func savePresetCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Snapshot the current filter criteria as the preset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			session := store.New(ctx, db)
			session.SavePreset(ctx, name)

			fmt.Println(cli.SuccessStyle.Render("Preset saved"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Saved Preset", "preset name")
	return cmd
}

func loadPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Restore the saved preset as the active criteria",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			session := store.New(ctx, db)
			if !session.LoadPreset(ctx) {
				fmt.Println(cli.InfoStyle.Render("No preset saved yet. Use 'bidwatch preset save' first."))
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render("Preset loaded"))
			return nil
		},
	}
}

func clearPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved preset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.Delete(ctx, store.KeyPreset); err != nil {
				return fmt.Errorf("failed to clear preset: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Preset cleared"))
			return nil
		},
	}
}

func showPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved preset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			session := store.New(ctx, db)
			preset := session.Preset()
			if preset == nil {
				fmt.Println(cli.InfoStyle.Render("No preset saved yet."))
				return nil
			}

			fmt.Printf("%s %s\n", cli.HeaderStyle.Render("Name:"), preset.Name)
			fmt.Printf("%s %s\n", cli.HeaderStyle.Render("Saved:"), preset.SavedAt.Format("2006-01-02 15:04"))
			query := codec.EncodeQuery(preset.Criteria)
			if query == "" {
				query = cli.SubtleStyle.Render("(no filters)")
			}
			fmt.Printf("%s %s\n", cli.HeaderStyle.Render("Criteria:"), query)
			return nil
		},
	}
}
