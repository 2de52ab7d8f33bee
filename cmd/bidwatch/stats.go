package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattjh/bidwatch/internal/cli"
	"github.com/mattjh/bidwatch/internal/filter"
	"github.com/mattjh/bidwatch/internal/store"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress totals for the matching opportunities",
		Long: `Summarize the opportunities matching the committed filter criteria:
a count per pipeline status plus the average completion percentage.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			records, err := db.ListOpportunities(ctx)
			if err != nil {
				return fmt.Errorf("failed to load opportunities: %w", err)
			}

			session := store.New(ctx, db)
			matched := filter.New().Filter(records, session.Committed())
			renderStats(filter.Summarize(matched), len(records))
			return nil
		},
	}
}

func renderStats(summary filter.Summary, total int) {
	fmt.Println(cli.TitleStyle.Render("Pipeline"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, status := range filter.StatusOrder {
		fmt.Fprintf(w, "%s\t%d\n", string(status), summary.StatusCounts[status])
	}
	_ = w.Flush()

	fmt.Println()
	fmt.Printf("%s %d of %d opportunities\n", cli.HeaderStyle.Render("Matching:"), summary.Total, total)
	fmt.Printf("%s %d%%\n", cli.HeaderStyle.Render("Avg completion:"), summary.AvgComplete)
}
