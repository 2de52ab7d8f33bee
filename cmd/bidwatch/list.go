package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattjh/bidwatch/internal/cli"
	"github.com/mattjh/bidwatch/internal/common"
	"github.com/mattjh/bidwatch/internal/filter"
	"github.com/mattjh/bidwatch/internal/model"
	"github.com/mattjh/bidwatch/internal/store"
)

type listFlags struct {
	naics      string
	vehicle    string
	setAsides  []string
	agencies   []string
	keywords   []string
	dueWithin  int
	dueAfter   string
	dueBefore  string
	ceilingMin float64
	ceilingMax float64
	fromURL    string
	sortBy     string
}

// criteriaFlagNames are the local flags that replace the session criteria
// wholesale when set. Inherited flags like --log-level must never count
// here: treating them as criteria would wipe the persisted filters with the
// all-"any" defaults.
var criteriaFlagNames = []string{
	"naics", "vehicle", "set-aside", "agency", "keyword",
	"due-within", "due-after", "due-before", "ceiling-min", "ceiling-max",
}

func criteriaFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range criteriaFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func listCmd() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List opportunities matching the active filters",
		Long: `Display the opportunities matching the committed filter criteria.

Without filter flags the criteria persisted from the previous session apply.
Any filter flag replaces the criteria wholesale, applies them and persists
them for the next session. --from-url seeds criteria from a shared query
string, and --sort reorders the result set without affecting what matches.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSessionList(cmd.Context(), cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.naics, "naics", "", "NAICS category code")
	cmd.Flags().StringVar(&flags.vehicle, "vehicle", "", "contract vehicle")
	cmd.Flags().StringSliceVar(&flags.setAsides, "set-aside", nil, "set-aside types (repeatable)")
	cmd.Flags().StringSliceVar(&flags.agencies, "agency", nil, "agencies (repeatable)")
	cmd.Flags().StringSliceVar(&flags.keywords, "keyword", nil, "keywords (repeatable)")
	cmd.Flags().IntVar(&flags.dueWithin, "due-within", -1, "due within N days from today")
	cmd.Flags().StringVar(&flags.dueAfter, "due-after", "", "due on or after date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.dueBefore, "due-before", "", "due on or before date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&flags.ceilingMin, "ceiling-min", -1, "minimum dollar ceiling")
	cmd.Flags().Float64Var(&flags.ceilingMax, "ceiling-max", -1, "maximum dollar ceiling")
	cmd.Flags().StringVar(&flags.fromURL, "from-url", "", "seed criteria from a shared query string")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(filter.SortDueDateAsc), "sort order (due-asc, due-desc, percent, fit)")

	return cmd
}

func runSessionList(ctx context.Context, cmd *cobra.Command, flags *listFlags) error {
	sortOption, err := filter.ParseSortOption(flags.sortBy)
	if err != nil {
		return common.NewUserError("invalid --sort value", err)
	}

	db, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var session *store.FilterStore
	switch {
	case flags.fromURL != "":
		session = store.NewFromQuery(ctx, db, flags.fromURL)
	default:
		session = store.New(ctx, db)
		if criteriaFlagsChanged(cmd) {
			criteria, err := criteriaFromFlags(flags)
			if err != nil {
				return err
			}
			session.SetCriteria(ctx, criteria)
		}
	}

	if err := session.Apply(ctx); err != nil {
		var validationErr *store.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Println(cli.WarningStyle.Render(
				"Filters not applied: " + strings.Join(validationErr.Warnings, "; ")))
			return nil
		}
		return err
	}

	records, err := db.ListOpportunities(ctx)
	if err != nil {
		return fmt.Errorf("failed to load opportunities: %w", err)
	}

	matched := filter.New().Filter(records, session.Committed())
	renderList(filter.Sort(matched, sortOption), len(records))
	return nil
}

// criteriaFromFlags builds a criteria value from command-line flags. The two
// due-date modes are mutually exclusive here, same as everywhere else.
func criteriaFromFlags(flags *listFlags) (model.Criteria, error) {
	criteria := model.Criteria{
		NAICS:     flags.naics,
		Vehicle:   flags.vehicle,
		SetAsides: flags.setAsides,
		Agencies:  flags.agencies,
		Keywords:  flags.keywords,
	}

	hasAbsolute := flags.dueAfter != "" || flags.dueBefore != ""
	if flags.dueWithin >= 0 && hasAbsolute {
		return criteria, common.NewUserError(
			"--due-within cannot be combined with --due-after/--due-before", nil)
	}

	switch {
	case flags.dueWithin >= 0:
		criteria.Due = model.RelativeWindow(flags.dueWithin)
	case hasAbsolute:
		start, err := parseDateFlag(flags.dueAfter, "--due-after")
		if err != nil {
			return criteria, err
		}
		end, err := parseDateFlag(flags.dueBefore, "--due-before")
		if err != nil {
			return criteria, err
		}
		criteria.Due = model.AbsoluteRange(start, end)
	}

	if flags.ceilingMin >= 0 {
		v := flags.ceilingMin
		criteria.CeilingMin = &v
	}
	if flags.ceilingMax >= 0 {
		v := flags.ceilingMax
		criteria.CeilingMax = &v
	}

	return criteria.Normalize(), nil
}

func parseDateFlag(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("%s wants YYYY-MM-DD", name), err)
	}
	return &t, nil
}

func renderList(matched []model.Opportunity, total int) {
	if len(matched) == 0 {
		fmt.Println(cli.InfoStyle.Render("No opportunities match the active filters."))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Title"),
		cli.HeaderStyle.Render("Agency"),
		cli.HeaderStyle.Render("NAICS"),
		cli.HeaderStyle.Render("Due"),
		cli.HeaderStyle.Render("Ceiling"),
		cli.HeaderStyle.Render("Fit"),
		cli.HeaderStyle.Render("Done"),
		cli.HeaderStyle.Render("Status"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 8), strings.Repeat("-", 32), strings.Repeat("-", 10),
		strings.Repeat("-", 6), strings.Repeat("-", 10), strings.Repeat("-", 8),
		strings.Repeat("-", 4), strings.Repeat("-", 4), strings.Repeat("-", 9))

	for _, opp := range matched {
		fmt.Fprintf(w, "%s\t%.40s\t%s\t%s\t%s\t%s\t%d\t%d%%\t%s\n",
			opp.ID, opp.Title, opp.Agency, opp.NAICS,
			opp.DueDate.Format("2006-01-02"),
			cli.FormatCurrency(opp.Ceiling),
			opp.FitScore, opp.PercentComplete,
			string(opp.Status))
	}

	fmt.Fprintf(w, "\n%s\n", cli.SubtleStyle.Render(
		fmt.Sprintf("%d of %d opportunities", len(matched), total)))
}
