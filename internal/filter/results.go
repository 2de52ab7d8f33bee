package filter

import (
	"fmt"
	"math"
	"sort"

	"github.com/mattjh/bidwatch/internal/model"
)

// SortOption selects the ordering of a result set. Sorting is presentation
// only; it never affects which records match.
type SortOption string

const (
	// SortDueDateAsc orders by due date, soonest first.
	SortDueDateAsc SortOption = "due-asc"
	// SortDueDateDesc orders by due date, latest first.
	SortDueDateDesc SortOption = "due-desc"
	// SortPercentComplete orders by completion, highest first.
	SortPercentComplete SortOption = "percent"
	// SortFitScore orders by fit score, highest first.
	SortFitScore SortOption = "fit"
)

// ParseSortOption validates a sort name from a flag or config value.
func ParseSortOption(value string) (SortOption, error) {
	switch option := SortOption(value); option {
	case SortDueDateAsc, SortDueDateDesc, SortPercentComplete, SortFitScore:
		return option, nil
	default:
		return "", fmt.Errorf("unknown sort %q (want due-asc, due-desc, percent or fit)", value)
	}
}

// Sort returns a sorted copy of opps. Ties keep their input order, so a
// sorted filter result stays deterministic. An unknown option returns the
// records unsorted.
func Sort(opps []model.Opportunity, option SortOption) []model.Opportunity {
	sorted := make([]model.Opportunity, len(opps))
	copy(sorted, opps)

	switch option {
	case SortDueDateAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DueDate.Before(sorted[j].DueDate)
		})
	case SortDueDateDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[j].DueDate.Before(sorted[i].DueDate)
		})
	case SortPercentComplete:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PercentComplete > sorted[j].PercentComplete
		})
	case SortFitScore:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].FitScore > sorted[j].FitScore
		})
	}

	return sorted
}

// Summary aggregates a result set for the progress dashboard: how many
// records sit in each lifecycle state and how far along they are on average.
type Summary struct {
	StatusCounts map[model.Status]int
	Total        int
	AvgComplete  int
}

// StatusOrder is the lifecycle display order for summaries.
var StatusOrder = []model.Status{
	model.StatusDraft,
	model.StatusReady,
	model.StatusSubmitted,
	model.StatusAwarded,
	model.StatusLost,
}

// Summarize computes the dashboard aggregates over a (typically filtered)
// result set. Average completion is rounded to the nearest whole percent;
// an empty set averages zero.
func Summarize(opps []model.Opportunity) Summary {
	summary := Summary{
		StatusCounts: make(map[model.Status]int, len(StatusOrder)),
		Total:        len(opps),
	}
	for _, status := range StatusOrder {
		summary.StatusCounts[status] = 0
	}

	if len(opps) == 0 {
		return summary
	}

	var totalComplete int
	for _, opp := range opps {
		summary.StatusCounts[opp.Status]++
		totalComplete += opp.PercentComplete
	}
	summary.AvgComplete = int(math.Round(float64(totalComplete) / float64(len(opps))))

	return summary
}
