package filter

import (
	"strings"
	"time"

	"github.com/mattjh/bidwatch/internal/model"
)

// Engine evaluates criteria against opportunity records. The clock is
// injectable so relative due-date windows can be tested against a fixed day.
type Engine struct {
	clock func() time.Time
}

// New creates an engine using the system clock.
func New() *Engine {
	return NewWithClock(time.Now)
}

// NewWithClock creates an engine whose notion of "today" comes from clock.
func NewWithClock(clock func() time.Time) *Engine {
	return &Engine{clock: clock}
}

// Matches reports whether opp satisfies every clause of criteria. Each field
// restricts independently; a zero-valued field matches everything.
func (e *Engine) Matches(opp model.Opportunity, criteria model.Criteria) bool {
	if criteria.NAICS != "" && opp.NAICS != criteria.NAICS {
		return false
	}

	// OR within the field: any selected set-aside the record carries.
	if len(criteria.SetAsides) > 0 && !intersects(criteria.SetAsides, opp.SetAsides) {
		return false
	}

	if criteria.Vehicle != "" && opp.Vehicle != criteria.Vehicle {
		return false
	}

	if len(criteria.Agencies) > 0 && !contains(criteria.Agencies, opp.Agency) {
		return false
	}

	switch criteria.Due.Mode {
	case model.DueRelative:
		if !WithinRelativeWindow(e.clock(), opp.DueDate, criteria.Due.Days) {
			return false
		}
	case model.DueAbsolute:
		if !WithinAbsoluteRange(opp.DueDate, criteria.Due.Start, criteria.Due.End) {
			return false
		}
	case model.DueAny:
	}

	if criteria.CeilingMin != nil && opp.Ceiling < *criteria.CeilingMin {
		return false
	}
	if criteria.CeilingMax != nil && opp.Ceiling > *criteria.CeilingMax {
		return false
	}

	if len(criteria.Keywords) > 0 && !matchesKeywords(opp, criteria.Keywords) {
		return false
	}

	return true
}

// Filter returns the records matching criteria, preserving input order.
// It never mutates its inputs; an all-"any" criteria returns a copy of the
// input unchanged.
func (e *Engine) Filter(opps []model.Opportunity, criteria model.Criteria) []model.Opportunity {
	matched := make([]model.Opportunity, 0, len(opps))
	for _, opp := range opps {
		if e.Matches(opp, criteria) {
			matched = append(matched, opp)
		}
	}
	return matched
}

// matchesKeywords reports whether any keyword is a case-insensitive
// substring of the title or of any record keyword.
func matchesKeywords(opp model.Opportunity, keywords []string) bool {
	title := strings.ToLower(opp.Title)
	for _, kw := range keywords {
		needle := strings.ToLower(kw)
		if needle == "" {
			continue
		}
		if strings.Contains(title, needle) {
			return true
		}
		for _, tag := range opp.Keywords {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
	}
	return false
}

func contains(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}
