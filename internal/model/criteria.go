package model

import (
	"fmt"
	"strings"
	"time"
)

// DueDateMode selects which due-date restriction is active on a Criteria.
type DueDateMode int

const (
	// DueAny applies no due-date restriction.
	DueAny DueDateMode = iota
	// DueRelative restricts to dates within N days from today.
	DueRelative
	// DueAbsolute restricts to an explicit calendar range.
	DueAbsolute
)

// DueDate is the due-date restriction carried by a Criteria. The zero value
// means no restriction. Relative and absolute modes are mutually exclusive;
// the constructors guarantee the inactive mode carries no stale value.
type DueDate struct {
	Start *time.Time  `json:"start,omitempty"`
	End   *time.Time  `json:"end,omitempty"`
	Days  int         `json:"days,omitempty"`
	Mode  DueDateMode `json:"mode"`
}

// RelativeWindow builds a due-date restriction meaning "due within days from
// today". Negative day counts are clamped to zero (due today).
func RelativeWindow(days int) DueDate {
	if days < 0 {
		days = 0
	}
	return DueDate{Mode: DueRelative, Days: days}
}

// AbsoluteRange builds a due-date restriction with explicit calendar bounds.
// Either bound may be nil for unbounded. Both nil collapses to no restriction.
func AbsoluteRange(start, end *time.Time) DueDate {
	if start == nil && end == nil {
		return DueDate{}
	}
	return DueDate{Mode: DueAbsolute, Start: start, End: end}
}

// IsZero reports whether no due-date restriction is active.
func (d DueDate) IsZero() bool {
	return d.Mode == DueAny
}

// Criteria is the structured representation of all active filter selections.
// Zero-valued fields mean "any": empty strings, empty slices and nil bounds
// place no restriction on that field.
type Criteria struct {
	CeilingMin *float64 `json:"ceiling_min,omitempty"`
	CeilingMax *float64 `json:"ceiling_max,omitempty"`
	NAICS      string   `json:"naics,omitempty"`
	Vehicle    string   `json:"vehicle,omitempty"`
	SetAsides  []string `json:"set_asides,omitempty"`
	Agencies   []string `json:"agencies,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	Due        DueDate  `json:"due"`
}

// DefaultCriteria returns the all-"any" criteria value.
func DefaultCriteria() Criteria {
	return Criteria{}
}

// IsZero reports whether c places no restriction on any field.
func (c Criteria) IsZero() bool {
	return c.NAICS == "" &&
		c.Vehicle == "" &&
		len(c.SetAsides) == 0 &&
		len(c.Agencies) == 0 &&
		c.Due.IsZero() &&
		c.CeilingMin == nil &&
		c.CeilingMax == nil &&
		len(c.Keywords) == 0
}

// Normalize returns a copy of c with keyword duplicates suppressed
// case-insensitively, first occurrence winning, and empty tokens dropped.
func (c Criteria) Normalize() Criteria {
	if len(c.Keywords) == 0 {
		return c
	}
	seen := make(map[string]bool, len(c.Keywords))
	keywords := make([]string, 0, len(c.Keywords))
	for _, kw := range c.Keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		lower := strings.ToLower(kw)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		keywords = append(keywords, kw)
	}
	if len(keywords) == 0 {
		keywords = nil
	}
	c.Keywords = keywords
	return c
}

// Warnings reports non-blocking validation problems with the criteria.
// Callers should refuse to apply while any are present; the predicate engine
// itself evaluates such criteria without complaint.
func (c Criteria) Warnings() []string {
	var warnings []string
	if c.CeilingMin != nil && c.CeilingMax != nil && *c.CeilingMin > *c.CeilingMax {
		warnings = append(warnings, fmt.Sprintf(
			"ceiling minimum $%.0f exceeds maximum $%.0f", *c.CeilingMin, *c.CeilingMax))
	}
	return warnings
}

// Equal reports whether two criteria are semantically identical.
func (c Criteria) Equal(other Criteria) bool {
	if c.NAICS != other.NAICS || c.Vehicle != other.Vehicle {
		return false
	}
	if !equalStrings(c.SetAsides, other.SetAsides) ||
		!equalStrings(c.Agencies, other.Agencies) ||
		!equalStrings(c.Keywords, other.Keywords) {
		return false
	}
	if !equalFloatPtr(c.CeilingMin, other.CeilingMin) ||
		!equalFloatPtr(c.CeilingMax, other.CeilingMax) {
		return false
	}
	return c.Due.equal(other.Due)
}

func (d DueDate) equal(other DueDate) bool {
	if d.Mode != other.Mode {
		return false
	}
	switch d.Mode {
	case DueRelative:
		return d.Days == other.Days
	case DueAbsolute:
		return equalTimePtr(d.Start, other.Start) && equalTimePtr(d.End, other.End)
	default:
		return true
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
