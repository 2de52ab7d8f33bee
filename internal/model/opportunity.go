package model

import "time"

// Status tracks an opportunity through its submission lifecycle.
// Transitions only move forward: Draft → Ready → Submitted → Awarded or Lost.
type Status string

const (
	// StatusDraft indicates a response still being prepared.
	StatusDraft Status = "Draft"
	// StatusReady indicates a response complete but not yet submitted.
	StatusReady Status = "Ready"
	// StatusSubmitted indicates a response delivered to the agency.
	StatusSubmitted Status = "Submitted"
	// StatusAwarded indicates the contract was won.
	StatusAwarded Status = "Awarded"
	// StatusLost indicates the contract went elsewhere.
	StatusLost Status = "Lost"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusReady, StatusSubmitted, StatusAwarded, StatusLost:
		return true
	}
	return false
}

// CanSubmit reports whether an opportunity in this state may still be
// marked submitted.
func (s Status) CanSubmit() bool {
	return s == StatusDraft || s == StatusReady
}

// Terminal reports whether s is an end state.
func (s Status) Terminal() bool {
	return s == StatusAwarded || s == StatusLost
}

// Opportunity represents a single government contract opportunity being
// tracked locally.
type Opportunity struct {
	DueDate         time.Time
	ID              string
	Title           string
	Agency          string
	NAICS           string
	Vehicle         string
	Status          Status
	SetAsides       []string
	Keywords        []string
	Ceiling         float64
	PercentComplete int
	FitScore        int
}
