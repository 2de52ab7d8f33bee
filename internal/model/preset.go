package model

import "time"

// Preset is a persisted snapshot of a criteria value, independent of the
// live editable and committed state.
type Preset struct {
	SavedAt  time.Time `json:"saved_at"`
	Name     string    `json:"name"`
	Criteria Criteria  `json:"criteria"`
}
