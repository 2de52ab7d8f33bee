package tui

import "github.com/mattjh/bidwatch/internal/model"

// recordsLoadedMsg carries the full record collection from storage.
type recordsLoadedMsg struct {
	records []model.Opportunity
}

// applyDoneMsg signals that the apply delay has elapsed and the visible set
// should be recomputed from the committed criteria.
type applyDoneMsg struct{}

// submittedMsg reports the outcome of a mark-submitted action.
type submittedMsg struct {
	id      string
	changed bool
}

// errMsg carries a non-fatal error for the status line.
type errMsg struct {
	err error
}
