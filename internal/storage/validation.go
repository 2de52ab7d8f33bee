package storage

import (
	"context"
	"fmt"

	"github.com/mattjh/bidwatch/internal/common"
	"github.com/mattjh/bidwatch/internal/model"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

func validateOpportunities(opps []model.Opportunity) error {
	for i, opp := range opps {
		if opp.ID == "" {
			return fmt.Errorf("opportunity %d: id cannot be empty", i)
		}
		if opp.Title == "" {
			return fmt.Errorf("opportunity %q: title cannot be empty", opp.ID)
		}
		if !opp.Status.Valid() {
			return fmt.Errorf("opportunity %q: %w: %q", opp.ID, common.ErrInvalidStatus, opp.Status)
		}
	}
	return nil
}
