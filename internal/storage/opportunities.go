package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattjh/bidwatch/internal/common"
	"github.com/mattjh/bidwatch/internal/model"
)

const dueDateLayout = "2006-01-02"

// SaveOpportunities upserts records into the collection. Existing records
// with the same id are replaced; insertion order is preserved for new ones.
func (s *SQLiteStorage) SaveOpportunities(ctx context.Context, opps []model.Opportunity) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOpportunities(opps); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO opportunities (
			id, title, agency, naics, vehicle, set_asides, keywords,
			due_date, status, percent_complete, fit_score, ceiling
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			agency = excluded.agency,
			naics = excluded.naics,
			vehicle = excluded.vehicle,
			set_asides = excluded.set_asides,
			keywords = excluded.keywords,
			due_date = excluded.due_date,
			status = excluded.status,
			percent_complete = excluded.percent_complete,
			fit_score = excluded.fit_score,
			ceiling = excluded.ceiling
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, opp := range opps {
		setAsides, err := json.Marshal(opp.SetAsides)
		if err != nil {
			return fmt.Errorf("failed to marshal set-asides for %q: %w", opp.ID, err)
		}
		keywords, err := json.Marshal(opp.Keywords)
		if err != nil {
			return fmt.Errorf("failed to marshal keywords for %q: %w", opp.ID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			opp.ID, opp.Title, opp.Agency, opp.NAICS, opp.Vehicle,
			string(setAsides), string(keywords),
			opp.DueDate.Format(dueDateLayout), string(opp.Status),
			opp.PercentComplete, opp.FitScore, opp.Ceiling,
		); err != nil {
			return fmt.Errorf("failed to save opportunity %q: %w", opp.ID, err)
		}
	}

	return tx.Commit()
}

// ListOpportunities returns the full collection in insertion order.
func (s *SQLiteStorage) ListOpportunities(ctx context.Context) ([]model.Opportunity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, agency, naics, vehicle, set_asides, keywords,
		       due_date, status, percent_complete, fit_score, ceiling
		FROM opportunities
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var opps []model.Opportunity
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opps = append(opps, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate opportunities: %w", err)
	}

	return opps, nil
}

// GetOpportunity returns one record by id, or common.ErrNotFound.
func (s *SQLiteStorage) GetOpportunity(ctx context.Context, id string) (*model.Opportunity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, agency, naics, vehicle, set_asides, keywords,
		       due_date, status, percent_complete, fit_score, ceiling
		FROM opportunities
		WHERE id = ?
	`, id)

	opp, err := scanOpportunity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("opportunity %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

// MarkSubmitted transitions a Draft or Ready opportunity to Submitted with
// completion forced to 100. Any other status is a no-op and reports
// changed=false; an unknown id returns common.ErrNotFound.
func (s *SQLiteStorage) MarkSubmitted(ctx context.Context, id string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(id, "id"); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE opportunities
		SET status = ?, percent_complete = 100
		WHERE id = ? AND status IN (?, ?)
	`, string(model.StatusSubmitted), id, string(model.StatusDraft), string(model.StatusReady))
	if err != nil {
		return false, fmt.Errorf("failed to mark opportunity %q submitted: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected > 0 {
		return true, nil
	}

	// Distinguish "wrong lifecycle state" from "no such record".
	var status string
	err = s.db.QueryRowContext(ctx, `SELECT status FROM opportunities WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("opportunity %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check opportunity %q: %w", id, err)
	}
	return false, nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOpportunity(row rowScanner) (model.Opportunity, error) {
	var (
		opp       model.Opportunity
		setAsides string
		keywords  string
		dueDate   string
		status    string
	)

	err := row.Scan(&opp.ID, &opp.Title, &opp.Agency, &opp.NAICS, &opp.Vehicle,
		&setAsides, &keywords, &dueDate, &status,
		&opp.PercentComplete, &opp.FitScore, &opp.Ceiling)
	if errors.Is(err, sql.ErrNoRows) {
		return opp, err
	}
	if err != nil {
		return opp, fmt.Errorf("failed to scan opportunity: %w", err)
	}

	if err := json.Unmarshal([]byte(setAsides), &opp.SetAsides); err != nil {
		return opp, fmt.Errorf("failed to unmarshal set-asides for %q: %w", opp.ID, err)
	}
	if err := json.Unmarshal([]byte(keywords), &opp.Keywords); err != nil {
		return opp, fmt.Errorf("failed to unmarshal keywords for %q: %w", opp.ID, err)
	}

	due, err := time.ParseInLocation(dueDateLayout, dueDate, time.Local)
	if err != nil {
		return opp, fmt.Errorf("failed to parse due date for %q: %w", opp.ID, err)
	}
	opp.DueDate = due
	opp.Status = model.Status(status)

	return opp, nil
}
