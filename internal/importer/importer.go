// Package importer loads opportunity seed files into local storage.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"github.com/mattjh/bidwatch/internal/common"
	"github.com/mattjh/bidwatch/internal/model"
)

// RecordSaver is the slice of storage the importer needs.
type RecordSaver interface {
	SaveOpportunities(ctx context.Context, opps []model.Opportunity) error
}

// rawOpportunity mirrors the seed-file shape. Field names match the JSON
// export format of the web tool this replaces.
type rawOpportunity struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Agency          string   `json:"agency" yaml:"agency"`
	NAICS           string   `json:"naics" yaml:"naics"`
	SetAside        []string `json:"setAside" yaml:"setAside"`
	Vehicle         string   `json:"vehicle" yaml:"vehicle"`
	DueDate         string   `json:"dueDate" yaml:"dueDate"`
	Status          string   `json:"status" yaml:"status"`
	PercentComplete int      `json:"percentComplete" yaml:"percentComplete"`
	FitScore        int      `json:"fitScore" yaml:"fitScore"`
	Ceiling         float64  `json:"ceiling" yaml:"ceiling"`
	Keywords        []string `json:"keywords" yaml:"keywords"`
}

// ImportFile reads a .json, .yaml or .yml seed file and saves its records,
// returning the number imported. Records without an id get a fresh uuid;
// missing status defaults to Draft.
func ImportFile(ctx context.Context, saver RecordSaver, path string) (int, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied import path
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw []rawOpportunity
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return 0, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return 0, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return 0, fmt.Errorf("unsupported seed format %q (want .json, .yaml or .yml)", ext)
	}

	if len(raw) == 0 {
		return 0, nil
	}

	bar := progressbar.NewOptions(len(raw),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing opportunities..."),
	)

	opps := make([]model.Opportunity, 0, len(raw))
	for i, r := range raw {
		opp, err := convert(r)
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		opps = append(opps, opp)
		_ = bar.Add(1)
	}

	if err := saver.SaveOpportunities(ctx, opps); err != nil {
		return 0, err
	}
	return len(opps), nil
}

func convert(r rawOpportunity) (model.Opportunity, error) {
	var opp model.Opportunity

	if r.Title == "" {
		return opp, fmt.Errorf("title is required")
	}
	if r.DueDate == "" {
		return opp, fmt.Errorf("dueDate is required")
	}
	due, err := time.ParseInLocation("2006-01-02", r.DueDate, time.Local)
	if err != nil {
		return opp, fmt.Errorf("invalid dueDate %q: %w", r.DueDate, err)
	}

	status := model.Status(r.Status)
	if r.Status == "" {
		status = model.StatusDraft
	}
	if !status.Valid() {
		return opp, fmt.Errorf("%w: %q", common.ErrInvalidStatus, r.Status)
	}

	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}

	return model.Opportunity{
		ID:              id,
		Title:           r.Title,
		Agency:          r.Agency,
		NAICS:           r.NAICS,
		SetAsides:       r.SetAside,
		Vehicle:         r.Vehicle,
		DueDate:         due,
		Status:          status,
		PercentComplete: clamp(r.PercentComplete),
		FitScore:        clamp(r.FitScore),
		Ceiling:         max(r.Ceiling, 0),
		Keywords:        r.Keywords,
	}, nil
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
