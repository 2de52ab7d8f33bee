package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjh/bidwatch/internal/common"
	"github.com/mattjh/bidwatch/internal/model"
)

type fakeSaver struct {
	saved []model.Opportunity
}

func (f *fakeSaver) SaveOpportunities(_ context.Context, opps []model.Opportunity) error {
	f.saved = append(f.saved, opps...)
	return nil
}

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestImportJSON(t *testing.T) {
	path := writeSeed(t, "seed.json", `[
		{
			"id": "opp-1",
			"title": "Cloud migration support",
			"agency": "GSA",
			"naics": "541512",
			"setAside": ["8(a)"],
			"vehicle": "GSA MAS",
			"dueDate": "2026-10-15",
			"status": "Ready",
			"percentComplete": 60,
			"fitScore": 91,
			"ceiling": 500000,
			"keywords": ["cloud"]
		}
	]`)

	saver := &fakeSaver{}
	count, err := ImportFile(context.Background(), saver, path)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, saver.saved, 1)
	opp := saver.saved[0]
	assert.Equal(t, "opp-1", opp.ID)
	assert.Equal(t, model.StatusReady, opp.Status)
	assert.Equal(t, []string{"8(a)"}, opp.SetAsides)
	assert.Equal(t, 500000.0, opp.Ceiling)
	assert.Equal(t, 2026, opp.DueDate.Year())
}

func TestImportYAMLDefaults(t *testing.T) {
	path := writeSeed(t, "seed.yaml", `
- title: Network refresh
  agency: VA
  naics: "541512"
  dueDate: "2026-11-01"
  percentComplete: 150
  fitScore: -10
  ceiling: -5
`)

	saver := &fakeSaver{}
	count, err := ImportFile(context.Background(), saver, path)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	opp := saver.saved[0]
	assert.NotEmpty(t, opp.ID, "records without an id get a generated one")
	assert.Equal(t, model.StatusDraft, opp.Status, "missing status defaults to Draft")
	assert.Equal(t, 100, opp.PercentComplete, "percent clamps to 100")
	assert.Equal(t, 0, opp.FitScore, "fit score clamps to 0")
	assert.Equal(t, 0.0, opp.Ceiling, "negative ceiling clamps to 0")
}

func TestImportRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"missing title", "seed.yaml", "- agency: GSA\n  dueDate: \"2026-01-01\"\n"},
		{"missing due date", "seed.yaml", "- title: Something\n"},
		{"bad due date", "seed.yaml", "- title: Something\n  dueDate: soon\n"},
		{"unknown status", "seed.yaml", "- title: Something\n  dueDate: \"2026-01-01\"\n  status: Pending\n"},
		{"malformed json", "seed.json", "{not an array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSeed(t, tt.file, tt.content)
			_, err := ImportFile(context.Background(), &fakeSaver{}, path)
			assert.Error(t, err)
		})
	}
}

func TestImportUnknownStatusError(t *testing.T) {
	path := writeSeed(t, "seed.yaml",
		"- title: Something\n  dueDate: \"2026-01-01\"\n  status: Pending\n")

	_, err := ImportFile(context.Background(), &fakeSaver{}, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidStatus)
	assert.ErrorContains(t, err, "Pending")
}

func TestImportUnsupportedExtension(t *testing.T) {
	path := writeSeed(t, "seed.csv", "id,title\n")
	_, err := ImportFile(context.Background(), &fakeSaver{}, path)
	assert.ErrorContains(t, err, "unsupported seed format")
}

func TestImportEmptyFile(t *testing.T) {
	path := writeSeed(t, "seed.json", "[]")
	count, err := ImportFile(context.Background(), &fakeSaver{}, path)
	require.NoError(t, err)
	assert.Zero(t, count)
}
