package model

import (
	"testing"
	"time"
)

func TestStatusLifecycle(t *testing.T) {
	tests := []struct {
		status    Status
		valid     bool
		canSubmit bool
		terminal  bool
	}{
		{StatusDraft, true, true, false},
		{StatusReady, true, true, false},
		{StatusSubmitted, true, false, false},
		{StatusAwarded, true, false, true},
		{StatusLost, true, false, true},
		{Status("Pending"), false, false, false},
		{Status(""), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.status.CanSubmit(); got != tt.canSubmit {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.canSubmit)
			}
			if got := tt.status.Terminal(); got != tt.terminal {
				t.Errorf("Terminal() = %v, want %v", got, tt.terminal)
			}
		})
	}
}

func TestDueDateModesAreExclusive(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	relative := RelativeWindow(30)
	if relative.Mode != DueRelative || relative.Days != 30 {
		t.Fatalf("RelativeWindow(30) = %+v", relative)
	}
	if relative.Start != nil || relative.End != nil {
		t.Errorf("relative window carries absolute bounds: %+v", relative)
	}

	absolute := AbsoluteRange(&start, nil)
	if absolute.Mode != DueAbsolute {
		t.Fatalf("AbsoluteRange mode = %v", absolute.Mode)
	}
	if absolute.Days != 0 {
		t.Errorf("absolute range carries relative days: %+v", absolute)
	}
}

func TestAbsoluteRangeBothNilIsAny(t *testing.T) {
	due := AbsoluteRange(nil, nil)
	if !due.IsZero() {
		t.Errorf("AbsoluteRange(nil, nil) = %+v, want zero", due)
	}
}

func TestRelativeWindowClampsNegative(t *testing.T) {
	if due := RelativeWindow(-5); due.Days != 0 {
		t.Errorf("RelativeWindow(-5).Days = %d, want 0", due.Days)
	}
}

func TestCriteriaWarnings(t *testing.T) {
	min := 100000.0
	max := 50000.0

	tests := []struct {
		name     string
		criteria Criteria
		want     int
	}{
		{"default criteria", DefaultCriteria(), 0},
		{"valid range", Criteria{CeilingMin: &max, CeilingMax: &min}, 0},
		{"min above max", Criteria{CeilingMin: &min, CeilingMax: &max}, 1},
		{"only min", Criteria{CeilingMin: &min}, 0},
		{"only max", Criteria{CeilingMax: &max}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.Warnings(); len(got) != tt.want {
				t.Errorf("Warnings() = %v, want %d warnings", got, tt.want)
			}
		})
	}
}

func TestCriteriaNormalize(t *testing.T) {
	criteria := Criteria{Keywords: []string{"Cloud", "cloud", " security ", "", "CLOUD", "security"}}
	got := criteria.Normalize().Keywords

	want := []string{"Cloud", "security"}
	if len(got) != len(want) {
		t.Fatalf("Normalize keywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCriteriaIsZero(t *testing.T) {
	if !DefaultCriteria().IsZero() {
		t.Error("DefaultCriteria should be zero")
	}
	if (Criteria{NAICS: "541512"}).IsZero() {
		t.Error("criteria with NAICS should not be zero")
	}
	if (Criteria{Due: RelativeWindow(7)}).IsZero() {
		t.Error("criteria with due window should not be zero")
	}
}

func TestCriteriaEqual(t *testing.T) {
	min := 50000.0
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	base := Criteria{
		NAICS:      "541512",
		SetAsides:  []string{"8(a)"},
		Agencies:   []string{"GSA", "VA"},
		Due:        AbsoluteRange(&start, nil),
		CeilingMin: &min,
		Keywords:   []string{"cloud"},
	}

	same := base
	sameMin := 50000.0
	sameStart := start
	same.CeilingMin = &sameMin
	same.Due = AbsoluteRange(&sameStart, nil)
	if !base.Equal(same) {
		t.Error("semantically identical criteria should be equal")
	}

	different := base
	different.Due = RelativeWindow(30)
	if base.Equal(different) {
		t.Error("criteria with different due modes should not be equal")
	}
}
