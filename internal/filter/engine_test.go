package filter

import (
	"testing"
	"time"

	"github.com/mattjh/bidwatch/internal/model"
)

var today = time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

func testEngine() *Engine {
	return NewWithClock(func() time.Time { return today })
}

func opp(id string) model.Opportunity {
	return model.Opportunity{
		ID:      id,
		Title:   "Network modernization support",
		Agency:  "GSA",
		NAICS:   "541512",
		Vehicle: "GSA MAS",
		DueDate: today.AddDate(0, 0, 30),
		Status:  model.StatusDraft,
		Ceiling: 250000,
	}
}

func TestMatchesDefaultCriteriaIsIdentity(t *testing.T) {
	e := testEngine()
	if !e.Matches(opp("a"), model.DefaultCriteria()) {
		t.Error("default criteria must match every record")
	}
}

func TestMatchesSingleFields(t *testing.T) {
	e := testEngine()
	record := opp("a")
	record.SetAsides = []string{"8(a)", "WOSB"}
	record.Keywords = []string{"cybersecurity", "zero trust"}

	min40k, min300k := 40000.0, 300000.0
	max200k, max300k := 200000.0, 300000.0

	tests := []struct {
		name     string
		criteria model.Criteria
		want     bool
	}{
		{"naics match", model.Criteria{NAICS: "541512"}, true},
		{"naics mismatch", model.Criteria{NAICS: "541511"}, false},
		{"set-aside intersects", model.Criteria{SetAsides: []string{"WOSB", "HUBZone"}}, true},
		{"set-aside disjoint", model.Criteria{SetAsides: []string{"HUBZone"}}, false},
		{"vehicle match", model.Criteria{Vehicle: "GSA MAS"}, true},
		{"vehicle mismatch", model.Criteria{Vehicle: "SEWP"}, false},
		{"agency member", model.Criteria{Agencies: []string{"GSA", "VA"}}, true},
		{"agency absent", model.Criteria{Agencies: []string{"VA", "DOD"}}, false},
		{"relative window hit", model.Criteria{Due: model.RelativeWindow(30)}, true},
		{"relative window miss", model.Criteria{Due: model.RelativeWindow(29)}, false},
		{"ceiling inside", model.Criteria{CeilingMin: &min40k, CeilingMax: &max300k}, true},
		{"ceiling below min", model.Criteria{CeilingMin: &min300k}, false},
		{"ceiling above max", model.Criteria{CeilingMax: &max200k}, false},
		{"keyword in title", model.Criteria{Keywords: []string{"MODERN"}}, true},
		{"keyword in tags", model.Criteria{Keywords: []string{"Zero Trust"}}, true},
		{"keyword nowhere", model.Criteria{Keywords: []string{"satellite"}}, false},
		{"keyword OR semantics", model.Criteria{Keywords: []string{"satellite", "network"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Matches(record, tt.criteria); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesSetAsideAgainstEmptyRecord(t *testing.T) {
	// A record carrying no set-asides never intersects a non-empty filter.
	e := testEngine()
	record := opp("a")
	record.SetAsides = nil

	if e.Matches(record, model.Criteria{SetAsides: []string{"8(a)"}}) {
		t.Error("empty record set-asides must not match a non-empty filter")
	}
	if !e.Matches(record, model.Criteria{}) {
		t.Error("empty filter set-asides must match any record")
	}
}

func TestMatchesOverdueNeverInRelativeWindow(t *testing.T) {
	e := testEngine()
	record := opp("a")
	record.DueDate = today.AddDate(0, 0, -1)

	if e.Matches(record, model.Criteria{Due: model.RelativeWindow(365)}) {
		t.Error("overdue record must not match any relative window")
	}
}

func TestMatchesAbsoluteRange(t *testing.T) {
	e := testEngine()
	record := opp("a") // due 2026-09-28

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 9, 28, 0, 0, 0, 0, time.Local)

	if !e.Matches(record, model.Criteria{Due: model.AbsoluteRange(&start, &end)}) {
		t.Error("due date on the end bound must match (inclusive)")
	}

	tooEarly := time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)
	if e.Matches(record, model.Criteria{Due: model.AbsoluteRange(&tooEarly, nil)}) {
		t.Error("due date before the start bound must not match")
	}
}

func TestFilterCeilingRangeInclusive(t *testing.T) {
	e := testEngine()

	ceilings := []float64{40000, 50000, 75000, 100000, 150000}
	records := make([]model.Opportunity, len(ceilings))
	for i, c := range ceilings {
		records[i] = opp(string(rune('a' + i)))
		records[i].Ceiling = c
	}

	min, max := 50000.0, 100000.0
	got := e.Filter(records, model.Criteria{CeilingMin: &min, CeilingMax: &max})

	want := []float64{50000, 75000, 100000}
	if len(got) != len(want) {
		t.Fatalf("Filter kept %d records, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Ceiling != w {
			t.Errorf("record %d ceiling = %v, want %v", i, got[i].Ceiling, w)
		}
	}
}

func TestFilterAgenciesPreservesOrder(t *testing.T) {
	e := testEngine()

	agencies := []string{"GSA", "DOD", "VA", "HHS"}
	records := make([]model.Opportunity, len(agencies))
	for i, a := range agencies {
		records[i] = opp(a)
		records[i].Agency = a
	}

	got := e.Filter(records, model.Criteria{Agencies: []string{"GSA", "VA"}})
	if len(got) != 2 || got[0].Agency != "GSA" || got[1].Agency != "VA" {
		t.Errorf("Filter = %v, want [GSA VA] in input order", got)
	}
}

func TestFilterIdentityAndEmptyInput(t *testing.T) {
	e := testEngine()

	records := []model.Opportunity{opp("a"), opp("b"), opp("c")}
	got := e.Filter(records, model.DefaultCriteria())
	if len(got) != len(records) {
		t.Fatalf("identity filter kept %d of %d", len(got), len(records))
	}
	for i := range records {
		if got[i].ID != records[i].ID {
			t.Errorf("record %d = %s, want %s", i, got[i].ID, records[i].ID)
		}
	}

	if got := e.Filter(nil, model.DefaultCriteria()); len(got) != 0 {
		t.Errorf("empty input produced %d records", len(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	e := testEngine()

	records := []model.Opportunity{opp("a"), opp("b")}
	records[1].NAICS = "518210"
	before := make([]model.Opportunity, len(records))
	copy(before, records)

	_ = e.Filter(records, model.Criteria{NAICS: "541512"})

	for i := range before {
		if records[i].ID != before[i].ID || records[i].NAICS != before[i].NAICS {
			t.Errorf("input record %d mutated", i)
		}
	}
}

func TestFilterMinAboveMaxYieldsEmpty(t *testing.T) {
	// The engine does not special-case a contradictory range; validation is
	// the caller's job.
	e := testEngine()
	min, max := 100000.0, 50000.0

	got := e.Filter([]model.Opportunity{opp("a")}, model.Criteria{CeilingMin: &min, CeilingMax: &max})
	if len(got) != 0 {
		t.Errorf("contradictory range kept %d records", len(got))
	}
}
