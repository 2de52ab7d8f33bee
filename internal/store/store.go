// Package store holds the live filter session state: the criteria being
// edited, the criteria committed to the visible result set, and the optional
// saved preset. It is the single writer of the persisted state slots.
package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/mattjh/bidwatch/internal/codec"
	"github.com/mattjh/bidwatch/internal/common"
	"github.com/mattjh/bidwatch/internal/model"
)

// Persistence is the key-value port the store writes through to. A missing
// key loads as a nil value with no error.
type Persistence interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// State slot keys.
const (
	KeyFilters = "filters"
	KeyPreset  = "preset"
)

// Op identifies which store operation produced an event.
type Op int

const (
	// OpSet replaced the editable criteria.
	OpSet Op = iota
	// OpApply copied editable criteria into committed.
	OpApply
	// OpReset returned both slots to defaults.
	OpReset
	// OpSavePreset captured the editable criteria as the preset.
	OpSavePreset
	// OpLoadPreset restored the preset into both slots.
	OpLoadPreset
)

// Event describes one logical state change. CommittedChanged tells consumers
// whether the visible result set needs recomputing.
type Event struct {
	Op               Op
	CommittedChanged bool
}

// ValidationError reports criteria problems that block an apply. It carries
// the same warnings Criteria.Warnings exposes for display.
type ValidationError struct {
	Warnings []string
}

func (e *ValidationError) Error() string {
	return "criteria validation failed: " + strings.Join(e.Warnings, "; ")
}

// FilterStore owns the editable and committed criteria plus the preset.
// All mutations go through one entry point per logical operation; each
// persists write-through and notifies subscribers exactly once.
type FilterStore struct {
	persistence Persistence
	now         func() time.Time
	subscribers map[int]func(Event)
	preset      *model.Preset
	editable    model.Criteria
	committed   model.Criteria
	nextSub     int
	mu          sync.Mutex
}

// New creates a store seeded from persisted state. A missing or malformed
// filters slot seeds defaults; a malformed preset slot counts as no preset.
func New(ctx context.Context, persistence Persistence) *FilterStore {
	s := &FilterStore{
		persistence: persistence,
		now:         time.Now,
		subscribers: make(map[int]func(Event)),
	}
	s.editable = s.loadCriteria(ctx)
	s.committed = s.editable
	s.preset = s.loadPresetSlot(ctx)
	return s
}

// NewFromQuery creates a store seeded from a URL query string instead of
// persisted state. The decoded criteria become both editable and committed
// and are persisted as the current state.
func NewFromQuery(ctx context.Context, persistence Persistence, query string) *FilterStore {
	s := New(ctx, persistence)
	criteria := codec.DecodeQuery(query)
	s.mu.Lock()
	s.editable = criteria
	s.committed = criteria
	s.mu.Unlock()
	s.persistCriteria(ctx, criteria)
	return s
}

// Subscribe registers a callback for state-change events and returns an
// unsubscribe function.
func (s *FilterStore) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Editable returns the criteria currently being composed.
func (s *FilterStore) Editable() model.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editable
}

// Committed returns the criteria driving the visible result set.
func (s *FilterStore) Committed() model.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// HasPreset reports whether a saved preset exists.
func (s *FilterStore) HasPreset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preset != nil
}

// Preset returns a copy of the saved preset, or nil.
func (s *FilterStore) Preset() *model.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.preset == nil {
		return nil
	}
	preset := *s.preset
	return &preset
}

// SetCriteria replaces the editable criteria wholesale. Setting a value
// equal to the current one is a no-op: nothing is persisted and nobody is
// notified.
func (s *FilterStore) SetCriteria(ctx context.Context, criteria model.Criteria) {
	criteria = criteria.Normalize()

	s.mu.Lock()
	if s.editable.Equal(criteria) {
		s.mu.Unlock()
		return
	}
	s.editable = criteria
	s.mu.Unlock()

	s.persistCriteria(ctx, criteria)
	s.notify(Event{Op: OpSet})
}

// Apply copies the editable criteria into the committed slot, atomically.
// Contradictory criteria (ceiling min above max) refuse to apply and leave
// committed state untouched. Applying identical criteria twice is safe and
// still notifies, so downstream recomputation stays deterministic.
func (s *FilterStore) Apply(ctx context.Context) error {
	s.mu.Lock()
	if warnings := s.editable.Warnings(); len(warnings) > 0 {
		s.mu.Unlock()
		return &ValidationError{Warnings: warnings}
	}
	changed := !s.committed.Equal(s.editable)
	s.committed = s.editable
	criteria := s.committed
	s.mu.Unlock()

	s.persistCriteria(ctx, criteria)
	s.notify(Event{Op: OpApply, CommittedChanged: changed})
	return nil
}

// Reset returns both slots to the all-"any" default and persists it. The
// preset is untouched.
func (s *FilterStore) Reset(ctx context.Context) {
	defaults := model.DefaultCriteria()

	s.mu.Lock()
	changed := !s.committed.Equal(defaults)
	s.editable = defaults
	s.committed = defaults
	s.mu.Unlock()

	s.persistCriteria(ctx, defaults)
	s.notify(Event{Op: OpReset, CommittedChanged: changed})
}

// SavePreset captures the current editable criteria as the preset,
// overwriting any prior one.
func (s *FilterStore) SavePreset(ctx context.Context, name string) {
	if name == "" {
		name = "Saved Preset"
	}

	s.mu.Lock()
	preset := &model.Preset{
		Name:     name,
		Criteria: s.editable,
		SavedAt:  s.now(),
	}
	s.preset = preset
	s.mu.Unlock()

	s.persistPreset(ctx, preset)
	s.notify(Event{Op: OpSavePreset})
}

// LoadPreset restores the preset into both slots and persists it as current
// state. Without a preset it is a no-op and reports false.
func (s *FilterStore) LoadPreset(ctx context.Context) bool {
	s.mu.Lock()
	if s.preset == nil {
		s.mu.Unlock()
		return false
	}
	criteria := s.preset.Criteria
	changed := !s.committed.Equal(criteria)
	s.editable = criteria
	s.committed = criteria
	s.mu.Unlock()

	s.persistCriteria(ctx, criteria)
	s.notify(Event{Op: OpLoadPreset, CommittedChanged: changed})
	return true
}

func (s *FilterStore) notify(event Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}

// persistCriteria writes through to storage. Failures are logged and
// swallowed: in-memory state stays authoritative for the session.
func (s *FilterStore) persistCriteria(ctx context.Context, criteria model.Criteria) {
	data, err := json.Marshal(criteria)
	if err != nil {
		common.LogError(err, "failed to encode filter state", common.Fields{"key": KeyFilters})
		return
	}
	if err := s.persistence.Save(ctx, KeyFilters, data); err != nil {
		common.LogWarn("filter state not persisted", common.Fields{"error": err.Error()})
	}
}

func (s *FilterStore) persistPreset(ctx context.Context, preset *model.Preset) {
	data, err := json.Marshal(preset)
	if err != nil {
		common.LogError(err, "failed to encode preset", common.Fields{"key": KeyPreset})
		return
	}
	if err := s.persistence.Save(ctx, KeyPreset, data); err != nil {
		common.LogWarn("preset not persisted", common.Fields{"error": err.Error()})
	}
}

func (s *FilterStore) loadCriteria(ctx context.Context) model.Criteria {
	data, err := s.persistence.Load(ctx, KeyFilters)
	if err != nil {
		common.LogWarn("failed to load filter state", common.Fields{"error": err.Error()})
		return model.DefaultCriteria()
	}
	if len(data) == 0 {
		return model.DefaultCriteria()
	}
	var criteria model.Criteria
	if err := json.Unmarshal(data, &criteria); err != nil {
		common.LogWarn("ignoring malformed filter state", common.Fields{"error": err.Error()})
		return model.DefaultCriteria()
	}
	return criteria.Normalize()
}

func (s *FilterStore) loadPresetSlot(ctx context.Context) *model.Preset {
	data, err := s.persistence.Load(ctx, KeyPreset)
	if err != nil {
		common.LogWarn("failed to load preset", common.Fields{"error": err.Error()})
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var preset model.Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		common.LogWarn("ignoring malformed preset", common.Fields{"error": err.Error()})
		return nil
	}
	preset.Criteria = preset.Criteria.Normalize()
	return &preset
}
