// Package tui renders the interactive opportunity browser. It is a consumer
// of the filter store and predicate engine: all state changes flow through
// the store's operations and the visible set is recomputed from committed
// criteria only.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattjh/bidwatch/internal/filter"
	"github.com/mattjh/bidwatch/internal/model"
	"github.com/mattjh/bidwatch/internal/store"
)

// applyDelay is how long the spinner shows while filters apply. Purely
// cosmetic; the store commits synchronously before the delay starts.
const applyDelay = 400 * time.Millisecond

// RecordStore is the slice of storage the browser needs.
type RecordStore interface {
	ListOpportunities(ctx context.Context) ([]model.Opportunity, error)
	MarkSubmitted(ctx context.Context, id string) (bool, error)
}

// Config carries the collaborators for a browser session.
type Config struct {
	Store   *store.FilterStore
	Records RecordStore
	Engine  *filter.Engine
}

// Model holds the browser state.
type Model struct {
	ctx      context.Context
	cfg      Config
	keymap   KeyMap
	input    textinput.Model
	spinner  spinner.Model
	records  []model.Opportunity
	visible  []model.Opportunity
	sortBy   filter.SortOption
	status   string
	cursor   int
	width    int
	height   int
	applying bool
	editing  bool
	quitting bool
}

func newModel(ctx context.Context, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "keywords, comma separated"
	input.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		cfg:     cfg,
		keymap:  DefaultKeyMap(),
		input:   input,
		spinner: sp,
		sortBy:  filter.SortDueDateAsc,
	}
}

// Init loads the record collection.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.loadRecords())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case recordsLoadedMsg:
		m.records = msg.records
		m.refreshVisible()
		return m, nil

	case applyDoneMsg:
		m.applying = false
		m.refreshVisible()
		m.status = "Filters applied"
		return m, nil

	case submittedMsg:
		if msg.changed {
			m.status = "Marked as Submitted"
		} else {
			m.status = "No change: already past Ready"
		}
		return m, m.loadRecords()

	case errMsg:
		m.status = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		if !m.applying {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.EditKeywords):
		m.editing = true
		m.input.SetValue(strings.Join(m.cfg.Store.Editable().Keywords, ", "))
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.Apply):
		return m.startApply()

	case key.Matches(msg, m.keymap.Reset):
		m.cfg.Store.Reset(m.ctx)
		m.refreshVisible()
		m.status = "Filters reset"

	case key.Matches(msg, m.keymap.CycleSort):
		m.sortBy = nextSort(m.sortBy)
		m.refreshVisible()
		m.status = "Sorted by " + sortLabel(m.sortBy)

	case key.Matches(msg, m.keymap.SavePreset):
		m.cfg.Store.SavePreset(m.ctx, "Saved Preset")
		m.status = "Preset saved"

	case key.Matches(msg, m.keymap.LoadPreset):
		if m.cfg.Store.LoadPreset(m.ctx) {
			m.refreshVisible()
			m.status = "Preset loaded"
		} else {
			m.status = "No preset saved yet"
		}

	case key.Matches(msg, m.keymap.MarkSubmitted):
		if len(m.visible) > 0 {
			return m, m.markSubmitted(m.visible[m.cursor].ID)
		}
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		criteria := m.cfg.Store.Editable()
		criteria.Keywords = splitKeywords(m.input.Value())
		m.cfg.Store.SetCriteria(m.ctx, criteria)
		m.editing = false
		m.input.Blur()
		return m.startApply()

	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// startApply commits the editable criteria and shows the spinner for the
// cosmetic delay before recomputing the visible set.
func (m Model) startApply() (tea.Model, tea.Cmd) {
	if err := m.cfg.Store.Apply(m.ctx); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.applying = true
	m.status = ""
	return m, tea.Batch(
		m.spinner.Tick,
		tea.Tick(applyDelay, func(time.Time) tea.Msg { return applyDoneMsg{} }),
	)
}

func (m Model) loadRecords() tea.Cmd {
	return func() tea.Msg {
		records, err := m.cfg.Records.ListOpportunities(m.ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return recordsLoadedMsg{records: records}
	}
}

func (m Model) markSubmitted(id string) tea.Cmd {
	return func() tea.Msg {
		changed, err := m.cfg.Records.MarkSubmitted(m.ctx, id)
		if err != nil {
			return errMsg{err: err}
		}
		return submittedMsg{id: id, changed: changed}
	}
}

// refreshVisible recomputes the visible set from committed criteria and the
// active sort order, keeping the cursor in range.
func (m *Model) refreshVisible() {
	m.visible = filter.Sort(m.cfg.Engine.Filter(m.records, m.cfg.Store.Committed()), m.sortBy)
	m.clampCursor()
}

func nextSort(current filter.SortOption) filter.SortOption {
	switch current {
	case filter.SortDueDateAsc:
		return filter.SortDueDateDesc
	case filter.SortDueDateDesc:
		return filter.SortPercentComplete
	case filter.SortPercentComplete:
		return filter.SortFitScore
	default:
		return filter.SortDueDateAsc
	}
}

func sortLabel(option filter.SortOption) string {
	switch option {
	case filter.SortDueDateDesc:
		return "due date (latest first)"
	case filter.SortPercentComplete:
		return "completion"
	case filter.SortFitScore:
		return "fit score"
	default:
		return "due date (soonest first)"
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func splitKeywords(value string) []string {
	var keywords []string
	for _, tok := range strings.Split(value, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			keywords = append(keywords, tok)
		}
	}
	return keywords
}
