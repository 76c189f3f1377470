// Package tui renders the artworks table in the terminal with bubbletea.
//
// All state changes happen in Update. Network calls run in commands and come
// back as messages; a bulk selection works on a clone of the tracker and is
// swapped in only if no newer user action superseded it.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sternrassler/artic-client/pkg/artwork"
	"github.com/Sternrassler/artic-client/pkg/pagination"
	"github.com/Sternrassler/artic-client/pkg/selection"
	"github.com/Sternrassler/artic-client/pkg/table"
)

// maxPromptDigits bounds the "select rows" input.
const maxPromptDigits = 6

// Model is the bubbletea model of the artworks table.
type Model struct {
	ctx     context.Context
	fetcher pagination.PageFetcher
	view    *table.View
	tracker *selection.Tracker
	logger  zerolog.Logger

	cursor   int
	rowClick bool
	width    int

	// "select rows" prompt
	prompt bool
	input  string

	bulk   *bulkRun
	status string
}

// bulkRun is the in-flight "select N rows" operation.
type bulkRun struct {
	id     string
	target int
	cancel context.CancelFunc
}

// messages
type pageMsg struct {
	page int
	p    *artwork.Page
	err  error
}

type bulkDoneMsg struct {
	id      string
	target  int
	tracker *selection.Tracker
	added   int
	err     error
}

// New creates the model. walker bounds the page walk of bulk selections.
func New(ctx context.Context, fetcher pagination.PageFetcher, pageSize int, walker pagination.Config) *Model {
	return &Model{
		ctx:     ctx,
		fetcher: fetcher,
		view:    table.NewView(pageSize),
		tracker: selection.NewTracker(walker),
		logger:  log.With().Str("component", "tui").Logger(),
	}
}

// Tracker returns the live selection.
func (m *Model) Tracker() *selection.Tracker {
	return m.tracker
}

func (m *Model) Init() tea.Cmd {
	return m.loadPage(1)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case pageMsg:
		m.handlePage(msg)
	case bulkDoneMsg:
		m.handleBulkDone(msg)
	case tea.KeyMsg:
		if m.prompt {
			return m, m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.cancelBulk()
		return m, tea.Quit
	case "left", "h":
		return m, m.goTo(m.view.Prev())
	case "right", "l":
		return m, m.goTo(m.view.Next())
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Rows)-1 {
			m.cursor++
		}
	case " ", "space":
		m.toggleCursor()
	case "enter":
		if m.rowClick {
			m.toggleCursor()
		}
	case "r":
		m.rowClick = !m.rowClick
		if m.rowClick {
			m.status = "row-click selection on"
		} else {
			m.status = "row-click selection off"
		}
	case "n":
		m.prompt = true
		m.input = ""
	case "c":
		m.cancelBulk()
		m.tracker.Clear()
		m.status = "selection cleared"
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = false
		m.input = ""
		return nil
	case tea.KeyEnter:
		n, err := strconv.Atoi(m.input)
		m.prompt = false
		m.input = ""
		if err != nil || n <= 0 {
			m.status = "enter a positive number of rows"
			return nil
		}
		return m.startBulk(n)
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' && len(m.input) < maxPromptDigits {
				m.input += string(r)
			}
		}
	}
	return nil
}

// goTo starts loading page unless it is already the target.
// Navigation supersedes any running bulk selection.
func (m *Model) goTo(page int) tea.Cmd {
	if page == m.view.Target() {
		return nil
	}
	m.cancelBulk()
	return m.loadPage(page)
}

func (m *Model) loadPage(page int) tea.Cmd {
	if err := m.view.Begin(page); err != nil {
		m.status = err.Error()
		return nil
	}
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		p, err := fetcher.FetchPage(ctx, page)
		return pageMsg{page: page, p: p, err: err}
	}
}

func (m *Model) handlePage(msg pageMsg) {
	if msg.err != nil {
		current := msg.page == m.view.Target()
		m.view.Fail(msg.page, msg.err)
		if current {
			m.status = fmt.Sprintf("failed to load page %d: %v", msg.page, msg.err)
		}
		return
	}

	msg.p.Number = msg.page
	if m.view.Apply(msg.p) {
		m.cursor = 0
		if m.bulk == nil {
			m.status = ""
		}
	}
}

func (m *Model) toggleCursor() {
	if m.cursor < 0 || m.cursor >= len(m.view.Rows) {
		return
	}
	m.cancelBulk()
	m.tracker.Toggle(m.view.Rows, m.view.Rows[m.cursor])
}

func (m *Model) startBulk(target int) tea.Cmd {
	m.cancelBulk()

	ctx, cancel := context.WithCancel(m.ctx)
	run := &bulkRun{id: uuid.NewString(), target: target, cancel: cancel}
	m.bulk = run
	m.status = fmt.Sprintf("selecting %d rows...", target)

	m.logger.Debug().
		Str("run_id", run.id).
		Int("target", target).
		Msg("Starting bulk selection")

	clone := m.tracker.Clone()
	fetcher := m.fetcher
	return func() tea.Msg {
		defer cancel()
		added, err := clone.SelectAcrossPages(ctx, fetcher, target)
		return bulkDoneMsg{id: run.id, target: target, tracker: clone, added: added, err: err}
	}
}

// cancelBulk stops the running bulk selection and invalidates its result.
func (m *Model) cancelBulk() {
	if m.bulk == nil {
		return
	}
	m.bulk.cancel()
	m.logger.Debug().Str("run_id", m.bulk.id).Msg("Bulk selection superseded")
	m.bulk = nil
	m.status = "bulk selection cancelled"
}

func (m *Model) handleBulkDone(msg bulkDoneMsg) {
	if m.bulk == nil || m.bulk.id != msg.id {
		m.logger.Debug().Str("run_id", msg.id).Msg("Dropping superseded bulk selection")
		return
	}
	m.bulk = nil

	// Records gathered before a failure stay selected.
	m.tracker = msg.tracker

	switch {
	case msg.err == nil:
		m.status = fmt.Sprintf("%d rows selected (%d added)", m.tracker.Len(), msg.added)
	case errors.Is(msg.err, context.Canceled):
		m.status = "bulk selection cancelled"
	default:
		m.status = fmt.Sprintf("selection stopped at %d of %d rows: %v", m.tracker.Len(), msg.target, msg.err)
	}
}
