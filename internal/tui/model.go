// Package tui is the interactive terminal front end of the member desk.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/coopdesk/memberdesk/internal/app/desk"
	"github.com/coopdesk/memberdesk/internal/domain"
)

type view int

const (
	viewList view = iota
	viewDetail
	viewForm
	viewConfirmDelete
)

// Message types
type loadedMsg struct{ err error }
type submittedMsg struct{ err error }
type deletedMsg struct{ err error }

// Model is the BubbleTea model over a desk.Screen.
type Model struct {
	ctx    context.Context
	screen *desk.Screen
	log    *zap.Logger

	view   view
	search textinput.Model
	table  table.Model
	rowIDs []domain.MemberID

	inputs []formInput
	focus  int

	pending  domain.MemberID
	back     view
	busy     bool
	quitting bool
}

func NewModel(ctx context.Context, screen *desk.Screen, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	search := textinput.New()
	search.Placeholder = "Search Members"
	search.Prompt = "/ "
	search.Focus()

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Account No.", Width: 12},
			{Title: "Name", Width: 32},
			{Title: "Email", Width: 28},
			{Title: "Phone", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return Model{
		ctx:    ctx,
		screen: screen,
		log:    log,
		view:   viewList,
		search: search,
		table:  t,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), textinput.Blink)
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.screen.Load(m.ctx)}
	}
}

func (m Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		return submittedMsg{err: m.screen.Submit(m.ctx)}
	}
}

func (m Model) deleteCmd(id domain.MemberID) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{err: m.screen.Delete(m.ctx, id, desk.AlwaysConfirm)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.log.Debug("load failed", zap.Error(msg.err))
		}
		m.refreshRows()
		return m, nil

	case submittedMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Debug("submit failed", zap.Error(msg.err))
			return m, nil
		}
		m.inputs = nil
		m.view = viewList
		m.refreshRows()
		return m, m.search.Focus()

	case deletedMsg:
		m.busy = false
		m.pending = ""
		m.view = viewList
		m.refreshRows()
		return m, m.search.Focus()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		snap := m.screen.Snapshot()
		if !snap.Loaded {
			if msg.String() == "q" || msg.Type == tea.KeyEsc {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		switch m.view {
		case viewList:
			return m.updateList(msg)
		case viewDetail:
			return m.updateDetail(msg)
		case viewForm:
			return m.updateForm(msg)
		case viewConfirmDelete:
			return m.updateConfirm(msg)
		}
	}

	// Cursor blinks and other ticks go to whichever input has focus.
	var cmd tea.Cmd
	switch m.view {
	case viewList:
		m.search, cmd = m.search.Update(msg)
	case viewForm:
		if m.focus < len(m.inputs) && !m.inputs[m.focus].isPicker() {
			m.inputs[m.focus].input, cmd = m.inputs[m.focus].input.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.screen.SetQuery("")
			m.refreshRows()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "up", "down", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	case "enter":
		if id, ok := m.cursorID(); ok && m.screen.Select(id) {
			m.view = viewDetail
			m.search.Blur()
		}
		return m, nil
	case "ctrl+n":
		m.screen.StartCompose()
		return m, m.openForm()
	case "ctrl+e":
		if id, ok := m.cursorID(); ok && m.screen.StartEdit(id) {
			return m, m.openForm()
		}
		return m, nil
	case "ctrl+d":
		if id, ok := m.cursorID(); ok {
			m.askDelete(id)
		}
		return m, nil
	}

	m.screen.DismissError()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.screen.SetQuery(m.search.Value())
	m.refreshRows()
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.screen.Snapshot().Selected
	switch msg.String() {
	case "esc", "backspace", "q":
		m.screen.Deselect()
		m.view = viewList
		return m, m.search.Focus()
	case "e":
		if sel != nil && m.screen.StartEdit(sel.ID) {
			return m, m.openForm()
		}
	case "d":
		if sel != nil {
			m.askDelete(sel.ID)
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen.CancelDraft()
		m.inputs = nil
		m.view = viewList
		return m, m.search.Focus()
	case "enter":
		m.busy = true
		return m, m.submitCmd()
	case "tab", "down":
		return m, m.focusForm(m.focus + 1)
	case "shift+tab", "up":
		return m, m.focusForm(m.focus - 1)
	}

	if m.inputs[m.focus].isPicker() {
		switch msg.String() {
		case "left", "h":
			m.cycle(-1)
		case "right", "l", " ":
			m.cycle(1)
		}
		return m, nil
	}

	fi := &m.inputs[m.focus]
	var cmd tea.Cmd
	fi.input, cmd = fi.input.Update(msg)
	m.screen.SetField(fi.field, fi.input.Value())
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.busy = true
		return m, m.deleteCmd(m.pending)
	case "n", "N", "esc":
		m.pending = ""
		m.view = m.back
		if m.view == viewList {
			return m, m.search.Focus()
		}
	}
	return m, nil
}

func (m *Model) openForm() tea.Cmd {
	m.inputs = newFormInputs(m.screen.Snapshot().Draft.Fields)
	m.view = viewForm
	m.search.Blur()
	return m.focusForm(0)
}

func (m *Model) askDelete(id domain.MemberID) {
	m.pending = id
	m.back = m.view
	m.view = viewConfirmDelete
	m.search.Blur()
}

// refreshRows rebuilds the table from the visible members.
func (m *Model) refreshRows() {
	visible := m.screen.Visible()
	rows := make([]table.Row, 0, len(visible))
	m.rowIDs = make([]domain.MemberID, 0, len(visible))
	for _, mem := range visible {
		rows = append(rows, table.Row{accountLabel(mem), mem.FullName(), mem.Email, mem.PhoneNumber})
		m.rowIDs = append(m.rowIDs, mem.ID)
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) || c < 0 {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m Model) cursorID() (domain.MemberID, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.rowIDs) {
		return "", false
	}
	return m.rowIDs[c], true
}

func accountLabel(mem domain.Member) string {
	if mem.AccountNumber == "" {
		return "No Account"
	}
	return mem.AccountNumber
}
