package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inquirydesk/backend/internal/model"
	"github.com/inquirydesk/backend/internal/triage"
)

const storeTimeout = 10 * time.Second

// filterCycle is the order tab steps through.
var filterCycle = []model.StatusFilter{
	model.FilterAll,
	model.FilterFor(model.StatusNew),
	model.FilterFor(model.StatusInProgress),
	model.FilterFor(model.StatusCompleted),
}

// loadedMsg carries the result of a List call.
type loadedMsg struct {
	subs []*model.Submission
	err  error
}

// statusMsg carries the result of a status update and, when the update was
// stored, the reload that followed it.
type statusMsg struct {
	id     string
	status model.Status
	err    error
	reload loadedMsg
}

// Model is the bubbletea model for the triage dashboard. Store calls run as
// commands off the update loop; their results come back as messages and the
// board is only changed in Update.
type Model struct {
	store  triage.Store
	board  *triage.Board
	busy   bool
	table  table.Model
	search textinput.Model

	searchFocused bool
	width         int
	height        int

	notice string
	err    string

	styles Styles
}

// New creates a dashboard over store. The first load happens in Init.
func New(store triage.Store) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Received", Width: 16},
			{Title: "Name", Width: 20},
			{Title: "Contact", Width: 28},
			{Title: "Status", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	si := textinput.New()
	si.Placeholder = "Search name, email or phone..."
	si.CharLimit = 100
	si.Width = 40

	return Model{
		store:  store,
		board:  triage.NewBoard(store),
		table:  t,
		search: si,
		styles: DefaultStyles(),
	}
}

// Init triggers the initial load.
func (m Model) Init() tea.Cmd {
	return loadCmd(m.store)
}

func loadCmd(store triage.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		subs, err := store.List(ctx)
		return loadedMsg{subs: subs, err: err}
	}
}

func updateCmd(store triage.Store, id string, st model.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		msg := statusMsg{id: id, status: st}
		if msg.err = store.UpdateStatus(ctx, id, st); msg.err != nil {
			return msg
		}
		msg.reload.subs, msg.reload.err = store.List(ctx)
		return msg
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		if msg.Height > 12 {
			m.table.SetHeight(msg.Height - 10)
		}
		return m, nil
	case loadedMsg:
		m.busy = false
		m.applyLoad(msg, "Could not load submissions.")
		return m, nil
	case statusMsg:
		m.busy = false
		m.applyStatus(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searchFocused {
			return m.updateSearch(msg)
		}
		if m.board.Selected() != nil {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchFocused = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.board.SetQuery(m.search.Value())
	m.syncRows()
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		return m, m.search.Focus()
	case "tab":
		m.board.SetStatusFilter(nextFilter(m.board.StatusFilter()))
		m.syncRows()
		return m, nil
	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, loadCmd(m.store)
	case "enter":
		rows := m.board.Visible()
		i := m.table.Cursor()
		if i >= 0 && i < len(rows) {
			m.board.Open(rows[i].ID)
			m.notice, m.err = "", ""
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.board.Close()
		m.notice, m.err = "", ""
		return m, nil
	case "1":
		return m.setStatus(model.StatusNew)
	case "2":
		return m.setStatus(model.StatusInProgress)
	case "3":
		return m.setStatus(model.StatusCompleted)
	}
	return m, nil
}

func (m Model) setStatus(st model.Status) (tea.Model, tea.Cmd) {
	sel := m.board.Selected()
	if sel == nil || m.busy {
		return m, nil
	}
	m.busy = true
	m.notice, m.err = "Saving...", ""
	return m, updateCmd(m.store, sel.ID, st)
}

// applyLoad installs a List result. A failed load keeps the rows already
// shown and sets failMsg.
func (m *Model) applyLoad(msg loadedMsg, failMsg string) {
	if msg.err != nil {
		m.err = failMsg
		return
	}
	m.err = ""
	m.board.Replace(msg.subs)
	m.syncRows()
}

func (m *Model) applyStatus(msg statusMsg) {
	if msg.err != nil {
		m.notice = ""
		m.err = "Could not update status."
		return
	}
	m.board.ApplyStatus(msg.id, msg.status)
	m.notice = "Status set to " + statusLabel(msg.status) + "."
	m.applyLoad(msg.reload, "Status saved, but the list could not be reloaded.")
}

func (m *Model) syncRows() {
	visible := m.board.Visible()
	rows := make([]table.Row, 0, len(visible))
	for _, s := range visible {
		rows = append(rows, table.Row{
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Name,
			contact(s),
			statusLabel(s.Status),
		})
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func nextFilter(f model.StatusFilter) model.StatusFilter {
	for i, c := range filterCycle {
		if c == f {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return model.FilterAll
}

func contact(s *model.Submission) string {
	switch {
	case s.Email != nil:
		return *s.Email
	case s.Phone != nil:
		return *s.Phone
	}
	return "-"
}

// View renders the dashboard.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(" Contact submissions ") + "\n")
	sb.WriteString(m.renderCounts() + "\n\n")

	if sel := m.board.Selected(); sel != nil {
		sb.WriteString(m.renderDetail(sel))
	} else {
		sb.WriteString(m.renderFilterBar() + "\n\n")
		if len(m.board.Visible()) == 0 {
			sb.WriteString(m.styles.Muted.Render("No submissions match.") + "\n")
		} else {
			sb.WriteString(m.table.View() + "\n")
		}
		sb.WriteString(m.styles.Muted.Render("[/] Search  [Tab] Status  [Enter] Open  [r] Refresh  [q] Quit"))
	}

	if m.err != "" {
		sb.WriteString("\n" + m.styles.Error.Render(m.err))
	} else if m.notice != "" {
		sb.WriteString("\n" + m.styles.Notice.Render(m.notice))
	}
	return sb.String()
}

func (m Model) renderCounts() string {
	c := m.board.Counts()
	return fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		m.styles.Label.Render("Total"), c.Total,
		statusStyle(model.StatusNew).Render(statusLabel(model.StatusNew)), c.New,
		statusStyle(model.StatusInProgress).Render(statusLabel(model.StatusInProgress)), c.InProgress,
		statusStyle(model.StatusCompleted).Render(statusLabel(model.StatusCompleted)), c.Completed,
	)
}

func (m Model) renderFilterBar() string {
	var sb strings.Builder
	box := m.styles.Search
	if m.searchFocused {
		box = m.styles.Focused
	}
	sb.WriteString(box.Render(m.search.View()))
	sb.WriteString("  ")

	current := m.board.StatusFilter()
	for _, f := range filterCycle {
		label := "All"
		if f != model.FilterAll {
			label = statusLabel(model.Status(f))
		}
		style := m.styles.Muted
		if f == current {
			style = m.styles.Active
		}
		sb.WriteString(style.Render(label) + "  ")
	}
	return sb.String()
}

func (m Model) renderDetail(s *model.Submission) string {
	var sb strings.Builder
	field := func(k, v string) {
		sb.WriteString(m.styles.Label.Render(fmt.Sprintf("%-10s", k)) + " " + v + "\n")
	}
	field("Name", s.Name)
	field("Email", deref(s.Email))
	field("Phone", deref(s.Phone))
	field("Received", s.CreatedAt.Local().Format("2006-01-02 15:04"))
	field("Status", statusStyle(s.Status).Render(statusLabel(s.Status)))
	sb.WriteString("\n" + s.Message + "\n\n")
	sb.WriteString(m.styles.Muted.Render("[1] New  [2] In progress  [3] Completed  [Esc] Back"))
	return sb.String()
}

func deref(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}
