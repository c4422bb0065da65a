package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inquirydesk/backend/internal/model"
)

type fakeStore struct {
	subs       []*model.Submission
	listErr    error
	updateErr  error
	updates    int
	lastStatus model.Status
}

func (f *fakeStore) List(ctx context.Context) ([]*model.Submission, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*model.Submission, len(f.subs))
	for i, s := range f.subs {
		out[i] = s.Clone()
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	f.updates++
	f.lastStatus = status
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, s := range f.subs {
		if s.ID == id {
			s.Status = status
		}
	}
	return nil
}

func strptr(s string) *string { return &s }

func newStore() *fakeStore {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &fakeStore{subs: []*model.Submission{
		{ID: "kim", Name: "Kim", Email: strptr("kim@example.com"), Message: "Need a quote", Status: model.StatusNew, CreatedAt: now},
		{ID: "lee", Name: "Lee", Phone: strptr("010-1111-2222"), Message: "Call me", Status: model.StatusCompleted, CreatedAt: now.Add(-time.Hour)},
	}}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// sendAndRun delivers msg, runs the store command it returns and feeds the
// result back, the way the program loop would.
func sendAndRun(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatalf("expected a command for %v", msg)
	}
	return send(t, next.(Model), cmd())
}

func loaded(t *testing.T, store *fakeStore) Model {
	t.Helper()
	m := New(store)
	return send(t, m, m.Init()())
}

func TestDashboard_InitLoadsSubmissions(t *testing.T) {
	m := loaded(t, newStore())
	view := m.View()
	for _, want := range []string{"Kim", "Lee", "kim@example.com", "010-1111-2222", "Completed"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestDashboard_SearchFiltersLive(t *testing.T) {
	m := loaded(t, newStore())

	m = send(t, m, runes("/"))
	if !m.searchFocused {
		t.Fatal("expected search to be focused after /")
	}
	m = send(t, m, runes("LEE"))
	if got := len(m.board.Visible()); got != 1 {
		t.Fatalf("expected 1 visible row, got %d", got)
	}
	if m.board.Visible()[0].ID != "lee" {
		t.Errorf("expected lee to remain visible, got %s", m.board.Visible()[0].ID)
	}
	if c := m.board.Counts(); c.Total != 2 {
		t.Errorf("counts must cover every submission, got total %d", c.Total)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.searchFocused {
		t.Error("expected esc to leave the search box")
	}
	if m.board.Query() != "LEE" {
		t.Errorf("expected query to persist after blur, got %q", m.board.Query())
	}
}

func TestDashboard_QuitKeyTypedIntoSearch(t *testing.T) {
	m := loaded(t, newStore())
	m = send(t, m, runes("/"))
	m = send(t, m, runes("q"))
	if !m.searchFocused {
		t.Fatal("expected search to stay focused")
	}
	if got := m.search.Value(); got != "q" {
		t.Errorf("expected q in search box, got %q", got)
	}
}

func TestDashboard_TabCyclesStatusFilter(t *testing.T) {
	m := loaded(t, newStore())

	want := []model.StatusFilter{
		model.FilterFor(model.StatusNew),
		model.FilterFor(model.StatusInProgress),
		model.FilterFor(model.StatusCompleted),
		model.FilterAll,
	}
	for _, w := range want {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if got := m.board.StatusFilter(); got != w {
			t.Fatalf("expected filter %q, got %q", w, got)
		}
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := len(m.board.Visible()); got != 1 || m.board.Visible()[0].ID != "kim" {
		t.Errorf("expected only the new submission, got %d rows", got)
	}
}

func TestDashboard_EmptyResultMessage(t *testing.T) {
	m := loaded(t, newStore())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "No submissions match.") {
		t.Error("expected empty-state message when no row matches")
	}
}

func TestDashboard_OpenDetailAndSetStatus(t *testing.T) {
	store := newStore()
	m := loaded(t, store)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sel := m.board.Selected()
	if sel == nil || sel.ID != "kim" {
		t.Fatalf("expected kim to be opened, got %+v", sel)
	}
	if !strings.Contains(m.View(), "Need a quote") {
		t.Error("expected message body in detail view")
	}

	m = sendAndRun(t, m, runes("2"))
	if store.updates != 1 {
		t.Fatalf("expected exactly one store update, got %d", store.updates)
	}
	if store.lastStatus != model.StatusInProgress {
		t.Errorf("expected in_progress, got %s", store.lastStatus)
	}
	if m.board.Selected().Status != model.StatusInProgress {
		t.Error("expected detail copy to show the new status")
	}
	if c := m.board.Counts(); c.InProgress != 1 || c.New != 0 {
		t.Errorf("expected counts to follow the reload, got %+v", c)
	}
	if !strings.Contains(m.View(), "Status set to In progress.") {
		t.Error("expected success notice")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.board.Selected() != nil {
		t.Error("expected esc to close the detail view")
	}
}

func TestDashboard_SameStatusStillUpdates(t *testing.T) {
	store := newStore()
	m := loaded(t, store)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = sendAndRun(t, m, runes("1"))
	if store.updates != 1 {
		t.Errorf("expected an update even when status is unchanged, got %d", store.updates)
	}
}

func TestDashboard_UpdateFailureKeepsState(t *testing.T) {
	store := newStore()
	m := loaded(t, store)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	store.updateErr = errors.New("permission denied")
	m = sendAndRun(t, m, runes("3"))

	if m.board.Selected().Status != model.StatusNew {
		t.Error("failed update must not change the detail copy")
	}
	if m.board.All()[0].Status != model.StatusNew {
		t.Error("failed update must not change the superset")
	}
	view := m.View()
	if !strings.Contains(view, "Could not update status.") {
		t.Error("expected error message")
	}
	if strings.Contains(view, "permission denied") {
		t.Error("store detail must not leak into the view")
	}
}

func TestDashboard_StoreCallsRunOutsideUpdate(t *testing.T) {
	store := newStore()
	m := loaded(t, store)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	next, cmd := m.Update(runes("3"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected a command carrying the update")
	}
	if store.updates != 0 {
		t.Fatalf("Update must not call the store, got %d calls", store.updates)
	}
	if m.board.Selected().Status != model.StatusNew {
		t.Error("board must not change before the result arrives")
	}

	if _, again := m.Update(runes("2")); again != nil {
		t.Error("expected keys to be ignored while an update is in flight")
	}

	m = send(t, m, cmd())
	if store.updates != 1 || store.lastStatus != model.StatusCompleted {
		t.Fatalf("expected one completed update, got %d %s", store.updates, store.lastStatus)
	}
	if m.board.Selected().Status != model.StatusCompleted {
		t.Error("expected the result message to patch the detail copy")
	}
	if m.busy {
		t.Error("expected the dashboard to accept input again")
	}
}

func TestDashboard_ReloadFailureAfterUpdate(t *testing.T) {
	store := newStore()
	m := loaded(t, store)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	store.listErr = errors.New("timeout")
	m = sendAndRun(t, m, runes("3"))

	if store.updates != 1 {
		t.Fatalf("expected exactly one store update, got %d", store.updates)
	}
	if m.board.Selected().Status != model.StatusCompleted {
		t.Error("stored status must show in the detail view")
	}
	if got := len(m.board.All()); got != 2 {
		t.Errorf("expected previous rows to be kept, got %d", got)
	}
	view := m.View()
	if !strings.Contains(view, "Status saved, but the list could not be reloaded.") {
		t.Error("expected the reload failure to be reported as such")
	}
	if strings.Contains(view, "Could not update status.") {
		t.Error("a stored update must not be reported as failed")
	}
}

func TestDashboard_RefreshFailureKeepsRows(t *testing.T) {
	store := newStore()
	m := loaded(t, store)

	store.listErr = errors.New("timeout")
	m = sendAndRun(t, m, runes("r"))

	if got := len(m.board.All()); got != 2 {
		t.Errorf("expected previous rows to be kept, got %d", got)
	}
	if !strings.Contains(m.View(), "Could not load submissions.") {
		t.Error("expected load error message")
	}
}

func TestDashboard_QuitKeys(t *testing.T) {
	m := loaded(t, newStore())
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected QuitMsg for %q", msg.String())
		}
	}
}
