package triage

import (
	"context"
	"errors"

	"github.com/inquirydesk/backend/internal/model"
	"github.com/inquirydesk/backend/internal/service"
)

// Store is the slice of the submission store the board depends on.
type Store interface {
	List(ctx context.Context) ([]*model.Submission, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) error
}

// Board is the triage view model. It is owned by a single caller and is not
// safe for concurrent use.
type Board struct {
	store Store

	all     []*model.Submission
	visible []*model.Submission
	query   string
	filter  model.StatusFilter

	selected *model.Submission
}

// NewBoard creates an empty board. Call Refresh to load submissions.
func NewBoard(store Store) *Board {
	return &Board{
		store:   store,
		filter:  model.FilterAll,
		visible: []*model.Submission{},
	}
}

// Refresh reloads the superset from the store and replaces it wholesale.
// On failure the previous superset is kept.
func (b *Board) Refresh(ctx context.Context) error {
	subs, err := b.store.List(ctx)
	if err != nil {
		return storeError(opList, err)
	}
	b.Replace(subs)
	return nil
}

// Replace installs subs as the superset. Callers that load asynchronously
// fetch from the store themselves and hand the result over here.
func (b *Board) Replace(subs []*model.Submission) {
	if subs == nil {
		subs = []*model.Submission{}
	}
	b.all = subs
	b.recompute()
}

// SetQuery changes the search text.
func (b *Board) SetQuery(q string) {
	b.query = q
	b.recompute()
}

// Query returns the current search text.
func (b *Board) Query() string { return b.query }

// SetStatusFilter changes the status filter.
func (b *Board) SetStatusFilter(f model.StatusFilter) {
	if f == "" {
		f = model.FilterAll
	}
	b.filter = f
	b.recompute()
}

// StatusFilter returns the current status filter.
func (b *Board) StatusFilter() model.StatusFilter { return b.filter }

// All returns the superset, newest first.
func (b *Board) All() []*model.Submission { return b.all }

// Visible returns the filtered subset in superset order.
func (b *Board) Visible() []*model.Submission { return b.visible }

// Counts aggregates the superset. Query and filter have no effect on it.
func (b *Board) Counts() model.StatusCounts { return CountStatuses(b.all) }

// Open selects the submission with the given id for the detail view. The
// detail view holds a copy, not the superset entry.
func (b *Board) Open(id string) bool {
	for _, s := range b.all {
		if s.ID == id {
			b.selected = s.Clone()
			return true
		}
	}
	return false
}

// Selected returns the submission shown in the detail view, if any.
func (b *Board) Selected() *model.Submission { return b.selected }

// Close dismisses the detail view.
func (b *Board) Close() { b.selected = nil }

// UpdateStatus issues exactly one status update for id, even when the status
// is unchanged. On failure nothing local changes. On success the open detail
// copy is patched and the superset is reloaded; a failed reload is returned
// but does not undo the patch, since the update itself was stored.
func (b *Board) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	if _, err := model.ParseStatus(string(status)); err != nil {
		return err
	}
	if err := b.store.UpdateStatus(ctx, id, status); err != nil {
		return storeError(opUpdate, err)
	}
	b.ApplyStatus(id, status)
	return b.Refresh(ctx)
}

// ApplyStatus records a stored status change on the open detail copy. The
// superset is left for the following reload.
func (b *Board) ApplyStatus(id string, status model.Status) {
	if b.selected != nil && b.selected.ID == id {
		b.selected.Status = status
	}
}

// ReloadFailed reports whether err came from the reload that follows a
// successful UpdateStatus, meaning the new status was stored.
func ReloadFailed(err error) bool {
	var serr *service.StoreError
	return errors.As(err, &serr) && serr.Op == opList
}

func (b *Board) recompute() {
	b.visible = Filter(b.all, b.query, b.filter)
}

const (
	opList   = "list"
	opUpdate = "update"
)

func storeError(op string, err error) error {
	var serr *service.StoreError
	if errors.As(err, &serr) {
		return err
	}
	return &service.StoreError{Op: op, Err: err}
}
