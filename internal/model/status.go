package model

import (
	"encoding/json"
	"fmt"
)

// Status is the triage classification of a submission. It is a flat tag:
// any value may follow any other, and none of them is terminal.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNew, StatusInProgress, StatusCompleted}

// ParseStatus converts s into a Status. Values outside the three known
// statuses return a *ValidationError.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusInProgress, StatusCompleted:
		return Status(s), nil
	}
	return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s)}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Label returns the human-readable badge text for s.
func (s Status) Label() (string, error) {
	switch s {
	case StatusNew:
		return "New", nil
	case StatusInProgress:
		return "In progress", nil
	case StatusCompleted:
		return "Completed", nil
	}
	return "", fmt.Errorf("no label for status %q", string(s))
}

// UnmarshalJSON rejects unknown statuses instead of carrying them around.
func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StatusFilter selects submissions by status. The zero value behaves like
// FilterAll.
type StatusFilter string

// FilterAll matches every status.
const FilterAll StatusFilter = "all"

// ParseStatusFilter accepts "", "all" or a status value.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || s == string(FilterAll) {
		return FilterAll, nil
	}
	st, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	return StatusFilter(st), nil
}

// FilterFor returns the filter matching only st.
func FilterFor(st Status) StatusFilter { return StatusFilter(st) }

// Matches reports whether a submission with status st passes the filter.
func (f StatusFilter) Matches(st Status) bool {
	return f == FilterAll || f == "" || Status(f) == st
}
