package triage

import (
	"strings"

	"github.com/inquirydesk/backend/internal/model"
)

// Matches reports whether sub passes both the search query and the status
// filter. An empty query matches everything. Name and email are compared
// case-insensitively; phone is compared as-is.
func Matches(sub *model.Submission, query string, filter model.StatusFilter) bool {
	return matchesQuery(sub, query) && filter.Matches(sub.Status)
}

func matchesQuery(sub *model.Submission, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(sub.Name), q) {
		return true
	}
	if sub.Email != nil && strings.Contains(strings.ToLower(*sub.Email), q) {
		return true
	}
	return sub.Phone != nil && strings.Contains(*sub.Phone, query)
}

// Filter returns the submissions matching query and filter, in input order.
// The result is never nil.
func Filter(subs []*model.Submission, query string, filter model.StatusFilter) []*model.Submission {
	out := make([]*model.Submission, 0, len(subs))
	for _, s := range subs {
		if Matches(s, query, filter) {
			out = append(out, s)
		}
	}
	return out
}

// CountStatuses aggregates subs by status.
func CountStatuses(subs []*model.Submission) model.StatusCounts {
	c := model.StatusCounts{Total: len(subs)}
	for _, s := range subs {
		switch s.Status {
		case model.StatusNew:
			c.New++
		case model.StatusInProgress:
			c.InProgress++
		case model.StatusCompleted:
			c.Completed++
		}
	}
	return c
}
