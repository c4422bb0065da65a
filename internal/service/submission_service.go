package service

import (
	"context"

	"github.com/inquirydesk/backend/internal/model"
)

// SubmissionService defines the business logic for contact submissions.
type SubmissionService interface {
	// Submit validates the form input and stores exactly one new submission
	// with status "new". Consent is checked before the store is contacted.
	Submit(ctx context.Context, in model.SubmissionInput) (*model.Submission, error)

	// List returns every submission, newest first.
	List(ctx context.Context) ([]*model.Submission, error)

	// UpdateStatus sets the status of one submission. Any status may follow
	// any other, and an unchanged status is still written.
	UpdateStatus(ctx context.Context, id string, status model.Status) error
}
