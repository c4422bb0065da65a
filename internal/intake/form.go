// Package intake models the public contact form.
package intake

import (
	"context"

	"github.com/inquirydesk/backend/internal/model"
)

// Submitter stores one new submission.
type Submitter interface {
	Submit(ctx context.Context, in model.SubmissionInput) (*model.Submission, error)
}

// Form holds the values entered on the contact form.
type Form struct {
	Name    string
	Phone   string
	Email   string
	Message string
	Agreed  bool

	submitter Submitter
}

// NewForm returns an empty form that sends through s.
func NewForm(s Submitter) *Form {
	return &Form{submitter: s}
}

// Input returns the current field values.
func (f *Form) Input() model.SubmissionInput {
	return model.SubmissionInput{
		Name:    f.Name,
		Phone:   f.Phone,
		Email:   f.Email,
		Message: f.Message,
		Agreed:  f.Agreed,
	}
}

// Submit validates the form locally and then sends it. Missing consent is
// rejected without contacting the submitter. On success every field is
// cleared; on failure the entered values are kept so the user can retry.
func (f *Form) Submit(ctx context.Context) (*model.Submission, error) {
	in := f.Input()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sub, err := f.submitter.Submit(ctx, in)
	if err != nil {
		return nil, err
	}
	f.Reset()
	return sub, nil
}

// Reset clears every field.
func (f *Form) Reset() {
	f.Name = ""
	f.Phone = ""
	f.Email = ""
	f.Message = ""
	f.Agreed = false
}
