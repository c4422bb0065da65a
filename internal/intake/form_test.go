package intake

import (
	"context"
	"errors"
	"testing"

	"github.com/inquirydesk/backend/internal/model"
	"github.com/inquirydesk/backend/internal/service"
)

type mockSubmitter struct {
	submitFunc func(ctx context.Context, in model.SubmissionInput) (*model.Submission, error)
	calls      int
}

func (m *mockSubmitter) Submit(ctx context.Context, in model.SubmissionInput) (*model.Submission, error) {
	m.calls++
	if m.submitFunc != nil {
		return m.submitFunc(ctx, in)
	}
	return &model.Submission{ID: "new-id", Status: model.StatusNew}, nil
}

func filledForm(s Submitter) *Form {
	f := NewForm(s)
	f.Name = "Kim"
	f.Phone = "010-1111-2222"
	f.Email = "a@x.com"
	f.Message = "Please call me back"
	f.Agreed = true
	return f
}

func TestForm_Submit_NoConsentNeverCallsStore(t *testing.T) {
	mock := &mockSubmitter{}
	f := filledForm(mock)
	f.Agreed = false

	_, err := f.Submit(context.Background())
	if !errors.Is(err, model.ErrConsentRequired) {
		t.Fatalf("expected ErrConsentRequired, got %v", err)
	}
	if mock.calls != 0 {
		t.Errorf("expected zero store interactions, got %d", mock.calls)
	}
	if f.Name != "Kim" || f.Message != "Please call me back" {
		t.Error("fields must be kept after a consent rejection")
	}
}

func TestForm_Submit_SuccessClearsFields(t *testing.T) {
	var got model.SubmissionInput
	mock := &mockSubmitter{
		submitFunc: func(ctx context.Context, in model.SubmissionInput) (*model.Submission, error) {
			got = in
			return &model.Submission{ID: "id-1", Status: model.StatusNew}, nil
		},
	}
	f := filledForm(mock)

	sub, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ID != "id-1" {
		t.Errorf("expected id-1, got %q", sub.ID)
	}
	if got.Name != "Kim" || got.Phone != "010-1111-2222" || got.Email != "a@x.com" || !got.Agreed {
		t.Errorf("submitter received unexpected input: %+v", got)
	}
	if f.Name != "" || f.Phone != "" || f.Email != "" || f.Message != "" || f.Agreed {
		t.Errorf("expected all fields cleared, got %+v", f.Input())
	}
}

func TestForm_Submit_FailurePreservesFields(t *testing.T) {
	mock := &mockSubmitter{
		submitFunc: func(ctx context.Context, in model.SubmissionInput) (*model.Submission, error) {
			return nil, &service.StoreError{Op: "insert", Err: errors.New("network down")}
		},
	}
	f := filledForm(mock)
	before := f.Input()

	_, err := f.Submit(context.Background())
	var serr *service.StoreError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if f.Input() != before {
		t.Errorf("expected fields unchanged, got %+v want %+v", f.Input(), before)
	}
	if mock.calls != 1 {
		t.Errorf("expected exactly one submit call, got %d", mock.calls)
	}
}

func TestForm_Submit_MissingMessage(t *testing.T) {
	mock := &mockSubmitter{}
	f := filledForm(mock)
	f.Message = ""

	_, err := f.Submit(context.Background())
	var verr *model.ValidationError
	if !errors.As(err, &verr) || verr.Field != "message" {
		t.Fatalf("expected message validation error, got %v", err)
	}
	if mock.calls != 0 {
		t.Errorf("expected no submit call, got %d", mock.calls)
	}
}
