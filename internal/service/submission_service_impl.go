package service

import (
	"context"

	"github.com/inquirydesk/backend/internal/model"
	"github.com/inquirydesk/backend/internal/repository"
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	repo repository.SubmissionRepository
}

// NewSubmissionService creates a SubmissionService backed by the given repository.
func NewSubmissionService(repo repository.SubmissionRepository) SubmissionService {
	return &submissionServiceImpl{repo: repo}
}

func (s *submissionServiceImpl) Submit(ctx context.Context, in model.SubmissionInput) (*model.Submission, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sub := in.Submission()
	if err := s.repo.Insert(ctx, sub); err != nil {
		return nil, &StoreError{Op: "insert", Err: err}
	}
	return sub, nil
}

func (s *submissionServiceImpl) List(ctx context.Context) ([]*model.Submission, error) {
	subs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return subs, nil
}

func (s *submissionServiceImpl) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	if _, err := model.ParseStatus(string(status)); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return &StoreError{Op: "update", Err: err}
	}
	return nil
}
