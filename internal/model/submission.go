package model

import (
	"strings"
	"time"
)

// Submission represents a customer inquiry sent through the contact form.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of s so detail views never alias the superset.
func (s *Submission) Clone() *Submission {
	if s == nil {
		return nil
	}
	c := *s
	if s.Phone != nil {
		p := *s.Phone
		c.Phone = &p
	}
	if s.Email != nil {
		e := *s.Email
		c.Email = &e
	}
	return &c
}

// SubmissionInput carries the values entered on the contact form.
type SubmissionInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
	Agreed  bool   `json:"agreed"`
}

// Validate checks consent first, then the required fields.
func (in SubmissionInput) Validate() error {
	if !in.Agreed {
		return ErrConsentRequired
	}
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	if strings.TrimSpace(in.Message) == "" {
		return &ValidationError{Field: "message", Reason: "message is required"}
	}
	return nil
}

// Submission builds the record to insert. Blank optional fields become absent.
func (in SubmissionInput) Submission() *Submission {
	return &Submission{
		Name:    strings.TrimSpace(in.Name),
		Phone:   optional(in.Phone),
		Email:   optional(in.Email),
		Message: in.Message,
		Status:  StatusNew,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StatusCounts aggregates submissions per status.
type StatusCounts struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}
