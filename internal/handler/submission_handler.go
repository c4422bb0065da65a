package handler

import (
	"encoding/json"
	"errors"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/inquirydesk/backend/internal/metrics"
	"github.com/inquirydesk/backend/internal/model"
	"github.com/inquirydesk/backend/internal/repository"
	"github.com/inquirydesk/backend/internal/service"
	"github.com/inquirydesk/backend/internal/triage"
)

// SubmissionHandler handles the public contact form and the admin triage API.
type SubmissionHandler struct {
	svc       service.SubmissionService
	metrics   *metrics.Metrics
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
}

// NewSubmissionHandler creates a SubmissionHandler. m may be nil.
func NewSubmissionHandler(svc service.SubmissionService, m *metrics.Metrics) *SubmissionHandler {
	return &SubmissionHandler{
		svc:       svc,
		metrics:   m,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// RegisterRoutes attaches the public and admin endpoints. gate wraps every
// /api/admin route.
func (h *SubmissionHandler) RegisterRoutes(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Post("/api/contact", h.Submit)
	r.Route("/api/admin/submissions", func(r chi.Router) {
		r.Use(gate)
		r.Get("/", h.AdminList)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}/status", h.UpdateStatus)
	})
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"omitempty,max=40"`
	Email   string `json:"email" validate:"omitempty,email,max=254"`
	Message string `json:"message" validate:"required,max=5000"`
	Agreed  bool   `json:"agreed"`
}

// Submit handles POST /api/contact.
// Consent is checked first. name and message are required; phone and email
// are optional. Text is stored exactly as sent; anything an HTML parser would
// read as markup is rejected rather than rewritten.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveSubmission(metrics.ResultRejected)
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if !req.Agreed {
		h.metrics.ObserveSubmission(metrics.ResultRejected)
		writeError(w, http.StatusBadRequest, "consent_required")
		return
	}

	if h.hasMarkup(req.Name) || h.hasMarkup(req.Message) {
		h.metrics.ObserveSubmission(metrics.ResultRejected)
		writeError(w, http.StatusBadRequest, "markup_not_allowed")
		return
	}

	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)

	// Rules apply to the trimmed text; the message itself is forwarded as sent.
	check := req
	check.Name = strings.TrimSpace(req.Name)
	check.Message = strings.TrimSpace(req.Message)
	if err := h.validate.Struct(check); err != nil {
		h.metrics.ObserveSubmission(metrics.ResultRejected)
		writeError(w, http.StatusBadRequest, validationCode(err))
		return
	}

	sub, err := h.svc.Submit(r.Context(), model.SubmissionInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
		Agreed:  req.Agreed,
	})
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			h.metrics.ObserveSubmission(metrics.ResultRejected)
			writeError(w, http.StatusBadRequest, verr.Field+"_invalid")
			return
		}
		h.metrics.ObserveSubmission(metrics.ResultError)
		slog.ErrorContext(r.Context(), "contact submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}

	h.metrics.ObserveSubmission(metrics.ResultOK)
	writeJSON(w, http.StatusCreated, sub)
}

// lineBreaks matches the newline folding the HTML tokenizer applies to text.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// hasMarkup reports whether s contains tags or character references. Plain
// text sanitizes to exactly its escaped form; anything else was parsed as
// markup or an entity.
func (h *SubmissionHandler) hasMarkup(s string) bool {
	s = lineBreaks.Replace(s)
	return h.sanitizer.Sanitize(s) != html.EscapeString(s)
}

// validationCode maps the first failed rule to an API error code.
func validationCode(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid_request"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + "_required"
	case "max":
		return field + "_too_long"
	}
	return "invalid_" + field
}

// adminListResponse is the JSON response for GET /api/admin/submissions.
type adminListResponse struct {
	Submissions []*model.Submission `json:"submissions"`
	Counts      model.StatusCounts  `json:"counts"`
}

// AdminList handles GET /api/admin/submissions.
// Query params: q (search text), status (all/new/in_progress/completed).
// Counts always describe every submission, not the filtered subset.
func (h *SubmissionHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	filter, err := model.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	all, err := h.svc.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list submissions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}

	writeJSON(w, http.StatusOK, adminListResponse{
		Submissions: triage.Filter(all, r.URL.Query().Get("q"), filter),
		Counts:      triage.CountStatuses(all),
	})
}

// Get handles GET /api/admin/submissions/{id}.
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	all, err := h.svc.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "load submission failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "get_failed")
		return
	}
	for _, s := range all {
		if s.ID == id {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not_found")
}

// updateStatusRequest is the expected JSON body for PATCH /api/admin/submissions/{id}/status.
type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PATCH /api/admin/submissions/{id}/status.
// Any status may be set from any status, including the current one.
func (h *SubmissionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationCode(err))
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.metrics.ObserveStatusUpdate(string(status), metrics.ResultRejected)
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		h.metrics.ObserveStatusUpdate(string(status), metrics.ResultError)
		slog.ErrorContext(r.Context(), "status update failed", "id", id, "status", status, "error", err)
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}

	h.metrics.ObserveStatusUpdate(string(status), metrics.ResultOK)
	w.WriteHeader(http.StatusNoContent)
}
