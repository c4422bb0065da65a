package handler

import (
	_ "embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
)

//go:embed privacy_notice.md
var defaultPrivacyNotice []byte

// PrivacyHandler serves the personal-information notice that the contact
// form's consent checkbox refers to.
type PrivacyHandler struct {
	path string
}

// NewPrivacyHandler serves the Markdown file at path, or the built-in notice
// when path is empty.
func NewPrivacyHandler(path string) *PrivacyHandler {
	return &PrivacyHandler{path: path}
}

// Notice handles GET /api/privacy.
func (h *PrivacyHandler) Notice(w http.ResponseWriter, r *http.Request) {
	content := defaultPrivacyNotice
	if h.path != "" {
		b, err := os.ReadFile(h.path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.WarnContext(r.Context(), "privacy notice file missing, serving built-in notice", "path", h.path)
		case err != nil:
			slog.ErrorContext(r.Context(), "read privacy notice failed", "path", h.path, "error", err)
			writeError(w, http.StatusInternalServerError, "internal_error")
			return
		default:
			content = b
		}
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
