package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("open"); err != nil || m != ModeOpen {
		t.Errorf("expected open, got %q (%v)", m, err)
	}
	if m, err := ParseMode(" TOKEN "); err != nil || m != ModeToken {
		t.Errorf("expected token, got %q (%v)", m, err)
	}
	if _, err := ParseMode("session"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestGate_OpenPassesEverything(t *testing.T) {
	called := false
	req := httptest.NewRequest("GET", "/api/admin/submissions", nil)
	rec := httptest.NewRecorder()
	Gate(ModeOpen, "")(okHandler(&called)).ServeHTTP(rec, req)

	if !called {
		t.Error("expected next handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestGate_Token_MissingHeader_Returns401(t *testing.T) {
	called := false
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	Gate(ModeToken, "s3cret")(okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Error("next handler should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestGate_Token_WrongToken_Returns401(t *testing.T) {
	called := false
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	Gate(ModeToken, "s3cret")(okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Error("next handler should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestGate_Token_ValidToken_CallsNext(t *testing.T) {
	called := false
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	Gate(ModeToken, "s3cret")(okHandler(&called)).ServeHTTP(rec, req)

	if !called {
		t.Error("expected next handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
