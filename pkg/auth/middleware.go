// Package auth gates inbound requests to the admin API.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Mode selects how the admin gate treats requests.
type Mode string

const (
	// ModeOpen passes every request through unmodified. There is no
	// authentication at all in this mode.
	ModeOpen Mode = "open"
	// ModeToken requires "Authorization: Bearer <token>".
	ModeToken Mode = "token"
)

// ParseMode accepts "open" or "token".
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeOpen:
		return ModeOpen, nil
	case ModeToken:
		return ModeToken, nil
	}
	return "", fmt.Errorf("unknown auth mode %q (want %q or %q)", s, ModeOpen, ModeToken)
}

// Gate returns the admin middleware for mode.
func Gate(mode Mode, token string) func(http.Handler) http.Handler {
	if mode == ModeToken {
		return BearerToken(token)
	}
	return PassThrough
}

// PassThrough forwards every request unchanged.
func PassThrough(next http.Handler) http.Handler {
	return next
}

// BearerToken validates the Authorization header against token using a
// constant-time comparison.
func BearerToken(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "unauthorized")
				return
			}
			got := []byte(header[len("Bearer "):])
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				unauthorized(w, "invalid_token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
