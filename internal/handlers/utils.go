package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/probashi-portal/apiserver/types"
)

type contextKey string

const (
	contextSubjectKey contextKey = "sub"
	contextProfileKey contextKey = "profile"
)

// ErrorResponse is a simple error payload. Redirect carries the
// navigation target for guard rejections.
type ErrorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// RedirectResponse is the success payload for operations whose only
// outcome is a navigation target, such as registration.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

func userIDFromContext(ctx context.Context) (int, error) {
	value := ctx.Value(contextSubjectKey)
	switch subject := value.(type) {
	case int:
		if subject < 1 {
			return 0, errors.New("invalid subject")
		}
		return subject, nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(subject))
		if err != nil || parsed < 1 {
			return 0, errors.New("invalid subject")
		}
		return parsed, nil
	default:
		return 0, errors.New("missing subject")
	}
}

func profileFromContext(ctx context.Context) (types.Profile, error) {
	profile, ok := ctx.Value(contextProfileKey).(types.Profile)
	if !ok || profile.ID < 1 {
		return types.Profile{}, errors.New("missing profile")
	}
	return profile, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeGuardError(w http.ResponseWriter, status int, message, redirect string) {
	writeJSON(w, status, ErrorResponse{Error: message, Redirect: redirect})
}

func parseIDParam(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
