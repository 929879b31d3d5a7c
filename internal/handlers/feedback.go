package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/probashi-portal/apiserver/internal/services"
	"github.com/probashi-portal/apiserver/types"
)

// FeedbackHandler provides HTTP handlers for portal feedback.
type FeedbackHandler struct {
	feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// FeedbackRouter registers feedback routes. Submission is open to any
// signed-in profile; the listing is admin-only.
func FeedbackRouter(r chi.Router, handler *FeedbackHandler, guard *Guard) {
	r.Post("/", handler.Submit)
	r.With(guard.RequireRoles(types.RoleAdmin)).Get("/", handler.ListAll)
}

type FeedbackRequest struct {
	Message string `json:"message"`
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	created, err := h.feedback.Submit(r.Context(), profile.ID, req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to submit feedback")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *FeedbackHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.feedback.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list feedback")
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}
