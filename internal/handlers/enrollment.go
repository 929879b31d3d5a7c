package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/probashi-portal/apiserver/internal/services"
	"github.com/probashi-portal/apiserver/internal/store"
)

// EnrollmentHandler provides HTTP handlers for course enrollments.
type EnrollmentHandler struct {
	enrollments *services.EnrollmentService
	translator  Translator
}

func NewEnrollmentHandler(enrollments *services.EnrollmentService, translator Translator) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, translator: translator}
}

// EnrollmentRouter registers enrollment routes. All routes assume the
// guard chain (auth + profile) already ran.
func EnrollmentRouter(r chi.Router, handler *EnrollmentHandler) {
	r.Post("/", handler.Enroll)
	r.Get("/mine", handler.ListMine)
}

type EnrollRequest struct {
	CourseID int `json:"courseId"`
}

// Enroll records the caller's enrollment in a course. A repeat
// enrollment answers 409 with a localized notice.
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	var req EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CourseID < 1 {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	enrollment, err := h.enrollments.Enroll(r.Context(), req.CourseID, profile.ID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, h.translator.Translate(profile.Language, "alreadyEnrolled"))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to enroll")
		return
	}

	writeJSON(w, http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	enrollments, err := h.enrollments.ListMine(r.Context(), profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list enrollments")
		return
	}
	writeJSON(w, http.StatusOK, enrollments)
}
