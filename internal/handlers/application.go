package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/probashi-portal/apiserver/internal/services"
	"github.com/probashi-portal/apiserver/internal/store"
	"github.com/probashi-portal/apiserver/types"
)

// ApplicationHandler provides HTTP handlers for job applications.
type ApplicationHandler struct {
	applications *services.ApplicationService
	translator   Translator
}

// Translator resolves a message key for a language.
type Translator interface {
	Translate(lang, key string) string
}

func NewApplicationHandler(applications *services.ApplicationService, translator Translator) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, translator: translator}
}

// ApplicationRouter registers application routes. All routes assume the
// guard chain (auth + profile) already ran; review routes add the
// admin role check.
func ApplicationRouter(r chi.Router, handler *ApplicationHandler, guard *Guard) {
	r.Post("/", handler.Apply)
	r.Get("/mine", handler.ListMine)
	r.Delete("/{applicationID}", handler.Cancel)
	r.With(guard.RequireRoles(types.RoleAdmin)).Get("/", handler.ListAll)
	r.With(guard.RequireRoles(types.RoleAdmin)).Put("/{applicationID}/status", handler.SetStatus)
}

type ApplyRequest struct {
	JobID int `json:"jobId"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

// Apply submits the caller's application for a job. A repeat submission
// for the same job answers 409 with a localized notice.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.JobID < 1 {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	app, err := h.applications.Apply(r.Context(), req.JobID, profile.ID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, h.translator.Translate(profile.Language, "alreadyApplied"))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to submit application")
		return
	}

	writeJSON(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	apps, err := h.applications.ListMine(r.Context(), profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (h *ApplicationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applications.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// SetStatus moves an application between pending, approved and
// rejected.
func (h *ApplicationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "applicationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	app, err := h.applications.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "invalid status")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "application not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update application")
		}
		return
	}

	writeJSON(w, http.StatusOK, app)
}

// Cancel withdraws the caller's own application.
func (h *ApplicationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "applicationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	if err := h.applications.Cancel(r.Context(), id, profile.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "application not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to withdraw application")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
