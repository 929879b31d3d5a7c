package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/probashi-portal/apiserver/internal/services"
)

// ProfileHandler provides the caller's own profile endpoints.
type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// ProfileRouter registers profile routes. All routes assume the guard
// chain (auth + profile) already ran.
func ProfileRouter(r chi.Router, handler *ProfileHandler) {
	r.Get("/me", handler.GetMine)
	r.Put("/me", handler.UpdateMine)
	r.Put("/me/language", handler.ToggleLanguage)
}

type ProfileUpdateRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *ProfileHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateMine persists name, phone and address. The submitted values
// come back on the next read exactly as sent.
func (h *ProfileHandler) UpdateMine(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	var req ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	updated, err := h.profiles.UpdateContact(r.Context(), profile.ID, req.Name, strings.TrimSpace(req.Phone), strings.TrimSpace(req.Address))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// ToggleLanguage flips the persisted language preference.
func (h *ProfileHandler) ToggleLanguage(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	updated, err := h.profiles.ToggleLanguage(r.Context(), profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update language")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
