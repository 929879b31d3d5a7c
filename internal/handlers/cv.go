package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/probashi-portal/apiserver/internal/services"
	"github.com/probashi-portal/apiserver/internal/store"
	"github.com/probashi-portal/apiserver/types"
)

// CVHandler provides HTTP handlers for the CV builder.
type CVHandler struct {
	cvs *services.CVService
}

func NewCVHandler(cvs *services.CVService) *CVHandler {
	return &CVHandler{cvs: cvs}
}

// CVRouter registers CV builder routes. All routes assume the guard
// chain (auth + profile) already ran.
func CVRouter(r chi.Router, handler *CVHandler) {
	r.Post("/", handler.Render)
	r.Get("/documents", handler.ListDocuments)
	r.Get("/documents/{documentID}", handler.Download)
	r.Delete("/documents/{documentID}", handler.Delete)
}

// Render builds the PDF from the submitted CV data and streams it back.
func (h *CVHandler) Render(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	var data types.CVData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data.Name = strings.TrimSpace(data.Name)
	if data.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	pdf, err := h.cvs.Render(r.Context(), profile.ID, data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render cv")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", data.Name+"-cv.pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *CVHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	docs, err := h.cvs.ListMine(r.Context(), profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Download streams an archived CV back to its owner.
func (h *CVHandler) Download(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "documentID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, reader, err := h.cvs.Open(r.Context(), id, profile.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch document")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}

func (h *CVHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "documentID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	if err := h.cvs.Remove(r.Context(), id, profile.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
