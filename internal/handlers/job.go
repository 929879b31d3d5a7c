package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/probashi-portal/apiserver/internal/services"
	"github.com/probashi-portal/apiserver/internal/store"
	"github.com/probashi-portal/apiserver/types"
)

// JobHandler provides HTTP handlers for job postings.
type JobHandler struct {
	jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// JobRouter registers job routes. Listings are public; posting is
// admin-only.
func JobRouter(r chi.Router, handler *JobHandler, guard *Guard) {
	r.Get("/", handler.ListJobs)
	r.With(guard.RequireAuth, guard.RequireProfile, guard.RequireRoles(types.RoleAdmin)).Post("/", handler.CreateJob)
	r.Get("/{jobID}", handler.GetJob)
}

type JobCreateRequest struct {
	Title          string `json:"title"`
	Country        string `json:"country"`
	Description    string `json:"description"`
	Qualifications string `json:"qualifications"`
	SalaryMin      int64  `json:"salary_min"`
	SalaryMax      int64  `json:"salary_max"`
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := types.JobFilter{
		Title:         strings.TrimSpace(query.Get("title")),
		Country:       strings.TrimSpace(query.Get("country")),
		Qualification: strings.TrimSpace(query.Get("qualification")),
	}

	jobs, err := h.jobs.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	var req JobCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Country = strings.TrimSpace(req.Country)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Country == "" || req.Description == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	created, err := h.jobs.Create(r.Context(), types.Job{
		Title:          req.Title,
		Country:        req.Country,
		Description:    req.Description,
		Qualifications: strings.TrimSpace(req.Qualifications),
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		CreatedBy:      profile.ID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
