package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/probashi-portal/apiserver/internal/payments"
	"github.com/probashi-portal/apiserver/internal/services"
)

// PaymentHandler provides HTTP handlers for course payments.
type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// PaymentRouter registers payment routes. All routes assume the guard
// chain (auth + profile) already ran.
func PaymentRouter(r chi.Router, handler *PaymentHandler) {
	r.Post("/", handler.Initiate)
	r.Get("/mine", handler.ListMine)
}

type PaymentRequest struct {
	CourseID      int    `json:"courseId"`
	ProfileID     int    `json:"profileId"`
	PaymentMethod string `json:"paymentMethod"`
}

type PaymentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// Initiate records a pending payment and, for card payments, hands the
// processor's client secret back for client-side confirmation. Any
// failure answers 500 with the error payload; the caller treats that
// as payment declined.
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CourseID < 1 {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	// The body carries a profileId for parity with the client payload,
	// but the charge is always attributed to the session's profile.
	clientSecret, err := h.payments.Initiate(r.Context(), req.CourseID, profile.ID, req.PaymentMethod)
	if err != nil {
		// Processor failures carry the processor's own message, e.g. a
		// card decline, and the client shows it as-is. Everything else
		// stays generic.
		var procErr *payments.ProcessorError
		if errors.As(err, &procErr) {
			writeError(w, http.StatusInternalServerError, procErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to initiate payment")
		return
	}

	writeJSON(w, http.StatusOK, PaymentResponse{ClientSecret: clientSecret})
}

func (h *PaymentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromContext(r.Context())
	if err != nil {
		writeGuardError(w, http.StatusUnauthorized, "unauthorized", LoginPath)
		return
	}

	payments, err := h.payments.ListMine(r.Context(), profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
