package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/probashi-portal/apiserver/internal/payments"
	"github.com/probashi-portal/apiserver/internal/services"
	"github.com/probashi-portal/apiserver/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubPaymentRepo struct {
	rows      []types.Payment
	createErr error
}

func (s *stubPaymentRepo) Create(_ context.Context, payment types.Payment) (types.Payment, error) {
	if s.createErr != nil {
		return types.Payment{}, s.createErr
	}
	payment.ID = len(s.rows) + 1
	s.rows = append(s.rows, payment)
	return payment, nil
}

func (s *stubPaymentRepo) ListByProfile(_ context.Context, profileID int) ([]types.Payment, error) {
	var out []types.Payment
	for _, row := range s.rows {
		if row.ProfileID == profileID {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubGateway struct {
	secret string
	err    error
}

func (s *stubGateway) CreateIntent(_ context.Context, _ payments.ChargeRequest) (string, error) {
	return s.secret, s.err
}

func newTestPaymentHandler(repo *stubPaymentRepo, gateway payments.Gateway) *PaymentHandler {
	svc := services.NewPaymentService(repo, gateway, nil, zerolog.Nop(), 50000, "BDT")
	return NewPaymentHandler(svc)
}

func postPayment(t *testing.T, handler *PaymentHandler, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), contextProfileKey, types.Profile{
		ID: 9, UserID: 42, Name: "Rahim Uddin", Role: types.RoleUser, Language: types.LangEnglish,
	})

	rec := httptest.NewRecorder()
	handler.Initiate(rec, req.WithContext(ctx))
	return rec
}

func TestInitiatePaymentReturnsClientSecret(t *testing.T) {
	repo := &stubPaymentRepo{}
	handler := newTestPaymentHandler(repo, &stubGateway{secret: "pi_123_secret_abc"})

	rec := postPayment(t, handler, map[string]any{
		"courseId": 4, "profileId": 9, "paymentMethod": types.PaymentMethodStripeCard,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var parsed PaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&parsed))
	require.Equal(t, "pi_123_secret_abc", parsed.ClientSecret)
	require.Len(t, repo.rows, 1)
}

func TestInitiatePaymentSurfacesProcessorMessage(t *testing.T) {
	repo := &stubPaymentRepo{}
	handler := newTestPaymentHandler(repo, &stubGateway{err: errors.New("Your card was declined.")})

	rec := postPayment(t, handler, map[string]any{
		"courseId": 4, "profileId": 9, "paymentMethod": types.PaymentMethodStripeCard,
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var parsed ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&parsed))
	require.Equal(t, "Your card was declined.", parsed.Error)
	require.Empty(t, repo.rows)
}

func TestInitiatePaymentStorageFailureStaysGeneric(t *testing.T) {
	repo := &stubPaymentRepo{createErr: errors.New("pq: relation payments does not exist")}
	handler := newTestPaymentHandler(repo, &stubGateway{secret: "pi_123_secret_abc"})

	rec := postPayment(t, handler, map[string]any{
		"courseId": 4, "profileId": 9, "paymentMethod": types.PaymentMethodStripeCard,
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var parsed ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&parsed))
	require.Equal(t, "failed to initiate payment", parsed.Error)
}
