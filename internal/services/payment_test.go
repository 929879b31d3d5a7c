package services

import (
	"context"
	"errors"
	"testing"

	"github.com/probashi-portal/apiserver/internal/payments"
	"github.com/probashi-portal/apiserver/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakePaymentRepo struct {
	rows   []types.Payment
	nextID int
}

func (f *fakePaymentRepo) Create(_ context.Context, payment types.Payment) (types.Payment, error) {
	f.nextID++
	payment.ID = f.nextID
	f.rows = append(f.rows, payment)
	return payment, nil
}

func (f *fakePaymentRepo) ListByProfile(_ context.Context, profileID int) ([]types.Payment, error) {
	var out []types.Payment
	for _, row := range f.rows {
		if row.ProfileID == profileID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeGateway struct {
	secret string
	err    error
	calls  int
}

func (f *fakeGateway) CreateIntent(_ context.Context, _ payments.ChargeRequest) (string, error) {
	f.calls++
	return f.secret, f.err
}

func TestInitiateCardPayment(t *testing.T) {
	repo := &fakePaymentRepo{}
	gateway := &fakeGateway{secret: "pi_123_secret_abc"}
	svc := NewPaymentService(repo, gateway, nil, zerolog.Nop(), 50000, "BDT")

	secret, err := svc.Initiate(context.Background(), 4, 9, types.PaymentMethodStripeCard)
	require.NoError(t, err)
	require.Equal(t, "pi_123_secret_abc", secret)
	require.Equal(t, 1, gateway.calls)

	require.Len(t, repo.rows, 1)
	row := repo.rows[0]
	require.Equal(t, types.PaymentPending, row.Status)
	require.Equal(t, int64(50000), row.Amount)
	require.Equal(t, "pi_123_secret_abc", row.TransactionID)
}

func TestInitiateNonCardSkipsGateway(t *testing.T) {
	repo := &fakePaymentRepo{}
	gateway := &fakeGateway{secret: "unused"}
	svc := NewPaymentService(repo, gateway, nil, zerolog.Nop(), 50000, "BDT")

	secret, err := svc.Initiate(context.Background(), 4, 9, types.PaymentMethodBkash)
	require.NoError(t, err)
	require.Empty(t, secret)
	require.Zero(t, gateway.calls)
	require.Len(t, repo.rows, 1)
}

func TestInitiateGatewayFailureWritesNothing(t *testing.T) {
	repo := &fakePaymentRepo{}
	gateway := &fakeGateway{err: errors.New("processor down")}
	svc := NewPaymentService(repo, gateway, nil, zerolog.Nop(), 50000, "BDT")

	_, err := svc.Initiate(context.Background(), 4, 9, types.PaymentMethodStripeCard)
	require.Error(t, err)
	require.Empty(t, repo.rows)

	// The processor's message survives wrapping so handlers can relay it.
	var procErr *payments.ProcessorError
	require.ErrorAs(t, err, &procErr)
	require.EqualError(t, err, "processor down")
}

func TestInitiateCardWithoutGateway(t *testing.T) {
	repo := &fakePaymentRepo{}
	svc := NewPaymentService(repo, nil, nil, zerolog.Nop(), 50000, "BDT")

	_, err := svc.Initiate(context.Background(), 4, 9, types.PaymentMethodStripeCard)
	require.ErrorIs(t, err, ErrGatewayUnavailable)
}
