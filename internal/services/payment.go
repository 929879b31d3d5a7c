package services

import (
	"context"
	"errors"
	"time"

	"github.com/probashi-portal/apiserver/internal/events"
	"github.com/probashi-portal/apiserver/internal/payments"
	"github.com/probashi-portal/apiserver/types"
	"github.com/rs/zerolog"
)

// ErrGatewayUnavailable is returned when a card payment is requested
// but no processor is configured.
var ErrGatewayUnavailable = errors.New("payment gateway not configured")

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment types.Payment) (types.Payment, error)
	ListByProfile(ctx context.Context, profileID int) ([]types.Payment, error)
}

// PaymentService initiates course payments. The amount is fixed by
// configuration; the hosted processor owns everything after the
// client secret is handed back.
type PaymentService struct {
	repo      PaymentRepository
	gateway   payments.Gateway
	publisher *events.Publisher
	logger    zerolog.Logger
	amount    int64
	currency  string
}

func NewPaymentService(
	repo PaymentRepository,
	gateway payments.Gateway,
	publisher *events.Publisher,
	logger zerolog.Logger,
	amount int64,
	currency string,
) *PaymentService {
	return &PaymentService{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		amount:    amount,
		currency:  currency,
	}
}

// Initiate requests a charge-authorization handle for card payments,
// records the payment as pending tagged with that handle, and returns
// the handle for client-side confirmation. Non-card methods skip the
// processor and record the pending row only.
//
// No code path here or elsewhere transitions the row out of pending;
// the payment-pending event is the hook for an external reconciler.
func (s *PaymentService) Initiate(ctx context.Context, courseID, profileID int, paymentMethod string) (string, error) {
	var clientSecret string

	if paymentMethod == types.PaymentMethodStripeCard {
		if s.gateway == nil {
			return "", ErrGatewayUnavailable
		}
		secret, err := s.gateway.CreateIntent(ctx, payments.ChargeRequest{
			Amount:    s.amount,
			Currency:  s.currency,
			CourseID:  courseID,
			ProfileID: profileID,
		})
		if err != nil {
			return "", &payments.ProcessorError{Err: err}
		}
		clientSecret = secret
	}

	payment, err := s.repo.Create(ctx, types.Payment{
		ProfileID:     profileID,
		CourseID:      courseID,
		Amount:        s.amount,
		Currency:      s.currency,
		PaymentMethod: paymentMethod,
		Status:        types.PaymentPending,
		TransactionID: clientSecret,
	})
	if err != nil {
		return "", err
	}

	if _, err := s.publisher.Publish(ctx, events.ChannelPaymentPending, events.PaymentPendingEvent{
		PaymentID:     payment.ID,
		ProfileID:     payment.ProfileID,
		CourseID:      payment.CourseID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		PaymentMethod: payment.PaymentMethod,
		OccurredAt:    time.Now(),
	}); err != nil {
		s.logger.Error().Err(err).Int("payment_id", payment.ID).Msg("publish payment pending event")
	}

	return clientSecret, nil
}

func (s *PaymentService) ListMine(ctx context.Context, profileID int) ([]types.Payment, error) {
	return s.repo.ListByProfile(ctx, profileID)
}
