package payments

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeGateway creates PaymentIntents against Stripe's hosted API.
// Calls run through a circuit breaker so a degraded processor fails
// fast instead of tying up request handlers.
type StripeGateway struct {
	breaker *gobreaker.CircuitBreaker[string]
}

// NewStripeGateway configures the Stripe SDK with the given secret key.
func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("stripe secret key is required")
	}
	stripe.Key = secretKey

	var st gobreaker.Settings
	st.Name = "stripe"
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}

	return &StripeGateway{
		breaker: gobreaker.NewCircuitBreaker[string](st),
	}, nil
}

// CreateIntent creates a PaymentIntent tagged with the course and
// profile ids and returns its client secret.
func (g *StripeGateway) CreateIntent(ctx context.Context, req ChargeRequest) (string, error) {
	return g.breaker.Execute(func() (string, error) {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(req.Amount),
			Currency: stripe.String(strings.ToLower(req.Currency)),
		}
		params.Context = ctx
		params.AddMetadata("courseId", strconv.Itoa(req.CourseID))
		params.AddMetadata("profileId", strconv.Itoa(req.ProfileID))

		intent, err := paymentintent.New(params)
		if err != nil {
			return "", err
		}
		return intent.ClientSecret, nil
	})
}
