// Package events publishes portal domain events to a message broker.
// Consumers (mailers, reconciliation workers) live outside this
// repository.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Channel names published by the portal.
const (
	ChannelApplicationStatus = "application-status"
	ChannelPaymentPending    = "payment-pending"
)

// ApplicationStatusEvent is emitted when an admin transitions an
// application's status.
type ApplicationStatusEvent struct {
	ApplicationID int       `json:"application_id"`
	JobID         int       `json:"job_id"`
	ProfileID     int       `json:"profile_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// PaymentPendingEvent is emitted when a payment row is written as
// pending, before the processor confirms the charge.
type PaymentPendingEvent struct {
	PaymentID     int       `json:"payment_id"`
	ProfileID     int       `json:"profile_id"`
	CourseID      int       `json:"course_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Backend defines the broker-agnostic publish operation.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Publisher wraps a backend with JSON encoding. A nil Publisher is
// valid and drops every event, so callers never branch on wiring.
type Publisher struct {
	backend Backend
}

// NewPublisher constructs a Publisher for the provided backend.
func NewPublisher(backend Backend) *Publisher {
	return &Publisher{backend: backend}
}

// Publish JSON-encodes the payload and sends it to the named channel.
func (p *Publisher) Publish(ctx context.Context, channel string, payload any) (string, error) {
	if p == nil || p.backend == nil {
		return "", nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return p.backend.Publish(ctx, channel, data, map[string]string{
		"content-type": "application/json",
	})
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	if p == nil || p.backend == nil {
		return nil
	}
	return p.backend.Close()
}
