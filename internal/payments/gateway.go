// Package payments talks to the hosted payment processor. The portal
// only initiates charges; the processor owns the rest of the charge
// lifecycle.
package payments

import "context"

// ChargeRequest asks the processor for a charge-authorization handle.
// Amount is in the currency's smallest unit.
type ChargeRequest struct {
	Amount    int64
	Currency  string
	CourseID  int
	ProfileID int
}

// Gateway creates charge-authorization handles. CreateIntent returns
// the client secret the browser uses to confirm the charge.
type Gateway interface {
	CreateIntent(ctx context.Context, req ChargeRequest) (clientSecret string, err error)
}

// ProcessorError marks a failure reported while talking to the
// processor. Its message is the processor's own text and is surfaced
// to the caller as-is, unlike internal failures.
type ProcessorError struct {
	Err error
}

func (e *ProcessorError) Error() string { return e.Err.Error() }

func (e *ProcessorError) Unwrap() error { return e.Err }
