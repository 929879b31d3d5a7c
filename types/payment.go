package types

import "time"

// PaymentPending is the only status this codebase writes. The hosted
// processor owns the charge lifecycle; no reconciliation path moves a
// row to a terminal state.
const PaymentPending = "pending"

// Payment method identifiers accepted by the initiation endpoint.
const (
	PaymentMethodStripeCard = "stripe_card"
	PaymentMethodBkash      = "bkash"
)

// Payment records an initiated course payment. The amount is in the
// currency's smallest unit (poysha for BDT).
type Payment struct {
	ID            int       `json:"id" db:"id"`
	ProfileID     int       `json:"profile_id" db:"profile_id"`
	CourseID      int       `json:"course_id" db:"course_id"`
	Amount        int64     `json:"amount" db:"amount"`
	Currency      string    `json:"currency" db:"currency"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	Status        string    `json:"status" db:"status"`
	TransactionID string    `json:"transaction_id,omitempty" db:"transaction_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
