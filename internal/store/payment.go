package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/probashi-portal/apiserver/types"
)

// PaymentRepository handles persistence for payments. Rows are written
// as pending before the processor confirms the charge; nothing here
// moves them to a terminal state.
type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment types.Payment) (types.Payment, error) {
	if payment.Status == "" {
		payment.Status = types.PaymentPending
	}
	payment.CreatedAt = time.Now()

	const query = `
		INSERT INTO payments (profile_id, course_id, amount, currency, payment_method, status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		payment.ProfileID,
		payment.CourseID,
		payment.Amount,
		payment.Currency,
		payment.PaymentMethod,
		payment.Status,
		payment.TransactionID,
		payment.CreatedAt,
	).Scan(&payment.ID); err != nil {
		return types.Payment{}, err
	}
	return payment, nil
}

// ListByProfile returns the caller's payments, newest first.
func (r *PaymentRepository) ListByProfile(ctx context.Context, profileID int) ([]types.Payment, error) {
	const query = `
		SELECT id, profile_id, course_id, amount, currency, payment_method, status, transaction_id, created_at
		FROM payments
		WHERE profile_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]types.Payment, 0)
	for rows.Next() {
		var payment types.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.ProfileID,
			&payment.CourseID,
			&payment.Amount,
			&payment.Currency,
			&payment.PaymentMethod,
			&payment.Status,
			&payment.TransactionID,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
