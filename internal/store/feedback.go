package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/probashi-portal/apiserver/types"
)

// FeedbackRepository handles persistence for feedback notes.
type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, fb types.Feedback) (types.Feedback, error) {
	fb.CreatedAt = time.Now()

	const query = `
		INSERT INTO feedback (profile_id, message, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		fb.ProfileID,
		fb.Message,
		fb.CreatedAt,
	).Scan(&fb.ID); err != nil {
		return types.Feedback{}, err
	}
	return fb, nil
}

// ListAll returns every feedback note with the author's name joined in,
// newest first.
func (r *FeedbackRepository) ListAll(ctx context.Context) ([]types.Feedback, error) {
	const query = `
		SELECT f.id, f.profile_id, f.message, f.created_at, p.name
		FROM feedback f
		JOIN profiles p ON p.id = f.profile_id
		ORDER BY f.created_at DESC, f.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]types.Feedback, 0)
	for rows.Next() {
		var fb types.Feedback
		if err := rows.Scan(&fb.ID, &fb.ProfileID, &fb.Message, &fb.CreatedAt, &fb.AuthorName); err != nil {
			return nil, err
		}
		notes = append(notes, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}
