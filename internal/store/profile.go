package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/probashi-portal/apiserver/types"
)

// ProfileRepository handles persistence for profiles.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, user_id, name, role, phone, address, language, created_at, updated_at`

func scanProfile(row *sql.Row) (types.Profile, error) {
	var profile types.Profile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Role,
		&profile.Phone,
		&profile.Address,
		&profile.Language,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Profile{}, ErrNotFound
		}
		return types.Profile{}, err
	}
	return profile, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int) (types.Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

// GetByUserID resolves the profile of an authentication principal. The
// session guard calls this on every protected request.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int) (types.Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *ProfileRepository) Create(ctx context.Context, profile types.Profile) (types.Profile, error) {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if profile.Language == "" {
		profile.Language = types.LangEnglish
	}

	const query = `
		INSERT INTO profiles (user_id, name, role, phone, address, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		profile.UserID,
		profile.Name,
		profile.Role,
		profile.Phone,
		profile.Address,
		profile.Language,
		profile.CreatedAt,
		profile.UpdatedAt,
	).Scan(&profile.ID); err != nil {
		return types.Profile{}, mapInsertError(err)
	}
	return profile, nil
}

// Update persists the mutable contact fields and the language
// preference. Role is deliberately not part of the statement; no
// in-app path changes it.
func (r *ProfileRepository) Update(ctx context.Context, profile types.Profile) (types.Profile, error) {
	profile.UpdatedAt = time.Now()

	const query = `
		UPDATE profiles
		SET name = $1,
			phone = $2,
			address = $3,
			language = $4,
			updated_at = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		profile.Name,
		profile.Phone,
		profile.Address,
		profile.Language,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return types.Profile{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Profile{}, err
	}
	if affected == 0 {
		return types.Profile{}, ErrNotFound
	}
	return profile, nil
}
