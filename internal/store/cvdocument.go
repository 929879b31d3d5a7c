package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/probashi-portal/apiserver/types"
)

// CVDocumentRepository tracks rendered CVs kept in object storage.
type CVDocumentRepository struct {
	db *sql.DB
}

func NewCVDocumentRepository(db *sql.DB) *CVDocumentRepository {
	return &CVDocumentRepository{db: db}
}

func (r *CVDocumentRepository) Create(ctx context.Context, doc types.CVDocument) (types.CVDocument, error) {
	doc.CreatedAt = time.Now()

	const query = `
		INSERT INTO cv_documents (profile_id, object_key, filename, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		doc.ProfileID,
		doc.ObjectKey,
		doc.Filename,
		doc.CreatedAt,
	).Scan(&doc.ID); err != nil {
		return types.CVDocument{}, err
	}
	return doc, nil
}

// Get returns the document only when it belongs to the given profile.
func (r *CVDocumentRepository) Get(ctx context.Context, id, profileID int) (types.CVDocument, error) {
	const query = `
		SELECT id, profile_id, object_key, filename, created_at
		FROM cv_documents
		WHERE id = $1 AND profile_id = $2`
	var doc types.CVDocument
	err := r.db.QueryRowContext(ctx, query, id, profileID).Scan(
		&doc.ID,
		&doc.ProfileID,
		&doc.ObjectKey,
		&doc.Filename,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.CVDocument{}, ErrNotFound
		}
		return types.CVDocument{}, err
	}
	return doc, nil
}

func (r *CVDocumentRepository) ListByProfile(ctx context.Context, profileID int) ([]types.CVDocument, error) {
	const query = `
		SELECT id, profile_id, object_key, filename, created_at
		FROM cv_documents
		WHERE profile_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]types.CVDocument, 0)
	for rows.Next() {
		var doc types.CVDocument
		if err := rows.Scan(&doc.ID, &doc.ProfileID, &doc.ObjectKey, &doc.Filename, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *CVDocumentRepository) Delete(ctx context.Context, id, profileID int) error {
	const query = `DELETE FROM cv_documents WHERE id = $1 AND profile_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, profileID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
