package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/probashi-portal/apiserver/internal/cvpdf"
	"github.com/probashi-portal/apiserver/internal/storage"
	"github.com/probashi-portal/apiserver/types"
	"github.com/rs/zerolog"
)

// CVDocumentRepository defines persistence operations for rendered CVs.
type CVDocumentRepository interface {
	Create(ctx context.Context, doc types.CVDocument) (types.CVDocument, error)
	Get(ctx context.Context, id, profileID int) (types.CVDocument, error)
	ListByProfile(ctx context.Context, profileID int) ([]types.CVDocument, error)
	Delete(ctx context.Context, id, profileID int) error
}

// CVService renders CVs and, when object storage is configured, keeps
// a copy per profile.
type CVService struct {
	repo    CVDocumentRepository
	storage *storage.Storage
	logger  zerolog.Logger
}

// NewCVService constructs a CVService. storage may be nil, in which
// case rendered documents are streamed to the caller only.
func NewCVService(repo CVDocumentRepository, store *storage.Storage, logger zerolog.Logger) *CVService {
	return &CVService{
		repo:    repo,
		storage: store,
		logger:  logger,
	}
}

// Render produces the fixed-layout PDF and archives a copy when
// storage is configured. A failed archive does not fail the render;
// the caller still gets the document.
func (s *CVService) Render(ctx context.Context, profileID int, data types.CVData) ([]byte, error) {
	pdf, err := cvpdf.Render(data)
	if err != nil {
		return nil, err
	}

	if s.storage != nil {
		key := fmt.Sprintf("cv/%d/%s.pdf", profileID, uuid.NewString())
		if err := s.storage.Put(ctx, key, bytes.NewReader(pdf), int64(len(pdf)), "application/pdf"); err != nil {
			s.logger.Error().Err(err).Str("object_key", key).Msg("archive rendered cv")
			return pdf, nil
		}
		if _, err := s.repo.Create(ctx, types.CVDocument{
			ProfileID: profileID,
			ObjectKey: key,
			Filename:  cvFilename(data.Name),
		}); err != nil {
			s.logger.Error().Err(err).Str("object_key", key).Msg("record rendered cv")
		}
	}

	return pdf, nil
}

// ListMine returns the caller's archived CVs.
func (s *CVService) ListMine(ctx context.Context, profileID int) ([]types.CVDocument, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

// Open streams an archived CV back to its owner.
func (s *CVService) Open(ctx context.Context, id, profileID int) (types.CVDocument, io.ReadCloser, error) {
	doc, err := s.repo.Get(ctx, id, profileID)
	if err != nil {
		return types.CVDocument{}, nil, err
	}
	if s.storage == nil {
		return types.CVDocument{}, nil, fmt.Errorf("cv archive not configured")
	}
	reader, err := s.storage.Get(ctx, doc.ObjectKey)
	if err != nil {
		return types.CVDocument{}, nil, err
	}
	return doc, reader, nil
}

// Remove deletes an archived CV, object first, then the record.
func (s *CVService) Remove(ctx context.Context, id, profileID int) error {
	doc, err := s.repo.Get(ctx, id, profileID)
	if err != nil {
		return err
	}
	if s.storage != nil {
		if err := s.storage.Delete(ctx, doc.ObjectKey); err != nil {
			s.logger.Error().Err(err).Str("object_key", doc.ObjectKey).Msg("delete archived cv object")
		}
	}
	return s.repo.Delete(ctx, id, profileID)
}

func cvFilename(name string) string {
	if name == "" {
		return "cv.pdf"
	}
	return fmt.Sprintf("%s-cv.pdf", name)
}
