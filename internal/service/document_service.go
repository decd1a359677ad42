package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/findesk/backoffice/internal/api/request"
	"github.com/findesk/backoffice/internal/apperrors"
	"github.com/findesk/backoffice/internal/events"
	"github.com/findesk/backoffice/internal/model"
	"github.com/findesk/backoffice/internal/repository"
)

// DefaultShareTTL bounds share tokens when the caller does not ask for a
// specific lifetime.
const DefaultShareTTL = 24 * time.Hour

// DocumentService handles locker documents: registration, processing
// status transitions (broadcast over the event channel), expiry and
// fernet share tokens.
type DocumentService struct {
	documentRepo *repository.DocumentRepository
	publisher    events.Publisher
	shareKey     *fernet.Key
	log          zerolog.Logger
}

// NewDocumentService creates a new DocumentService with the provided dependencies.
func NewDocumentService(
	documentRepo *repository.DocumentRepository,
	publisher events.Publisher,
	shareKey *fernet.Key,
	log zerolog.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		publisher:    publisher,
		shareKey:     shareKey,
		log:          log,
	}
}

// ListDocuments retrieves all locker documents for a company.
func (s *DocumentService) ListDocuments(ctx context.Context, companyID string) ([]model.Document, error) {
	return s.documentRepo.ListDocuments(ctx, companyID)
}

// GetDocument retrieves a single document by ID.
func (s *DocumentService) GetDocument(documentID string) (model.Document, error) {
	doc, err := s.documentRepo.GetDocument(documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Document{}, apperrors.ErrDocumentNotFound
		}
		return model.Document{}, err
	}
	return doc, nil
}

// CreateDocument registers a new locker document in processing status and
// announces it on the event channel.
func (s *DocumentService) CreateDocument(ctx context.Context, req request.CreateDocumentRequest) (*model.Document, error) {
	documentDate, err := time.Parse("2006-01-02", req.DocumentDate)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:           uuid.New().String(),
		CompanyID:    req.CompanyID,
		FileName:     req.FileName,
		Vendor:       req.Vendor,
		Total:        req.Total,
		DocumentDate: documentDate,
		Status:       model.DocumentStatusProcessing,
	}
	if req.ExpiryDate != nil {
		expiry, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		doc.ExpiryDate = &expiry
	}

	if err := s.documentRepo.InsertDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.publisher.Publish(events.DocumentEvent(events.EventDocumentProcessing, doc.ID))

	return doc, nil
}

// UpdateStatus transitions a document's processing status and broadcasts
// the matching event.
func (s *DocumentService) UpdateStatus(ctx context.Context, documentID, status string) (model.Document, error) {
	affected, err := s.documentRepo.UpdateStatus(ctx, documentID, status)
	if err != nil {
		return model.Document{}, err
	}
	if affected == 0 {
		return model.Document{}, apperrors.ErrDocumentNotFound
	}

	switch status {
	case model.DocumentStatusProcessed:
		s.publisher.Publish(events.DocumentEvent(events.EventDocumentProcessed, documentID))
	case model.DocumentStatusFailed:
		s.publisher.Publish(events.DocumentEvent(events.EventDocumentProcessingFailed, documentID))
	case model.DocumentStatusProcessing:
		s.publisher.Publish(events.DocumentEvent(events.EventDocumentProcessing, documentID))
	}

	return s.GetDocument(documentID)
}

// ExpireOverdue flips every document whose expiry date has passed to
// expired status, broadcasting an event per document. Returns the number
// of documents expired. Invoked by the nightly scan; safe to repeat.
func (s *DocumentService) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.documentRepo.ListExpiredCandidates(ctx, now)
	if err != nil {
		return 0, err
	}

	var expired int
	for _, doc := range candidates {
		affected, err := s.documentRepo.UpdateStatus(ctx, doc.ID, model.DocumentStatusExpired)
		if err != nil {
			s.log.Error().Err(err).Str("documentId", doc.ID).Msg("failed to expire document")
			continue
		}
		if affected > 0 {
			expired++
			s.publisher.Publish(events.DocumentEvent(events.EventDocumentExpired, doc.ID))
		}
	}

	return expired, nil
}

// GenerateShareToken mints a fernet token granting time-bounded access to
// a document. The payload embeds the document id and the requested expiry;
// the fernet TTL acts as a hard cap regardless of the requested lifetime.
func (s *DocumentService) GenerateShareToken(documentID string, ttl time.Duration) (string, time.Time, error) {
	if _, err := s.GetDocument(documentID); err != nil {
		return "", time.Time{}, err
	}
	if ttl <= 0 || ttl > DefaultShareTTL {
		ttl = DefaultShareTTL
	}

	expiresAt := time.Now().UTC().Add(ttl)
	payload := fmt.Sprintf("%s|%d", documentID, expiresAt.Unix())

	token, err := fernet.EncryptAndSign([]byte(payload), s.shareKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to mint share token: %w", err)
	}

	return string(token), expiresAt, nil
}

// RedeemShareToken verifies a share token and returns the referenced
// document. Forged, malformed or expired tokens are rejected with
// ErrShareTokenInvalid.
func (s *DocumentService) RedeemShareToken(token string) (model.Document, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), DefaultShareTTL, []*fernet.Key{s.shareKey})
	if payload == nil {
		return model.Document{}, apperrors.ErrShareTokenInvalid
	}

	documentID, expiresAt, ok := strings.Cut(string(payload), "|")
	if !ok {
		return model.Document{}, apperrors.ErrShareTokenInvalid
	}
	unix, err := strconv.ParseInt(expiresAt, 10, 64)
	if err != nil || time.Now().UTC().After(time.Unix(unix, 0)) {
		return model.Document{}, apperrors.ErrShareTokenInvalid
	}

	return s.GetDocument(documentID)
}
