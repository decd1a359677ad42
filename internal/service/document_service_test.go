package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/findesk/backoffice/internal/api/request"
	"github.com/findesk/backoffice/internal/apperrors"
	"github.com/findesk/backoffice/internal/events"
	"github.com/findesk/backoffice/internal/model"
	"github.com/findesk/backoffice/internal/testutil"
)

// TestDocumentService_CreateDocument tests locker document registration.
func TestDocumentService_CreateDocument(t *testing.T) {
	t.Run("creates document in processing status and broadcasts event", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		publisher := &testutil.RecordingPublisher{}
		svc := testutil.NewTestDocumentServiceWithPublisher(t, db, publisher)

		doc, err := svc.CreateDocument(context.Background(), request.CreateDocumentRequest{
			CompanyID:    testutil.MakeID(),
			FileName:     "receipt.pdf",
			Vendor:       "ACME Store",
			Total:        49.99,
			DocumentDate: "2026-08-15",
		})
		if err != nil {
			t.Fatalf("CreateDocument() returned unexpected error: %v", err)
		}

		if doc.Status != model.DocumentStatusProcessing {
			t.Errorf("Expected processing status, got %s", doc.Status)
		}
		testutil.AssertRowCount(t, db, "document", 1)

		published := publisher.Events()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		if published[0].Event != events.EventDocumentProcessing {
			t.Errorf("Expected %s event, got %s", events.EventDocumentProcessing, published[0].Event)
		}
		if published[0].Payload.Type != events.PayloadTypeLockerDocument {
			t.Errorf("Expected %s payload type, got %s", events.PayloadTypeLockerDocument, published[0].Payload.Type)
		}
		if published[0].Payload.ID != doc.ID {
			t.Errorf("Expected payload id %s, got %s", doc.ID, published[0].Payload.ID)
		}
	})

	t.Run("rejects malformed document date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		_, err := svc.CreateDocument(context.Background(), request.CreateDocumentRequest{
			CompanyID:    testutil.MakeID(),
			FileName:     "receipt.pdf",
			DocumentDate: "15-08-2026",
		})
		if err == nil {
			t.Error("Expected error for malformed document date")
		}
		testutil.AssertRowCount(t, db, "document", 0)
	})
}

// TestDocumentService_UpdateStatus tests status transitions and their
// broadcast events.
func TestDocumentService_UpdateStatus(t *testing.T) {
	t.Run("broadcasts processed event", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		publisher := &testutil.RecordingPublisher{}
		svc := testutil.NewTestDocumentServiceWithPublisher(t, db, publisher)

		companyID := testutil.MakeID()
		doc := testutil.NewDocument(companyID).Build(t, db)

		updated, err := svc.UpdateStatus(context.Background(), doc.ID, model.DocumentStatusProcessed)
		if err != nil {
			t.Fatalf("UpdateStatus() returned unexpected error: %v", err)
		}

		if updated.Status != model.DocumentStatusProcessed {
			t.Errorf("Expected processed status, got %s", updated.Status)
		}

		published := publisher.Events()
		if len(published) != 1 || published[0].Event != events.EventDocumentProcessed {
			t.Errorf("Expected single %s event, got %+v", events.EventDocumentProcessed, published)
		}
	})

	t.Run("broadcasts failure event", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		publisher := &testutil.RecordingPublisher{}
		svc := testutil.NewTestDocumentServiceWithPublisher(t, db, publisher)

		companyID := testutil.MakeID()
		doc := testutil.NewDocument(companyID).Build(t, db)

		_, err := svc.UpdateStatus(context.Background(), doc.ID, model.DocumentStatusFailed)
		if err != nil {
			t.Fatalf("UpdateStatus() returned unexpected error: %v", err)
		}

		published := publisher.Events()
		if len(published) != 1 || published[0].Event != events.EventDocumentProcessingFailed {
			t.Errorf("Expected single %s event, got %+v", events.EventDocumentProcessingFailed, published)
		}
	})

	t.Run("returns not found for unknown document", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		_, err := svc.UpdateStatus(context.Background(), testutil.MakeID(), model.DocumentStatusProcessed)
		if !errors.Is(err, apperrors.ErrDocumentNotFound) {
			t.Errorf("Expected ErrDocumentNotFound, got %v", err)
		}
	})
}

// TestDocumentService_ExpireOverdue tests the nightly expiry scan.
//
// WHY: The scan is the only writer of expired status. It must only touch
// documents whose expiry date has passed and must stay idempotent so a
// rerun after a partial failure cannot double-expire anything.
func TestDocumentService_ExpireOverdue(t *testing.T) {
	t.Run("expires overdue documents and broadcasts events", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		publisher := &testutil.RecordingPublisher{}
		svc := testutil.NewTestDocumentServiceWithPublisher(t, db, publisher)

		companyID := testutil.MakeID()
		now := time.Now().UTC()

		overdue := testutil.NewDocument(companyID).
			Processed().
			WithExpiryDate(now.AddDate(0, 0, -2)).
			Build(t, db)
		testutil.NewDocument(companyID).
			Processed().
			WithExpiryDate(now.AddDate(0, 0, 30)).
			Build(t, db)
		testutil.NewDocument(companyID).Processed().Build(t, db) // no expiry date

		expired, err := svc.ExpireOverdue(context.Background(), now)
		if err != nil {
			t.Fatalf("ExpireOverdue() returned unexpected error: %v", err)
		}

		if expired != 1 {
			t.Errorf("Expected 1 expired document, got %d", expired)
		}

		doc, err := svc.GetDocument(overdue.ID)
		if err != nil {
			t.Fatalf("GetDocument() returned unexpected error: %v", err)
		}
		if doc.Status != model.DocumentStatusExpired {
			t.Errorf("Expected expired status, got %s", doc.Status)
		}

		published := publisher.Events()
		if len(published) != 1 || published[0].Event != events.EventDocumentExpired {
			t.Errorf("Expected single %s event, got %+v", events.EventDocumentExpired, published)
		}
	})

	t.Run("is idempotent across reruns", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		companyID := testutil.MakeID()
		now := time.Now().UTC()
		testutil.NewDocument(companyID).
			Processed().
			WithExpiryDate(now.AddDate(0, 0, -1)).
			Build(t, db)

		first, err := svc.ExpireOverdue(context.Background(), now)
		if err != nil {
			t.Fatalf("ExpireOverdue() returned unexpected error: %v", err)
		}
		if first != 1 {
			t.Errorf("Expected 1 expired document on first run, got %d", first)
		}

		second, err := svc.ExpireOverdue(context.Background(), now)
		if err != nil {
			t.Fatalf("ExpireOverdue() rerun returned unexpected error: %v", err)
		}
		if second != 0 {
			t.Errorf("Expected 0 expired documents on rerun, got %d", second)
		}
	})
}

// TestDocumentService_ShareTokens tests minting and redeeming fernet share
// tokens.
func TestDocumentService_ShareTokens(t *testing.T) {
	t.Run("round trips a valid token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		companyID := testutil.MakeID()
		doc := testutil.NewDocument(companyID).Processed().Build(t, db)

		token, expiresAt, err := svc.GenerateShareToken(doc.ID, time.Hour)
		if err != nil {
			t.Fatalf("GenerateShareToken() returned unexpected error: %v", err)
		}
		if token == "" {
			t.Fatal("Expected non-empty token")
		}
		if remaining := time.Until(expiresAt); remaining > time.Hour || remaining < 55*time.Minute {
			t.Errorf("Expected expiry about an hour out, got %v", remaining)
		}

		resolved, err := svc.RedeemShareToken(token)
		if err != nil {
			t.Fatalf("RedeemShareToken() returned unexpected error: %v", err)
		}
		if resolved.ID != doc.ID {
			t.Errorf("Expected document %s, got %s", doc.ID, resolved.ID)
		}
	})

	t.Run("caps requested lifetime at the default TTL", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		companyID := testutil.MakeID()
		doc := testutil.NewDocument(companyID).Build(t, db)

		_, expiresAt, err := svc.GenerateShareToken(doc.ID, 30*24*time.Hour)
		if err != nil {
			t.Fatalf("GenerateShareToken() returned unexpected error: %v", err)
		}

		if time.Until(expiresAt) > 24*time.Hour {
			t.Errorf("Expected expiry capped at 24h, got %v", time.Until(expiresAt))
		}
	})

	t.Run("rejects forged tokens", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		_, err := svc.RedeemShareToken("not-a-real-token")
		if !errors.Is(err, apperrors.ErrShareTokenInvalid) {
			t.Errorf("Expected ErrShareTokenInvalid, got %v", err)
		}
	})

	t.Run("rejects tokens minted with a different key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		minting := testutil.NewTestDocumentService(t, db)
		verifying := testutil.NewTestDocumentService(t, db)

		companyID := testutil.MakeID()
		doc := testutil.NewDocument(companyID).Build(t, db)

		token, _, err := minting.GenerateShareToken(doc.ID, time.Hour)
		if err != nil {
			t.Fatalf("GenerateShareToken() returned unexpected error: %v", err)
		}

		// Each test service generates its own key
		_, err = verifying.RedeemShareToken(token)
		if !errors.Is(err, apperrors.ErrShareTokenInvalid) {
			t.Errorf("Expected ErrShareTokenInvalid, got %v", err)
		}
	})

	t.Run("returns not found for missing document", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		_, _, err := svc.GenerateShareToken(testutil.MakeID(), time.Hour)
		if !errors.Is(err, apperrors.ErrDocumentNotFound) {
			t.Errorf("Expected ErrDocumentNotFound, got %v", err)
		}
	})
}
