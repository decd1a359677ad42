package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/findesk/backoffice/internal/service"
	"github.com/findesk/backoffice/internal/testutil"
)

func TestMatchingHandler_LinkCreditCard(t *testing.T) {
	setupHandler := func(t *testing.T) (*MatchingHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ms := testutil.NewTestMatchingService(t, db)
		return NewMatchingHandler(ms), db
	}

	t.Run("links transaction with raw statement id", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
		tx := testutil.NewTransaction(companyID).WithDebit(495.00).Build(t, db)

		body := map[string]any{
			"transactionId":    tx.ID,
			"statementId":      statement.ID,
			"adjustmentAmount": 5.00,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/matching/link-credit-card", body)
		w := httptest.NewRecorder()

		handler.LinkCreditCard(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var view service.TransactionView
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&view)

		if len(view.LinkedStatements) != 1 {
			t.Fatalf("Expected 1 linked statement, got %d", len(view.LinkedStatements))
		}
		if view.LinkedStatements[0].AdjustmentAmount != 5.00 {
			t.Errorf("Expected adjustment 5.00, got %f", view.LinkedStatements[0].AdjustmentAmount)
		}
	})

	t.Run("accepts populated statement reference object", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
		tx := testutil.NewTransaction(companyID).Build(t, db)

		body := map[string]any{
			"transactionId": tx.ID,
			"statementId":   map[string]any{"_id": statement.ID, "total": 500.00},
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/matching/link-credit-card", body)
		w := httptest.NewRecorder()

		handler.LinkCreditCard(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "statement_link", 1)
	})

	t.Run("returns 409 when transaction has document matches", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
		doc := testutil.NewDocument(companyID).Processed().Build(t, db)
		tx := testutil.NewTransaction(companyID).Build(t, db)
		testutil.MatchDocument(t, db, tx.ID, doc.ID)

		body := map[string]any{
			"transactionId": tx.ID,
			"statementId":   statement.ID,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/matching/link-credit-card", body)
		w := httptest.NewRecorder()

		handler.LinkCreditCard(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for malformed statement reference", func(t *testing.T) {
		handler, _ := setupHandler(t)

		body := map[string]any{
			"transactionId": testutil.MakeID(),
			"statementId":   "not-a-uuid",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/matching/link-credit-card", body)
		w := httptest.NewRecorder()

		handler.LinkCreditCard(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)

		body := map[string]any{
			"transactionId": testutil.MakeID(),
			"statementId":   statement.ID,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/matching/link-credit-card", body)
		w := httptest.NewRecorder()

		handler.LinkCreditCard(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestMatchingHandler_UpdateCreditCardAdjustment(t *testing.T) {
	setupHandler := func(t *testing.T) (*MatchingHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ms := testutil.NewTestMatchingService(t, db)
		return NewMatchingHandler(ms), db
	}

	t.Run("updates adjustment from string input", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
		tx := testutil.NewTransaction(companyID).Build(t, db)
		testutil.LinkStatement(t, db, tx.ID, statement.ID, 0)

		// String amount, the way the dashboard input field submits it
		payload := `{"transactionId": "` + tx.ID + `", "statementId": "` + statement.ID + `", "adjustmentAmount": "-25"}`
		req := httptest.NewRequest(http.MethodPost, "/api/matching/credit-card-adjustment", strings.NewReader(payload))
		w := httptest.NewRecorder()

		handler.UpdateCreditCardAdjustment(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var view service.TransactionView
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&view)

		if view.LinkedStatements[0].AdjustmentAmount != -25.00 {
			t.Errorf("Expected adjustment -25.00, got %f", view.LinkedStatements[0].AdjustmentAmount)
		}
	})

	t.Run("coerces non-numeric amount to zero", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
		tx := testutil.NewTransaction(companyID).Build(t, db)
		testutil.LinkStatement(t, db, tx.ID, statement.ID, 7.50)

		payload := `{"transactionId": "` + tx.ID + `", "statementId": "` + statement.ID + `", "adjustmentAmount": "abc"}`
		req := httptest.NewRequest(http.MethodPost, "/api/matching/credit-card-adjustment", strings.NewReader(payload))
		w := httptest.NewRecorder()

		handler.UpdateCreditCardAdjustment(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var view service.TransactionView
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&view)

		if view.LinkedStatements[0].AdjustmentAmount != 0 {
			t.Errorf("Expected adjustment coerced to 0, got %f", view.LinkedStatements[0].AdjustmentAmount)
		}
	})

	t.Run("returns 404 when link does not exist", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
		tx := testutil.NewTransaction(companyID).Build(t, db)

		body := map[string]any{
			"transactionId":    tx.ID,
			"statementId":      statement.ID,
			"adjustmentAmount": 10.00,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/matching/credit-card-adjustment", body)
		w := httptest.NewRecorder()

		handler.UpdateCreditCardAdjustment(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestMatchingHandler_MatchDocument(t *testing.T) {
	setupHandler := func(t *testing.T) (*MatchingHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ms := testutil.NewTestMatchingService(t, db)
		return NewMatchingHandler(ms), db
	}

	t.Run("returns 409 with confirmation detail for implausible match", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		tx := testutil.NewTransaction(companyID).WithDebit(100.00).Build(t, db)
		doc := testutil.NewDocument(companyID).
			WithVendor("Zebra Holdings").
			WithTotal(5000.00).
			WithDocumentDate(tx.Date.AddDate(0, -3, 0)).
			Processed().
			Build(t, db)

		body := map[string]any{
			"transactionId": tx.ID,
			"documentId":    doc.ID,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/matching/match-document", body)
		w := httptest.NewRecorder()

		handler.MatchDocument(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}

		// Force through
		body["force"] = true
		req = testutil.NewJSONRequest(t, http.MethodPost, "/api/matching/match-document", body)
		w = httptest.NewRecorder()

		handler.MatchDocument(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 with force, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "transaction_document", 1)
	})

	t.Run("returns 409 when transaction already linked to statement", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
		tx := testutil.NewTransaction(companyID).Build(t, db)
		doc := testutil.NewDocument(companyID).Processed().Build(t, db)
		testutil.LinkStatement(t, db, tx.ID, statement.ID, 0)

		body := map[string]any{
			"transactionId": tx.ID,
			"documentId":    doc.ID,
			"force":         true,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/matching/match-document", body)
		w := httptest.NewRecorder()

		handler.MatchDocument(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestMatchingHandler_Suggestions(t *testing.T) {
	t.Run("returns ranked suggestions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMatchingHandler(testutil.NewTestMatchingService(t, db))

		companyID := testutil.MakeID()
		tx := testutil.NewTransaction(companyID).
			WithDebit(100.00).
			WithDescription("Card payment ACME Store").
			Build(t, db)
		testutil.NewDocument(companyID).
			WithVendor("ACME Store").
			WithTotal(100.00).
			WithDocumentDate(tx.Date).
			Processed().
			Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/matching/suggestions/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.Suggestions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var suggestions []service.Suggestion
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&suggestions)

		if len(suggestions) != 1 {
			t.Errorf("Expected 1 suggestion, got %d", len(suggestions))
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewMatchingHandler(testutil.NewTestMatchingService(t, db))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/matching/suggestions/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.Suggestions(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
