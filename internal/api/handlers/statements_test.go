package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/findesk/backoffice/internal/model"
	"github.com/findesk/backoffice/internal/reconcile"
	"github.com/findesk/backoffice/internal/testutil"
)

func TestStatementHandler_ListStatements(t *testing.T) {
	setupHandler := func(t *testing.T) (*StatementHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ss := testutil.NewTestStatementService(t, db)
		rs := testutil.NewTestReconciliationService(t, db)
		return NewStatementHandler(ss, rs), db
	}

	t.Run("returns statements filtered by account type", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		card := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
		testutil.NewStatement(companyID).WithTotal(1000.00).Build(t, db) // bank account

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/statement",
			map[string]string{"companyId": companyID, "accountType": model.AccountTypeCreditCard},
		)
		w := httptest.NewRecorder()

		handler.ListStatements(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var statements []model.Statement
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&statements)

		if len(statements) != 1 {
			t.Fatalf("Expected 1 statement, got %d", len(statements))
		}
		if statements[0].ID != card.ID {
			t.Errorf("Expected statement %s, got %s", card.ID, statements[0].ID)
		}
	})

	t.Run("returns 400 for unknown account type", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/statement",
			map[string]string{"companyId": testutil.MakeID(), "accountType": "savings"},
		)
		w := httptest.NewRecorder()

		handler.ListStatements(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestStatementHandler_CreateStatement(t *testing.T) {
	setupHandler := func(t *testing.T) (*StatementHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ss := testutil.NewTestStatementService(t, db)
		rs := testutil.NewTestReconciliationService(t, db)
		return NewStatementHandler(ss, rs), db
	}

	t.Run("creates statement", func(t *testing.T) {
		handler, db := setupHandler(t)

		body := map[string]any{
			"companyId":   testutil.MakeID(),
			"fileName":    "card-august.pdf",
			"accountType": model.AccountTypeCreditCard,
			"total":       500.00,
			"periodStart": "2026-08-01",
			"periodEnd":   "2026-08-31",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/statement", body)
		w := httptest.NewRecorder()

		handler.CreateStatement(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "statement", 1)
	})

	t.Run("returns 400 on validation failure", func(t *testing.T) {
		handler, db := setupHandler(t)

		body := map[string]any{
			"companyId":   "not-a-uuid",
			"fileName":    "",
			"accountType": "savings",
			"periodStart": "2026-08-01",
			"periodEnd":   "2026-08-31",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/statement", body)
		w := httptest.NewRecorder()

		handler.CreateStatement(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "statement", 0)
	})
}

func TestStatementHandler_GetReconciliation(t *testing.T) {
	setupHandler := func(t *testing.T) (*StatementHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ss := testutil.NewTestStatementService(t, db)
		rs := testutil.NewTestReconciliationService(t, db)
		return NewStatementHandler(ss, rs), db
	}

	t.Run("returns reconciliation aggregate", func(t *testing.T) {
		handler, db := setupHandler(t)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
		tx1 := testutil.NewTransaction(companyID).WithDebit(300.00).Build(t, db)
		tx2 := testutil.NewTransaction(companyID).WithDebit(200.00).Build(t, db)
		testutil.LinkStatement(t, db, tx1.ID, statement.ID, 0)
		testutil.LinkStatement(t, db, tx2.ID, statement.ID, 0)

		req := testutil.WithURLParams(
			testutil.NewRequestWithQueryParams(
				http.MethodGet,
				"/api/statement/"+statement.ID+"/reconciliation",
				map[string]string{"companyId": companyID},
			),
			map[string]string{"uuid": statement.ID},
		)
		w := httptest.NewRecorder()

		handler.GetReconciliation(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var result reconcile.Result
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if result.LinkedTransactionCount != 2 {
			t.Errorf("Expected 2 linked transactions, got %d", result.LinkedTransactionCount)
		}
		if result.CombinedPaidAmount != 500.00 {
			t.Errorf("Expected combined paid 500.00, got %f", result.CombinedPaidAmount)
		}
		if result.Classification != reconcile.ClassPerfectMatch {
			t.Errorf("Expected perfect_match, got %s", result.Classification)
		}
	})

	t.Run("returns 404 when statement id is empty", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.WithURLParams(
			testutil.NewRequestWithQueryParams(
				http.MethodGet,
				"/api/statement//reconciliation",
				map[string]string{"companyId": testutil.MakeID()},
			),
			map[string]string{"uuid": ""},
		)
		w := httptest.NewRecorder()

		handler.GetReconciliation(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
