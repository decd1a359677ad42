package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/findesk/backoffice/internal/model"
	"github.com/findesk/backoffice/internal/reconcile"
	"github.com/findesk/backoffice/internal/testutil"
)

// TestReconciliationService_GetReconciliation tests the end-to-end
// aggregate: transaction index and totals map loaded from the database,
// combined by the pure calculator.
func TestReconciliationService_GetReconciliation(t *testing.T) {
	t.Run("reconciles multi transaction lump payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReconciliationService(t, db)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)

		tx1 := testutil.NewTransaction(companyID).WithDebit(300.00).Build(t, db)
		tx2 := testutil.NewTransaction(companyID).WithDebit(150.00).Build(t, db)
		tx3 := testutil.NewTransaction(companyID).WithDebit(45.00).Build(t, db)
		testutil.LinkStatement(t, db, tx1.ID, statement.ID, 0)
		testutil.LinkStatement(t, db, tx2.ID, statement.ID, 0)
		testutil.LinkStatement(t, db, tx3.ID, statement.ID, 5.00)

		result, err := svc.GetReconciliation(context.Background(), companyID, statement.ID)
		if err != nil {
			t.Fatalf("GetReconciliation() returned unexpected error: %v", err)
		}

		if result.LinkedTransactionCount != 3 {
			t.Errorf("Expected 3 linked transactions, got %d", result.LinkedTransactionCount)
		}
		if !result.IsMultiTransaction {
			t.Error("Expected IsMultiTransaction to be true")
		}
		if result.TotalBankPayments != 495.00 {
			t.Errorf("Expected bank payments 495.00, got %f", result.TotalBankPayments)
		}
		if result.TotalAdjustments != 5.00 {
			t.Errorf("Expected adjustments 5.00, got %f", result.TotalAdjustments)
		}
		if result.CombinedPaidAmount != 500.00 {
			t.Errorf("Expected combined paid 500.00, got %f", result.CombinedPaidAmount)
		}
		if math.Abs(result.CombinedDifference) > reconcile.Epsilon {
			t.Errorf("Expected difference within epsilon, got %f", result.CombinedDifference)
		}
		if result.Classification != reconcile.ClassPerfectMatch {
			t.Errorf("Expected perfect_match, got %s", result.Classification)
		}
	})

	t.Run("classifies partial payment as remaining", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReconciliationService(t, db)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
		tx := testutil.NewTransaction(companyID).WithDebit(300.00).Build(t, db)
		testutil.LinkStatement(t, db, tx.ID, statement.ID, 0)

		result, err := svc.GetReconciliation(context.Background(), companyID, statement.ID)
		if err != nil {
			t.Fatalf("GetReconciliation() returned unexpected error: %v", err)
		}

		if result.CombinedDifference != 200.00 {
			t.Errorf("Expected difference 200.00, got %f", result.CombinedDifference)
		}
		if result.Classification != reconcile.ClassRemaining {
			t.Errorf("Expected remaining, got %s", result.Classification)
		}
	})

	t.Run("reconstructs total from card lines when statement total missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReconciliationService(t, db)

		companyID := testutil.MakeID()
		statement := testutil.NewStatement(companyID).
			WithAccountType(model.AccountTypeCreditCard).
			WithoutTotal().
			Build(t, db)

		// Card lines imported from the statement: two charges, one refund
		testutil.NewTransaction(companyID).
			WithAccountType(model.AccountTypeCreditCard).
			WithDebit(120.00).
			FromStatement(statement.ID).
			Build(t, db)
		testutil.NewTransaction(companyID).
			WithAccountType(model.AccountTypeCreditCard).
			WithDebit(80.00).
			FromStatement(statement.ID).
			Build(t, db)
		testutil.NewTransaction(companyID).
			WithAccountType(model.AccountTypeCreditCard).
			WithCredit(20.00).
			FromStatement(statement.ID).
			Build(t, db)

		payment := testutil.NewTransaction(companyID).WithDebit(180.00).Build(t, db)
		testutil.LinkStatement(t, db, payment.ID, statement.ID, 0)

		result, err := svc.GetReconciliation(context.Background(), companyID, statement.ID)
		if err != nil {
			t.Fatalf("GetReconciliation() returned unexpected error: %v", err)
		}

		if result.StatementTotal != 180.00 {
			t.Errorf("Expected reconstructed total 180.00, got %f", result.StatementTotal)
		}
		if result.Classification != reconcile.ClassPerfectMatch {
			t.Errorf("Expected perfect_match, got %s", result.Classification)
		}
	})

	t.Run("returns zero aggregate for statement with no links", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReconciliationService(t, db)

		companyID := testutil.MakeID()
		statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)

		result, err := svc.GetReconciliation(context.Background(), companyID, statement.ID)
		if err != nil {
			t.Fatalf("GetReconciliation() returned unexpected error: %v", err)
		}

		if result.LinkedTransactionCount != 0 {
			t.Errorf("Expected no linked transactions, got %d", result.LinkedTransactionCount)
		}
		if result.StatementTotal != 500.00 {
			t.Errorf("Expected statement total 500.00 from totals map, got %f", result.StatementTotal)
		}
		if result.Classification != reconcile.ClassRemaining {
			t.Errorf("Expected remaining, got %s", result.Classification)
		}
	})
}
