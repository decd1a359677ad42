package service

import (
	"context"

	"github.com/findesk/backoffice/internal/reconcile"
)

// ReconciliationService derives reconciliation aggregates on demand. The
// aggregate is never persisted: each request loads the transaction index
// and totals map, and the pure calculator does the rest.
type ReconciliationService struct {
	transactionService *TransactionService
	statementService   *StatementService
}

// NewReconciliationService creates a new ReconciliationService with the provided service dependencies.
func NewReconciliationService(
	transactionService *TransactionService,
	statementService *StatementService,
) *ReconciliationService {
	return &ReconciliationService{
		transactionService: transactionService,
		statementService:   statementService,
	}
}

// GetReconciliation computes the reconciliation aggregate for a statement
// within a company's transaction index.
func (s *ReconciliationService) GetReconciliation(ctx context.Context, companyID, statementID string) (*reconcile.Result, error) {
	index, err := s.transactionService.GetTransactionIndex(companyID)
	if err != nil {
		return nil, err
	}

	totals := s.statementService.BuildTotalsMap(ctx, companyID)

	return reconcile.Compute(statementID, index, totals), nil
}
