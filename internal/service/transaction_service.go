package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/findesk/backoffice/internal/apperrors"
	"github.com/findesk/backoffice/internal/model"
	"github.com/findesk/backoffice/internal/reconcile"
	"github.com/findesk/backoffice/internal/repository"
)

// TransactionService handles transaction read operations. Transactions are
// created by statement imports, not through this API, so the service is
// read-only apart from what the matching service does to associations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(transactionRepo *repository.TransactionRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// TransactionView is a transaction enriched with its derived matching state.
// The state is recomputed on every read, never stored.
type TransactionView struct {
	model.Transaction
	MatchState reconcile.MatchState `json:"matchState"`
}

// GetTransactionIndex retrieves the raw transaction index for a company:
// all transactions with matched documents and statement links attached.
// This is the input the reconciliation calculator operates on.
func (s *TransactionService) GetTransactionIndex(companyID string) ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.GetTransactionsByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction index: %w", err)
	}
	return transactions, nil
}

// GetTransactionsByCompany retrieves the transaction index with each entry
// carrying its derived matching state.
func (s *TransactionService) GetTransactionsByCompany(companyID string) ([]TransactionView, error) {
	transactions, err := s.GetTransactionIndex(companyID)
	if err != nil {
		return nil, err
	}

	views := make([]TransactionView, len(transactions))
	for i, tx := range transactions {
		views[i] = TransactionView{Transaction: tx, MatchState: reconcile.StateOf(tx)}
	}

	return views, nil
}

// GetTransaction retrieves a single transaction with derived matching state.
func (s *TransactionService) GetTransaction(transactionID string) (TransactionView, error) {
	tx, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TransactionView{}, apperrors.ErrTransactionNotFound
		}
		return TransactionView{}, err
	}

	return TransactionView{Transaction: tx, MatchState: reconcile.StateOf(tx)}, nil
}
