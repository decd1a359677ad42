package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/findesk/backoffice/internal/apperrors"
	"github.com/findesk/backoffice/internal/reconcile"
	"github.com/findesk/backoffice/internal/repository"
)

// MatchingService handles transaction-to-document matching and
// transaction-to-statement linking. Document matching and statement
// linking are mutually exclusive per transaction; this service is the
// authoritative enforcement point for that rule.
type MatchingService struct {
	matchingRepo    *repository.MatchingRepository
	transactionRepo *repository.TransactionRepository
	statementRepo   *repository.StatementRepository
	documentRepo    *repository.DocumentRepository
}

// NewMatchingService creates a new MatchingService with the provided repository dependencies.
func NewMatchingService(
	matchingRepo *repository.MatchingRepository,
	transactionRepo *repository.TransactionRepository,
	statementRepo *repository.StatementRepository,
	documentRepo *repository.DocumentRepository,
) *MatchingService {
	return &MatchingService{
		matchingRepo:    matchingRepo,
		transactionRepo: transactionRepo,
		statementRepo:   statementRepo,
		documentRepo:    documentRepo,
	}
}

// LinkStatement links a transaction to a credit-card statement with an
// initial adjustment amount. Rejected when the transaction already has
// matched documents or an existing link to the same statement.
func (s *MatchingService) LinkStatement(ctx context.Context, transactionID, statementID string, adjustmentAmount float64) (TransactionView, error) {
	tx, err := s.loadTransaction(transactionID)
	if err != nil {
		return TransactionView{}, err
	}

	if _, err := s.statementRepo.GetStatement(statementID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TransactionView{}, apperrors.ErrStatementNotFound
		}
		return TransactionView{}, err
	}

	if len(tx.MatchedDocuments) > 0 {
		return TransactionView{}, apperrors.ErrMatchingConflict
	}

	linked, err := s.matchingRepo.HasLink(ctx, transactionID, statementID)
	if err != nil {
		return TransactionView{}, err
	}
	if linked {
		return TransactionView{}, apperrors.ErrDuplicateLink
	}

	if err := s.matchingRepo.InsertLink(ctx, transactionID, statementID, adjustmentAmount); err != nil {
		return TransactionView{}, err
	}

	return s.refresh(transactionID)
}

// UnlinkStatement removes the link between a transaction and a statement.
func (s *MatchingService) UnlinkStatement(ctx context.Context, transactionID, statementID string) (TransactionView, error) {
	if _, err := s.loadTransaction(transactionID); err != nil {
		return TransactionView{}, err
	}

	affected, err := s.matchingRepo.DeleteLink(ctx, transactionID, statementID)
	if err != nil {
		return TransactionView{}, err
	}
	if affected == 0 {
		return TransactionView{}, apperrors.ErrStatementLinkNotFound
	}

	return s.refresh(transactionID)
}

// UpdateAdjustment sets the adjustment amount on an existing link and
// returns the refreshed transaction. Only the link row is touched; the
// reconciliation aggregate is recomputed by the caller on the next read.
// Negative amounts are accepted, representing credits and refunds.
func (s *MatchingService) UpdateAdjustment(ctx context.Context, transactionID, statementID string, adjustmentAmount float64) (TransactionView, error) {
	if _, err := s.loadTransaction(transactionID); err != nil {
		return TransactionView{}, err
	}

	affected, err := s.matchingRepo.UpdateLinkAdjustment(ctx, transactionID, statementID, adjustmentAmount)
	if err != nil {
		return TransactionView{}, err
	}
	if affected == 0 {
		return TransactionView{}, apperrors.ErrStatementLinkNotFound
	}

	return s.refresh(transactionID)
}

// MatchDocument matches a document against a transaction. Rejected when
// the transaction has statement links or the pair is already matched.
// Unless force is set, a vendor/amount/date validation score below
// MatchScoreThreshold returns ErrMatchConfirmationRequired so the caller
// can confirm ("Proceed Anyway") and retry with force.
func (s *MatchingService) MatchDocument(ctx context.Context, transactionID, documentID string, force bool) (TransactionView, error) {
	tx, err := s.loadTransaction(transactionID)
	if err != nil {
		return TransactionView{}, err
	}

	doc, err := s.documentRepo.GetDocument(documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TransactionView{}, apperrors.ErrDocumentNotFound
		}
		return TransactionView{}, err
	}

	if len(tx.LinkedStatements) > 0 {
		return TransactionView{}, apperrors.ErrMatchingConflict
	}

	matched, err := s.matchingRepo.HasMatch(ctx, transactionID, documentID)
	if err != nil {
		return TransactionView{}, err
	}
	if matched {
		return TransactionView{}, apperrors.ErrDuplicateMatch
	}

	if !force {
		if score := MatchScore(tx.Transaction, doc); score < MatchScoreThreshold {
			return TransactionView{}, fmt.Errorf("%w: score %.2f below threshold %.2f",
				apperrors.ErrMatchConfirmationRequired, score, MatchScoreThreshold)
		}
	}

	if err := s.matchingRepo.InsertMatch(ctx, transactionID, documentID); err != nil {
		return TransactionView{}, err
	}

	return s.refresh(transactionID)
}

// UnmatchDocument removes the match between a transaction and a document.
func (s *MatchingService) UnmatchDocument(ctx context.Context, transactionID, documentID string) (TransactionView, error) {
	if _, err := s.loadTransaction(transactionID); err != nil {
		return TransactionView{}, err
	}

	affected, err := s.matchingRepo.DeleteMatch(ctx, transactionID, documentID)
	if err != nil {
		return TransactionView{}, err
	}
	if affected == 0 {
		return TransactionView{}, apperrors.ErrDocumentMatchNotFound
	}

	return s.refresh(transactionID)
}

func (s *MatchingService) loadTransaction(transactionID string) (TransactionView, error) {
	tx, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TransactionView{}, apperrors.ErrTransactionNotFound
		}
		return TransactionView{}, err
	}
	return TransactionView{Transaction: tx, MatchState: reconcile.StateOf(tx)}, nil
}

// refresh reloads the transaction after a mutation so the caller receives
// the authoritative nested state rather than an optimistic patch.
func (s *MatchingService) refresh(transactionID string) (TransactionView, error) {
	return s.loadTransaction(transactionID)
}
