package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// MatchingRepository provides data access methods for the statement_link
// and transaction_document junction tables.
type MatchingRepository struct {
	db *sql.DB
}

// NewMatchingRepository creates a new MatchingRepository with the provided database connection.
func NewMatchingRepository(db *sql.DB) *MatchingRepository {
	return &MatchingRepository{db: db}
}

// InsertLink creates a statement link row with the given adjustment amount.
func (r *MatchingRepository) InsertLink(ctx context.Context, transactionID, statementID string, adjustmentAmount float64) error {
	query := `
		INSERT INTO statement_link (id, transaction_id, statement_id, adjustment_amount)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), transactionID, statementID, adjustmentAmount)
	if err != nil {
		return fmt.Errorf("failed to insert statement link: %w", err)
	}

	return nil
}

// DeleteLink removes the link between a transaction and a statement.
// Returns the number of affected rows.
func (r *MatchingRepository) DeleteLink(ctx context.Context, transactionID, statementID string) (int64, error) {
	query := `DELETE FROM statement_link WHERE transaction_id = ? AND statement_id = ?`

	result, err := r.db.ExecContext(ctx, query, transactionID, statementID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete statement link: %w", err)
	}

	return result.RowsAffected()
}

// UpdateLinkAdjustment sets the adjustment amount on an existing link.
// Returns the number of affected rows so callers can detect a missing link.
func (r *MatchingRepository) UpdateLinkAdjustment(ctx context.Context, transactionID, statementID string, adjustmentAmount float64) (int64, error) {
	query := `
		UPDATE statement_link
		SET adjustment_amount = ?
		WHERE transaction_id = ? AND statement_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, adjustmentAmount, transactionID, statementID)
	if err != nil {
		return 0, fmt.Errorf("failed to update link adjustment: %w", err)
	}

	return result.RowsAffected()
}

// CountLinks returns the number of statement links held by a transaction.
func (r *MatchingRepository) CountLinks(ctx context.Context, transactionID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM statement_link WHERE transaction_id = ?`, transactionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count statement links: %w", err)
	}
	return count, nil
}

// HasLink reports whether a transaction is already linked to a statement.
func (r *MatchingRepository) HasLink(ctx context.Context, transactionID, statementID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM statement_link WHERE transaction_id = ? AND statement_id = ?`,
		transactionID, statementID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check statement link: %w", err)
	}
	return count > 0, nil
}

// InsertMatch creates a transaction-document match row.
func (r *MatchingRepository) InsertMatch(ctx context.Context, transactionID, documentID string) error {
	query := `
		INSERT INTO transaction_document (id, transaction_id, document_id)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), transactionID, documentID)
	if err != nil {
		return fmt.Errorf("failed to insert document match: %w", err)
	}

	return nil
}

// DeleteMatch removes the match between a transaction and a document.
// Returns the number of affected rows.
func (r *MatchingRepository) DeleteMatch(ctx context.Context, transactionID, documentID string) (int64, error) {
	query := `DELETE FROM transaction_document WHERE transaction_id = ? AND document_id = ?`

	result, err := r.db.ExecContext(ctx, query, transactionID, documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete document match: %w", err)
	}

	return result.RowsAffected()
}

// CountMatches returns the number of document matches held by a transaction.
func (r *MatchingRepository) CountMatches(ctx context.Context, transactionID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transaction_document WHERE transaction_id = ?`, transactionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count document matches: %w", err)
	}
	return count, nil
}

// HasMatch reports whether a document is already matched to a transaction.
func (r *MatchingRepository) HasMatch(ctx context.Context, transactionID, documentID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transaction_document WHERE transaction_id = ? AND document_id = ?`,
		transactionID, documentID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check document match: %w", err)
	}
	return count > 0, nil
}
