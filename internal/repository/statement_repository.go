package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/findesk/backoffice/internal/model"
)

// StatementRepository provides data access methods for the statement table.
type StatementRepository struct {
	db *sql.DB
}

// NewStatementRepository creates a new StatementRepository with the provided database connection.
func NewStatementRepository(db *sql.DB) *StatementRepository {
	return &StatementRepository{db: db}
}

// ListStatements retrieves all statements for a company and account type,
// newest period first.
func (r *StatementRepository) ListStatements(ctx context.Context, companyID, accountType string) ([]model.Statement, error) {
	query := `
		SELECT id, company_id, file_name, account_type, total, period_start, period_end, created_at
		FROM statement
		WHERE company_id = ? AND account_type = ?
		ORDER BY period_start DESC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, companyID, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement table: %w", err)
	}
	defer rows.Close()

	statements := []model.Statement{}
	for rows.Next() {
		s, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		statements = append(statements, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement table: %w", err)
	}

	return statements, nil
}

// GetStatement retrieves a single statement by ID.
func (r *StatementRepository) GetStatement(statementID string) (model.Statement, error) {
	query := `
		SELECT id, company_id, file_name, account_type, total, period_start, period_end, created_at
		FROM statement
		WHERE id = ?
	`

	return scanStatement(r.db.QueryRow(query, statementID))
}

// InsertStatement inserts a statement row.
func (r *StatementRepository) InsertStatement(ctx context.Context, s *model.Statement) error {
	query := `
		INSERT INTO statement (id, company_id, file_name, account_type, total, period_start, period_end)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var total any
	if s.Total != nil {
		total = *s.Total
	}

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.CompanyID,
		s.FileName,
		s.AccountType,
		total,
		s.PeriodStart.Format("2006-01-02"),
		s.PeriodEnd.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert statement: %w", err)
	}

	return nil
}

func scanStatement(row rowScanner) (model.Statement, error) {
	var s model.Statement
	var total sql.NullFloat64
	var startStr, endStr, createdAtStr string

	err := row.Scan(
		&s.ID,
		&s.CompanyID,
		&s.FileName,
		&s.AccountType,
		&total,
		&startStr,
		&endStr,
		&createdAtStr,
	)
	if err != nil {
		return model.Statement{}, fmt.Errorf("failed to scan statement table results: %w", err)
	}

	if total.Valid {
		v := total.Float64
		s.Total = &v
	}
	if s.PeriodStart, err = ParseTime(startStr); err != nil {
		return model.Statement{}, err
	}
	if s.PeriodEnd, err = ParseTime(endStr); err != nil {
		return model.Statement{}, err
	}
	if s.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Statement{}, err
	}

	return s, nil
}
