package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/findesk/backoffice/internal/model"
)

// TransactionRepository provides data access methods for the transaction
// table and its matching associations.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactionsByCompany retrieves all transactions for a company,
// including matched documents and linked credit-card statements. This is
// the transaction index the reconciliation calculator operates on; lists
// are fetched in full rather than paginated at this layer.
func (r *TransactionRepository) GetTransactionsByCompany(companyID string) ([]model.Transaction, error) {
	query := `
		SELECT id, company_id, date, description, category, debit, credit,
		       account_type, source_statement_id, created_at
		FROM "transaction"
		WHERE company_id = ?
		ORDER BY date ASC, id ASC
	`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	ids := []string{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
		ids = append(ids, t.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	if err := r.attachAssociations(transactions, ids); err != nil {
		return nil, err
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID with matched
// documents and statement links attached. Returns sql.ErrNoRows wrapped
// when the transaction does not exist.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, company_id, date, description, category, debit, credit,
		       account_type, source_statement_id, created_at
		FROM "transaction"
		WHERE id = ?
	`

	row := r.db.QueryRow(query, transactionID)
	t, err := scanTransaction(row)
	if err != nil {
		return model.Transaction{}, err
	}

	transactions := []model.Transaction{t}
	if err := r.attachAssociations(transactions, []string{t.ID}); err != nil {
		return model.Transaction{}, err
	}

	return transactions[0], nil
}

// InsertTransaction inserts a transaction row.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction"
			(id, company_id, date, description, category, debit, credit, account_type, source_statement_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var sourceStatementID any
	if t.SourceStatementID != "" {
		sourceStatementID = t.SourceStatementID
	}

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.CompanyID,
		t.Date.Format("2006-01-02"),
		t.Description,
		t.Category,
		t.Debit,
		t.Credit,
		t.AccountType,
		sourceStatementID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string
	var category, sourceStatementID sql.NullString

	err := row.Scan(
		&t.ID,
		&t.CompanyID,
		&dateStr,
		&t.Description,
		&category,
		&t.Debit,
		&t.Credit,
		&t.AccountType,
		&sourceStatementID,
		&createdAtStr,
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Transaction{}, err
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, err
	}
	t.Category = category.String
	t.SourceStatementID = sourceStatementID.String
	t.MatchedDocuments = []model.MatchedDoc{}
	t.LinkedStatements = []model.StatementLink{}

	return t, nil
}

// attachAssociations loads matched documents and statement links for the
// given transactions in two batched queries and attaches them in place.
// Statement totals are joined onto the links so the reconciliation layer
// can prefer the populated value without a second lookup.
func (r *TransactionRepository) attachAssociations(transactions []model.Transaction, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	byID := make(map[string]*model.Transaction, len(transactions))
	for i := range transactions {
		byID[transactions[i].ID] = &transactions[i]
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	in := strings.Join(placeholders, ",")

	docQuery := `
		SELECT td.transaction_id, td.document_id, d.file_name, d.vendor, d.total
		FROM transaction_document td
		JOIN document d ON td.document_id = d.id
		WHERE td.transaction_id IN (` + in + `)
		ORDER BY td.created_at ASC, td.id ASC
	`

	docRows, err := r.db.Query(docQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to query transaction_document table: %w", err)
	}
	defer docRows.Close()

	for docRows.Next() {
		var txID string
		var doc model.MatchedDoc
		var vendor sql.NullString
		if err := docRows.Scan(&txID, &doc.DocumentID, &doc.FileName, &vendor, &doc.Total); err != nil {
			return fmt.Errorf("failed to scan transaction_document results: %w", err)
		}
		doc.Vendor = vendor.String
		if t, ok := byID[txID]; ok {
			t.MatchedDocuments = append(t.MatchedDocuments, doc)
		}
	}
	if err = docRows.Err(); err != nil {
		return fmt.Errorf("error iterating transaction_document table: %w", err)
	}

	linkQuery := `
		SELECT l.transaction_id, l.statement_id, l.adjustment_amount, s.total
		FROM statement_link l
		LEFT JOIN statement s ON l.statement_id = s.id
		WHERE l.transaction_id IN (` + in + `)
		ORDER BY l.created_at ASC, l.id ASC
	`

	linkRows, err := r.db.Query(linkQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to query statement_link table: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var txID string
		var link model.StatementLink
		var total sql.NullFloat64
		if err := linkRows.Scan(&txID, &link.StatementID, &link.AdjustmentAmount, &total); err != nil {
			return fmt.Errorf("failed to scan statement_link results: %w", err)
		}
		if total.Valid {
			v := total.Float64
			link.StatementTotal = &v
		}
		if t, ok := byID[txID]; ok {
			t.LinkedStatements = append(t.LinkedStatements, link)
		}
	}
	if err = linkRows.Err(); err != nil {
		return fmt.Errorf("error iterating statement_link table: %w", err)
	}

	return nil
}
