package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/findesk/backoffice/internal/model"
)

// StatementBuilder provides a fluent interface for creating test statements.
//
// Example usage:
//
//	// Simple creation with defaults
//	statement := testutil.NewStatement(companyID).Build(t, db)
//
//	// Customized statement
//	statement := testutil.NewStatement(companyID).
//	    WithAccountType(model.AccountTypeCreditCard).
//	    WithTotal(500.00).
//	    Build(t, db)
type StatementBuilder struct {
	ID          string
	CompanyID   string
	FileName    string
	AccountType string
	Total       *float64
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// NewStatement creates a StatementBuilder with sensible defaults.
func NewStatement(companyID string) *StatementBuilder {
	return &StatementBuilder{
		ID:          MakeID(),
		CompanyID:   companyID,
		FileName:    MakeFileName("statement"),
		AccountType: model.AccountTypeBank,
		PeriodStart: time.Now().AddDate(0, -1, 0),
		PeriodEnd:   time.Now(),
	}
}

// WithID sets a custom ID.
func (b *StatementBuilder) WithID(id string) *StatementBuilder {
	b.ID = id
	return b
}

// WithFileName sets a custom file name.
func (b *StatementBuilder) WithFileName(name string) *StatementBuilder {
	b.FileName = name
	return b
}

// WithAccountType sets the account type.
func (b *StatementBuilder) WithAccountType(accountType string) *StatementBuilder {
	b.AccountType = accountType
	return b
}

// WithTotal sets the extracted statement total.
func (b *StatementBuilder) WithTotal(total float64) *StatementBuilder {
	b.Total = &total
	return b
}

// WithoutTotal marks the statement as not yet extracted.
func (b *StatementBuilder) WithoutTotal() *StatementBuilder {
	b.Total = nil
	return b
}

// WithPeriod sets the statement period.
func (b *StatementBuilder) WithPeriod(start, end time.Time) *StatementBuilder {
	b.PeriodStart = start
	b.PeriodEnd = end
	return b
}

// Build creates the statement in the database and returns it.
func (b *StatementBuilder) Build(t *testing.T, db *sql.DB) model.Statement {
	t.Helper()

	query := `
		INSERT INTO statement (id, company_id, file_name, account_type, total, period_start, period_end)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var total any
	if b.Total != nil {
		total = *b.Total
	}

	_, err := db.Exec(query, b.ID, b.CompanyID, b.FileName, b.AccountType, total,
		b.PeriodStart.Format("2006-01-02"), b.PeriodEnd.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Failed to create test statement: %v", err)
	}

	return model.Statement{
		ID:          b.ID,
		CompanyID:   b.CompanyID,
		FileName:    b.FileName,
		AccountType: b.AccountType,
		Total:       b.Total,
		PeriodStart: b.PeriodStart,
		PeriodEnd:   b.PeriodEnd,
	}
}

// CreateCreditCardStatement creates a credit-card statement with the given total.
//
// Example usage:
//
//	statement := testutil.CreateCreditCardStatement(t, db, companyID, 500.00)
func CreateCreditCardStatement(t *testing.T, db *sql.DB, companyID string, total float64) model.Statement {
	t.Helper()
	return NewStatement(companyID).WithAccountType(model.AccountTypeCreditCard).WithTotal(total).Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	tx := testutil.NewTransaction(companyID).
//	    WithDebit(300.00).
//	    WithDescription("CC PAYMENT").
//	    Build(t, db)
type TransactionBuilder struct {
	ID                string
	CompanyID         string
	Date              time.Time
	Description       string
	Category          string
	Debit             float64
	Credit            float64
	AccountType       string
	SourceStatementID string
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(companyID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:          MakeID(),
		CompanyID:   companyID,
		Date:        time.Now(),
		Description: "Test transaction",
		Debit:       100.0,
		AccountType: model.AccountTypeBank,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithDescription sets the description.
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	b.Description = description
	return b
}

// WithCategory sets the category.
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	b.Category = category
	return b
}

// WithDebit sets the debit amount and clears the credit.
func (b *TransactionBuilder) WithDebit(amount float64) *TransactionBuilder {
	b.Debit = amount
	b.Credit = 0
	return b
}

// WithCredit sets the credit amount and clears the debit.
func (b *TransactionBuilder) WithCredit(amount float64) *TransactionBuilder {
	b.Credit = amount
	b.Debit = 0
	return b
}

// WithAccountType sets the account type.
func (b *TransactionBuilder) WithAccountType(accountType string) *TransactionBuilder {
	b.AccountType = accountType
	return b
}

// FromStatement marks the transaction as imported from the given statement.
func (b *TransactionBuilder) FromStatement(statementID string) *TransactionBuilder {
	b.SourceStatementID = statementID
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, company_id, date, description, category, debit, credit, account_type, source_statement_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var sourceStatementID any
	if b.SourceStatementID != "" {
		sourceStatementID = b.SourceStatementID
	}

	_, err := db.Exec(query, b.ID, b.CompanyID, b.Date.Format("2006-01-02"), b.Description,
		b.Category, b.Debit, b.Credit, b.AccountType, sourceStatementID)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:                b.ID,
		CompanyID:         b.CompanyID,
		Date:              b.Date,
		Description:       b.Description,
		Category:          b.Category,
		Debit:             b.Debit,
		Credit:            b.Credit,
		AccountType:       b.AccountType,
		SourceStatementID: b.SourceStatementID,
		MatchedDocuments:  []model.MatchedDoc{},
		LinkedStatements:  []model.StatementLink{},
	}
}

// DocumentBuilder provides a fluent interface for creating test locker documents.
//
// Example usage:
//
//	doc := testutil.NewDocument(companyID).
//	    WithVendor("ACME Corp").
//	    WithTotal(49.99).
//	    Processed().
//	    Build(t, db)
type DocumentBuilder struct {
	ID           string
	CompanyID    string
	FileName     string
	Vendor       string
	Total        float64
	DocumentDate time.Time
	ExpiryDate   *time.Time
	Status       string
}

// NewDocument creates a DocumentBuilder with sensible defaults.
func NewDocument(companyID string) *DocumentBuilder {
	return &DocumentBuilder{
		ID:           MakeID(),
		CompanyID:    companyID,
		FileName:     MakeFileName("receipt"),
		Vendor:       "Test Vendor",
		Total:        100.0,
		DocumentDate: time.Now(),
		Status:       model.DocumentStatusProcessing,
	}
}

// WithID sets a custom ID.
func (b *DocumentBuilder) WithID(id string) *DocumentBuilder {
	b.ID = id
	return b
}

// WithFileName sets a custom file name.
func (b *DocumentBuilder) WithFileName(name string) *DocumentBuilder {
	b.FileName = name
	return b
}

// WithVendor sets the vendor.
func (b *DocumentBuilder) WithVendor(vendor string) *DocumentBuilder {
	b.Vendor = vendor
	return b
}

// WithTotal sets the document total.
func (b *DocumentBuilder) WithTotal(total float64) *DocumentBuilder {
	b.Total = total
	return b
}

// WithDocumentDate sets the document date.
func (b *DocumentBuilder) WithDocumentDate(date time.Time) *DocumentBuilder {
	b.DocumentDate = date
	return b
}

// WithExpiryDate sets the expiry date.
func (b *DocumentBuilder) WithExpiryDate(date time.Time) *DocumentBuilder {
	b.ExpiryDate = &date
	return b
}

// WithStatus sets the processing status.
func (b *DocumentBuilder) WithStatus(status string) *DocumentBuilder {
	b.Status = status
	return b
}

// Processed marks the document as processed.
func (b *DocumentBuilder) Processed() *DocumentBuilder {
	b.Status = model.DocumentStatusProcessed
	return b
}

// Build creates the document in the database and returns it.
func (b *DocumentBuilder) Build(t *testing.T, db *sql.DB) model.Document {
	t.Helper()

	query := `
		INSERT INTO document (id, company_id, file_name, vendor, total, document_date, expiry_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var expiryDate any
	if b.ExpiryDate != nil {
		expiryDate = b.ExpiryDate.Format("2006-01-02")
	}

	_, err := db.Exec(query, b.ID, b.CompanyID, b.FileName, b.Vendor, b.Total,
		b.DocumentDate.Format("2006-01-02"), expiryDate, b.Status)
	if err != nil {
		t.Fatalf("Failed to create test document: %v", err)
	}

	return model.Document{
		ID:           b.ID,
		CompanyID:    b.CompanyID,
		FileName:     b.FileName,
		Vendor:       b.Vendor,
		Total:        b.Total,
		DocumentDate: b.DocumentDate,
		ExpiryDate:   b.ExpiryDate,
		Status:       b.Status,
	}
}

// LinkStatement links a transaction to a statement with the given adjustment amount.
//
// Example usage:
//
//	testutil.LinkStatement(t, db, tx.ID, statement.ID, 5.00)
func LinkStatement(t *testing.T, db *sql.DB, transactionID, statementID string, adjustmentAmount float64) {
	t.Helper()

	query := `
		INSERT INTO statement_link (id, transaction_id, statement_id, adjustment_amount)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, MakeID(), transactionID, statementID, adjustmentAmount)
	if err != nil {
		t.Fatalf("Failed to create statement link: %v", err)
	}
}

// MatchDocument matches a transaction to a document.
//
// Example usage:
//
//	testutil.MatchDocument(t, db, tx.ID, doc.ID)
func MatchDocument(t *testing.T, db *sql.DB, transactionID, documentID string) {
	t.Helper()

	query := `
		INSERT INTO transaction_document (id, transaction_id, document_id)
		VALUES (?, ?, ?)
	`

	_, err := db.Exec(query, MakeID(), transactionID, documentID)
	if err != nil {
		t.Fatalf("Failed to create document match: %v", err)
	}
}
