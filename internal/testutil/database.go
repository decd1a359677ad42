package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Statement table
		CREATE TABLE IF NOT EXISTS statement (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			company_id VARCHAR(36) NOT NULL,
			file_name VARCHAR(255) NOT NULL,
			account_type VARCHAR(20) NOT NULL,
			total FLOAT,
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Document table (locker)
		CREATE TABLE IF NOT EXISTS document (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			company_id VARCHAR(36) NOT NULL,
			file_name VARCHAR(255) NOT NULL,
			vendor VARCHAR(255),
			total FLOAT NOT NULL DEFAULT 0,
			document_date DATE NOT NULL,
			expiry_date DATE,
			status VARCHAR(20) NOT NULL DEFAULT 'processing',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE IF NOT EXISTS "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			company_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			description TEXT NOT NULL,
			category VARCHAR(100),
			debit FLOAT NOT NULL DEFAULT 0,
			credit FLOAT NOT NULL DEFAULT 0,
			account_type VARCHAR(20) NOT NULL,
			source_statement_id VARCHAR(36),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(source_statement_id) REFERENCES statement(id) ON DELETE SET NULL
		);

		-- Transaction-document match junction table
		CREATE TABLE IF NOT EXISTS transaction_document (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			transaction_id VARCHAR(36) NOT NULL,
			document_id VARCHAR(36) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(transaction_id) REFERENCES "transaction"(id) ON DELETE CASCADE,
			FOREIGN KEY(document_id) REFERENCES document(id) ON DELETE CASCADE,
			CONSTRAINT unique_transaction_document UNIQUE (transaction_id, document_id)
		);

		-- Transaction-statement link table with per-link adjustment amount
		CREATE TABLE IF NOT EXISTS statement_link (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			transaction_id VARCHAR(36) NOT NULL,
			statement_id VARCHAR(36) NOT NULL,
			adjustment_amount FLOAT NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(transaction_id) REFERENCES "transaction"(id) ON DELETE CASCADE,
			FOREIGN KEY(statement_id) REFERENCES statement(id) ON DELETE CASCADE,
			CONSTRAINT unique_statement_link UNIQUE (transaction_id, statement_id)
		);

		-- Indexes for performance
		CREATE INDEX IF NOT EXISTS ix_transaction_company_id ON "transaction"(company_id);
		CREATE INDEX IF NOT EXISTS ix_transaction_date ON "transaction"(date);
		CREATE INDEX IF NOT EXISTS ix_transaction_source_statement_id ON "transaction"(source_statement_id);
		CREATE INDEX IF NOT EXISTS ix_statement_company_account ON statement(company_id, account_type);
		CREATE INDEX IF NOT EXISTS ix_document_company_id ON document(company_id);
		CREATE INDEX IF NOT EXISTS ix_document_expiry ON document(expiry_date);
		CREATE INDEX IF NOT EXISTS ix_transaction_document_transaction_id ON transaction_document(transaction_id);
		CREATE INDEX IF NOT EXISTS ix_transaction_document_document_id ON transaction_document(document_id);
		CREATE INDEX IF NOT EXISTS ix_statement_link_transaction_id ON statement_link(transaction_id);
		CREATE INDEX IF NOT EXISTS ix_statement_link_statement_id ON statement_link(statement_id);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"statement_link",
		"transaction_document",
		"transaction",
		"document",
		"statement",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
