package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/findesk/backoffice/internal/model"
)

// DocumentRepository provides data access methods for the document table.
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new DocumentRepository with the provided database connection.
func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// ListDocuments retrieves all locker documents for a company, newest first.
func (r *DocumentRepository) ListDocuments(ctx context.Context, companyID string) ([]model.Document, error) {
	query := selectDocument + `
		WHERE company_id = ?
		ORDER BY document_date DESC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query document table: %w", err)
	}
	defer rows.Close()

	documents := []model.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document table: %w", err)
	}

	return documents, nil
}

// GetDocument retrieves a single document by ID.
func (r *DocumentRepository) GetDocument(documentID string) (model.Document, error) {
	query := selectDocument + ` WHERE id = ?`
	return scanDocument(r.db.QueryRow(query, documentID))
}

// InsertDocument inserts a document row.
func (r *DocumentRepository) InsertDocument(ctx context.Context, d *model.Document) error {
	query := `
		INSERT INTO document (id, company_id, file_name, vendor, total, document_date, expiry_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var expiry any
	if d.ExpiryDate != nil {
		expiry = d.ExpiryDate.Format("2006-01-02")
	}

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.CompanyID,
		d.FileName,
		d.Vendor,
		d.Total,
		d.DocumentDate.Format("2006-01-02"),
		expiry,
		d.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

// UpdateStatus sets the processing status of a document and bumps updated_at.
// Returns the number of affected rows so callers can detect a missing document.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, documentID, status string) (int64, error) {
	query := `UPDATE document SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to update document status: %w", err)
	}

	return result.RowsAffected()
}

// ListExpiredCandidates retrieves documents whose expiry date has passed but
// whose status has not yet been flipped to expired. Used by the nightly scan.
func (r *DocumentRepository) ListExpiredCandidates(ctx context.Context, now time.Time) ([]model.Document, error) {
	query := selectDocument + `
		WHERE expiry_date IS NOT NULL
		  AND expiry_date < ?
		  AND status != ?
		ORDER BY expiry_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, now.Format("2006-01-02"), model.DocumentStatusExpired)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired documents: %w", err)
	}
	defer rows.Close()

	documents := []model.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expired documents: %w", err)
	}

	return documents, nil
}

const selectDocument = `
	SELECT id, company_id, file_name, vendor, total, document_date, expiry_date, status, created_at, updated_at
	FROM document`

func scanDocument(row rowScanner) (model.Document, error) {
	var d model.Document
	var vendor, expiryStr sql.NullString
	var dateStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&d.ID,
		&d.CompanyID,
		&d.FileName,
		&vendor,
		&d.Total,
		&dateStr,
		&expiryStr,
		&d.Status,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to scan document table results: %w", err)
	}

	d.Vendor = vendor.String
	if d.DocumentDate, err = ParseTime(dateStr); err != nil {
		return model.Document{}, err
	}
	if expiryStr.Valid {
		expiry, err := ParseTime(expiryStr.String)
		if err != nil {
			return model.Document{}, err
		}
		d.ExpiryDate = &expiry
	}
	if d.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Document{}, err
	}
	if d.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.Document{}, err
	}

	return d, nil
}
