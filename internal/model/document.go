package model

import "time"

// Document processing statuses.
const (
	DocumentStatusProcessing = "processing"
	DocumentStatusProcessed  = "processed"
	DocumentStatusFailed     = "failed"
	DocumentStatusExpired    = "expired"
)

// Document represents a locker document (receipt, invoice, contract)
// with an optional expiry date tracked by the nightly expiry scan.
type Document struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"companyId"`
	FileName     string     `json:"fileName"`
	Vendor       string     `json:"vendor,omitempty"`
	Total        float64    `json:"total"`
	DocumentDate time.Time  `json:"documentDate"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt,omitempty"`
}

// Expired reports whether the document's expiry date has passed at the
// given reference time. Documents without an expiry date never expire.
func (d Document) Expired(now time.Time) bool {
	return d.ExpiryDate != nil && d.ExpiryDate.Before(now)
}
