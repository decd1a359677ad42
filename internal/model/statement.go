package model

import "time"

// Statement represents an uploaded bank-account or credit-card statement.
// Total is the authoritative sum of the statement's own line transactions;
// it is nil until extraction has produced one, in which case the statement
// is omitted from the totals map.
type Statement struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	FileName    string    `json:"fileName"`
	AccountType string    `json:"accountType"`
	Total       *float64  `json:"total,omitempty"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
