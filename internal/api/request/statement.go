package request

// CreateStatementRequest registers an uploaded statement. Total is nil
// until extraction has produced an authoritative sum.
type CreateStatementRequest struct {
	CompanyID   string   `json:"companyId"`
	FileName    string   `json:"fileName"`
	AccountType string   `json:"accountType"`
	Total       *float64 `json:"total,omitempty"`
	PeriodStart string   `json:"periodStart"`
	PeriodEnd   string   `json:"periodEnd"`
}
