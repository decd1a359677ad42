package request

// LinkCreditCardRequest links a transaction to a credit-card statement.
type LinkCreditCardRequest struct {
	TransactionID    string       `json:"transactionId"`
	StatementID      StatementRef `json:"statementId"`
	AdjustmentAmount Amount       `json:"adjustmentAmount"`
}

// UnlinkCreditCardRequest removes a statement link from a transaction.
type UnlinkCreditCardRequest struct {
	TransactionID string       `json:"transactionId"`
	StatementID   StatementRef `json:"statementId"`
}

// UpdateAdjustmentRequest changes the adjustment amount on an existing link.
type UpdateAdjustmentRequest struct {
	TransactionID    string       `json:"transactionId"`
	StatementID      StatementRef `json:"statementId"`
	AdjustmentAmount Amount       `json:"adjustmentAmount"`
}

// MatchDocumentRequest matches a document against a transaction. Force
// overrides a failed vendor/amount/date validation score ("Proceed Anyway").
type MatchDocumentRequest struct {
	TransactionID string `json:"transactionId"`
	DocumentID    string `json:"documentId"`
	Force         bool   `json:"force,omitempty"`
}

// UnmatchDocumentRequest removes a document match from a transaction.
type UnmatchDocumentRequest struct {
	TransactionID string `json:"transactionId"`
	DocumentID    string `json:"documentId"`
}
