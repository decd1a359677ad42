package model

import (
	"math"
	"time"
)

// Account types a transaction can belong to.
const (
	AccountTypeBank       = "bank_account"
	AccountTypeCreditCard = "credit_card"
	AccountTypeCash       = "cash_account"
)

// Transaction represents a single bank, credit-card or cash transaction.
// Debit and Credit are mutually exclusive; at most one is non-zero.
// Card transactions imported from an uploaded statement carry the id of
// that statement in SourceStatementID.
type Transaction struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"companyId"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Category          string          `json:"category,omitempty"`
	Debit             float64         `json:"debit"`
	Credit            float64         `json:"credit"`
	AccountType       string          `json:"accountType"`
	SourceStatementID string          `json:"sourceStatementId,omitempty"`
	MatchedDocuments  []MatchedDoc    `json:"matchedDocuments"`
	LinkedStatements  []StatementLink `json:"linkedCreditCardStatements"`
	CreatedAt         time.Time       `json:"createdAt,omitempty"`
}

// MatchedDoc is a document matched against a transaction, carrying the
// document total cached at match time.
type MatchedDoc struct {
	DocumentID string  `json:"documentId"`
	FileName   string  `json:"fileName"`
	Vendor     string  `json:"vendor,omitempty"`
	Total      float64 `json:"total"`
}

// StatementLink associates a transaction with a credit-card statement to
// account for a lump payment. AdjustmentAmount absorbs fees, tips and
// rounding between the bank payment and the statement total.
// StatementTotal is set when the statement record was loaded alongside
// the link; nil otherwise.
type StatementLink struct {
	StatementID      string   `json:"statementId"`
	AdjustmentAmount float64  `json:"adjustmentAmount"`
	StatementTotal   *float64 `json:"statementTotal,omitempty"`
}

// Amount returns the absolute payment amount of the transaction,
// whichever of debit or credit is set.
func (t Transaction) Amount() float64 {
	if t.Debit != 0 {
		return math.Abs(t.Debit)
	}
	return math.Abs(t.Credit)
}

// MatchedTotal returns the sum of the cached totals of all matched documents.
func (t Transaction) MatchedTotal() float64 {
	var sum float64
	for _, d := range t.MatchedDocuments {
		sum += d.Total
	}
	return sum
}
