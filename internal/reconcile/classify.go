package reconcile

import (
	"math"

	"github.com/findesk/backoffice/internal/model"
)

// Residual classifications for a reconciliation or a document match.
const (
	ClassPerfectMatch = "perfect_match"
	ClassRemaining    = "remaining"
	ClassOverpaid     = "overpaid"
)

// Classify maps a combined difference to its display classification.
// Positive means part of the statement is still unpaid, negative means
// overpayment, and anything within Epsilon counts as a perfect match.
func Classify(difference float64) string {
	switch {
	case math.Abs(difference) <= Epsilon:
		return ClassPerfectMatch
	case difference > Epsilon:
		return ClassRemaining
	default:
		return ClassOverpaid
	}
}

// Document-match balance classifications.
const (
	BalancePerfectMatch = "perfectMatch"
	BalanceRemaining    = "remainingBalance"
	BalanceExcess       = "excessAmount"
)

// MatchState is the derived matching status of a single transaction.
// Balance fields are only populated for document-matched transactions;
// credit-card-linked transactions skip amount classification since the
// residual is tracked on the shared statement reconciliation instead.
type MatchState struct {
	HasDocumentMatches bool    `json:"hasDocumentMatches"`
	HasCreditCardLinks bool    `json:"hasCreditCardLinks"`
	HasAnyMatches      bool    `json:"hasAnyMatches"`
	BalanceDifference  float64 `json:"balanceDifference,omitempty"`
	BalanceClass       string  `json:"balanceClass,omitempty"`
}

// StateOf derives the matching state of a transaction.
func StateOf(tx model.Transaction) MatchState {
	state := MatchState{
		HasDocumentMatches: len(tx.MatchedDocuments) > 0,
		HasCreditCardLinks: len(tx.LinkedStatements) > 0,
	}
	state.HasAnyMatches = state.HasDocumentMatches || state.HasCreditCardLinks

	if !state.HasDocumentMatches || state.HasCreditCardLinks {
		return state
	}

	state.BalanceDifference = tx.Amount() - tx.MatchedTotal()
	switch {
	case math.Abs(state.BalanceDifference) <= Epsilon:
		state.BalanceClass = BalancePerfectMatch
	case state.BalanceDifference > Epsilon:
		state.BalanceClass = BalanceRemaining
	default:
		state.BalanceClass = BalanceExcess
	}

	return state
}
