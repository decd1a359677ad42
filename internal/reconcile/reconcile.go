// Package reconcile implements the statement reconciliation aggregator:
// derived, unpersisted aggregates over a transaction index and a statement
// totals map. Every function is pure with respect to its inputs; callers
// recompute on each access rather than caching results.
package reconcile

import (
	"github.com/findesk/backoffice/internal/model"
)

// Epsilon is the residual below which a reconciliation counts as fully
// reconciled, absorbing floating-point and currency rounding.
const Epsilon = 0.01

// Result is the reconciliation aggregate for one statement.
type Result struct {
	StatementID            string   `json:"statementId"`
	StatementTotal         float64  `json:"statementTotal"`
	LinkedTransactionIDs   []string `json:"linkedTransactionIds"`
	LinkedTransactionCount int      `json:"linkedTransactionCount"`
	IsMultiTransaction     bool     `json:"isMultiTransaction"`
	TotalBankPayments      float64  `json:"totalBankPayments"`
	TotalAdjustments       float64  `json:"totalAdjustments"`
	CombinedPaidAmount     float64  `json:"combinedPaidAmount"`
	CombinedDifference     float64  `json:"combinedDifference"`
	Classification         string   `json:"classification"`
}

// Compute derives the reconciliation aggregate for statementID from the
// transaction index and the statement totals map. Returns nil when
// statementID is empty.
//
// The statement total is resolved in order, first non-zero wins:
//  1. an inline populated total on any link referencing the statement;
//  2. the totals map;
//  3. reconstruction from the statement's own card line transactions,
//     summing debit minus credit (debits are charges, credits payments);
//  4. degraded approximation: payments plus adjustments of the linked
//     transactions themselves, used only when the statement record is not
//     locatable at all.
func Compute(statementID string, index []model.Transaction, totals map[string]float64) *Result {
	if statementID == "" {
		return nil
	}

	res := &Result{StatementID: statementID}

	for _, tx := range index {
		for _, link := range tx.LinkedStatements {
			if link.StatementID != statementID {
				continue
			}
			res.LinkedTransactionIDs = append(res.LinkedTransactionIDs, tx.ID)
			res.TotalBankPayments += tx.Amount()
			res.TotalAdjustments += link.AdjustmentAmount
		}
	}

	res.LinkedTransactionCount = len(res.LinkedTransactionIDs)
	res.IsMultiTransaction = res.LinkedTransactionCount > 1
	res.CombinedPaidAmount = res.TotalBankPayments + res.TotalAdjustments

	res.StatementTotal = resolveTotal(statementID, index, totals, res.CombinedPaidAmount)
	res.CombinedDifference = res.StatementTotal - res.CombinedPaidAmount
	res.Classification = Classify(res.CombinedDifference)

	return res
}

// resolveTotal walks the fallback chain documented on Compute.
func resolveTotal(statementID string, index []model.Transaction, totals map[string]float64, combinedPaid float64) float64 {
	for _, tx := range index {
		for _, link := range tx.LinkedStatements {
			if link.StatementID == statementID && link.StatementTotal != nil && *link.StatementTotal != 0 {
				return *link.StatementTotal
			}
		}
	}

	if total := totals[statementID]; total != 0 {
		return total
	}

	var lineSum float64
	for _, tx := range index {
		if tx.AccountType == model.AccountTypeCreditCard && tx.SourceStatementID == statementID {
			lineSum += tx.Debit - tx.Credit
		}
	}
	if lineSum != 0 {
		return lineSum
	}

	return combinedPaid
}
