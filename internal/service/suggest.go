package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/findesk/backoffice/internal/model"
)

// MatchScoreThreshold is the score below which a document match requires
// explicit confirmation.
const MatchScoreThreshold = 0.6

// maxSuggestions caps the candidate list returned per transaction.
const maxSuggestions = 5

// Suggestion is a candidate document for matching against a transaction,
// ranked by score.
type Suggestion struct {
	Document model.Document `json:"document"`
	Score    float64        `json:"score"`
}

// SuggestMatches scores all processed documents of the transaction's
// company against the transaction and returns the top candidates above
// zero, best first.
func (s *MatchingService) SuggestMatches(ctx context.Context, transactionID string) ([]Suggestion, error) {
	tx, err := s.loadTransaction(transactionID)
	if err != nil {
		return nil, err
	}

	documents, err := s.documentRepo.ListDocuments(ctx, tx.CompanyID)
	if err != nil {
		return nil, err
	}

	suggestions := []Suggestion{}
	for _, doc := range documents {
		if doc.Status != model.DocumentStatusProcessed {
			continue
		}
		if score := MatchScore(tx.Transaction, doc); score > 0 {
			suggestions = append(suggestions, Suggestion{Document: doc, Score: score})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return suggestions, nil
}

// MatchScore rates how plausibly a document belongs to a transaction,
// from 0 to 1. Amount agreement dominates; date proximity and vendor
// token overlap refine the ranking.
func MatchScore(tx model.Transaction, doc model.Document) float64 {
	return 0.5*amountScore(tx.Amount(), doc.Total) +
		0.25*dateScore(tx, doc) +
		0.25*vendorScore(tx.Description, doc.Vendor)
}

func amountScore(txAmount, docTotal float64) float64 {
	largest := math.Max(math.Max(txAmount, docTotal), 1)
	drift := math.Abs(txAmount-docTotal) / largest
	return math.Max(0, 1-drift)
}

// dateScore is 1 within three days, decaying linearly to 0 at thirty days.
func dateScore(tx model.Transaction, doc model.Document) float64 {
	days := math.Abs(tx.Date.Sub(doc.DocumentDate).Hours() / 24)
	switch {
	case days <= 3:
		return 1
	case days >= 30:
		return 0
	default:
		return 1 - (days-3)/27
	}
}

// vendorScore is the fraction of vendor tokens present in the transaction
// description, case-insensitive.
func vendorScore(description, vendor string) float64 {
	tokens := strings.Fields(strings.ToLower(vendor))
	if len(tokens) == 0 {
		return 0
	}

	haystack := strings.ToLower(description)
	var hits int
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			hits++
		}
	}
	return float64(hits) / float64(len(tokens))
}
