package validation

import (
	"github.com/findesk/backoffice/internal/api/request"
)

// ValidateLinkCreditCard validates a statement link request.
// The adjustment amount is deliberately unconstrained: negative values
// represent credits and refunds.
func ValidateLinkCreditCard(req request.LinkCreditCardRequest) error {
	return validateRefPair(req.TransactionID, req.StatementID)
}

// ValidateUnlinkCreditCard validates a statement unlink request.
func ValidateUnlinkCreditCard(req request.UnlinkCreditCardRequest) error {
	return validateRefPair(req.TransactionID, req.StatementID)
}

// ValidateUpdateAdjustment validates an adjustment update request.
func ValidateUpdateAdjustment(req request.UpdateAdjustmentRequest) error {
	return validateRefPair(req.TransactionID, req.StatementID)
}

// ValidateMatchDocument validates a document match request.
func ValidateMatchDocument(transactionID, documentID string) error {
	errors := make(map[string]string)

	if err := ValidateUUID(transactionID); err != nil {
		errors["transactionId"] = err.Error()
	}
	if err := ValidateUUID(documentID); err != nil {
		errors["documentId"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateRefPair(transactionID string, ref request.StatementRef) error {
	errors := make(map[string]string)

	if err := ValidateUUID(transactionID); err != nil {
		errors["transactionId"] = err.Error()
	}
	if ref.ID == "" {
		errors["statementId"] = "statementId is required"
	} else if err := ValidateUUID(ref.ID); err != nil {
		errors["statementId"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
