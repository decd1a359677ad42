package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrStatementNotFound indicates that a statement with the given ID does not exist.
	ErrStatementNotFound = errors.New("statement not found")

	// ErrDocumentNotFound indicates that a document with the given ID does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrStatementLinkNotFound indicates that no link exists between the given
	// transaction and statement.
	ErrStatementLinkNotFound = errors.New("statement link not found")

	// ErrDocumentMatchNotFound indicates that no match exists between the given
	// transaction and document.
	ErrDocumentMatchNotFound = errors.New("document match not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrMatchingConflict indicates a violation of the exclusivity rule between
	// document matching and credit-card statement linking: a transaction holds
	// one kind of association, and the other kind was requested.
	ErrMatchingConflict = errors.New("document matching and statement linking are mutually exclusive")

	// ErrDuplicateLink indicates the transaction is already linked to the statement.
	ErrDuplicateLink = errors.New("transaction already linked to statement")

	// ErrDuplicateMatch indicates the document is already matched to the transaction.
	ErrDuplicateMatch = errors.New("document already matched to transaction")

	// ErrMatchConfirmationRequired indicates the vendor/amount/date validation
	// score fell below the auto-accept threshold; the caller may retry with the
	// force flag set to override.
	ErrMatchConfirmationRequired = errors.New("match validation failed, confirmation required")

	// ErrInvalidAccountType indicates an unknown account type value.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// Share-link errors cover fernet token generation and redemption.
var (
	// ErrShareTokenInvalid indicates a share token that could not be verified,
	// either forged, malformed or past its TTL.
	ErrShareTokenInvalid = errors.New("share token invalid or expired")
)
