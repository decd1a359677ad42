package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/findesk/backoffice/internal/api/response"
	"github.com/findesk/backoffice/internal/apperrors"
)

// parseJSON decodes a request body into the given request type, rejecting
// unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON body: %w", err)
	}
	return req, nil
}

// respondMatchingError maps matching-domain errors onto HTTP statuses.
// Not-found errors become 404, rule violations 409, anything else 500.
func respondMatchingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrStatementNotFound),
		errors.Is(err, apperrors.ErrDocumentNotFound),
		errors.Is(err, apperrors.ErrStatementLinkNotFound),
		errors.Is(err, apperrors.ErrDocumentMatchNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, apperrors.ErrMatchingConflict),
		errors.Is(err, apperrors.ErrDuplicateLink),
		errors.Is(err, apperrors.ErrDuplicateMatch):
		response.RespondError(w, http.StatusConflict, err.Error(), "")
	case errors.Is(err, apperrors.ErrMatchConfirmationRequired):
		response.RespondError(w, http.StatusConflict, apperrors.ErrMatchConfirmationRequired.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, "operation failed", err.Error())
	}
}
