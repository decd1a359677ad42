package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/findesk/backoffice/internal/api/request"
	"github.com/findesk/backoffice/internal/api/response"
	"github.com/findesk/backoffice/internal/service"
	"github.com/findesk/backoffice/internal/validation"
)

// MatchingHandler handles HTTP requests for matching endpoints: statement
// linking, adjustment editing and document matching.
type MatchingHandler struct {
	matchingService *service.MatchingService
}

// NewMatchingHandler creates a new MatchingHandler with the provided service dependency.
func NewMatchingHandler(matchingService *service.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		matchingService: matchingService,
	}
}

// LinkCreditCard handles POST requests to link a transaction to a
// credit-card statement. The statement reference accepts both the raw id
// and the populated object shape.
//
// Endpoint: POST /api/matching/link-credit-card
// Request Body: LinkCreditCardRequest (transactionId, statementId, adjustmentAmount?)
// Response: 200 OK with the refreshed TransactionView
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if transaction or statement not found
// Error: 409 Conflict if the transaction has document matches or is already linked
func (h *MatchingHandler) LinkCreditCard(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LinkCreditCardRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLinkCreditCard(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.matchingService.LinkStatement(r.Context(), req.TransactionID, req.StatementID.ID, float64(req.AdjustmentAmount))
	if err != nil {
		respondMatchingError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// UnlinkCreditCard handles POST requests to remove a statement link.
//
// Endpoint: POST /api/matching/unlink-credit-card
// Request Body: UnlinkCreditCardRequest (transactionId, statementId)
// Response: 200 OK with the refreshed TransactionView
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if transaction or link not found
func (h *MatchingHandler) UnlinkCreditCard(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UnlinkCreditCardRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUnlinkCreditCard(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.matchingService.UnlinkStatement(r.Context(), req.TransactionID, req.StatementID.ID)
	if err != nil {
		respondMatchingError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// UpdateCreditCardAdjustment handles POST requests to change the
// adjustment amount on an existing link. The amount field tolerates string
// input; non-numeric values coerce to 0 and negative values pass through.
//
// Endpoint: POST /api/matching/credit-card-adjustment
// Request Body: UpdateAdjustmentRequest (transactionId, statementId, adjustmentAmount)
// Response: 200 OK with the refreshed TransactionView
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if transaction or link not found
func (h *MatchingHandler) UpdateCreditCardAdjustment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateAdjustmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAdjustment(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.matchingService.UpdateAdjustment(r.Context(), req.TransactionID, req.StatementID.ID, float64(req.AdjustmentAmount))
	if err != nil {
		respondMatchingError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// MatchDocument handles POST requests to match a document against a
// transaction. A low validation score yields 409 with confirmation
// required; resubmitting with force set overrides.
//
// Endpoint: POST /api/matching/match-document
// Request Body: MatchDocumentRequest (transactionId, documentId, force?)
// Response: 200 OK with the refreshed TransactionView
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if transaction or document not found
// Error: 409 Conflict on exclusivity violation, duplicate match, or failed score
func (h *MatchingHandler) MatchDocument(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.MatchDocumentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateMatchDocument(req.TransactionID, req.DocumentID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.matchingService.MatchDocument(r.Context(), req.TransactionID, req.DocumentID, req.Force)
	if err != nil {
		respondMatchingError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// UnmatchDocument handles POST requests to remove a document match.
//
// Endpoint: POST /api/matching/unmatch-document
// Request Body: UnmatchDocumentRequest (transactionId, documentId)
// Response: 200 OK with the refreshed TransactionView
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if transaction or match not found
func (h *MatchingHandler) UnmatchDocument(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UnmatchDocumentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateMatchDocument(req.TransactionID, req.DocumentID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.matchingService.UnmatchDocument(r.Context(), req.TransactionID, req.DocumentID)
	if err != nil {
		respondMatchingError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// Suggestions handles GET requests for ranked candidate documents to match
// against a transaction.
//
// Endpoint: GET /api/matching/suggestions/{uuid}
// Response: 200 OK with array of Suggestion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
func (h *MatchingHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	suggestions, err := h.matchingService.SuggestMatches(r.Context(), transactionID)
	if err != nil {
		respondMatchingError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, suggestions)
}
