package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/findesk/backoffice/internal/api/request"
	"github.com/findesk/backoffice/internal/api/response"
	"github.com/findesk/backoffice/internal/apperrors"
	"github.com/findesk/backoffice/internal/service"
	"github.com/findesk/backoffice/internal/validation"
)

// StatementHandler handles HTTP requests for statement endpoints,
// including the derived reconciliation view.
type StatementHandler struct {
	statementService      *service.StatementService
	reconciliationService *service.ReconciliationService
}

// NewStatementHandler creates a new StatementHandler with the provided service dependencies.
func NewStatementHandler(
	statementService *service.StatementService,
	reconciliationService *service.ReconciliationService,
) *StatementHandler {
	return &StatementHandler{
		statementService:      statementService,
		reconciliationService: reconciliationService,
	}
}

// ListStatements handles GET requests to retrieve statements for a company
// and account type.
//
// Endpoint: GET /api/statement?companyId={uuid}&accountType=credit_card
// Response: 200 OK with array of Statement
// Error: 400 Bad Request if companyId (middleware) or accountType is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *StatementHandler) ListStatements(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("companyId")
	accountType := r.URL.Query().Get("accountType")

	if err := validation.ValidateAccountType(accountType); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	statements, err := h.statementService.ListStatements(r.Context(), companyID, accountType)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve statements", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, statements)
}

// CreateStatement handles POST requests to register an uploaded statement.
//
// Endpoint: POST /api/statement
// Request Body: CreateStatementRequest
// Response: 201 Created with Statement
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *StatementHandler) CreateStatement(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateStatementRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateStatement(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	statement, err := h.statementService.CreateStatement(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create statement", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, statement)
}

// GetStatement handles GET requests to retrieve a single statement by ID.
//
// Endpoint: GET /api/statement/{uuid}
// Response: 200 OK with Statement
// Error: 404 Not Found if statement not found
// Error: 500 Internal Server Error if retrieval fails
func (h *StatementHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "uuid")

	statement, err := h.statementService.GetStatement(statementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStatementNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStatementNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve statement", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, statement)
}

// GetReconciliation handles GET requests for the derived reconciliation
// aggregate of a statement. The aggregate is computed from the company's
// transaction index on every call, never persisted.
//
// Endpoint: GET /api/statement/{uuid}/reconciliation?companyId={uuid}
// Response: 200 OK with reconcile.Result
// Error: 400 Bad Request if companyId is missing or invalid (validated by middleware)
// Error: 404 Not Found if the statement id yields no reconciliation context
// Error: 500 Internal Server Error if computation fails
func (h *StatementHandler) GetReconciliation(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "uuid")
	companyID := r.URL.Query().Get("companyId")

	result, err := h.reconciliationService.GetReconciliation(r.Context(), companyID, statementID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute reconciliation", err.Error())
		return
	}
	if result == nil {
		response.RespondError(w, http.StatusNotFound, "no reconciliation context for statement", "")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
