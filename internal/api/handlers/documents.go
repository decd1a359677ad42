package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/findesk/backoffice/internal/api/request"
	"github.com/findesk/backoffice/internal/api/response"
	"github.com/findesk/backoffice/internal/apperrors"
	"github.com/findesk/backoffice/internal/service"
	"github.com/findesk/backoffice/internal/validation"
)

// DocumentHandler handles HTTP requests for locker document endpoints.
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler with the provided service dependency.
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// ListDocuments handles GET requests to retrieve all locker documents for a company.
//
// Endpoint: GET /api/document?companyId={uuid}
// Response: 200 OK with array of Document
// Error: 400 Bad Request if companyId is missing or invalid (validated by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("companyId")

	documents, err := h.documentService.ListDocuments(r.Context(), companyID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve documents", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, documents)
}

// GetDocument handles GET requests to retrieve a single document by ID.
//
// Endpoint: GET /api/document/{uuid}
// Response: 200 OK with Document
// Error: 404 Not Found if document not found
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "uuid")

	document, err := h.documentService.GetDocument(documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDocumentNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve document", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, document)
}

// CreateDocument handles POST requests to register a new locker document.
//
// Endpoint: POST /api/document
// Request Body: CreateDocumentRequest
// Response: 201 Created with Document
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateDocumentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateDocument(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	document, err := h.documentService.CreateDocument(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create document", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, document)
}

// UpdateStatus handles PUT requests to transition a document's processing
// status. The matching event is broadcast on the notification channel.
//
// Endpoint: PUT /api/document/{uuid}/status
// Request Body: UpdateDocumentStatusRequest
// Response: 200 OK with updated Document
// Error: 400 Bad Request if the status value is invalid
// Error: 404 Not Found if document not found
func (h *DocumentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateDocumentStatusRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateDocumentStatus(req.Status); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	document, err := h.documentService.UpdateStatus(r.Context(), documentID, req.Status)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDocumentNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update document status", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, document)
}

// ShareLinkResponse carries a minted share token and its expiry.
type ShareLinkResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateShareLink handles POST requests to mint a time-bounded share token
// for a document.
//
// Endpoint: POST /api/document/{uuid}/share-link
// Request Body: ShareLinkRequest (ttlSeconds optional, capped at 24h)
// Response: 201 Created with ShareLinkResponse
// Error: 404 Not Found if document not found
func (h *DocumentHandler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "uuid")

	// Empty body means default TTL.
	req, err := parseJSON[request.ShareLinkRequest](r)
	if err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token, expiresAt, err := h.documentService.GenerateShareToken(documentID, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDocumentNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create share link", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, ShareLinkResponse{Token: token, ExpiresAt: expiresAt})
}

// RedeemShareLink handles GET requests resolving a share token to its
// document.
//
// Endpoint: GET /api/document/shared/{token}
// Response: 200 OK with Document
// Error: 404 Not Found if the token is invalid, expired or forged
func (h *DocumentHandler) RedeemShareLink(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	document, err := h.documentService.RedeemShareToken(token)
	if err != nil {
		if errors.Is(err, apperrors.ErrShareTokenInvalid) || errors.Is(err, apperrors.ErrDocumentNotFound) {
			response.RespondError(w, http.StatusNotFound, "share link invalid or expired", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to resolve share link", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, document)
}
