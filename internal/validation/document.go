package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/findesk/backoffice/internal/api/request"
	"github.com/findesk/backoffice/internal/model"
)

// ValidDocumentStatus contains the allowed document status transitions
// requestable through the API.
var ValidDocumentStatus = map[string]bool{
	model.DocumentStatusProcessing: true,
	model.DocumentStatusProcessed:  true,
	model.DocumentStatusFailed:     true,
}

// ValidateCreateDocument validates a document registration request.
func ValidateCreateDocument(req request.CreateDocumentRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.CompanyID); err != nil {
		errors["companyId"] = err.Error()
	}
	if strings.TrimSpace(req.FileName) == "" {
		errors["fileName"] = "fileName is required"
	}
	if _, err := time.Parse("2006-01-02", req.DocumentDate); err != nil {
		errors["documentDate"] = err.Error()
	}
	if req.ExpiryDate != nil {
		if _, err := time.Parse("2006-01-02", *req.ExpiryDate); err != nil {
			errors["expiryDate"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateDocumentStatus validates a status transition request. The
// expired status is owned by the expiry scan and cannot be set directly.
func ValidateDocumentStatus(status string) error {
	if !ValidDocumentStatus[status] {
		return &Error{Fields: map[string]string{
			"status": fmt.Sprintf("invalid status: %s", status),
		}}
	}
	return nil
}
