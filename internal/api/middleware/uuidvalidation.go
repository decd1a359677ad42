// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/findesk/backoffice/internal/api/response"
	"github.com/findesk/backoffice/internal/validation"
)

// ValidateUUIDMiddleware validates that the uuid URL parameter is present
// and is a valid UUID. Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.Route("/{uuid}", func(r chi.Router) {
//	    r.Use(middleware.ValidateUUIDMiddleware)
//	    r.Get("/", handler.GetDocument)
//	})
func ValidateUUIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		UUID := chi.URLParam(r, "uuid")

		if UUID == "" {
			response.RespondError(w, http.StatusBadRequest, "valid UUID is required", "")
			return
		}

		if err := validation.ValidateUUID(UUID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireCompanyID validates that the companyId query parameter is present
// and is a valid UUID. The selected company is explicit per request rather
// than ambient state.
func RequireCompanyID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID := r.URL.Query().Get("companyId")

		if companyID == "" {
			response.RespondError(w, http.StatusBadRequest, "companyId query parameter is required", "")
			return
		}

		if err := validation.ValidateUUID(companyID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid companyId format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
