package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/findesk/backoffice/internal/api/handlers"
	custommiddleware "github.com/findesk/backoffice/internal/api/middleware"
	"github.com/findesk/backoffice/internal/config"
	"github.com/findesk/backoffice/internal/events"
	"github.com/findesk/backoffice/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System         *service.SystemService
	Transaction    *service.TransactionService
	Statement      *service.StatementService
	Reconciliation *service.ReconciliationService
	Matching       *service.MatchingService
	Document       *service.DocumentService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, hub *events.Hub, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.With(custommiddleware.RequireCompanyID).Get("/", transactionHandler.ListTransactions)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
			})
		})

		r.Route("/statement", func(r chi.Router) {
			statementHandler := handlers.NewStatementHandler(svc.Statement, svc.Reconciliation)
			r.With(custommiddleware.RequireCompanyID).Get("/", statementHandler.ListStatements)
			r.Post("/", statementHandler.CreateStatement)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", statementHandler.GetStatement)
				r.With(custommiddleware.RequireCompanyID).Get("/reconciliation", statementHandler.GetReconciliation)
			})
		})

		r.Route("/matching", func(r chi.Router) {
			matchingHandler := handlers.NewMatchingHandler(svc.Matching)
			r.Post("/link-credit-card", matchingHandler.LinkCreditCard)
			r.Post("/unlink-credit-card", matchingHandler.UnlinkCreditCard)
			r.Post("/credit-card-adjustment", matchingHandler.UpdateCreditCardAdjustment)
			r.Post("/match-document", matchingHandler.MatchDocument)
			r.Post("/unmatch-document", matchingHandler.UnmatchDocument)
			r.Route("/suggestions/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", matchingHandler.Suggestions)
			})
		})

		r.Route("/document", func(r chi.Router) {
			documentHandler := handlers.NewDocumentHandler(svc.Document)
			r.With(custommiddleware.RequireCompanyID).Get("/", documentHandler.ListDocuments)
			r.Post("/", documentHandler.CreateDocument)
			r.Get("/shared/{token}", documentHandler.RedeemShareLink)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", documentHandler.GetDocument)
				r.Put("/status", documentHandler.UpdateStatus)
				r.Post("/share-link", documentHandler.CreateShareLink)
			})
		})

		eventsHandler := handlers.NewEventsHandler(hub, log)
		r.Get("/events", eventsHandler.Subscribe)
	})

	return r
}
