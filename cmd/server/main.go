package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/findesk/backoffice/internal/api"
	"github.com/findesk/backoffice/internal/config"
	"github.com/findesk/backoffice/internal/database"
	"github.com/findesk/backoffice/internal/events"
	"github.com/findesk/backoffice/internal/jobs"
	"github.com/findesk/backoffice/internal/logger"
	"github.com/findesk/backoffice/internal/repository"
	"github.com/findesk/backoffice/internal/service"
)

func main() {
	log := logger.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Event channel
	hub := events.NewHub()
	go hub.Run()

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	statementRepo := repository.NewStatementRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	matchingRepo := repository.NewMatchingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	transactionService := service.NewTransactionService(transactionRepo)
	statementService := service.NewStatementService(statementRepo, log)
	reconciliationService := service.NewReconciliationService(transactionService, statementService)
	matchingService := service.NewMatchingService(matchingRepo, transactionRepo, statementRepo, documentRepo)
	documentService := service.NewDocumentService(documentRepo, hub, cfg.ShareLink.Key, log)

	// Background jobs
	scheduler := jobs.NewScheduler(documentService, log)
	if err := scheduler.Start(cfg.Jobs.ExpiryScanSchedule); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:         systemService,
		Transaction:    transactionService,
		Statement:      statementService,
		Reconciliation: reconciliationService,
		Matching:       matchingService,
		Document:       documentService,
	}, hub, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
