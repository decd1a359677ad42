package testutil

import (
	"database/sql"
	"math/rand"
	"sync"
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/findesk/backoffice/internal/events"
	"github.com/findesk/backoffice/internal/repository"
	"github.com/findesk/backoffice/internal/service"
)

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(transactionRepo)
}

func NewTestStatementService(t *testing.T, db *sql.DB) *service.StatementService {
	t.Helper()

	statementRepo := repository.NewStatementRepository(db)

	return service.NewStatementService(statementRepo, zerolog.Nop())
}

func NewTestReconciliationService(t *testing.T, db *sql.DB) *service.ReconciliationService {
	t.Helper()

	return service.NewReconciliationService(
		NewTestTransactionService(t, db),
		NewTestStatementService(t, db),
	)
}

func NewTestMatchingService(t *testing.T, db *sql.DB) *service.MatchingService {
	t.Helper()

	return service.NewMatchingService(
		repository.NewMatchingRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewStatementRepository(db),
		repository.NewDocumentRepository(db),
	)
}

func NewTestDocumentService(t *testing.T, db *sql.DB) *service.DocumentService {
	t.Helper()

	return service.NewDocumentService(
		repository.NewDocumentRepository(db),
		&RecordingPublisher{},
		MakeShareKey(t),
		zerolog.Nop(),
	)
}

// NewTestDocumentServiceWithPublisher creates a DocumentService with the
// given publisher so tests can assert on broadcast events.
func NewTestDocumentServiceWithPublisher(t *testing.T, db *sql.DB, publisher events.Publisher) *service.DocumentService {
	t.Helper()

	return service.NewDocumentService(
		repository.NewDocumentRepository(db),
		publisher,
		MakeShareKey(t),
		zerolog.Nop(),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// RecordingPublisher captures published events for assertions in tests.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

// Publish records the event.
func (p *RecordingPublisher) Publish(event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Events returns a copy of all recorded events.
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// MakeShareKey generates a fernet key for share-token tests.
func MakeShareKey(t *testing.T) *fernet.Key {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate share key: %v", err)
	}
	return &key
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeFileName generates a unique file name for testing.
//
// Example usage:
//
//	name := testutil.MakeFileName("statement")
//	// Returns: "statement-ABC123.pdf"
func MakeFileName(base string) string {
	if base == "" {
		base = "file"
	}
	return base + "-" + randomAlphanumeric(6) + ".pdf"
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
