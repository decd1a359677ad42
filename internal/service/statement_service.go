package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/findesk/backoffice/internal/api/request"
	"github.com/findesk/backoffice/internal/apperrors"
	"github.com/findesk/backoffice/internal/model"
	"github.com/findesk/backoffice/internal/repository"
)

// StatementService handles statement listings and the statement totals map.
type StatementService struct {
	statementRepo *repository.StatementRepository
	log           zerolog.Logger
}

// NewStatementService creates a new StatementService with the provided repository dependencies.
func NewStatementService(statementRepo *repository.StatementRepository, log zerolog.Logger) *StatementService {
	return &StatementService{
		statementRepo: statementRepo,
		log:           log,
	}
}

// ListStatements retrieves all statements for a company and account type.
func (s *StatementService) ListStatements(ctx context.Context, companyID, accountType string) ([]model.Statement, error) {
	return s.statementRepo.ListStatements(ctx, companyID, accountType)
}

// GetStatement retrieves a single statement by ID.
func (s *StatementService) GetStatement(statementID string) (model.Statement, error) {
	statement, err := s.statementRepo.GetStatement(statementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Statement{}, apperrors.ErrStatementNotFound
		}
		return model.Statement{}, err
	}
	return statement, nil
}

// CreateStatement registers an uploaded statement.
func (s *StatementService) CreateStatement(ctx context.Context, req request.CreateStatementRequest) (*model.Statement, error) {
	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return nil, err
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	statement := &model.Statement{
		ID:          uuid.New().String(),
		CompanyID:   req.CompanyID,
		FileName:    req.FileName,
		AccountType: req.AccountType,
		Total:       req.Total,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.statementRepo.InsertStatement(ctx, statement); err != nil {
		return nil, fmt.Errorf("failed to create statement: %w", err)
	}

	return statement, nil
}

// BuildTotalsMap queries the bank-account and credit-card statement
// listings for a company concurrently and builds a map from statement id
// to authoritative total. Statements without an extracted total are
// omitted. A failed branch is logged and contributes nothing; the map may
// be partial but the call never fails. The map is rebuilt in full on each
// invocation, so repeating the call is always safe.
func (s *StatementService) BuildTotalsMap(ctx context.Context, companyID string) map[string]float64 {
	accountTypes := []string{model.AccountTypeBank, model.AccountTypeCreditCard}
	results := make([][]model.Statement, len(accountTypes))

	g, ctx := errgroup.WithContext(ctx)
	for i, accountType := range accountTypes {
		i, accountType := i, accountType
		g.Go(func() error {
			statements, err := s.statementRepo.ListStatements(ctx, companyID, accountType)
			if err != nil {
				// Each branch fails independently; the other still
				// contributes its statements to the map.
				s.log.Error().Err(err).
					Str("companyId", companyID).
					Str("accountType", accountType).
					Msg("statement totals query failed")
				return nil
			}
			results[i] = statements
			return nil
		})
	}
	_ = g.Wait()

	totals := make(map[string]float64)
	for _, statements := range results {
		for _, statement := range statements {
			if statement.Total == nil {
				continue
			}
			totals[statement.ID] = *statement.Total
		}
	}

	return totals
}
