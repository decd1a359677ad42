// Package jobs wires background work onto a cron scheduler.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/findesk/backoffice/internal/service"
)

// Scheduler runs periodic background jobs. Currently a single job: the
// nightly document expiry scan.
type Scheduler struct {
	cron            *cron.Cron
	documentService *service.DocumentService
	log             zerolog.Logger
}

// NewScheduler creates a Scheduler with the provided dependencies.
func NewScheduler(documentService *service.DocumentService, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		documentService: documentService,
		log:             log,
	}
}

// Start registers the expiry scan at the given cron schedule and starts
// the scheduler.
func (s *Scheduler) Start(expirySchedule string) error {
	if _, err := s.cron.AddFunc(expirySchedule, s.runExpiryScan); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runExpiryScan() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	expired, err := s.documentService.ExpireOverdue(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error().Err(err).Msg("document expiry scan failed")
		return
	}
	if expired > 0 {
		s.log.Info().Int("expired", expired).Msg("document expiry scan completed")
	}
}
