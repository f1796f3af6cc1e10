// Package jobs tareas programadas de la API (cron).
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/myshop-pos/internal/infrastructure/metrics"
	"github.com/jhoicas/myshop-pos/pkg/logger"
)

// JobWarrantyExpiry nombre del job de vencimiento de garantías (logs y métricas).
const JobWarrantyExpiry = "warranty_expiry"

const jobTimeout = 2 * time.Minute

// WarrantyExpirer lo implementa usecase.WarrantyUseCase.
type WarrantyExpirer interface {
	ExpireOverdue(ctx context.Context) (int64, error)
}

// Scheduler envuelve un cron.Cron con logging y métricas por job.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// NewScheduler crea el scheduler. Las expresiones aceptan descriptores (@daily, @every 1h).
func NewScheduler(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		log:  log.Component("jobs"),
	}
}

// AddWarrantyExpiry programa el vencimiento de garantías con la expresión spec.
func (s *Scheduler) AddWarrantyExpiry(spec string, expirer WarrantyExpirer) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_, _ = RunWarrantyExpiry(ctx, expirer, s.log)
	})
	if err != nil {
		return fmt.Errorf("programar %s (%q): %w", JobWarrantyExpiry, spec, err)
	}
	return nil
}

// Start arranca el cron en su propia goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene el cron y espera a que terminen los jobs en curso o a que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("jobs: timeout esperando jobs en curso")
	}
}

// RunWarrantyExpiry ejecuta una pasada del job y registra resultado y duración.
func RunWarrantyExpiry(ctx context.Context, expirer WarrantyExpirer, log *logger.Logger) (int64, error) {
	start := time.Now()
	n, err := expirer.ExpireOverdue(ctx)
	metrics.RecordJob(JobWarrantyExpiry, err == nil, time.Since(start))
	if err != nil {
		log.Error().Err(err).Str("job", JobWarrantyExpiry).Msg("error venciendo garantías")
		return 0, err
	}
	log.Info().Str("job", JobWarrantyExpiry).Int64("expired", n).Dur("took", time.Since(start)).Msg("garantías vencidas actualizadas")
	return n, nil
}
