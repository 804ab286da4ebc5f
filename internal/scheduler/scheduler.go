// Package scheduler triggers worker cycles on a fixed interval. Overlapping
// ticks are harmless: the per-job claim in the queue store guarantees each
// job is won by exactly one cycle.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/wb-go/wbf/zlog"

	"github.com/opticstore/notify-queue/internal/worker"
)

type cycleRunner interface {
	RunCycle(ctx context.Context, batchSize int) (worker.CycleResult, error)
}

// Scheduler invokes the worker on a cron spec (e.g. "@every 1m").
type Scheduler struct {
	worker    cycleRunner
	spec      string
	batchSize int
	cron      *cron.Cron
}

// New creates a scheduler with the given cron spec and batch size.
func New(w cycleRunner, spec string, batchSize int) *Scheduler {
	return &Scheduler{
		worker:    w,
		spec:      spec,
		batchSize: batchSize,
	}
}

// Start registers the cycle job and starts the cron loop. The context bounds
// each individual cycle.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New()

	_, err := s.cron.AddFunc(s.spec, func() {
		result, err := s.worker.RunCycle(ctx, s.batchSize)
		if err != nil {
			zlog.Logger.Error().Err(err).Msg("worker cycle failed")
			return
		}

		if result.Message != "" {
			zlog.Logger.Printf("worker cycle: %s", result.Message)
			return
		}

		zlog.Logger.Printf("worker cycle: processed %d jobs", len(result.Processed))
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

// Stop halts the cron loop and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
