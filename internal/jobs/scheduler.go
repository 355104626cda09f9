package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Reconciler recomputes every stored rating and reports how many it fixed.
type Reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

const reconcileTimeout = 5 * time.Minute

// Scheduler runs background jobs on cron expressions.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// AddRatingReconcile registers the rating job. An empty spec disables it.
func (s *Scheduler) AddRatingReconcile(spec string, r Reconciler) error {
	if spec == "" {
		slog.Default().Info("rating reconciliation disabled")
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		RunRatingReconcile(context.Background(), r)
	})
	return err
}

// RunRatingReconcile executes one reconciliation pass.
func RunRatingReconcile(ctx context.Context, r Reconciler) {
	ctx, cancel := context.WithTimeout(ctx, reconcileTimeout)
	defer cancel()

	start := time.Now()
	fixed, err := r.Reconcile(ctx)
	if err != nil {
		slog.Default().Error("rating reconciliation failed", "recomputed", fixed, "error", err)
		return
	}
	slog.Default().Info("rating reconciliation finished",
		"recomputed", fixed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running job up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
