package pipeline

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	domainrepo "github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/metrics"
)

const watchdogBatchSize = 100

// WatchdogConfig controls stuck-run recovery
type WatchdogConfig struct {
	Interval   time.Duration
	StaleAfter time.Duration
}

// Watchdog releases meetings left in processing by a crashed or hung run.
// It applies the stage's failure transition, like a failed run would.
type Watchdog struct {
	meetings domainrepo.MeetingRepository
	cfg      WatchdogConfig
	metrics  *metrics.PipelineMetrics
	logger   *zap.Logger
	now      func() time.Time

	stopCh chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
	active bool
}

// NewWatchdog creates a watchdog; call Start to run it
func NewWatchdog(meetings domainrepo.MeetingRepository, cfg WatchdogConfig, m *metrics.PipelineMetrics, logger *zap.Logger) *Watchdog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watchdog{
		meetings: meetings,
		cfg:      cfg,
		metrics:  m,
		logger:   logger.Named("watchdog"),
		now:      time.Now,
	}
}

// Start launches the sweep loop
func (w *Watchdog) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active {
		return
	}
	w.active = true
	w.stopCh = make(chan struct{})

	w.wg.Add(1)
	go w.loop(ctx)

	w.logger.Info("🧹 Stuck-run watchdog started",
		zap.Duration("interval", w.cfg.Interval),
		zap.Duration("stale_after", w.cfg.StaleAfter),
	)
}

// Stop ends the sweep loop and waits for it to exit
func (w *Watchdog) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		return
	}
	w.active = false
	close(w.stopCh)
	w.mu.Unlock()

	w.wg.Wait()
	w.logger.Info("Stuck-run watchdog stopped")
}

func (w *Watchdog) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil {
				w.logger.Error("❌ Failed to sweep stuck meetings", zap.Error(err))
			}
		}
	}
}

// Sweep releases every meeting that has been processing longer than
// StaleAfter and returns how many were released.
func (w *Watchdog) Sweep(ctx context.Context) (int, error) {
	cutoff := w.now().Add(-w.cfg.StaleAfter)

	stuck, err := w.meetings.FindStaleProcessing(ctx, cutoff, watchdogBatchSize)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, meeting := range stuck {
		stage := entities.StageTranscription
		if meeting.ProcessingStage != nil {
			stage = *meeting.ProcessingStage
		}
		to, err := entities.NextStatus(entities.MeetingStatusProcessing, stage.FailureTrigger())
		if err != nil {
			continue
		}

		applied, err := w.meetings.FinishProcessing(ctx, meeting.ID, stage, to)
		if err != nil {
			w.logger.Error("❌ Failed to release stuck meeting",
				zap.String("meeting_id", meeting.ID.String()),
				zap.String("stage", string(stage)),
				zap.Error(err),
			)
			continue
		}
		if !applied {
			continue
		}

		released++
		w.metrics.ObserveStuckRecovered(string(stage))
		w.logger.Warn("🧹 Released stuck meeting",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("stage", string(stage)),
			zap.String("status", string(to)),
			zap.Timep("processing_started_at", meeting.ProcessingStartedAt),
		)
	}
	return released, nil
}
