package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/metrics"
)

func processingSince(stage entities.ProcessingStage, startedAt time.Time) *entities.Meeting {
	m := meetingIn(entities.MeetingStatusProcessing)
	m.ProcessingStage = &stage
	m.ProcessingStartedAt = &startedAt
	return m
}

func TestWatchdogSweep(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	stuckTranscription := processingSince(entities.StageTranscription, now.Add(-time.Hour))
	stuckSummarization := processingSince(entities.StageSummarization, now.Add(-20*time.Minute))
	fresh := processingSince(entities.StageTranscription, now.Add(-time.Minute))
	done := meetingIn(entities.MeetingStatusSummarized)

	repo := newFakeMeetingRepo(stuckTranscription, stuckSummarization, fresh, done)
	m := metrics.NewPipelineMetrics(prometheus.NewRegistry())

	w := NewWatchdog(repo, WatchdogConfig{Interval: time.Minute, StaleAfter: 15 * time.Minute}, m, zaptest.NewLogger(t))
	w.now = func() time.Time { return now }

	released, err := w.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, released)

	assert.Equal(t, entities.MeetingStatusError, repo.status(stuckTranscription.ID))
	assert.Equal(t, entities.MeetingStatusTranscribed, repo.status(stuckSummarization.ID))
	assert.Equal(t, entities.MeetingStatusProcessing, repo.status(fresh.ID))
	assert.Equal(t, entities.MeetingStatusSummarized, repo.status(done.ID))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StuckRecoveredTotal.WithLabelValues("transcription")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StuckRecoveredTotal.WithLabelValues("summarization")))

	released, err = w.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, released)
}

func TestWatchdogStartStop(t *testing.T) {
	stuck := processingSince(entities.StageSummarization, time.Now().Add(-time.Hour))
	repo := newFakeMeetingRepo(stuck)

	w := NewWatchdog(repo, WatchdogConfig{Interval: 5 * time.Millisecond, StaleAfter: time.Minute}, nil, nil)
	w.Start(context.Background())
	w.Start(context.Background())

	assert.Eventually(t, func() bool {
		return repo.status(stuck.ID) == entities.MeetingStatusTranscribed
	}, time.Second, 5*time.Millisecond)

	w.Stop()
	w.Stop()
}
