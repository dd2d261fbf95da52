package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entities.Meeting{},
		&entities.TranscriptSegment{},
		&entities.Summary{},
		&entities.ActionItem{},
	))
	return db
}

func createMeeting(t *testing.T, repo repositories.MeetingRepository, title string, status entities.MeetingStatus) *entities.Meeting {
	t.Helper()
	m := entities.NewMeeting(title, entities.MeetingSourceManual)
	m.Status = status
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

func strPtr(s string) *string { return &s }

func TestMeetingRepository_FindByIDMissing(t *testing.T) {
	repo := NewMeetingRepository(newTestDB(t))

	m, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestMeetingRepository_BeginProcessingIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewMeetingRepository(newTestDB(t))
	m := createMeeting(t, repo, "Weekly sync", entities.MeetingStatusCreated)

	applied, err := repo.BeginProcessing(ctx, m.ID, entities.MeetingStatusCreated, entities.StageTranscription)
	require.NoError(t, err)
	assert.True(t, applied)

	// second claim loses: status is no longer created
	applied, err = repo.BeginProcessing(ctx, m.ID, entities.MeetingStatusCreated, entities.StageTranscription)
	require.NoError(t, err)
	assert.False(t, applied)

	got, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.MeetingStatusProcessing, got.Status)
	require.NotNil(t, got.ProcessingStage)
	assert.Equal(t, entities.StageTranscription, *got.ProcessingStage)
	assert.NotNil(t, got.ProcessingStartedAt)
}

func TestMeetingRepository_FinishProcessingChecksStage(t *testing.T) {
	ctx := context.Background()
	repo := NewMeetingRepository(newTestDB(t))
	m := createMeeting(t, repo, "Planning", entities.MeetingStatusTranscribed)

	applied, err := repo.BeginProcessing(ctx, m.ID, entities.MeetingStatusTranscribed, entities.StageSummarization)
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = repo.FinishProcessing(ctx, m.ID, entities.StageTranscription, entities.MeetingStatusError)
	require.NoError(t, err)
	assert.False(t, applied, "wrong stage must not apply")

	applied, err = repo.FinishProcessing(ctx, m.ID, entities.StageSummarization, entities.MeetingStatusTranscribed)
	require.NoError(t, err)
	assert.True(t, applied)

	got, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.MeetingStatusTranscribed, got.Status)
	assert.Nil(t, got.ProcessingStage)
	assert.Nil(t, got.ProcessingStartedAt)
}

func TestMeetingRepository_FindStaleProcessing(t *testing.T) {
	ctx := context.Background()
	repo := NewMeetingRepository(newTestDB(t))
	stuck := createMeeting(t, repo, "Stuck", entities.MeetingStatusCreated)
	_ = createMeeting(t, repo, "Idle", entities.MeetingStatusCreated)

	applied, err := repo.BeginProcessing(ctx, stuck.ID, entities.MeetingStatusCreated, entities.StageTranscription)
	require.NoError(t, err)
	require.True(t, applied)

	none, err := repo.FindStaleProcessing(ctx, time.Now().UTC().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, none)

	stale, err := repo.FindStaleProcessing(ctx, time.Now().UTC().Add(time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, stuck.ID, stale[0].ID)
}

func TestMeetingRepository_ListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewMeetingRepository(newTestDB(t))
	createMeeting(t, repo, "Design review", entities.MeetingStatusSummarized)
	createMeeting(t, repo, "Sprint planning", entities.MeetingStatusCreated)
	createMeeting(t, repo, "Design sync", entities.MeetingStatusCreated)

	meetings, total, err := repo.List(ctx, repositories.MeetingFilters{Search: "design", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, meetings, 2)

	status := entities.MeetingStatusCreated
	meetings, total, err = repo.List(ctx, repositories.MeetingFilters{Status: &status, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, meetings, 1)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[entities.MeetingStatusCreated])
	assert.EqualValues(t, 1, counts[entities.MeetingStatusSummarized])
	assert.EqualValues(t, 0, counts[entities.MeetingStatusError])
}

func TestTranscriptRepository_ReplaceDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	meetings := NewMeetingRepository(db)
	repo := NewTranscriptRepository(db)
	m := createMeeting(t, meetings, "Retro", entities.MeetingStatusCreated)

	first := []*entities.TranscriptSegment{
		{StartS: 0, EndS: 2.5, Text: "hello"},
		{StartS: 2.5, EndS: 4, Text: "world"},
	}
	require.NoError(t, repo.ReplaceForMeeting(ctx, m.ID, first))

	second := []*entities.TranscriptSegment{
		{StartS: 0, EndS: 1, Text: "a"},
		{StartS: 1, EndS: 2, Text: "b"},
		{StartS: 2, EndS: 3, Text: "c"},
	}
	require.NoError(t, repo.ReplaceForMeeting(ctx, m.ID, second))

	got, err := repo.ListByMeeting(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, seg := range got {
		assert.Equal(t, second[i].Text, seg.Text)
		assert.Equal(t, i, seg.Position)
		if i > 0 {
			assert.GreaterOrEqual(t, seg.StartS, got[i-1].StartS)
		}
	}

	counts, err := repo.CountByMeetings(ctx, []uuid.UUID{m.ID, uuid.New()})
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts[m.ID])

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestSummaryRepository_SaveReplacesExisting(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	m := createMeeting(t, NewMeetingRepository(db), "Kickoff", entities.MeetingStatusTranscribed)
	repo := NewSummaryRepository(db)

	first := entities.NewSummary(m.ID, "first", []entities.Decision{{Decision: "ship", Confidence: 0.9}}, nil, nil, "model-a")
	require.NoError(t, repo.Save(ctx, first))

	second := entities.NewSummary(m.ID, "second", nil, []entities.Risk{{Risk: "scope", Impact: "high", Likelihood: "low"}}, nil, "model-b")
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.FindByMeeting(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.TLDR)
	assert.Empty(t, got.Decisions.Data())
	require.Len(t, got.Risks.Data(), 1)
	assert.Equal(t, "scope", got.Risks.Data()[0].Risk)

	missing, err := repo.FindByMeeting(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestActionItemRepository_ReplacePendingKeepsSynced(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	m := createMeeting(t, NewMeetingRepository(db), "Ops", entities.MeetingStatusTranscribed)
	repo := NewActionItemRepository(db)

	require.NoError(t, repo.ReplacePending(ctx, m.ID, []*entities.ActionItem{
		{Task: "old pending"},
		{Task: "already synced", Status: entities.ActionItemStatusSynced},
	}))

	require.NoError(t, repo.ReplacePending(ctx, m.ID, []*entities.ActionItem{
		{Task: "write doc", Assignee: strPtr("Dana")},
		{Task: "book room"},
	}))

	items, err := repo.ListByMeeting(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)

	tasks := make([]string, 0, len(items))
	for _, item := range items {
		tasks = append(tasks, item.Task)
	}
	assert.ElementsMatch(t, []string{"already synced", "write doc", "book room"}, tasks)

	for _, item := range items {
		if item.Task == "book room" {
			assert.Nil(t, item.Assignee)
			assert.Equal(t, entities.ActionItemStatusPending, item.Status)
		}
	}

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}
