package meeting

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
	usecaseErrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	"github.com/johnquangdev/meeting-insights/pkg/jobcontext"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	cleanupTimeout = 10 * time.Second
)

// RecordingStore receives uploaded recordings
type RecordingStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
}

// MeetingService handles meeting uploads and read models
type MeetingService struct {
	meetingRepo    repositories.MeetingRepository
	transcriptRepo repositories.TranscriptRepository
	summaryRepo    repositories.SummaryRepository
	actionItemRepo repositories.ActionItemRepository
	recordings     RecordingStore
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	transcriptRepo repositories.TranscriptRepository,
	summaryRepo repositories.SummaryRepository,
	actionItemRepo repositories.ActionItemRepository,
	recordings RecordingStore,
	maxUploadBytes int64,
	logger *zap.Logger,
) *MeetingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{
		meetingRepo:    meetingRepo,
		transcriptRepo: transcriptRepo,
		summaryRepo:    summaryRepo,
		actionItemRepo: actionItemRepo,
		recordings:     recordings,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadInput represents an uploaded recording
type UploadInput struct {
	Title       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload creates a meeting and stores its recording as <id>.<ext>.
// The meeting row is removed again if the recording cannot be stored.
func (s *MeetingService) Upload(ctx context.Context, input UploadInput) (*entities.Meeting, error) {
	if input.Body == nil || input.Size <= 0 {
		return nil, usecaseErrors.ErrRecordingRequired
	}
	if s.maxUploadBytes > 0 && input.Size > s.maxUploadBytes {
		return nil, usecaseErrors.ErrRecordingTooLarge
	}

	meeting := entities.NewMeeting(input.Title, entities.MeetingSourceManual)
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	key := storage.RecordingKey(meeting.ID.String(), input.Filename)
	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.recordings.UploadFile(ctx, key, input.Body, input.Size, contentType); err != nil {
		cleanupCtx, cancel := jobcontext.Detach(ctx, cleanupTimeout)
		defer cancel()
		if delErr := s.meetingRepo.Delete(cleanupCtx, meeting.ID); delErr != nil {
			s.logger.Error("❌ Failed to remove meeting after upload failure",
				zap.String("meeting_id", meeting.ID.String()),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrUploadFailed, err)
	}

	s.logger.Info("📤 Recording uploaded",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("object", key),
		zap.Int64("size", input.Size),
	)
	return meeting, nil
}

// GetMeeting retrieves a meeting by ID
func (s *MeetingService) GetMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if meeting == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}
	return meeting, nil
}

// MeetingDetail is a meeting with everything the pipeline produced for it
type MeetingDetail struct {
	Meeting     *entities.Meeting
	Summary     *entities.Summary
	ActionItems []*entities.ActionItem
	Transcript  []*entities.TranscriptSegment
}

// GetDetail reads the meeting and its outputs. The reads run concurrently
// and each sees whatever is committed at the time.
func (s *MeetingService) GetDetail(ctx context.Context, meetingID uuid.UUID, includeTranscript bool) (*MeetingDetail, error) {
	meeting, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	detail := &MeetingDetail{
		Meeting:     meeting,
		ActionItems: []*entities.ActionItem{},
		Transcript:  []*entities.TranscriptSegment{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.summaryRepo.FindByMeeting(gctx, meetingID)
		if err != nil {
			return fmt.Errorf("failed to get summary: %w", err)
		}
		detail.Summary = summary
		return nil
	})
	g.Go(func() error {
		items, err := s.actionItemRepo.ListByMeeting(gctx, meetingID)
		if err != nil {
			return fmt.Errorf("failed to get action items: %w", err)
		}
		if items != nil {
			detail.ActionItems = items
		}
		return nil
	})
	if includeTranscript {
		g.Go(func() error {
			segments, err := s.transcriptRepo.ListByMeeting(gctx, meetingID)
			if err != nil {
				return fmt.Errorf("failed to get transcript: %w", err)
			}
			if segments != nil {
				detail.Transcript = segments
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// StatusResult is the polling view of a meeting
type StatusResult struct {
	MeetingID           uuid.UUID
	Status              entities.MeetingStatus
	ProcessingStage     *entities.ProcessingStage
	ProcessingStartedAt *time.Time
	UpdatedAt           time.Time
}

// GetStatus returns the current status of a meeting
func (s *MeetingService) GetStatus(ctx context.Context, meetingID uuid.UUID) (*StatusResult, error) {
	meeting, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return &StatusResult{
		MeetingID:           meeting.ID,
		Status:              meeting.Status,
		ProcessingStage:     meeting.ProcessingStage,
		ProcessingStartedAt: meeting.ProcessingStartedAt,
		UpdatedAt:           meeting.UpdatedAt,
	}, nil
}

// ListInput represents filters for listing meetings
type ListInput struct {
	Status       *entities.MeetingStatus
	Search       string
	Limit        int
	Offset       int
	IncludeStats bool
}

// ListItem is a meeting with optional per-meeting counts
type ListItem struct {
	Meeting         *entities.Meeting
	SegmentCount    *int64
	ActionItemCount *int64
}

// ListResult is one page of meetings
type ListResult struct {
	Items  []ListItem
	Total  int64
	Limit  int
	Offset int
}

// ListMeetings retrieves meetings newest first
func (s *MeetingService) ListMeetings(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultListLimit
	}
	if input.Limit > MaxListLimit {
		input.Limit = MaxListLimit
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	meetings, total, err := s.meetingRepo.List(ctx, repositories.MeetingFilters{
		Status: input.Status,
		Search: input.Search,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	result := &ListResult{
		Items:  make([]ListItem, 0, len(meetings)),
		Total:  total,
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	for _, m := range meetings {
		result.Items = append(result.Items, ListItem{Meeting: m})
	}

	if !input.IncludeStats || len(meetings) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(meetings))
	for _, m := range meetings {
		ids = append(ids, m.ID)
	}

	var segmentCounts, itemCounts map[uuid.UUID]int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		segmentCounts, err = s.transcriptRepo.CountByMeetings(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		itemCounts, err = s.actionItemRepo.CountByMeetings(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count meeting outputs: %w", err)
	}

	for i := range result.Items {
		id := result.Items[i].Meeting.ID
		segments := segmentCounts[id]
		items := itemCounts[id]
		result.Items[i].SegmentCount = &segments
		result.Items[i].ActionItemCount = &items
	}
	return result, nil
}

// Stats aggregates meeting counts for the dashboard
type Stats struct {
	Total            int64
	ByStatus         map[entities.MeetingStatus]int64
	TotalSegments    int64
	TotalActionItems int64
}

// GetStats returns meeting statistics
func (s *MeetingService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		byStatus, err := s.meetingRepo.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("failed to count meetings: %w", err)
		}
		stats.ByStatus = byStatus
		return nil
	})
	g.Go(func() error {
		n, err := s.transcriptRepo.CountAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to count segments: %w", err)
		}
		stats.TotalSegments = n
		return nil
	})
	g.Go(func() error {
		n, err := s.actionItemRepo.CountAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to count action items: %w", err)
		}
		stats.TotalActionItems = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, n := range stats.ByStatus {
		stats.Total += n
	}
	return stats, nil
}
