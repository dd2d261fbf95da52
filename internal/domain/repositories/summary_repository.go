package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// SummaryRepository persists meeting summaries
type SummaryRepository interface {
	// Save writes the summary, replacing any previous summary for the meeting
	Save(ctx context.Context, summary *entities.Summary) error

	// FindByMeeting returns the meeting's summary; nil, nil when absent
	FindByMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Summary, error)
}

// ActionItemRepository persists action items
type ActionItemRepository interface {
	// ReplacePending deletes the meeting's pending items and inserts items.
	// Items already synced or done are left alone.
	ReplacePending(ctx context.Context, meetingID uuid.UUID, items []*entities.ActionItem) error

	// ListByMeeting returns items in creation order
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)

	// CountByMeetings returns item counts keyed by meeting
	CountByMeetings(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	// CountAll returns the total number of stored action items
	CountAll(ctx context.Context) (int64, error)
}
