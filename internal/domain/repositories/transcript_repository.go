package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// TranscriptRepository persists transcript segments
type TranscriptRepository interface {
	// ReplaceForMeeting atomically swaps the meeting's segments for segments
	ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, segments []*entities.TranscriptSegment) error

	// ListByMeeting returns segments ordered by start offset
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.TranscriptSegment, error)

	// CountByMeetings returns segment counts keyed by meeting
	CountByMeetings(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	// CountAll returns the total number of stored segments
	CountAll(ctx context.Context) (int64, error)
}
