package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create inserts a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID; returns nil, nil when absent
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// Delete removes a meeting row
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves meetings with filters and pagination, newest first
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)

	// CountByStatus returns the number of meetings per status
	CountByStatus(ctx context.Context) (map[entities.MeetingStatus]int64, error)

	// BeginProcessing moves a meeting from status from into processing for
	// stage, only if its current status still equals from. It reports
	// whether the update applied.
	BeginProcessing(ctx context.Context, id uuid.UUID, from entities.MeetingStatus, stage entities.ProcessingStage) (bool, error)

	// FinishProcessing moves a meeting out of processing for stage into
	// status to, only if it is still processing that stage.
	FinishProcessing(ctx context.Context, id uuid.UUID, stage entities.ProcessingStage, to entities.MeetingStatus) (bool, error)

	// FindStaleProcessing lists meetings that entered processing before cutoff
	FindStaleProcessing(ctx context.Context, cutoff time.Time, limit int) ([]*entities.Meeting, error)
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	Status *entities.MeetingStatus
	Search string // Search in title
	Limit  int
	Offset int
}
