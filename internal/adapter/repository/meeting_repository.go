package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// Delete removes a meeting
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Meeting{}, "id = ?", id).Error
}

// List retrieves meetings with filters and pagination
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	var meetings []*entities.Meeting
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Meeting{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", strings.ToLower(filters.Search))
		query = query.Where("LOWER(title) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&meetings).Error
	return meetings, total, err
}

// CountByStatus returns meeting counts grouped by status
func (r *meetingRepository) CountByStatus(ctx context.Context) (map[entities.MeetingStatus]int64, error) {
	var rows []struct {
		Status entities.MeetingStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.MeetingStatus]int64, len(entities.AllMeetingStatuses))
	for _, status := range entities.AllMeetingStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// BeginProcessing claims the meeting for a pipeline stage with a conditional update
func (r *meetingRepository) BeginProcessing(ctx context.Context, id uuid.UUID, from entities.MeetingStatus, stage entities.ProcessingStage) (bool, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":                entities.MeetingStatusProcessing,
			"processing_stage":      stage,
			"processing_started_at": now,
			"updated_at":            now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FinishProcessing releases the meeting from a pipeline stage
func (r *meetingRepository) FinishProcessing(ctx context.Context, id uuid.UUID, stage entities.ProcessingStage, to entities.MeetingStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND status = ? AND processing_stage = ?", id, entities.MeetingStatusProcessing, stage).
		Updates(map[string]interface{}{
			"status":                to,
			"processing_stage":      nil,
			"processing_started_at": nil,
			"updated_at":            time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindStaleProcessing lists meetings stuck in processing since before cutoff
func (r *meetingRepository) FindStaleProcessing(ctx context.Context, cutoff time.Time, limit int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	query := r.db.WithContext(ctx).
		Where("status = ? AND processing_started_at < ?", entities.MeetingStatusProcessing, cutoff).
		Order("processing_started_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}
