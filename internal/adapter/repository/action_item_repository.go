package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

type actionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db *gorm.DB) repositories.ActionItemRepository {
	return &actionItemRepository{db: db}
}

// ReplacePending swaps the meeting's pending items for items in one transaction
func (r *actionItemRepository) ReplacePending(ctx context.Context, meetingID uuid.UUID, items []*entities.ActionItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("meeting_id = ? AND status = ?", meetingID, entities.ActionItemStatusPending).
			Delete(&entities.ActionItem{}).Error
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i, item := range items {
			item.Position = i
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			item.MeetingID = meetingID
			if item.Status == "" {
				item.Status = entities.ActionItemStatusPending
			}
		}
		return tx.Create(items).Error
	})
}

// ListByMeeting returns the meeting's action items in creation order
func (r *actionItemRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC, position ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CountByMeetings counts action items per meeting
func (r *actionItemRepository) CountByMeetings(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return countByMeetings(ctx, r.db, &entities.ActionItem{}, meetingIDs)
}

// CountAll counts every stored action item
func (r *actionItemRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entities.ActionItem{}).Count(&total).Error
	return total, err
}
