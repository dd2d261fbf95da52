package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

const segmentInsertBatchSize = 200

// transcriptRepository handles transcript segment storage
type transcriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) repositories.TranscriptRepository {
	return &transcriptRepository{db: db}
}

// ReplaceForMeeting deletes existing segments and inserts the new set in one transaction
func (r *transcriptRepository) ReplaceForMeeting(ctx context.Context, meetingID uuid.UUID, segments []*entities.TranscriptSegment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&entities.TranscriptSegment{}).Error; err != nil {
			return err
		}
		if len(segments) == 0 {
			return nil
		}
		for i, seg := range segments {
			if seg.ID == uuid.Nil {
				seg.ID = uuid.New()
			}
			seg.MeetingID = meetingID
			seg.Position = i
		}
		return tx.CreateInBatches(segments, segmentInsertBatchSize).Error
	})
}

// ListByMeeting returns the meeting's segments ordered by start offset
func (r *transcriptRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.TranscriptSegment, error) {
	var segments []*entities.TranscriptSegment
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("start_s ASC, position ASC").
		Find(&segments).Error
	if err != nil {
		return nil, err
	}
	return segments, nil
}

// CountByMeetings counts segments per meeting
func (r *transcriptRepository) CountByMeetings(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return countByMeetings(ctx, r.db, &entities.TranscriptSegment{}, meetingIDs)
}

// CountAll counts every stored segment
func (r *transcriptRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entities.TranscriptSegment{}).Count(&total).Error
	return total, err
}

// countByMeetings runs a grouped count over any table keyed by meeting_id
func countByMeetings(ctx context.Context, db *gorm.DB, model interface{}, meetingIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(meetingIDs))
	if len(meetingIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		MeetingID uuid.UUID
		Count     int64
	}
	err := db.WithContext(ctx).
		Model(model).
		Select("meeting_id, COUNT(*) AS count").
		Where("meeting_id IN ?", meetingIDs).
		Group("meeting_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, id := range meetingIDs {
		counts[id] = 0
	}
	for _, row := range rows {
		counts[row.MeetingID] = row.Count
	}
	return counts, nil
}
