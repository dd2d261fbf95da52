package entities

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptSegment is one timed span of transcribed speech
type TranscriptSegment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;index:idx_transcript_segments_meeting_position,priority:1" json:"meeting_id"`
	Position  int       `gorm:"not null;index:idx_transcript_segments_meeting_position,priority:2" json:"position"`
	StartS    float64   `gorm:"column:start_s;not null" json:"start_s"`
	EndS      float64   `gorm:"column:end_s;not null" json:"end_s"`
	Speaker   *string   `gorm:"type:varchar(100)" json:"speaker"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for TranscriptSegment
func (TranscriptSegment) TableName() string {
	return "transcript_segments"
}

// Duration returns the segment length in seconds
func (s *TranscriptSegment) Duration() float64 {
	return s.EndS - s.StartS
}
