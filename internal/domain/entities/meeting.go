package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MeetingSource represents where a recording came from
type MeetingSource string

const (
	MeetingSourceManual     MeetingSource = "manual"
	MeetingSourceZoom       MeetingSource = "zoom"
	MeetingSourceGoogleMeet MeetingSource = "google_meet"
)

// DefaultMeetingTitle is used when an upload carries no title
const DefaultMeetingTitle = "Untitled meeting"

// Meeting is one recorded conversation and its processing status
type Meeting struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title               string           `gorm:"type:varchar(255);not null" json:"title"`
	Source              MeetingSource    `gorm:"type:varchar(20);not null;default:'manual'" json:"source"`
	Status              MeetingStatus    `gorm:"type:varchar(20);not null;default:'created';index" json:"status"`
	ProcessingStage     *ProcessingStage `gorm:"type:varchar(20)" json:"processing_stage,omitempty"`
	ProcessingStartedAt *time.Time       `gorm:"index" json:"processing_started_at,omitempty"`
	CreatedAt           time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting in the created state
func NewMeeting(title string, source MeetingSource) *Meeting {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultMeetingTitle
	}
	if source == "" {
		source = MeetingSourceManual
	}
	now := time.Now().UTC()
	return &Meeting{
		ID:        uuid.New(),
		Title:     title,
		Source:    source,
		Status:    MeetingStatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsProcessing reports whether a pipeline stage currently owns the meeting
func (m *Meeting) IsProcessing() bool {
	return m.Status == MeetingStatusProcessing
}

// IsShareable reports whether the meeting has produced anything worth sharing
func (m *Meeting) IsShareable() bool {
	return m.Status != MeetingStatusCreated
}
