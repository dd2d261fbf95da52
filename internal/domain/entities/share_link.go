package entities

import (
	"time"

	"github.com/google/uuid"
)

// ShareLink grants read-only access to a processed meeting until it expires
type ShareLink struct {
	Token             string    `json:"token"`
	MeetingID         uuid.UUID `json:"meeting_id"`
	IncludeTranscript bool      `json:"include_transcript"`
	ExpiresAt         time.Time `json:"expires_at"`
	CreatedAt         time.Time `json:"created_at"`
}

// IsExpired reports whether the link is past its expiry at now
func (l *ShareLink) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
