package share

import (
	"time"

	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/meeting"
)

// ShareLinkResponse represents an issued share link
type ShareLinkResponse struct {
	Token             string    `json:"token"`
	ShareURL          string    `json:"share_url"`
	MeetingID         string    `json:"meeting_id"`
	ExpiresInDays     int       `json:"expires_in_days"`
	IncludeTranscript bool      `json:"include_transcript"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// ShareSettings describes the link a shared meeting was opened through
type ShareSettings struct {
	IncludeTranscript bool      `json:"include_transcript"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// SharedMeetingResponse is the public view of a shared meeting
type SharedMeetingResponse struct {
	*meeting.MeetingDetailResponse
	Share ShareSettings `json:"share"`
}
