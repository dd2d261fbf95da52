package share

// CreateShareRequest represents a request to share a meeting
type CreateShareRequest struct {
	MeetingID         string `json:"meeting_id" validate:"required,uuid"`
	ExpiresInDays     *int   `json:"expires_in_days,omitempty" validate:"omitempty,min=1"`
	IncludeTranscript *bool  `json:"include_transcript,omitempty"`
}
