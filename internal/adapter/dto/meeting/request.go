package meeting

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Limit        int    `query:"limit" validate:"omitempty,min=0"`
	Offset       int    `query:"offset" validate:"omitempty,min=0"`
	Search       string `query:"search" validate:"omitempty,max=255"`
	Status       string `query:"status" validate:"omitempty,oneof=created processing transcribed summarized error"`
	IncludeStats bool   `query:"include_stats"`
}
