package presenter

import (
	dto "github.com/johnquangdev/meeting-insights/internal/adapter/dto/share"
	"github.com/johnquangdev/meeting-insights/internal/usecase/share"
)

// ToShareLinkResponse converts an issued share link
func ToShareLinkResponse(r *share.GenerateResult) *dto.ShareLinkResponse {
	return &dto.ShareLinkResponse{
		Token:             r.Link.Token,
		ShareURL:          r.ShareURL,
		MeetingID:         r.Link.MeetingID.String(),
		ExpiresInDays:     r.Days,
		IncludeTranscript: r.Link.IncludeTranscript,
		ExpiresAt:         r.Link.ExpiresAt,
	}
}

// ToSharedMeetingResponse converts a resolved share link
func ToSharedMeetingResponse(s *share.SharedMeeting) *dto.SharedMeetingResponse {
	return &dto.SharedMeetingResponse{
		MeetingDetailResponse: ToMeetingDetailResponse(s.Detail, s.Link.IncludeTranscript),
		Share: dto.ShareSettings{
			IncludeTranscript: s.Link.IncludeTranscript,
			ExpiresAt:         s.Link.ExpiresAt,
		},
	}
}
