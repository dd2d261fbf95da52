package presenter

import (
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/common"
	dto "github.com/johnquangdev/meeting-insights/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/meeting"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *dto.MeetingResponse {
	if m == nil {
		return nil
	}

	response := &dto.MeetingResponse{
		ID:                  m.ID.String(),
		Title:               m.Title,
		Source:              string(m.Source),
		Status:              string(m.Status),
		ProcessingStartedAt: m.ProcessingStartedAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.ProcessingStage != nil {
		stage := string(*m.ProcessingStage)
		response.ProcessingStage = &stage
	}
	return response
}

// ToMeetingListResponse converts a page of meetings to MeetingListResponse
func ToMeetingListResponse(result *meeting.ListResult) *dto.MeetingListResponse {
	meetings := make([]*dto.MeetingResponse, len(result.Items))
	for i, item := range result.Items {
		r := ToMeetingResponse(item.Meeting)
		r.SegmentCount = item.SegmentCount
		r.ActionItemCount = item.ActionItemCount
		meetings[i] = r
	}

	return &dto.MeetingListResponse{
		Meetings: meetings,
		Pagination: &common.PaginationResponse{
			Limit:  result.Limit,
			Offset: result.Offset,
			Total:  result.Total,
		},
	}
}

// ToStatusResponse converts a status read to StatusResponse
func ToStatusResponse(s *meeting.StatusResult) *dto.StatusResponse {
	response := &dto.StatusResponse{
		MeetingID:           s.MeetingID.String(),
		Status:              string(s.Status),
		ProcessingStartedAt: s.ProcessingStartedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	if s.ProcessingStage != nil {
		stage := string(*s.ProcessingStage)
		response.ProcessingStage = &stage
	}
	return response
}

// ToStatsResponse converts meeting statistics. Every status is listed,
// including those with no meetings.
func ToStatsResponse(s *meeting.Stats) *dto.StatsResponse {
	byStatus := make(map[string]int64, len(entities.AllMeetingStatuses))
	for _, status := range entities.AllMeetingStatuses {
		byStatus[string(status)] = s.ByStatus[status]
	}
	return &dto.StatsResponse{
		Total:            s.Total,
		ByStatus:         byStatus,
		TotalSegments:    s.TotalSegments,
		TotalActionItems: s.TotalActionItems,
	}
}

// ToSummaryResponse converts a Summary entity
func ToSummaryResponse(s *entities.Summary) *dto.SummaryResponse {
	if s == nil {
		return nil
	}
	return &dto.SummaryResponse{
		TLDR:      s.TLDR,
		Decisions: nonNil(s.Decisions.Data()),
		Risks:     nonNil(s.Risks.Data()),
		Questions: nonNil(s.Questions.Data()),
		Model:     s.Model,
		CreatedAt: s.CreatedAt,
	}
}

// ToActionItemResponses converts action items, keeping their order
func ToActionItemResponses(items []*entities.ActionItem) []*dto.ActionItemResponse {
	out := make([]*dto.ActionItemResponse, len(items))
	for i, item := range items {
		out[i] = &dto.ActionItemResponse{
			ID:          item.ID.String(),
			Task:        item.Task,
			Assignee:    item.Assignee,
			DueDate:     item.DueDate,
			Priority:    item.Priority,
			SourceQuote: item.SourceQuote,
			Status:      string(item.Status),
		}
	}
	return out
}

// ToSegmentResponses converts transcript segments
func ToSegmentResponses(segments []*entities.TranscriptSegment) []*dto.SegmentResponse {
	out := make([]*dto.SegmentResponse, len(segments))
	for i, s := range segments {
		out[i] = &dto.SegmentResponse{
			StartS:  s.StartS,
			EndS:    s.EndS,
			Speaker: s.Speaker,
			Text:    s.Text,
		}
	}
	return out
}

// ToMeetingDetailResponse converts a meeting detail read. The transcript
// is omitted when it was not requested.
func ToMeetingDetailResponse(d *meeting.MeetingDetail, includeTranscript bool) *dto.MeetingDetailResponse {
	response := &dto.MeetingDetailResponse{
		Meeting:     ToMeetingResponse(d.Meeting),
		Summary:     ToSummaryResponse(d.Summary),
		ActionItems: ToActionItemResponses(d.ActionItems),
	}
	if includeTranscript {
		response.Transcript = ToSegmentResponses(d.Transcript)
	}
	return response
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
