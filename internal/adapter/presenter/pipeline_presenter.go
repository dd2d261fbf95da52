package presenter

import (
	"github.com/google/uuid"

	dto "github.com/johnquangdev/meeting-insights/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/pipeline"
)

// ToTranscriptionResponse converts a finished transcription run
func ToTranscriptionResponse(meetingID uuid.UUID, r *pipeline.TranscriptionResult) *dto.TranscriptionResponse {
	return &dto.TranscriptionResponse{
		MeetingID:    meetingID.String(),
		Status:       string(entities.MeetingStatusTranscribed),
		SegmentCount: r.SegmentCount,
		Language:     r.Language,
	}
}

// ToSummarizationResponse converts a finished summarization run
func ToSummarizationResponse(meetingID uuid.UUID, r *pipeline.SummarizationResult) *dto.SummarizationResponse {
	warnings := make([]*dto.WarningResponse, len(r.Warnings))
	for i, w := range r.Warnings {
		warnings[i] = &dto.WarningResponse{Code: w.Code, Message: w.Message}
	}
	return &dto.SummarizationResponse{
		MeetingID:        meetingID.String(),
		Status:           string(entities.MeetingStatusSummarized),
		DecisionsCount:   r.DecisionsCount,
		RisksCount:       r.RisksCount,
		QuestionsCount:   r.QuestionsCount,
		ActionItemsCount: r.ActionItemsCount,
		Warnings:         warnings,
	}
}
