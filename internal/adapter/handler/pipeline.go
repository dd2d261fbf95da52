package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-insights/internal/usecase/pipeline"
)

// Pipeline handles requests that run a pipeline stage. Runs are synchronous;
// a client that disconnects does not cancel the run.
type Pipeline struct {
	svc    pipeline.Service
	logger *zap.Logger
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(svc pipeline.Service, logger *zap.Logger) *Pipeline {
	return &Pipeline{svc: svc, logger: logger}
}

// Transcribe triggers transcription for a meeting
// @Summary      Transcribe meeting
// @Description  Transcribes the uploaded recording. The meeting must be in the created state.
// @Tags         Pipeline
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  dto.TranscriptionResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      409  {object}  map[string]interface{}  "Meeting is not in the created state"
// @Failure      422  {object}  map[string]interface{}  "Recording not found"
// @Failure      502  {object}  map[string]interface{}  "Transcription provider failed"
// @Router       /meetings/{id}/transcribe [post]
func (h *Pipeline) Transcribe(c echo.Context) error {
	meetingID, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.svc.RunTranscription(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTranscriptionResponse(meetingID, result))
}

// Summarize triggers summarization for a meeting
// @Summary      Summarize meeting
// @Description  Summarizes the transcript into decisions, risks, questions and action items. The meeting must be transcribed.
// @Tags         Pipeline
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  dto.SummarizationResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      409  {object}  map[string]interface{}  "Meeting is not transcribed"
// @Failure      422  {object}  map[string]interface{}  "Transcript is empty"
// @Failure      502  {object}  map[string]interface{}  "Summarization provider failed"
// @Router       /meetings/{id}/summarize [post]
func (h *Pipeline) Summarize(c echo.Context) error {
	meetingID, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.svc.RunSummarization(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSummarizationResponse(meetingID, result))
}
