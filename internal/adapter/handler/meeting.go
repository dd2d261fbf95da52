package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	dto "github.com/johnquangdev/meeting-insights/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-insights/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	"github.com/johnquangdev/meeting-insights/internal/usecase/meeting"
)

// Meeting handles meeting upload and read requests
type Meeting struct {
	meetingService *meeting.MeetingService
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService *meeting.MeetingService, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// Upload handles POST /meetings
// @Summary      Upload a meeting recording
// @Description  Creates a meeting and stores its audio or video recording
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file   formData  file    true   "Recording file"
// @Param        title  formData  string  false  "Meeting title"
// @Success      201    {object}  dto.MeetingResponse
// @Failure      400    {object}  map[string]interface{}  "Missing recording"
// @Failure      413    {object}  map[string]interface{}  "Recording too large"
// @Failure      500    {object}  map[string]interface{}  "Upload failed"
// @Router       /meetings [post]
func (h *Meeting) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, usecaseErrors.ErrRecordingRequired)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	defer file.Close()

	m, err := h.meetingService.Upload(c.Request().Context(), meeting.UploadInput{
		Title:       c.FormValue("title"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(m))
}

// List handles GET /meetings
// @Summary      List meetings
// @Description  Lists meetings newest first with optional title search and status filter
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        limit          query     int     false  "Page size (default 50, max 200)"
// @Param        offset         query     int     false  "Offset"
// @Param        search         query     string  false  "Case-insensitive title search"
// @Param        status         query     string  false  "Status filter"
// @Param        include_stats  query     bool    false  "Attach segment and action item counts"
// @Success      200            {object}  dto.MeetingListResponse
// @Failure      400            {object}  map[string]interface{}  "Invalid query"
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	var req dto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meeting.ListInput{
		Search:       req.Search,
		Limit:        req.Limit,
		Offset:       req.Offset,
		IncludeStats: req.IncludeStats,
	}
	if req.Status != "" {
		status, err := entities.ParseMeetingStatus(req.Status)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
		}
		input.Status = &status
	}

	result, err := h.meetingService.ListMeetings(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(result))
}

// Stats handles GET /meetings/stats
// @Summary      Meeting statistics
// @Description  Total meetings, per-status counts, total segments and total action items
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatsResponse
// @Router       /meetings/stats [get]
func (h *Meeting) Stats(c echo.Context) error {
	stats, err := h.meetingService.GetStats(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToStatsResponse(stats))
}

// Get handles GET /meetings/:id
// @Summary      Get meeting details
// @Description  Returns the meeting with its summary, action items and transcript
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  dto.MeetingDetailResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid meeting ID"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	meetingID, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	detail, err := h.meetingService.GetDetail(c.Request().Context(), meetingID, true)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingDetailResponse(detail, true))
}

// Status handles GET /meetings/:id/status
// @Summary      Get meeting status
// @Description  Returns the current processing status for polling clients
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/status [get]
func (h *Meeting) Status(c echo.Context) error {
	meetingID, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	status, err := h.meetingService.GetStatus(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToStatusResponse(status))
}

func parseMeetingID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("meeting ID must be a valid UUID")
	}
	return id, nil
}
