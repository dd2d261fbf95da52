package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/share"
	"github.com/johnquangdev/meeting-insights/internal/adapter/presenter"
	shareUsecase "github.com/johnquangdev/meeting-insights/internal/usecase/share"
)

// Share handles share link requests
type Share struct {
	shareService *shareUsecase.ShareService
	logger       *zap.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService *shareUsecase.ShareService, logger *zap.Logger) *Share {
	return &Share{shareService: shareService, logger: logger}
}

// Create handles POST /share
// @Summary      Create share link
// @Description  Issues a read-only link to a processed meeting
// @Tags         Share
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      share.CreateShareRequest  true  "Share link request"
// @Success      201      {object}  share.ShareLinkResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request or meeting not processed"
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /share [post]
func (h *Share) Create(c echo.Context) error {
	var req share.CreateShareRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.shareService.Generate(c.Request().Context(), shareUsecase.GenerateInput{
		MeetingID:         uuid.MustParse(req.MeetingID),
		ExpiresInDays:     req.ExpiresInDays,
		IncludeTranscript: req.IncludeTranscript,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToShareLinkResponse(result))
}

// Get handles GET /share/:token
// @Summary      Open share link
// @Description  Returns the shared meeting, its summary, action items and optionally the transcript
// @Tags         Share
// @Produce      json
// @Param        token  path      string  true  "Share token"
// @Success      200    {object}  share.SharedMeetingResponse
// @Failure      404    {object}  map[string]interface{}  "Share link not found"
// @Failure      410    {object}  map[string]interface{}  "Share link expired"
// @Router       /share/{token} [get]
func (h *Share) Get(c echo.Context) error {
	shared, err := h.shareService.Resolve(c.Request().Context(), c.Param("token"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSharedMeetingResponse(shared))
}

// Revoke handles DELETE /share/:token
// @Summary      Revoke share link
// @Tags         Share
// @Produce      json
// @Security     BearerAuth
// @Param        token  path      string  true  "Share token"
// @Success      200    {object}  map[string]interface{}
// @Router       /share/{token} [delete]
func (h *Share) Revoke(c echo.Context) error {
	if err := h.shareService.Revoke(c.Request().Context(), c.Param("token")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"revoked": true})
}
