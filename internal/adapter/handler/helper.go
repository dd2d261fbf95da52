package handler

import (
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	usecaseErrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	"github.com/johnquangdev/meeting-insights/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-insights/pkg/ai"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request or the response
// header set by the request ID middleware
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized 200 response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response using provided logger
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusCreated, data)
}

func handleSuccessStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger.
// Pipeline and usecase errors are translated to AppError first.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	appErr := toAppError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Int("status", appErr.HTTPCode),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps any error returned below the handler layer to an AppError
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var pErr *pipeline.Error
	if stdErrors.As(err, &pErr) {
		return pipelineAppError(pErr)
	}

	var validationErrs validator.ValidationErrors
	if stdErrors.As(err, &validationErrs) {
		return errors.ErrInvalidArgument(validationMessage(validationErrs))
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		appErr := errors.ErrInvalidPayload()
		appErr.Raw = err
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrNotFound("Meeting")
	case stdErrors.Is(err, usecaseErrors.ErrRecordingRequired),
		stdErrors.Is(err, usecaseErrors.ErrInvalidExpiry):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrRecordingTooLarge):
		appErr := errors.ErrInvalidArgument(err.Error())
		appErr.HTTPCode = http.StatusRequestEntityTooLarge
		return appErr
	case stdErrors.Is(err, usecaseErrors.ErrUploadFailed):
		return errors.ErrMeetingUploadFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrShareLinkNotFound):
		return errors.ErrShareNotFound()
	case stdErrors.Is(err, usecaseErrors.ErrShareLinkExpired):
		return errors.ErrShareExpired()
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotShareable):
		return errors.ErrShareNotShareable()
	case stdErrors.Is(err, usecaseErrors.ErrShareStoreFailed):
		return errors.ErrCacheFailed("share link", err)
	}

	return errors.ErrInternal(err)
}

func pipelineAppError(pErr *pipeline.Error) errors.AppError {
	id := pErr.MeetingID.String()

	switch pErr.Kind {
	case pipeline.KindNotFound:
		return errors.ErrMeetingNotFound(id)
	case pipeline.KindInvalidState:
		return errors.ErrMeetingInvalidState(id, pErr.Message, nil)
	case pipeline.KindMissingAsset:
		return errors.ErrMissingAsset(id, pErr.Err)
	case pipeline.KindEmptyTranscript:
		return errors.ErrEmptyTranscript(id)
	case pipeline.KindMalformedResponse:
		return errors.ErrAIMalformedResponse(pErr.Err)
	case pipeline.KindProviderError:
		var apiErr *ai.APIError
		if stdErrors.As(pErr, &apiErr) {
			return errors.ErrAIProviderFailed(apiErr.Provider, apiErr.StatusCode, apiErr.Body, pErr)
		}
		appErr := errors.ErrAIProviderFailed("provider", 0, "", pErr.Err)
		appErr.Message = pErr.Message
		return appErr
	case pipeline.KindPersistenceError:
		return errors.ErrDBQueryFailed(pErr.Message, pErr.Err)
	}
	return errors.ErrInternal(pErr)
}

func validationMessage(validationErrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		parts = append(parts, fe.Field()+" failed "+fe.Tag())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
