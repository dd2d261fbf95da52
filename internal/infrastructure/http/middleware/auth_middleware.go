package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	appErrors "github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/pkg/jwt"
)

const (
	// ClaimsContextKey holds the validated *jwt.Claims in the echo context
	ClaimsContextKey = "claims"
	// SubjectContextKey holds the token subject in the echo context
	SubjectContextKey = "subject"
)

// EchoAuth returns an Echo middleware that requires a valid bearer token
// and sets "claims" and "subject" into the Echo context
func EchoAuth(manager *jwt.Manager, logger *zap.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return respondError(c, appErrors.ErrUnauthenticated())
			}

			claims, err := manager.ValidateToken(token)
			if err != nil {
				logger.Debug("rejected bearer token",
					zap.String("path", c.Path()),
					zap.Error(err),
				)
				if errors.Is(err, jwt.ErrTokenExpired) {
					return respondError(c, appErrors.ErrTokenExpired())
				}
				return respondError(c, appErrors.ErrInvalidToken())
			}

			c.Set(ClaimsContextKey, claims)
			c.Set(SubjectContextKey, claims.Subject)
			return next(c)
		}
	}
}

// GetClaims retrieves the validated claims from the Echo context
func GetClaims(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
	return claims, ok
}

// extractToken reads "Authorization: Bearer <token>"
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func respondError(c echo.Context, appErr appErrors.AppError) error {
	return c.JSON(appErr.HTTPCode, map[string]interface{}{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
