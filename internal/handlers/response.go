package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/community-connect/backend/internal/middleware"
	"github.com/anonto42/community-connect/backend/internal/services"
	"github.com/anonto42/community-connect/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// sessionFromContext returns the session stored by middleware.LoadSession
func sessionFromContext(c echo.Context) (services.Session, error) {
	session, ok := c.Get(middleware.SessionKey).(services.Session)
	if !ok || session.UserID == "" {
		return services.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return session, nil
}

func success(c echo.Context, status int, message string, data interface{}) error {
	body := echo.Map{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	return c.JSON(status, body)
}

// fail writes err in the response envelope with a status derived from its kind
func fail(c echo.Context, err error) error {
	body := echo.Map{"success": false, "message": apperrors.Message(err)}
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Code != "" {
		body["code"] = ce.Code
	}
	return c.JSON(statusFor(err), body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
