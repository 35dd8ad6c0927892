package middleware

import (
	"errors"
	"net/http"

	"github.com/anonto42/community-connect/backend/internal/repositories"
	"github.com/anonto42/community-connect/backend/internal/services"
	"github.com/anonto42/community-connect/backend/pkg/apperrors"
	"github.com/anonto42/community-connect/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// SessionKey is the echo context key holding the services.Session
const SessionKey = "session"

// LoadSession turns the authenticated user id into a services.Session. A
// missing profile is not fatal: the session then has a nil Profile and the
// services decide what the caller may do.
func LoadSession(profiles repositories.ProfileRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(UserIDKey).(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			session := services.Session{UserID: userID}
			profile, err := profiles.GetProfileByID(c.Request().Context(), userID)
			switch {
			case err == nil:
				session.Profile = profile
			case errors.Is(err, apperrors.ErrNotFound):
				logger.Debug().Str("user_id", userID).Msg("No profile for authenticated user")
			default:
				logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load session profile")
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load profile")
			}

			c.Set(SessionKey, session)
			return next(c)
		}
	}
}
