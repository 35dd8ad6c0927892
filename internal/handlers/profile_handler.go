package handlers

import (
	"net/http"

	"github.com/anonto42/community-connect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ProfileHandler serves profile screens
type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetMyProfile)
	g.GET("/profile/badges", h.GetMyBadges)
	g.GET("/users/:id", h.GetUserProfile)
}

func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}
	return h.overview(c, session.UserID)
}

func (h *ProfileHandler) GetUserProfile(c echo.Context) error {
	if _, err := sessionFromContext(c); err != nil {
		return err
	}
	return h.overview(c, c.Param("id"))
}

func (h *ProfileHandler) GetMyBadges(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	badges, err := h.profiles.Badges(c.Request().Context(), session.UserID)
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "", echo.Map{"badges": badges})
}

func (h *ProfileHandler) overview(c echo.Context, userID string) error {
	overview, err := h.profiles.Overview(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "", overview)
}
