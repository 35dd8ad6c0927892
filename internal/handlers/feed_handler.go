package handlers

import (
	"net/http"

	"github.com/anonto42/community-connect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the home screen
type FeedHandler struct {
	feed *services.FeedLoader
}

func NewFeedHandler(feed *services.FeedLoader) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the caller's profile and the active posts, blood posts first.
// When posts cannot be loaded the body still carries an empty list.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	home, err := h.feed.Home(c.Request().Context(), session)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to load posts",
			"data":    home,
		})
	}
	return success(c, http.StatusOK, "", home)
}
