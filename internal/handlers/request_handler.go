package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/community-connect/backend/internal/services"
	"github.com/anonto42/community-connect/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// RequestHandler handles offers to help on a post
type RequestHandler struct {
	dispatcher *services.RequestDispatcher
}

func NewRequestHandler(dispatcher *services.RequestDispatcher) *RequestHandler {
	return &RequestHandler{dispatcher: dispatcher}
}

// RegisterRequestRoutes registers help request routes
func (h *RequestHandler) RegisterRequestRoutes(g *echo.Group) {
	g.POST("/posts/:id/requests", h.SendRequest)
}

// SendRequest records that the caller wants to help. Repeating a request is
// not an error for the client: it gets the informational message with duplicate=true.
func (h *RequestHandler) SendRequest(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	request, err := h.dispatcher.Dispatch(c.Request().Context(), session, c.Param("id"))
	if errors.Is(err, apperrors.ErrDuplicateRequest) {
		return success(c, http.StatusOK, apperrors.Message(err), echo.Map{"duplicate": true})
	}
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusCreated, "Request sent successfully!", echo.Map{
		"duplicate": false,
		"request":   request,
	})
}
