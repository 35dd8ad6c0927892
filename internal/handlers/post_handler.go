package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/anonto42/community-connect/backend/internal/repositories"
	"github.com/anonto42/community-connect/backend/internal/services"
	"github.com/anonto42/community-connect/backend/pkg/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	composer *services.PostComposer
	posts    repositories.PostRepository
	profiles repositories.ProfileRepository
	requests repositories.RequestRepository
}

func NewPostHandler(
	composer *services.PostComposer,
	posts repositories.PostRepository,
	profiles repositories.ProfileRepository,
	requests repositories.RequestRepository,
) *PostHandler {
	return &PostHandler{
		composer: composer,
		posts:    posts,
		profiles: profiles,
		requests: requests,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
}

// PostDetail is a post with its author and request state for the caller
type PostDetail struct {
	models.Post
	RequestsCount    int64 `json:"requests_count"`
	AlreadyRequested bool  `json:"already_requested"`
}

// CreatePost accepts a multipart form with an optional "media" file, or JSON
func (h *PostHandler) CreatePost(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	req, err := bindCreatePost(c)
	if err != nil {
		return fail(c, err)
	}
	if err := c.Validate(req); err != nil {
		return fail(c, validationError(err))
	}

	draft := services.PostDraft{
		Title:       req.Title,
		Description: req.Description,
		Category:    models.Category(req.Category),
		PostType:    models.PostType(req.PostType),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	fileHeader, err := c.FormFile("media")
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			return fail(c, apperrors.NewValidationError("Could not read the attached media"))
		}
		defer file.Close()
		draft.Media = &services.MediaFile{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Body:        file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return fail(c, apperrors.NewValidationError("Invalid media upload"))
	}

	post, err := h.composer.Compose(c.Request().Context(), session, draft)
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusCreated, "Post created successfully!", post)
}

// GetPost returns a post with its author, request count and whether the caller already offered help
func (h *PostHandler) GetPost(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	post, err := h.posts.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	authors, err := h.profiles.GetSummariesByIDs(ctx, []string{post.UserID})
	if err != nil {
		return fail(c, err)
	}
	if author, ok := authors[post.UserID]; ok {
		post.Author = &author
	}

	count, err := h.requests.GetRequestsCountByPostID(ctx, post.ID)
	if err != nil {
		return fail(c, err)
	}
	requested, err := h.requests.HasRequested(ctx, post.ID, session.UserID)
	if err != nil {
		return fail(c, err)
	}

	return success(c, http.StatusOK, "", PostDetail{Post: *post, RequestsCount: count, AlreadyRequested: requested})
}

// bindCreatePost reads the form fields by hand for multipart bodies so that
// empty coordinates stay nil, and uses echo's binder for everything else.
func bindCreatePost(c echo.Context) (*models.CreatePostRequest, error) {
	req := &models.CreatePostRequest{}
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if err := c.Bind(req); err != nil {
			return nil, apperrors.NewValidationError("Invalid request payload")
		}
		return req, nil
	}

	req.Title = c.FormValue("title")
	req.Description = c.FormValue("description")
	req.Category = c.FormValue("category")
	req.PostType = c.FormValue("post_type")

	var err error
	if req.Latitude, err = formFloat(c, "latitude"); err != nil {
		return nil, err
	}
	if req.Longitude, err = formFloat(c, "longitude"); err != nil {
		return nil, err
	}
	return req, nil
}

func formFloat(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.FormValue(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid " + name)
	}
	return &v, nil
}

// validationError turns validator output into a user-facing message. A
// missing required field always reads as the generic prompt.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.NewValidationError(err.Error())
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperrors.ErrMissingFields
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "category":
		return apperrors.NewValidationError("Unknown category " + strconv.Quote(fe.Value().(string)))
	case "max":
		return apperrors.NewValidationError(fe.Field() + " is too long")
	default:
		return apperrors.NewValidationError("Invalid " + strings.ToLower(fe.Field()))
	}
}
