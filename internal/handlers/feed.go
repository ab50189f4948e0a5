package handlers

import (
	"net/http"
	"strconv"

	"github.com/adrisdev/fotogram/backend/internal/middleware"
	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/adrisdev/fotogram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles the paginated feed and the post endpoints
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed and post routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/post", h.GetFeed)
	g.POST("/post", h.CreatePost)
	g.GET("/post/:id", h.GetPost)
	g.DELETE("/post/:id", h.DeletePost)
	g.GET("/post/user/:id", h.GetPostsByUser)
}

// pageParams reads ?page= and ?limit=, applying the default page size only
// when limit is absent. An explicit non-positive limit is left for the
// service to reject.
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	limit := services.DefaultPageSize()
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		} else {
			limit = 0
		}
	}
	return page, limit
}

// GetFeed returns one page of the global feed
func (h *FeedHandler) GetFeed(c echo.Context) error {
	page, limit := pageParams(c)
	envelope, err := h.feed.ListPage(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope)
}

// CreatePost creates a post authored by the principal
func (h *FeedHandler) CreatePost(c echo.Context) error {
	principal := middleware.PrincipalFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.feed.CreatePost(c.Request().Context(), principal.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by id
func (h *FeedHandler) GetPost(c echo.Context) error {
	post, err := h.feed.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes one of the principal's posts
func (h *FeedHandler) DeletePost(c echo.Context) error {
	principal := middleware.PrincipalFromContext(c)
	if err := h.feed.DeletePost(c.Request().Context(), c.Param("id"), principal.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPostsByUser lists a user's posts, newest first
func (h *FeedHandler) GetPostsByUser(c echo.Context) error {
	authorID, err := parseUserID(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c)
	posts, err := h.feed.ListByAuthor(c.Request().Context(), authorID, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}
