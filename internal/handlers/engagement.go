package handlers

import (
	"net/http"

	"github.com/adrisdev/fotogram/backend/internal/middleware"
	"github.com/adrisdev/fotogram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// EngagementHandler handles like/unlike endpoints
type EngagementHandler struct {
	engagement *services.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(engagement *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

// RegisterEngagementRoutes registers like-related routes
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group) {
	g.POST("/users/like/:id", h.LikePost)
	g.POST("/users/unlike/:id", h.UnlikePost)
	g.GET("/posts/:id/likes/status", h.GetLikeStatus)
}

// LikePost makes the principal like post :id
func (h *EngagementHandler) LikePost(c echo.Context) error {
	principal := middleware.PrincipalFromContext(c)
	postID := c.Param("id")

	if err := h.engagement.Like(c.Request().Context(), postID, principal.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": true})
}

// UnlikePost removes the principal's like on post :id
func (h *EngagementHandler) UnlikePost(c echo.Context) error {
	principal := middleware.PrincipalFromContext(c)
	postID := c.Param("id")

	if err := h.engagement.Unlike(c.Request().Context(), postID, principal.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": false})
}

// GetLikeStatus reports whether the principal has liked post :id
func (h *EngagementHandler) GetLikeStatus(c echo.Context) error {
	principal := middleware.PrincipalFromContext(c)
	postID := c.Param("id")

	liked, err := h.engagement.HasLiked(c.Request().Context(), postID, principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "liked": liked})
}
