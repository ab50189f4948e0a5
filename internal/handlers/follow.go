package handlers

import (
	"net/http"

	"github.com/adrisdev/fotogram/backend/internal/middleware"
	"github.com/adrisdev/fotogram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow endpoints
type FollowHandler struct {
	social *services.SocialGraphService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(social *services.SocialGraphService) *FollowHandler {
	return &FollowHandler{social: social}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/follow/:id", h.FollowUser)
	g.POST("/users/unfollow/:id", h.UnfollowUser)
}

// FollowUser makes the principal follow user :id
func (h *FollowHandler) FollowUser(c echo.Context) error {
	principal := middleware.PrincipalFromContext(c)
	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.social.Follow(c.Request().Context(), principal.ID, targetID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

// UnfollowUser makes the principal unfollow user :id
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	principal := middleware.PrincipalFromContext(c)
	targetID, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.social.Unfollow(c.Request().Context(), principal.ID, targetID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"following": false})
}
