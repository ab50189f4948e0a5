package handlers

import (
	"net/http"
	"strconv"

	"github.com/adrisdev/fotogram/backend/internal/middleware"
	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/adrisdev/fotogram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile and user lookup endpoints
type UserHandler struct {
	identity *services.IdentityService
	social   *services.SocialGraphService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(identity *services.IdentityService, social *services.SocialGraphService) *UserHandler {
	return &UserHandler{identity: identity, social: social}
}

// RegisterUserRoutes registers user profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me/profile", h.GetProfile)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

func parseUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}
	return uint(id), nil
}

// GetProfile returns the authenticated user together with both sides of
// their follow graph.
func (h *UserHandler) GetProfile(c echo.Context) error {
	principal := middleware.PrincipalFromContext(c)
	ctx := c.Request().Context()

	followers, err := h.social.Followers(ctx, principal.ID)
	if err != nil {
		return err
	}
	following, err := h.social.Following(ctx, principal.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.Profile{
		User:      *principal,
		Followers: followers,
		Following: following,
	})
}

// GetUser retrieves another user's account by id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	user, err := h.identity.ValidateUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetFollowers lists the users following :id
func (h *UserHandler) GetFollowers(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	users, err := h.social.Followers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetFollowing lists the users :id follows
func (h *UserHandler) GetFollowing(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	users, err := h.social.Following(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
