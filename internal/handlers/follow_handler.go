package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/middleware"
	"github.com/LackyKannauje/college-updates/internal/services"
)

// FollowHandler handles HTTP requests related to following users
type FollowHandler struct {
	followService services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:id", h.FollowUser)
	g.POST("/unfollow/:id", h.UnfollowUser)
	g.GET("/:id/followers", h.GetFollowers)
	g.GET("/:id/following", h.GetFollowing)
}

// FollowUser makes the caller follow the user with the given id
func (h *FollowHandler) FollowUser(c echo.Context) error {
	if err := h.followService.Follow(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Followed user successfully"})
}

// UnfollowUser removes the caller's follow of the user with the given id
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	if err := h.followService.Unfollow(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed user successfully"})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	users, err := h.followService.ListFollowers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	users, err := h.followService.ListFollowing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, users)
}
