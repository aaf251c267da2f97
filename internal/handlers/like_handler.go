package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/middleware"
	"github.com/LackyKannauje/college-updates/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	postService services.PostService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(postService services.PostService) *LikeHandler {
	return &LikeHandler{postService: postService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/like/:id", h.LikePost)
	g.DELETE("/like/:id", h.UnlikePost)
	g.GET("/likes/:id", h.GetLikes)
}

func (h *LikeHandler) LikePost(c echo.Context) error {
	likes, err := h.postService.LikePost(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post liked", "likes": likes})
}

func (h *LikeHandler) UnlikePost(c echo.Context) error {
	likes, err := h.postService.UnlikePost(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post like deleted", "likes": likes})
}

// GetLikes lists the likes of a post with each liking user expanded
func (h *LikeHandler) GetLikes(c echo.Context) error {
	likes, err := h.postService.ListLikes(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"likes": likes})
}
