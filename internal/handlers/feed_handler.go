package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/services"
)

// FeedHandler serves the post listings, newest first
type FeedHandler struct {
	postService services.PostService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postService services.PostService) *FeedHandler {
	return &FeedHandler{postService: postService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("", h.GetFeed)
	g.GET("/", h.GetFeed)
	g.GET("/user/:id", h.GetUserPosts)
	g.GET("/category/:type", h.GetCategoryPosts)
}

// GetFeed lists every post
func (h *FeedHandler) GetFeed(c echo.Context) error {
	posts, err := h.postService.ListPosts(c.Request().Context())
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetUserPosts lists the posts of one user
func (h *FeedHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.postService.ListPostsByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetCategoryPosts lists posts carrying media of the type image, video, pdf or other
func (h *FeedHandler) GetCategoryPosts(c echo.Context) error {
	posts, err := h.postService.ListPostsByCategory(c.Request().Context(), c.Param("type"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, posts)
}
