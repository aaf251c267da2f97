package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/middleware"
	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	postService services.PostService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(postService services.PostService) *CommentHandler {
	return &CommentHandler{postService: postService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comment/:id", h.CreateComment)
	g.GET("/comments/:id", h.GetCommentsByPostID)
	g.DELETE("/comment/:id/:commentId", h.DeleteComment)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comments, err := h.postService.AddComment(c.Request().Context(), c.Param("id"), middleware.UserID(c), req.Text)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment added", "comments": comments})
}

// GetCommentsByPostID lists the comments of a post with each author expanded
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	comments, err := h.postService.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": comments})
}

// DeleteComment removes a comment. Any authenticated user may delete any comment.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	comments, err := h.postService.DeleteComment(c.Request().Context(), c.Param("id"), c.Param("commentId"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully", "comments": comments})
}
