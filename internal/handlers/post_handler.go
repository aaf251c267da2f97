package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/middleware"
	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/internal/services"
)

// mediaField is the multipart field carrying post attachments
const mediaField = "media"

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/upload", h.CreatePost)
	g.PUT("/edit/:id", h.UpdatePost)
	g.DELETE("/delete/:id", h.DeletePost)
	g.GET("/:id", h.GetPost)
}

// CreatePost handles a multipart post upload with up to five "media" files
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	files, closeFiles, err := formUploads(c, mediaField)
	if err != nil {
		return err
	}
	defer closeFiles()

	post, err := h.postService.CreatePost(c.Request().Context(), middleware.UserID(c), req, files)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Upload successful", "post": post})
}

// UpdatePost edits a post owned by the caller; new "media" files replace all existing media
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	files, closeFiles, err := formUploads(c, mediaField)
	if err != nil {
		return err
	}
	defer closeFiles()

	post, err := h.postService.EditPost(c.Request().Context(), c.Param("id"), middleware.UserID(c), req, files)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post updated successfully", "post": post})
}

// DeletePost deletes a post owned by the caller along with its media
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.postService.DeletePost(c.Request().Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, post)
}
