package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/middleware"
	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/internal/services"
)

// UserHandler handles HTTP requests related to user accounts
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.DELETE("/delete", h.DeleteAccount)
	g.GET("/:id", h.GetUser)
	g.GET("/search/:username", h.SearchUsers)
	g.PUT("/profile", h.UpdateProfile)
}

// GetUser returns the public profile of a user
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers finds users by a case-insensitive username substring
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.userService.SearchUsers(c.Request().Context(), c.Param("username"))
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateProfile applies a partial profile edit with an optional "profilePicture" file
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	picture, closeFiles, err := formUpload(c, "profilePicture")
	if err != nil {
		return err
	}
	defer closeFiles()

	user, err := h.userService.EditProfile(c.Request().Context(), middleware.UserID(c), req, picture)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully", "user": user})
}

// DeleteAccount deletes the caller's account and everything it owns
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	if err := h.userService.DeleteAccount(c.Request().Context(), middleware.UserID(c)); err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User account deleted successfully"})
}
