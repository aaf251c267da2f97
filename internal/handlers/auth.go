package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/internal/services"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterAuthRoutes registers the public auth routes on public and the session routes on private
func (h *AuthHandler) RegisterAuthRoutes(public, private *echo.Group) {
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
	private.POST("/logout", h.Logout)
}

// Register handles local user registration with username, email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	token, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Login handles authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	token, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return apperrors.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Logout is stateless: the client discards its token. A token cookie, if any, is cleared.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}
