package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler reports liveness and database reachability
type HealthHandler struct {
	mongo *mongo.Client
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{mongo: client}
}

func (h *HealthHandler) HealthCheck(c echo.Context) error {
	status := map[string]string{
		"status":  "healthy",
		"service": "college-updates",
	}
	if h.mongo == nil {
		return c.JSON(http.StatusOK, status)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.mongo.Ping(ctx, nil); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	status["database"] = "ok"
	return c.JSON(http.StatusOK, status)
}
