package server

import (
	"context"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/schema"

	"github.com/gofiber/fiber/v2"
)

// LivenessCheck handles liveness probe requests
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} schema.HealthResponse
// @Router /health/live [get]
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(schema.HealthResponse{Status: "up"})
}

// ReadinessCheck handles readiness probe requests. The database is required;
// Redis only degrades caching, so an absent client reports "disabled".
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} schema.HealthResponse
// @Failure 503 {object} schema.HealthResponse
// @Router /health/ready [get]
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "disabled"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(schema.HealthResponse{
		Status: overall,
		Checks: map[string]string{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
