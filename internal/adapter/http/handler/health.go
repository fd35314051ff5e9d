package handler

import (
	"context"
	"net/http"
	"time"

	"wallet-atm/internal/core/ports"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthCheck pings every dependency and answers 503 if any is down.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		deps := make(map[string]dependencyStatus, len(checkers))
		code, status := http.StatusOK, "healthy"
		for _, checker := range checkers {
			if err := checker.Ping(ctx); err != nil {
				deps[checker.Name()] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
				code, status = http.StatusServiceUnavailable, "degraded"
				continue
			}
			deps[checker.Name()] = dependencyStatus{Status: "healthy"}
		}

		c.JSON(code, gin.H{"status": status, "dependencies": deps})
	}
}
