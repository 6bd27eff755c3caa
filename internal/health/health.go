package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Checker defines the interface for health checking components
type Checker interface {
	HealthCheck(ctx context.Context) error
	IsCritical() bool // Critical services block startup if unhealthy
	Name() string
}

// Manager runs health checks for all registered components
type Manager struct {
	checkers []Checker
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewManager creates a new health manager
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		checkers: make([]Checker, 0),
		logger:   logger,
	}
}

// AddChecker adds a health checker to the manager
func (h *Manager) AddChecker(checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, checker)
}

// StartupHealthCheck performs critical health checks that must pass for startup
func (h *Manager) StartupHealthCheck(ctx context.Context) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var criticalFailures []error

	for _, checker := range h.checkers {
		err := checker.HealthCheck(ctx)
		if err != nil {
			if checker.IsCritical() {
				criticalFailures = append(criticalFailures, fmt.Errorf("%s: %w", checker.Name(), err))
				h.logger.Error("Critical service health check failed",
					zap.String("service", checker.Name()),
					zap.Error(err))
			} else {
				h.logger.Warn("Non-critical service health check failed",
					zap.String("service", checker.Name()),
					zap.Error(err))
			}
		} else {
			h.logger.Info("Service health check passed",
				zap.String("service", checker.Name()),
				zap.Bool("critical", checker.IsCritical()))
		}
	}

	if len(criticalFailures) > 0 {
		return fmt.Errorf("critical services failed health check: %v", criticalFailures)
	}

	h.logger.Info("All critical services healthy", zap.Int("total_checks", len(h.checkers)))
	return nil
}

// RuntimeHealthCheck runs every checker and reports per-service results.
// healthy is false when any critical checker failed.
func (h *Manager) RuntimeHealthCheck(ctx context.Context) (results map[string]error, healthy bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	results = make(map[string]error, len(h.checkers))
	healthy = true
	for _, checker := range h.checkers {
		err := checker.HealthCheck(ctx)
		results[checker.Name()] = err
		if err != nil && checker.IsCritical() {
			healthy = false
		}
	}

	return results, healthy
}

// Handler serves the health endpoint
func Handler(h *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, healthy := h.RuntimeHealthCheck(c.Request.Context())

		services := gin.H{}
		for name, err := range results {
			if err != nil {
				services[name] = err.Error()
			} else {
				services[name] = "healthy"
			}
		}

		if !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"services":  services,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"services":  services,
		})
	}
}
