package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubChecker struct {
	name     string
	critical bool
	err      error
}

func (s stubChecker) HealthCheck(ctx context.Context) error { return s.err }
func (s stubChecker) IsCritical() bool                      { return s.critical }
func (s stubChecker) Name() string                          { return s.name }

func TestStartupHealthCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("AllHealthy", func(t *testing.T) {
		m := NewManager(zap.NewNop())
		m.AddChecker(stubChecker{name: "postgres", critical: true})

		assert.NoError(t, m.StartupHealthCheck(ctx))
	})

	t.Run("NonCriticalFailureIsTolerated", func(t *testing.T) {
		m := NewManager(zap.NewNop())
		m.AddChecker(stubChecker{name: "postgres", critical: true})
		m.AddChecker(stubChecker{name: "cache", err: errors.New("down")})

		assert.NoError(t, m.StartupHealthCheck(ctx))
	})

	t.Run("CriticalFailureBlocksStartup", func(t *testing.T) {
		m := NewManager(zap.NewNop())
		m.AddChecker(stubChecker{name: "postgres", critical: true, err: errors.New("refused")})

		err := m.StartupHealthCheck(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres: refused")
	})
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		checkers []Checker
		status   int
		state    string
	}{
		{
			name:     "Healthy",
			checkers: []Checker{stubChecker{name: "memory", critical: true}},
			status:   http.StatusOK,
			state:    "healthy",
		},
		{
			name: "DegradedButServing",
			checkers: []Checker{
				stubChecker{name: "memory", critical: true},
				stubChecker{name: "cache", err: errors.New("down")},
			},
			status: http.StatusOK,
			state:  "healthy",
		},
		{
			name:     "Unhealthy",
			checkers: []Checker{stubChecker{name: "postgres", critical: true, err: errors.New("refused")}},
			status:   http.StatusServiceUnavailable,
			state:    "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(zap.NewNop())
			for _, c := range tt.checkers {
				m.AddChecker(c)
			}

			router := gin.New()
			router.GET("/health", Handler(m))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.status, w.Code)

			var body struct {
				Status   string            `json:"status"`
				Services map[string]string `json:"services"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.state, body.Status)
			assert.Len(t, body.Services, len(tt.checkers))
		})
	}
}
