package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"career-advisor/internal/config"
	"career-advisor/internal/metrics"
	"career-advisor/internal/pkg/jwt"
	"career-advisor/internal/ws"
)

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(" :9000 ")
	require.NoError(t, err)
	assert.Equal(t, ":9000", addr)

	_, err = ListenAddr("  ")
	assert.Error(t, err)
}

func testContainer() *Container {
	m := metrics.New()
	return &Container{
		Config: config.Config{App: config.AppConfig{
			AppName:          "career-advisor",
			CORSAllowOrigins: []string{"https://app.example.com"},
		}},
		Logger:  zap.NewNop(),
		Metrics: m,
		Hub:     ws.NewHub(zap.NewNop(), m),
		JWT:     jwt.NewHMACService("access", "refresh", time.Minute, time.Hour),
	}
}

func TestNew_Routes(t *testing.T) {
	a := New(testContainer())

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestNew_CORS(t *testing.T) {
	a := New(testContainer())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}
