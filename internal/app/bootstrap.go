package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"

	"career-advisor/internal/config"
	"career-advisor/internal/delivery/http/handler"
	"career-advisor/internal/delivery/http/middleware"
	"career-advisor/internal/delivery/http/routes"
	v1 "career-advisor/internal/delivery/http/routes/v1"
	"career-advisor/internal/pkg/logger"
	"career-advisor/internal/ws"
)

// bodyLimit leaves room for a maximum size upload plus multipart framing.
const bodyLimit = handler.MaxUploadSize + 1<<20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the Fiber app for an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: bodyLimit,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, applies migrations and starts the
// WebSocket hub. The returned cleanup stops the hub and closes connections.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	migCtx, migCancel := context.WithTimeout(ctx, 2*time.Minute)
	defer migCancel()
	if err := c.Migrate(migCtx); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: c.Config.App.CORSAllowOrigins,
		AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType, middleware.HeaderRequestID},
	}))

	accessLog := middleware.NewAccessLogMiddleware(logger.Named(c.Logger, "http"))
	app.Use(accessLog.Middleware())

	metricsMw := middleware.NewMetricsMiddleware(c.Metrics)
	app.Use(metricsMw.Middleware())

	errMw := middleware.NewErrorMiddleware(logger.Named(c.Logger, "http"))
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(c.JWT)
	api := v1.Handlers{
		Auth:       handler.NewAuthHandler(c.Auth),
		Profile:    handler.NewProfileHandler(c.Profile),
		Assessment: handler.NewAssessmentHandler(c.Assessment),
		Career:     handler.NewCareerHandler(c.Career),
		Resume:     handler.NewResumeHandler(c.Resume),
		Interview:  handler.NewInterviewHandler(c.Interview),
		Dashboard:  handler.NewDashboardHandler(c.Dashboard),
	}
	wsHandler := ws.NewHandler(c.Hub, c.JWT, c.Config.App.CORSAllowOrigins, logger.Named(c.Logger, "ws"))

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		wsHandler,
		c.Metrics.Handler(),
		api,
		authMw.Middleware(),
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
