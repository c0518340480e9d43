package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"career-advisor/internal/delivery/http/handler"
	v1 "career-advisor/internal/delivery/http/routes/v1"
	"career-advisor/internal/ws"
)

type Registry struct {
	health  *handler.HealthHandler
	ws      *ws.Handler
	metrics http.Handler
	v1      v1.Handlers
	authMw  fiber.Handler
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, metrics http.Handler, api v1.Handlers, authMw fiber.Handler) *Registry {
	return &Registry{health: health, ws: wsHandler, metrics: metrics, v1: api, authMw: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.metrics))
	}
	if r.ws != nil {
		r.ws.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1, r.authMw)
}
