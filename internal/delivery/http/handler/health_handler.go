package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"career-advisor/internal/pkg/response"
)

// Pinger is satisfied by the database and the cache client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

type healthStatus struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Check)
}

// Check reports 503 when the database is down. A missing cache only degrades.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	st := healthStatus{Database: probe(ctx, h.db), Cache: probe(ctx, h.cache)}
	if st.Database != "up" {
		return response.Error(c, fiber.StatusServiceUnavailable, "service unavailable", st)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
