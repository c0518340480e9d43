package v1

import (
	"github.com/gofiber/fiber/v3"

	"career-advisor/internal/delivery/http/handler"
)

// Handlers groups the /api/v1 handlers. Nil handlers are not mounted.
type Handlers struct {
	Auth       *handler.AuthHandler
	Profile    *handler.ProfileHandler
	Assessment *handler.AssessmentHandler
	Career     *handler.CareerHandler
	Resume     *handler.ResumeHandler
	Interview  *handler.InterviewHandler
	Dashboard  *handler.DashboardHandler
}

type routeRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

func Register(r fiber.Router, h Handlers, authMw fiber.Handler) {
	if r == nil {
		return
	}

	authGroup := r.Group("/auth")
	if h.Auth != nil {
		h.Auth.RegisterRoutes(authGroup)
	}

	protected := r.Group("", authMw)
	if h.Auth != nil {
		h.Auth.RegisterProtectedRoutes(protected.Group("/auth"))
	}

	for _, reg := range h.protected() {
		reg.RegisterRoutes(protected)
	}
}

// protected returns the handlers that are set, never a boxed nil pointer.
func (h Handlers) protected() []routeRegistrar {
	var out []routeRegistrar
	if h.Profile != nil {
		out = append(out, h.Profile)
	}
	if h.Assessment != nil {
		out = append(out, h.Assessment)
	}
	if h.Career != nil {
		out = append(out, h.Career)
	}
	if h.Resume != nil {
		out = append(out, h.Resume)
	}
	if h.Interview != nil {
		out = append(out, h.Interview)
	}
	if h.Dashboard != nil {
		out = append(out, h.Dashboard)
	}
	return out
}
