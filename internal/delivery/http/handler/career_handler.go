package handler

import (
	"github.com/gofiber/fiber/v3"

	"career-advisor/internal/pkg/response"
	"career-advisor/internal/usecase"
)

// CareerHandler serves career path recommendations and market data.
type CareerHandler struct {
	uc usecase.CareerUsecase
}

func NewCareerHandler(uc usecase.CareerUsecase) *CareerHandler {
	return &CareerHandler{uc: uc}
}

func (h *CareerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/career-paths", h.CareerPaths)
	r.Get("/career-paths/network", h.Network)
	r.Get("/market/trending", h.Trending)
	r.Get("/market/insights", h.Insight)
}

func (h *CareerHandler) CareerPaths(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	view, err := h.uc.CareerPaths(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, view)
}

func (h *CareerHandler) Network(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	network, err := h.uc.Network(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, network)
}

func (h *CareerHandler) Trending(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.Trending(c.Context()))
}

func (h *CareerHandler) Insight(c fiber.Ctx) error {
	insight, err := h.uc.Insight(c.Context(), c.Query("career_path"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, insight)
}
