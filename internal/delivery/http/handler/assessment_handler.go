package handler

import (
	"github.com/gofiber/fiber/v3"

	"career-advisor/internal/delivery/http/dto"
	"career-advisor/internal/pkg/response"
	"career-advisor/internal/usecase"
)

type AssessmentHandler struct {
	uc usecase.AssessmentUsecase
}

func NewAssessmentHandler(uc usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/assessments", h.Submit)
	r.Get("/assessments/latest", h.Latest)
}

func (h *AssessmentHandler) Submit(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.AssessmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Submit(c.Context(), userID, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, res)
}

func (h *AssessmentHandler) Latest(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	rec, err := h.uc.Latest(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rec)
}
