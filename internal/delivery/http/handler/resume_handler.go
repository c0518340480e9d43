package handler

import (
	"io"

	"github.com/gofiber/fiber/v3"

	"career-advisor/internal/delivery/http/dto"
	"career-advisor/internal/delivery/http/middleware"
	"career-advisor/internal/pkg/response"
	"career-advisor/internal/usecase"
)

// MaxUploadSize bounds resume file uploads.
const MaxUploadSize = 5 << 20

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/resume-analysis", h.Analyze)
	r.Post("/resume-analysis/upload", h.Upload)
	r.Get("/resume-analysis/latest", h.Latest)
	r.Get("/resume-analysis/latest/export", h.Export)
}

func (h *ResumeHandler) Analyze(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ResumeAnalysisRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rec, err := h.uc.Analyze(c.Context(), userID, usecase.AnalyzeResumeInput{
		JobTitle:   req.JobTitle,
		ResumeText: req.ResumeText,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, rec)
}

// Upload accepts a multipart form with a "file" part and a "job_title" field.
func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}
	if fh.Size > MaxUploadSize {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, nil)
	}
	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if len(data) > MaxUploadSize {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, nil)
	}

	req := dto.ResumeAnalysisRequest{JobTitle: c.FormValue("job_title")}
	if err := validate(&req); err != nil {
		return err
	}

	rec, err := h.uc.Upload(c.Context(), userID, usecase.UploadResumeInput{
		JobTitle:    req.JobTitle,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, rec)
}

func (h *ResumeHandler) Latest(c fiber.Ctx) error {
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

func (h *ResumeHandler) Export(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	exp, err := h.uc.ExportLatest(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Attachment(c, exp.Filename, exp.ContentType, exp.Data)
}
