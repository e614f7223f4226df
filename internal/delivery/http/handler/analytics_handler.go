package handler

import (
	"github.com/gofiber/fiber/v3"

	"talent-hub/internal/pkg/response"
	"talent-hub/internal/usecase"
)

type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/overview", h.Overview)
}

func (h *AnalyticsHandler) Overview(c fiber.Ctx) error {
	overview, err := h.uc.Overview(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, overview)
}
