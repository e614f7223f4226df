package handler

import (
	"github.com/gofiber/fiber/v3"

	"talent-hub/internal/delivery/http/dto"
	"talent-hub/internal/pkg/response"
	"talent-hub/internal/usecase"
)

// ApplicationHandler lets an employee review their own applications.
type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.ListMine)
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	apps, err := h.uc.ListByEmployee(c.Context(), employeeID)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplications(apps))
}
