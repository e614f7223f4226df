package handler

import (
	"github.com/gofiber/fiber/v3"

	"talent-hub/internal/delivery/http/dto"
	"talent-hub/internal/pkg/response"
	"talent-hub/internal/usecase"
)

// EligibilityHandler exposes the employee side of the job-switch gate:
// submitting a request and checking what the gate currently allows.
type EligibilityHandler struct {
	uc usecase.EligibilityUsecase
}

func NewEligibilityHandler(uc usecase.EligibilityUsecase) *EligibilityHandler {
	return &EligibilityHandler{uc: uc}
}

func (h *EligibilityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/requests", h.Submit)
	r.Get("/status", h.Status)
}

func (h *EligibilityHandler) Submit(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	req, err := h.uc.Submit(c.Context(), employeeID)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromRequest(req))
}

func (h *EligibilityHandler) Status(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	status, err := h.uc.StatusFor(c.Context(), employeeID)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromEligibilityStatus(status))
}
