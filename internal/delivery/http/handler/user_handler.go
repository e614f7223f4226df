package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"talent-hub/internal/delivery/http/dto"
	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/pkg/response"
	useruc "talent-hub/internal/usecase/user"
)

type UserHandler struct {
	svc *useruc.Service
}

type updateSkillsRequest struct {
	Skills []string `json:"skills"`
}

func NewUserHandler(svc *useruc.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me/skills", h.UpdateSkills)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	emp, err := h.svc.GetMe(c.Context(), employeeID)
	if err != nil {
		return mapUserServiceError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromEmployee(emp))
}

func (h *UserHandler) UpdateSkills(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	var req updateSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	emp, err := h.svc.UpdateSkills(c.Context(), employeeID, req.Skills)
	if err != nil {
		return mapUserServiceError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromEmployee(emp))
}

func mapUserServiceError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, useruc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
