package handler

import (
	"github.com/gofiber/fiber/v3"

	"talent-hub/internal/delivery/http/dto"
	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/eligibility"
	"talent-hub/internal/pkg/response"
	"talent-hub/internal/usecase"
)

// HREligibilityHandler is the HR review queue for job-switch requests.
type HREligibilityHandler struct {
	uc usecase.EligibilityUsecase
}

type reviewRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

func NewHREligibilityHandler(uc usecase.EligibilityUsecase) *HREligibilityHandler {
	return &HREligibilityHandler{uc: uc}
}

func (h *HREligibilityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/requests", h.ListPending)
	r.Patch("/requests/:id", h.Review)
}

func (h *HREligibilityHandler) ListPending(c fiber.Ctx) error {
	limit, offset := limitOffsetFromQuery(c)

	reqs, err := h.uc.ListPending(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRequests(reqs))
}

func (h *HREligibilityHandler) Review(c fiber.Ctx) error {
	requestID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	decision, err := eligibility.ParseDecision(req.Decision)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid decision", nil, err)
	}

	reviewed, err := h.uc.Review(c.Context(), usecase.ReviewInput{
		RequestID: requestID,
		Decision:  decision,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRequest(reviewed))
}
