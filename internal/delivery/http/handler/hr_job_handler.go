package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"talent-hub/internal/delivery/http/dto"
	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/job"
	"talent-hub/internal/pkg/response"
	"talent-hub/internal/usecase"
)

// HRJobHandler manages postings and the review pipelines attached to them.
type HRJobHandler struct {
	jobs         usecase.HRJobUsecase
	applications usecase.ApplicationUsecase
	referrals    usecase.ReferralUsecase
}

type jobRequest struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Department     string    `json:"department"`
	Location       string    `json:"location"`
	Deadline       time.Time `json:"deadline"`
	RequiredSkills []string  `json:"required_skills"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func NewHRJobHandler(jobs usecase.HRJobUsecase, applications usecase.ApplicationUsecase, referrals usecase.ReferralUsecase) *HRJobHandler {
	return &HRJobHandler{jobs: jobs, applications: applications, referrals: referrals}
}

func (h *HRJobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Post("/:id/publish", h.Publish)
	r.Post("/:id/close", h.Close)
	r.Get("/:id/applications", h.ListApplications)
	r.Get("/:id/referrals", h.ListReferrals)
}

func (h *HRJobHandler) Create(c fiber.Ctx) error {
	hrID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}

	in, err := jobInputFromBody(c)
	if err != nil {
		return err
	}

	j, err := h.jobs.Create(c.Context(), hrID, in)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromJob(j))
}

func (h *HRJobHandler) List(c fiber.Ctx) error {
	limit, offset := limitOffsetFromQuery(c)
	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = []string{raw}
	}

	items, err := h.jobs.List(c.Context(), statuses, limit, offset)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromHRJobItems(items))
}

func (h *HRJobHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	j, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(j))
}

func (h *HRJobHandler) Update(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	in, err := jobInputFromBody(c)
	if err != nil {
		return err
	}

	j, err := h.jobs.Update(c.Context(), id, in)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(j))
}

func (h *HRJobHandler) Publish(c fiber.Ctx) error {
	return h.transition(c, h.jobs.Publish)
}

func (h *HRJobHandler) Close(c fiber.Ctx) error {
	return h.transition(c, h.jobs.Close)
}

func (h *HRJobHandler) ListApplications(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	apps, err := h.applications.ListByJob(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplications(apps))
}

func (h *HRJobHandler) ListReferrals(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	refs, err := h.referrals.ListByJob(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromReferrals(refs))
}

// UpdateApplicationStatus and UpdateReferralStatus live under /hr because
// only HR moves submissions through their pipelines.
func (h *HRJobHandler) UpdateApplicationStatus(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, err := h.applications.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromApplication(app))
}

func (h *HRJobHandler) UpdateReferralStatus(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ref, err := h.referrals.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromReferral(ref))
}

func (h *HRJobHandler) transition(c fiber.Ctx, fn func(ctx context.Context, id uuid.UUID) (job.Job, error)) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	j, err := fn(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJob(j))
}

func jobInputFromBody(c fiber.Ctx) (usecase.JobInput, error) {
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return usecase.JobInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return usecase.JobInput{
		Title:          req.Title,
		Description:    req.Description,
		Department:     req.Department,
		Location:       req.Location,
		Deadline:       req.Deadline,
		RequiredSkills: req.RequiredSkills,
	}, nil
}
