package handler

import (
	"github.com/gofiber/fiber/v3"

	"talent-hub/internal/delivery/http/dto"
	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/domain/job"
	"talent-hub/internal/pkg/response"
	"talent-hub/internal/usecase"
)

// JobHandler serves the employee-facing jobs board and the actions on a
// single posting.
type JobHandler struct {
	list         usecase.JobListUsecase
	applications usecase.ApplicationUsecase
	referrals    usecase.ReferralUsecase
}

type applyRequest struct {
	ResumeKind       string `json:"resume_kind"`
	UpdatedResumeURL string `json:"updated_resume_url"`
}

type referRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	ResumeURL       string   `json:"resume_url"`
	Skills          []string `json:"skills"`
	YearsExperience *int     `json:"years_experience"`
}

func NewJobHandler(list usecase.JobListUsecase, applications usecase.ApplicationUsecase, referrals usecase.ReferralUsecase) *JobHandler {
	return &JobHandler{list: list, applications: applications, referrals: referrals}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/:id/apply", h.Apply)
	r.Post("/:id/refer", h.Refer)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}
	limit, offset := limitOffsetFromQuery(c)

	result, err := h.list.ListForEmployee(c.Context(), employeeID, limit, offset)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobList(result))
}

func (h *JobHandler) Apply(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, err := h.applications.Apply(c.Context(), usecase.ApplyInput{
		EmployeeID:       employeeID,
		JobID:            jobID,
		ResumeKind:       req.ResumeKind,
		UpdatedResumeURL: req.UpdatedResumeURL,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromApplication(app))
}

func (h *JobHandler) Refer(c fiber.Ctx) error {
	employeeID, err := employeeIDFromCtx(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req referRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ref, err := h.referrals.Refer(c.Context(), usecase.ReferInput{
		EmployeeID: employeeID,
		JobID:      jobID,
		Candidate: job.Candidate{
			Name:            req.Name,
			Email:           req.Email,
			Phone:           req.Phone,
			ResumeURL:       req.ResumeURL,
			Skills:          req.Skills,
			YearsExperience: req.YearsExperience,
		},
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromReferral(ref))
}
