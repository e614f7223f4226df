package dto

import (
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/job"
	"talent-hub/internal/usecase"
)

type JobResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Department     string    `json:"department,omitempty"`
	Location       string    `json:"location,omitempty"`
	Status         string    `json:"status"`
	Deadline       time.Time `json:"deadline"`
	RequiredSkills []string  `json:"required_skills"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromJob(j job.Job) JobResponse {
	skills := j.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		Department:     j.Department,
		Location:       j.Location,
		Status:         string(j.Status),
		Deadline:       j.Deadline,
		RequiredSkills: skills,
		CreatedAt:      j.CreatedAt,
	}
}

// JobListItemResponse is one posting on the employee jobs board, annotated
// with the viewer's available actions.
type JobListItemResponse struct {
	JobResponse
	HasApplied      bool   `json:"has_applied"`
	HasReferred     bool   `json:"has_referred"`
	CanApply        bool   `json:"can_apply"`
	CanRefer        bool   `json:"can_refer"`
	ActionBlockedBy string `json:"action_blocked_by,omitempty"`
}

type JobListResponse struct {
	Jobs        []JobListItemResponse     `json:"jobs"`
	Eligibility EligibilityStatusResponse `json:"eligibility"`
}

func FromJobList(result usecase.JobListResult) JobListResponse {
	items := make([]JobListItemResponse, 0, len(result.Jobs))
	for _, it := range result.Jobs {
		items = append(items, JobListItemResponse{
			JobResponse:     FromJob(it.Job),
			HasApplied:      it.HasApplied,
			HasReferred:     it.HasReferred,
			CanApply:        it.CanApply,
			CanRefer:        it.CanRefer,
			ActionBlockedBy: it.ActionBlockedBy,
		})
	}
	return JobListResponse{
		Jobs: items,
		Eligibility: EligibilityStatusResponse{
			CanSubmitNewRequest: result.Eligibility.CanSubmitNewRequest,
			CanApply:            result.Eligibility.CanApply,
			Reason:              result.Eligibility.Reason,
		},
	}
}

// HRJobResponse is a posting with its review workload, for the HR console.
type HRJobResponse struct {
	JobResponse
	Applications int `json:"applications"`
	Referrals    int `json:"referrals"`
}

func FromHRJobItems(items []usecase.HRJobItem) []HRJobResponse {
	out := make([]HRJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, HRJobResponse{
			JobResponse:  FromJob(it.Job),
			Applications: it.Applications,
			Referrals:    it.Referrals,
		})
	}
	return out
}
