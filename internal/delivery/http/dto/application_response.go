package dto

import (
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/job"
)

type ApplicationResponse struct {
	ID               uuid.UUID `json:"id"`
	JobID            uuid.UUID `json:"job_id"`
	EmployeeID       uuid.UUID `json:"employee_id"`
	Status           string    `json:"status"`
	ResumeKind       string    `json:"resume_kind"`
	UpdatedResumeURL string    `json:"updated_resume_url,omitempty"`
	MatchPercentage  int       `json:"match_percentage"`
	AppliedAt        time.Time `json:"applied_at"`
}

func FromApplication(a job.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:               a.ID,
		JobID:            a.JobID,
		EmployeeID:       a.EmployeeID,
		Status:           string(a.Status),
		ResumeKind:       string(a.ResumeKind),
		UpdatedResumeURL: a.UpdatedResumeURL,
		MatchPercentage:  a.MatchPercentage,
		AppliedAt:        a.AppliedAt,
	}
}

func FromApplications(apps []job.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, FromApplication(a))
	}
	return out
}
