package dto

import (
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/job"
)

type CandidateResponse struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	ResumeURL       string   `json:"resume_url"`
	Skills          []string `json:"skills,omitempty"`
	YearsExperience *int     `json:"years_experience,omitempty"`
}

type ReferralResponse struct {
	ID         uuid.UUID         `json:"id"`
	JobID      uuid.UUID         `json:"job_id"`
	ReferredBy uuid.UUID         `json:"referred_by"`
	Candidate  CandidateResponse `json:"candidate"`
	Status     string            `json:"status"`
	ReferredAt time.Time         `json:"referred_at"`
}

func FromReferral(r job.Referral) ReferralResponse {
	return ReferralResponse{
		ID:         r.ID,
		JobID:      r.JobID,
		ReferredBy: r.ReferredBy,
		Candidate: CandidateResponse{
			Name:            r.Candidate.Name,
			Email:           r.Candidate.Email,
			Phone:           r.Candidate.Phone,
			ResumeURL:       r.Candidate.ResumeURL,
			Skills:          r.Candidate.Skills,
			YearsExperience: r.Candidate.YearsExperience,
		},
		Status:     string(r.Status),
		ReferredAt: r.ReferredAt,
	}
}

func FromReferrals(refs []job.Referral) []ReferralResponse {
	out := make([]ReferralResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, FromReferral(r))
	}
	return out
}
