package dto

import (
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/eligibility"
	"talent-hub/internal/usecase"
)

type RequestResponse struct {
	ID              uuid.UUID  `json:"id"`
	EmployeeID      uuid.UUID  `json:"employee_id"`
	Status          string     `json:"status"`
	RequestedAt     time.Time  `json:"requested_at"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CanApplyAfter   *time.Time `json:"can_apply_after,omitempty"`
}

func FromRequest(req eligibility.Request) RequestResponse {
	return RequestResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		Status:          string(req.Status),
		RequestedAt:     req.RequestedAt,
		ReviewedAt:      req.ReviewedAt,
		RejectionReason: req.RejectionReason,
		CanApplyAfter:   req.CanApplyAfter,
	}
}

func FromRequests(reqs []eligibility.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, FromRequest(r))
	}
	return out
}

// EligibilityStatusResponse reports what the gate currently allows and, when
// a request exists, its state.
type EligibilityStatusResponse struct {
	CanSubmitNewRequest bool             `json:"can_submit_new_request"`
	CanApply            bool             `json:"can_apply"`
	Reason              string           `json:"reason,omitempty"`
	LatestRequest       *RequestResponse `json:"latest_request,omitempty"`
}

func FromEligibilityStatus(status usecase.EligibilityStatus) EligibilityStatusResponse {
	resp := EligibilityStatusResponse{
		CanSubmitNewRequest: status.Verdict.CanSubmitNewRequest,
		CanApply:            status.Verdict.CanApply,
		Reason:              status.Verdict.Reason,
	}
	if status.Latest != nil {
		latest := FromRequest(*status.Latest)
		resp.LatestRequest = &latest
	}
	return resp
}
