// Package eligibility holds the job-switch eligibility chain: the request
// entity, its status lifecycle, and the gate that decides what an employee
// may do next.
//
// Status graph:
//
//	PENDING ──► APPROVED
//	    │
//	    └─────► REJECTED (starts a one-month restriction window)
//
// APPROVED and REJECTED are terminal; a rejected chain is continued by
// submitting a fresh request once the window has elapsed.
package eligibility

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown eligibility status %q", s)
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

func ParseDecision(s string) (Decision, error) {
	d := Decision(s)
	switch d {
	case DecisionApproved, DecisionRejected:
		return d, nil
	}
	return "", fmt.Errorf("unknown review decision %q", s)
}

type Request struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Status     Status

	RequestedAt time.Time
	ReviewedAt  *time.Time

	RejectionReason string
	RejectedAt      *time.Time
	CanApplyAfter   *time.Time
}

// RestrictionEnd returns the instant the post-rejection window closes.
// The stored can_apply_after stamp wins; the calendar-month fallback only
// covers rows written before the stamp existed.
func (r Request) RestrictionEnd() time.Time {
	if r.CanApplyAfter != nil {
		return *r.CanApplyAfter
	}
	if r.RejectedAt != nil {
		return RestrictionEnd(*r.RejectedAt)
	}
	return time.Time{}
}

// RestrictionEnd computes rejection time plus one calendar month, so a
// request rejected Jan 1 unblocks Feb 1.
func RestrictionEnd(rejectedAt time.Time) time.Time {
	return rejectedAt.AddDate(0, 1, 0)
}
