package job

import "fmt"

// Posting lifecycle:
//
//	DRAFT ──► ACTIVE ──► CLOSED
//	    │                  ▲
//	    └──────────────────┘
//
// CLOSED is terminal.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

var validJobTransitions = map[Status][]Status{
	StatusDraft:  {StatusActive, StatusClosed},
	StatusActive: {StatusClosed},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusDraft, StatusActive, StatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

func IsStatusTransitionAllowed(from, to Status) bool {
	return containsStatus(validJobTransitions[from], to)
}

// Application lifecycle: PENDING ──► UNDER_REVIEW ──► APPROVED | REJECTED,
// with direct PENDING ──► APPROVED | REJECTED allowed. Terminals have no
// outgoing edges.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"
)

var validApplicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:     {ApplicationUnderReview, ApplicationApproved, ApplicationRejected},
	ApplicationUnderReview: {ApplicationApproved, ApplicationRejected},
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationPending, ApplicationUnderReview, ApplicationApproved, ApplicationRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

func IsApplicationTransitionAllowed(from, to ApplicationStatus) bool {
	return containsApplicationStatus(validApplicationTransitions[from], to)
}

// Referral lifecycle mirrors applications with HIRED as the positive
// terminal.
type ReferralStatus string

const (
	ReferralPending     ReferralStatus = "pending"
	ReferralUnderReview ReferralStatus = "under_review"
	ReferralRejected    ReferralStatus = "rejected"
	ReferralHired       ReferralStatus = "hired"
)

var validReferralTransitions = map[ReferralStatus][]ReferralStatus{
	ReferralPending:     {ReferralUnderReview, ReferralRejected, ReferralHired},
	ReferralUnderReview: {ReferralRejected, ReferralHired},
}

func ParseReferralStatus(s string) (ReferralStatus, error) {
	st := ReferralStatus(s)
	switch st {
	case ReferralPending, ReferralUnderReview, ReferralRejected, ReferralHired:
		return st, nil
	}
	return "", fmt.Errorf("unknown referral status %q", s)
}

func IsReferralTransitionAllowed(from, to ReferralStatus) bool {
	return containsReferralStatus(validReferralTransitions[from], to)
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsApplicationStatus(list []ApplicationStatus, s ApplicationStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsReferralStatus(list []ReferralStatus, s ReferralStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
