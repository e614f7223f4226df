// Package job holds the internal posting entity and everything attached to
// it: applications, referrals, and their status lifecycles.
package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidCandidate = errors.New("invalid candidate")

type Job struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Department     string
	Location       string
	Status         Status
	Deadline       time.Time
	RequiredSkills []string
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AcceptsActionsAt reports whether the posting takes applications and
// referrals at the given instant: active and not past deadline.
func (j Job) AcceptsActionsAt(now time.Time) bool {
	return j.Status == StatusActive && !j.Deadline.Before(now)
}

type ResumeKind string

const (
	ResumeCurrent ResumeKind = "current"
	ResumeUpdated ResumeKind = "updated"
)

func ParseResumeKind(s string) (ResumeKind, error) {
	k := ResumeKind(s)
	switch k {
	case ResumeCurrent, ResumeUpdated:
		return k, nil
	}
	return "", fmt.Errorf("unknown resume kind %q", s)
}

type Application struct {
	ID               uuid.UUID
	JobID            uuid.UUID
	EmployeeID       uuid.UUID
	Status           ApplicationStatus
	ResumeKind       ResumeKind
	UpdatedResumeURL string
	MatchPercentage  int
	AppliedAt        time.Time
	UpdatedAt        time.Time
}

type Candidate struct {
	Name            string
	Email           string
	Phone           string
	ResumeURL       string
	Skills          []string
	YearsExperience *int
}

// Validate checks the required candidate fields. Phone, skills and
// experience are optional.
func (c Candidate) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(c.ResumeURL) == "" {
		missing = append(missing, "resume")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidCandidate, strings.Join(missing, ", "))
	}
	return nil
}

type Referral struct {
	ID         uuid.UUID
	JobID      uuid.UUID
	ReferredBy uuid.UUID
	Candidate  Candidate
	Status     ReferralStatus
	ReferredAt time.Time
	UpdatedAt  time.Time
}
