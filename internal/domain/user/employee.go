package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleEmployee, RoleHR:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Employee struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	Skills       []string

	// CurrentRequestID points at the head of the employee's eligibility
	// chain; nil until the first request is submitted.
	CurrentRequestID *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}
