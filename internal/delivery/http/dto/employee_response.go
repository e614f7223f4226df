package dto

import (
	"time"

	"github.com/google/uuid"

	"talent-hub/internal/domain/user"
)

type EmployeeResponse struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name"`
	Role             string     `json:"role"`
	Skills           []string   `json:"skills"`
	CurrentRequestID *uuid.UUID `json:"current_request_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func FromEmployee(emp user.Employee) EmployeeResponse {
	skills := emp.Skills
	if skills == nil {
		skills = []string{}
	}
	return EmployeeResponse{
		ID:               emp.ID,
		Email:            emp.Email,
		FullName:         emp.FullName,
		Role:             string(emp.Role),
		Skills:           skills,
		CurrentRequestID: emp.CurrentRequestID,
		CreatedAt:        emp.CreatedAt,
	}
}
