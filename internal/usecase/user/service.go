package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"talent-hub/internal/domain/user"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("employee not found")
	ErrInternal     = errors.New("internal error")
)

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, employeeID uuid.UUID) (user.Employee, error) {
	emp, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Employee{}, ErrNotFound
		}
		return user.Employee{}, ErrInternal
	}
	return sanitize(emp), nil
}

// UpdateSkills replaces the employee's skill list. Skills feed the match
// percentage on future applications; existing applications keep the score
// computed when they were filed.
func (s *Service) UpdateSkills(ctx context.Context, employeeID uuid.UUID, skills []string) (user.Employee, error) {
	cleaned := make([]string, 0, len(skills))
	for _, sk := range skills {
		sk = strings.TrimSpace(sk)
		if sk == "" {
			return user.Employee{}, ErrInvalidInput
		}
		cleaned = append(cleaned, sk)
	}

	if err := s.users.UpdateSkills(ctx, employeeID, cleaned); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Employee{}, ErrNotFound
		}
		return user.Employee{}, ErrInternal
	}

	emp, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return user.Employee{}, ErrInternal
	}
	return sanitize(emp), nil
}

func sanitize(emp user.Employee) user.Employee {
	emp.PasswordHash = ""
	return emp
}
