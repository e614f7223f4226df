package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"talent-hub/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Skills   []string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.Employee, error)
	Login(ctx context.Context, in LoginInput) (user.Employee, error)
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

// Register creates a new employee account. Accounts always start with the
// employee role; HR access is granted out of band.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.Employee, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.Employee{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.Employee{}, ErrInvalidInput
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return user.Employee{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.Employee{}, ErrInternal
	}
	if exists {
		return user.Employee{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.Employee{}, ErrInternal
	}

	emp := user.Employee{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         user.RoleEmployee,
		Skills:       normalizeSkills(in.Skills),
	}

	if err := s.users.Create(ctx, emp); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.Employee{}, ErrEmailAlreadyRegistered
		}
		return user.Employee{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, emp.ID)
	if err != nil {
		return user.Employee{}, ErrInternal
	}
	return sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.Employee, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.Employee{}, ErrInvalidCredentials
	}
	if in.Password == "" {
		return user.Employee{}, ErrInvalidCredentials
	}

	emp, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Employee{}, ErrInvalidCredentials
		}
		return user.Employee{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(in.Password)); err != nil {
		return user.Employee{}, ErrInvalidCredentials
	}

	return sanitize(emp), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func sanitize(emp user.Employee) user.Employee {
	emp.PasswordHash = ""
	return emp
}
