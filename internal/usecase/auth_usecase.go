package usecase

import (
	"context"
	"errors"

	"talent-hub/internal/domain/user"
	"talent-hub/internal/pkg/jwt"
	ucauth "talent-hub/internal/usecase/auth"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.Employee, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.Employee, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.Employee, string, string, error) {
	emp, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.Employee{}, "", "", err
	}
	return u.issueTokens(emp)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.Employee, string, string, error) {
	emp, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.Employee{}, "", "", err
	}
	return u.issueTokens(emp)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) || claims.TokenType != jwt.TokenTypeRefresh {
		return "", "", ErrInvalidRefreshToken
	}

	emp, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInternal
	}

	_, access, refresh, err := u.issueTokens(emp)
	return access, refresh, err
}

// issueTokens mints an access/refresh pair. The role claim travels in the
// access token so HR routes can be gated without a database round trip.
func (u *Auth) issueTokens(emp user.Employee) (user.Employee, string, string, error) {
	access, err := u.jwt.GenerateAccessToken(emp.ID, emp.Email, string(emp.Role))
	if err != nil {
		return user.Employee{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(emp.ID)
	if err != nil {
		return user.Employee{}, "", "", ErrInternal
	}
	return emp, access, refresh, nil
}
