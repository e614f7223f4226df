// Package jwt issues and validates the HMAC-signed access/refresh token pair.
// Access tokens carry the employee's role so HR routes can be gated without a
// database lookup.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email, role string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ValidateToken(tokenString string) (Claims, error)
	IsRefreshToken(claims Claims) bool
}

// tokenKind pairs a signing secret with its lifetime.
type tokenKind struct {
	secret []byte
	ttl    time.Duration
}

func (k tokenKind) usable() bool {
	return len(k.secret) > 0 && k.ttl > 0
}

type HMACService struct {
	access  tokenKind
	refresh tokenKind
	now     func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *HMACService {
	return &HMACService{
		access:  tokenKind{secret: []byte(accessSecret), ttl: accessTTL},
		refresh: tokenKind{secret: []byte(refreshSecret), ttl: refreshTTL},
		now:     time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email, role string) (string, error) {
	return s.sign(s.access, Claims{UserID: userID, Email: email, Role: role, TokenType: TokenTypeAccess})
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.sign(s.refresh, Claims{UserID: userID, TokenType: TokenTypeRefresh})
}

func (s *HMACService) sign(kind tokenKind, c Claims) (string, error) {
	if !kind.usable() {
		return "", ErrTokenInvalid
	}

	issued := s.now().UTC()
	c.RegisteredClaims = jwtlib.RegisteredClaims{
		Subject:   c.UserID.String(),
		IssuedAt:  jwtlib.NewNumericDate(issued),
		ExpiresAt: jwtlib.NewNumericDate(issued.Add(kind.ttl)),
	}

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(kind.secret)
}

// ValidateToken tries the access secret first, then the refresh secret; the
// two kinds are signed with different keys so a refresh token can never pass
// as an access token by accident.
func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	var expired bool
	for _, kind := range []tokenKind{s.access, s.refresh} {
		claims, err := parse(tokenString, kind.secret)
		if err == nil {
			return claims, nil
		}
		if errors.Is(err, ErrTokenExpired) {
			expired = true
		}
	}
	if expired {
		return Claims{}, ErrTokenExpired
	}
	return Claims{}, ErrTokenInvalid
}

func (s *HMACService) IsRefreshToken(claims Claims) bool {
	return claims.TokenType == TokenTypeRefresh
}

func parse(tokenString string, secret []byte) (Claims, error) {
	parser := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	var c Claims
	tok, err := parser.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil, tok == nil, !tok.Valid:
		return Claims{}, ErrTokenInvalid
	}

	if c.TokenType != TokenTypeAccess && c.TokenType != TokenTypeRefresh {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
