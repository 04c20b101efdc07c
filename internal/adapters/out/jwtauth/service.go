// Package jwtauth issues and verifies HS256 bearer tokens carrying the actor.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token body.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service implements ports.TokenIssuer and ports.TokenVerifier.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive, got %s", ttl)
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *Service) Issue(a actor.Actor) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}

	now := s.now()
	claims := Claims{
		UserID: a.ID().String(),
		Role:   a.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) Verify(token string) (actor.Actor, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	role, err := actor.ParseRole(claims.Role)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return actor.NewActor(id, role)
}
