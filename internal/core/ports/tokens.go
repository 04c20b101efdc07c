package ports

import (
	"fooddelivery/internal/core/domain/model/actor"
)

// TokenIssuer creates bearer credentials for an authenticated actor.
type TokenIssuer interface {
	Issue(a actor.Actor) (string, error)
}

// TokenVerifier resolves a bearer credential back to its actor.
type TokenVerifier interface {
	Verify(token string) (actor.Actor, error)
}
