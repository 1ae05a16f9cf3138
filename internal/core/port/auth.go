package port

import (
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Identity is what a valid token says about its bearer.
type Identity struct {
	SubjectID   uuid.UUID
	DisplayName string
}

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

type TokenIssuer interface {
	Issue(subjectID uuid.UUID, displayName string) (IssuedToken, error)
}

// TokenValidator never panics on bad input; every rejection is an error
// wrapping domain.ErrInvalidToken.
type TokenValidator interface {
	Validate(token string) (Identity, error)
}
