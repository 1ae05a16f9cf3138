package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
)

// User never holds a raw password, only its hash. Username uniqueness is
// enforced by storage.
type User struct {
	id           uuid.UUID
	username     string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

type UserRecord struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func NewUser(username, passwordHash string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	if err := validatePasswordHash(passwordHash); err != nil {
		return nil, err
	}

	createdAt := now()

	return &User{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    createdAt,
	}, nil
}

func RestoreUser(r UserRecord) *User {
	return &User{
		id:           r.ID,
		username:     r.Username,
		passwordHash: r.PasswordHash,
		createdAt:    r.CreatedAt.UTC(),
		updatedAt:    r.UpdatedAt.UTC(),
	}
}

func (u *User) ID() uuid.UUID { return u.id }
func (u *User) Username() string { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) Record() UserRecord {
	return UserRecord{
		ID:           u.id,
		Username:     u.username,
		PasswordHash: u.passwordHash,
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
	}
}

// VerifyPassword reports whether candidate matches the stored hash. The
// comparison itself belongs to verify so the hashing scheme stays outside.
func (u *User) VerifyPassword(candidate string, verify func(plain, hash string) bool) bool {
	if verify == nil {
		return false
	}

	return verify(candidate, u.passwordHash)
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return NewValidationError("username", "username cannot be empty")
	}

	length := utf8.RuneCountInString(username)

	if length < UsernameMinLength {
		return NewValidationError("username", "username must be at least 3 characters long")
	}

	if length > UsernameMaxLength {
		return NewValidationError("username", "username must be at most 50 characters long")
	}

	return nil
}

func validatePasswordHash(hash string) error {
	if strings.TrimSpace(hash) == "" {
		return NewValidationError("password_hash", "password hash cannot be empty")
	}

	return nil
}
