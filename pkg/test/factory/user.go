package factory

import (
	"fmt"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskapi/internal/core/domain"
)

const DefaultPassword = "12345678"

// NewUserRecord builds a user whose password is DefaultPassword unless a
// PasswordHash is supplied.
func NewUserRecord(customData ...map[string]any) domain.UserRecord {
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	defaults := map[string]any{
		"ID":        id,
		"Username":  fmt.Sprintf("user_%s", id.String()[:8]),
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	hasPasswordHash := false

	for _, data := range customData {
		if _, exists := data["PasswordHash"]; exists {
			hasPasswordHash = true
			break
		}
	}

	if !hasPasswordHash {
		passwordHash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		defaults["PasswordHash"] = string(passwordHash)
	}

	return fab.New(domain.UserRecord{}, fab.Options[domain.UserRecord]{Defaults: defaults}).Build(merge(customData))
}

func NewUser(customData ...map[string]any) *domain.User {
	return domain.RestoreUser(NewUserRecord(customData...))
}
