package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskapi/internal/core/model/response"
	"taskapi/internal/core/port"
	ct "taskapi/pkg/context"
)

const (
	UserIDKey   = "x-user-id"
	UsernameKey = "x-username"
)

// GinJwtMiddleware rejects requests without a valid bearer token and stores
// the caller identity on both the gin context and the request Current.
func GinJwtMiddleware(validator port.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			abortUnauthorized(c, "authorization header is required")
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		identity, err := validator.Validate(strings.TrimSpace(bearer[len("Bearer "):]))

		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(UserIDKey, identity.SubjectID)
		c.Set(UsernameKey, identity.DisplayName)

		current := ct.GetCurrent(c.Request.Context())
		current.Set("user_id", identity.SubjectID)
		current.Set("username", identity.DisplayName)

		c.Next()
	}
}

// IdentityFrom returns the identity stored by GinJwtMiddleware.
func IdentityFrom(c *gin.Context) (port.Identity, bool) {
	id, ok := c.Get(UserIDKey)

	if !ok {
		return port.Identity{}, false
	}

	subjectID, ok := id.(uuid.UUID)

	if !ok {
		return port.Identity{}, false
	}

	return port.Identity{SubjectID: subjectID, DisplayName: c.GetString(UsernameKey)}, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
		Error: response.ResponseError{
			Code:   "UNAUTHORIZED",
			Errors: []response.ValidationError{{Field: "authorization", Message: message}},
		},
	})
}
