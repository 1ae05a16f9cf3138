package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/gomega"

	"taskapi/pkg/auth"
)

func TestGinJwtMiddleware(t *testing.T) {
	RegisterTestingT(t)
	gin.SetMode(gin.TestMode)

	service, err := auth.NewTokenService(auth.Config{SigningKey: testKey, Issuer: "taskapi", TTL: time.Minute})
	Expect(err).ToNot(HaveOccurred())

	router := gin.New()
	router.GET("/private", auth.GinJwtMiddleware(service), func(c *gin.Context) {
		identity, ok := auth.IdentityFrom(c)

		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}

		c.String(http.StatusOK, identity.DisplayName)
	})

	perform := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)

		if header != "" {
			req.Header.Set("Authorization", header)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		return w
	}

	t.Run("should accept a valid bearer token", func(t *testing.T) {
		token, _ := service.Issue(uuid.New(), "alice")

		w := perform("Bearer " + token.Value)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("alice"))
	})

	t.Run("should reject missing, malformed and invalid tokens", func(t *testing.T) {
		for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
			w := perform(header)

			Expect(w.Code).To(Equal(http.StatusUnauthorized), header)
			Expect(w.Body.String()).To(ContainSubstring("UNAUTHORIZED"))
		}
	})
}
