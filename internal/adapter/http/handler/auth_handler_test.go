package handler_test

import (
	"net/http"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskapi/internal/core/model/response"
)

type AuthHandlerSuite struct {
	suite.Suite
	app *testApp
}

func (s *AuthHandlerSuite) SetupTest() {
	s.app = newTestApp()
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.app.DB.Close()
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) TestRegister() {
	rr := s.app.do(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
		"password": "password123",
	}, "")

	Expect(rr.Code).To(Equal(http.StatusCreated))
	Expect(rr.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

	body := decode[envelope[response.AuthResponse]](rr)
	Expect(body.Data.Username).To(Equal("alice"))
	Expect(body.Data.Token).NotTo(BeEmpty())
	Expect(body.Data.ExpiresAt.IsZero()).To(BeFalse())

	identity, err := s.app.Tokens.Validate(body.Data.Token)
	Expect(err).To(BeNil())
	Expect(identity.DisplayName).To(Equal("alice"))
}

func (s *AuthHandlerSuite) TestRegister_Conflict() {
	payload := map[string]string{"username": "alice", "password": "password123"}

	Expect(s.app.do(http.MethodPost, "/api/auth/register", payload, "").Code).To(Equal(http.StatusCreated))

	rr := s.app.do(http.MethodPost, "/api/auth/register", payload, "")

	Expect(rr.Code).To(Equal(http.StatusConflict))
	Expect(decode[response.ErrorResponse](rr).Error.Code).To(Equal("CONFLICT"))
}

func (s *AuthHandlerSuite) TestRegister_ValidationError() {
	rr := s.app.do(http.MethodPost, "/api/auth/register", map[string]string{"username": "al", "password": "123"}, "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	errorResponse := decode[response.ErrorResponse](rr)
	Expect(errorResponse.Error.Code).To(Equal("VALIDATION_ERROR"))
	Expect(errorResponse.Error.Errors).To(HaveLen(2))
}

func (s *AuthHandlerSuite) TestRegister_MalformedBody() {
	rr := s.app.do(http.MethodPost, "/api/auth/register", `{"username":`, "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decode[response.ErrorResponse](rr).Error.Code).To(Equal("BAD_REQUEST"))
}

func (s *AuthHandlerSuite) TestLogin() {
	payload := map[string]string{"username": "alice", "password": "password123"}
	s.app.do(http.MethodPost, "/api/auth/register", payload, "")

	rr := s.app.do(http.MethodPost, "/api/auth/login", payload, "")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[envelope[response.AuthResponse]](rr).Data.Token).NotTo(BeEmpty())
}

func (s *AuthHandlerSuite) TestLogin_SameErrorForUnknownUserAndWrongPassword() {
	s.app.do(http.MethodPost, "/api/auth/register", map[string]string{"username": "alice", "password": "password123"}, "")

	wrongPassword := s.app.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "alice", "password": "nope"}, "")
	unknownUser := s.app.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "bob", "password": "password123"}, "")

	Expect(wrongPassword.Code).To(Equal(http.StatusUnauthorized))
	Expect(unknownUser.Code).To(Equal(http.StatusUnauthorized))
	Expect(wrongPassword.Body.String()).To(Equal(unknownUser.Body.String()))
}
