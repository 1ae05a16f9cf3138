package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	. "taskapi/pkg/test"

	"taskapi/internal/adapter/database/sqlite/repository"
	"taskapi/internal/core/domain"
	"taskapi/internal/core/model/request"
	"taskapi/internal/core/port"
	"taskapi/internal/core/service"
	"taskapi/internal/core/util"
	"taskapi/pkg/auth"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

type AuthServiceTestSuite struct {
	suite.Suite
	service *service.AuthService
	tokens  *auth.TokenService
	users   port.UserRepository
	clock   time.Time
}

func (s *AuthServiceTestSuite) SetupTest() {
	db := InitTestDB()

	tokens, err := auth.NewTokenService(auth.Config{
		SigningKey: testSigningKey,
		Issuer:     "taskapi",
		Audience:   "taskapi-clients",
		TTL:        30 * time.Minute,
	})
	s.Require().NoError(err)

	s.clock = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s.tokens = tokens.WithClock(func() time.Time { return s.clock })
	s.users = repository.NewUserRepository(db, nil)
	s.service = service.NewAuthService(s.users, util.NewBcryptHasher(bcrypt.MinCost), s.tokens, nil)
}

func TestAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) register(username, password string) {
	_, err := s.service.Register(context.Background(), request.RegisterCommand{Username: username, Password: password})
	s.Require().NoError(err)
}

func (s *AuthServiceTestSuite) TestRegister_Success() {
	res, err := s.service.Register(context.Background(), request.RegisterCommand{
		Username: "alice",
		Password: "password123",
	})

	Expect(err).To(BeNil())
	Expect(res.Username).To(Equal("alice"))
	Expect(res.Token).NotTo(BeEmpty())
	Expect(res.ExpiresAt).To(Equal(s.clock.Add(30 * time.Minute)))

	user, err := s.users.GetByUsername(context.Background(), "alice")
	Expect(err).To(BeNil())
	Expect(user).NotTo(BeNil())
	Expect(user.PasswordHash()).NotTo(Equal("password123"))

	identity, err := s.tokens.Validate(res.Token)
	Expect(err).To(BeNil())
	Expect(identity.SubjectID).To(Equal(user.ID()))
	Expect(identity.DisplayName).To(Equal("alice"))
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	s.register("alice", "password123")

	_, err := s.service.Register(context.Background(), request.RegisterCommand{
		Username: "alice",
		Password: "another-password",
	})

	Expect(domain.IsConflict(err)).To(BeTrue())
}

func (s *AuthServiceTestSuite) TestRegister_InvalidUsername() {
	_, err := s.service.Register(context.Background(), request.RegisterCommand{
		Username: "al",
		Password: "password123",
	})

	Expect(domain.IsValidation(err)).To(BeTrue())
	Expect(domain.FieldOf(err)).To(Equal("username"))

	_, err = s.service.Register(context.Background(), request.RegisterCommand{
		Username: strings.Repeat("a", domain.UsernameMaxLength+1),
		Password: "password123",
	})

	Expect(domain.IsValidation(err)).To(BeTrue())
}

func (s *AuthServiceTestSuite) TestRegister_EmptyPassword() {
	_, err := s.service.Register(context.Background(), request.RegisterCommand{Username: "alice", Password: "  "})

	Expect(domain.IsValidation(err)).To(BeTrue())
	Expect(domain.FieldOf(err)).To(Equal("password"))

	exists, err := s.users.UsernameExists(context.Background(), "alice")
	Expect(err).To(BeNil())
	Expect(exists).To(BeFalse())
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	s.register("alice", "password123")

	res, err := s.service.Login(context.Background(), request.LoginCommand{
		Username: "alice",
		Password: "password123",
	})

	Expect(err).To(BeNil())
	Expect(res.Username).To(Equal("alice"))

	identity, err := s.tokens.Validate(res.Token)
	Expect(err).To(BeNil())
	Expect(identity.DisplayName).To(Equal("alice"))
}

func (s *AuthServiceTestSuite) TestLogin_FailuresAreIndistinguishable() {
	s.register("alice", "password123")

	_, wrongPassword := s.service.Login(context.Background(), request.LoginCommand{
		Username: "alice",
		Password: "nope",
	})
	_, unknownUser := s.service.Login(context.Background(), request.LoginCommand{
		Username: "bob",
		Password: "password123",
	})

	Expect(domain.IsAuthentication(wrongPassword)).To(BeTrue())
	Expect(domain.IsAuthentication(unknownUser)).To(BeTrue())
	assert.Equal(s.T(), wrongPassword.Error(), unknownUser.Error())
}

func (s *AuthServiceTestSuite) TestLogin_TokenExpires() {
	s.register("alice", "password123")

	res, err := s.service.Login(context.Background(), request.LoginCommand{
		Username: "alice",
		Password: "password123",
	})
	s.Require().NoError(err)

	s.clock = s.clock.Add(31 * time.Minute)

	_, err = s.tokens.Validate(res.Token)
	Expect(domain.IsInvalidToken(err)).To(BeTrue())
}
