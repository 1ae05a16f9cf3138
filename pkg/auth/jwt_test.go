package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"taskapi/internal/core/domain"
	"taskapi/pkg/auth"
)

const testKey = "0123456789abcdef0123456789abcdef"

type TokenServiceTestSuite struct {
	suite.Suite
	clock   time.Time
	service *auth.TokenService
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.clock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	service, err := auth.NewTokenService(auth.Config{
		SigningKey: testKey,
		Issuer:     "taskapi",
		Audience:   "taskapi-clients",
		TTL:        time.Hour,
	})
	s.Require().NoError(err)

	s.service = service.WithClock(func() time.Time { return s.clock })
}

func TestTokenServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) TestIssueThenValidate() {
	userID := uuid.New()

	token, err := s.service.Issue(userID, "alice")

	Expect(err).ToNot(HaveOccurred())
	Expect(token.ExpiresAt).To(Equal(s.clock.Add(time.Hour)))

	identity, err := s.service.Validate(token.Value)

	Expect(err).ToNot(HaveOccurred())
	Expect(identity.SubjectID).To(Equal(userID))
	Expect(identity.DisplayName).To(Equal("alice"))
}

func (s *TokenServiceTestSuite) TestClaimsCarryBothIdentityForms() {
	userID := uuid.New()
	token, _ := s.service.Issue(userID, "alice")

	claims := &auth.Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(token.Value, claims)

	Expect(err).ToNot(HaveOccurred())
	Expect(claims.Subject).To(Equal(userID.String()))
	Expect(claims.UserID).To(Equal(userID.String()))
	Expect(claims.Username).To(Equal("alice"))
	Expect(claims.Issuer).To(Equal("taskapi"))
	Expect([]string(claims.Audience)).To(ConsistOf("taskapi-clients"))
}

func (s *TokenServiceTestSuite) TestExpiredToken() {
	token, _ := s.service.Issue(uuid.New(), "alice")

	s.clock = s.clock.Add(time.Hour - time.Second)
	_, err := s.service.Validate(token.Value)
	Expect(err).ToNot(HaveOccurred())

	s.clock = s.clock.Add(time.Second)
	_, err = s.service.Validate(token.Value)

	assert.True(s.T(), domain.IsInvalidToken(err))
	assert.ErrorContains(s.T(), err, "expired")
}

func (s *TokenServiceTestSuite) TestWrongSignature() {
	other, _ := auth.NewTokenService(auth.Config{
		SigningKey: strings.Repeat("z", 32),
		Issuer:     "taskapi",
		Audience:   "taskapi-clients",
	})

	token, _ := other.WithClock(func() time.Time { return s.clock }).Issue(uuid.New(), "mallory")

	_, err := s.service.Validate(token.Value)

	assert.True(s.T(), domain.IsInvalidToken(err))
}

func (s *TokenServiceTestSuite) TestWrongIssuerAndAudience() {
	for _, config := range []auth.Config{
		{SigningKey: testKey, Issuer: "someone-else", Audience: "taskapi-clients"},
		{SigningKey: testKey, Issuer: "taskapi", Audience: "other-clients"},
	} {
		issuer, _ := auth.NewTokenService(config)
		token, _ := issuer.WithClock(func() time.Time { return s.clock }).Issue(uuid.New(), "alice")

		_, err := s.service.Validate(token.Value)

		assert.True(s.T(), domain.IsInvalidToken(err), "config %+v", config)
	}
}

func (s *TokenServiceTestSuite) TestMalformedTokens() {
	for _, raw := range []string{"", "garbage", "a.b.c", strings.Repeat(".", 3)} {
		_, err := s.service.Validate(raw)

		assert.True(s.T(), domain.IsInvalidToken(err), "token %q", raw)
	}
}

func (s *TokenServiceTestSuite) TestRejectsOtherAlgorithms() {
	claims := auth.Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "taskapi",
			Audience:  jwt.ClaimStrings{"taskapi-clients"},
			ExpiresAt: jwt.NewNumericDate(s.clock.Add(time.Hour)),
		},
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.Require().NoError(err)

	_, err = s.service.Validate(unsigned)

	assert.True(s.T(), domain.IsInvalidToken(err))
}

func (s *TokenServiceTestSuite) TestRequiresExpiry() {
	claims := auth.Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  uuid.NewString(),
			Issuer:   "taskapi",
			Audience: jwt.ClaimStrings{"taskapi-clients"},
		},
	}

	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))

	_, err := s.service.Validate(signed)

	assert.True(s.T(), domain.IsInvalidToken(err))
}

func TestNewTokenService(t *testing.T) {
	RegisterTestingT(t)

	_, err := auth.NewTokenService(auth.Config{SigningKey: "short"})
	Expect(err).To(MatchError(auth.ErrWeakSigningKey))

	service, err := auth.NewTokenService(auth.Config{SigningKey: testKey})
	Expect(err).ToNot(HaveOccurred())
	Expect(service.TTL()).To(Equal(auth.DefaultTTL))
}
