package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskapi/internal/core/domain"
	"taskapi/internal/core/port"
)

const (
	DefaultTTL        = time.Hour
	MinSigningKeySize = 32
)

var ErrWeakSigningKey = errors.New("jwt signing key must be at least 32 bytes")

type Config struct {
	SigningKey string
	Issuer     string
	Audience   string
	TTL        time.Duration
}

// Claims carries the identity twice: as the registered subject and as the
// userId/username pair older clients read.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 tokens. It holds no per-token
// state, so issued tokens cannot be revoked before they expire.
type TokenService struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

func NewTokenService(config Config) (*TokenService, error) {
	if len(config.SigningKey) < MinSigningKeySize {
		return nil, ErrWeakSigningKey
	}

	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &TokenService{
		key:      []byte(config.SigningKey),
		issuer:   config.Issuer,
		audience: config.Audience,
		ttl:      ttl,
		now:      time.Now,
	}

	s.parser = s.newParser()

	return s, nil
}

// WithClock swaps the time source used for issuing and validating.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	s.parser = s.newParser()

	return s
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) Issue(subjectID uuid.UUID, displayName string) (port.IssuedToken, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)

	claims := Claims{
		UserID:   subjectID.String(),
		Username: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)

	if err != nil {
		return port.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	return port.IssuedToken{
		Value:     signed,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// Validate checks signature, issuer, audience and expiry with no leeway.
// Every failure comes back as an error wrapping domain.ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (port.Identity, error) {
	if tokenString == "" {
		return port.Identity{}, domain.NewTokenError(errors.New("token is empty"))
	}

	claims := &Claims{}

	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.key, nil
	})

	if err != nil {
		return port.Identity{}, domain.NewTokenError(err)
	}

	if !token.Valid {
		return port.Identity{}, domain.NewTokenError(errors.New("token is invalid"))
	}

	subjectID, err := uuid.Parse(claims.Subject)

	if err != nil {
		return port.Identity{}, domain.NewTokenError(fmt.Errorf("subject is not an id: %w", err))
	}

	return port.Identity{
		SubjectID:   subjectID,
		DisplayName: claims.Username,
	}, nil
}

func (s *TokenService) newParser() *jwt.Parser {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(s.now),
	}

	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	if s.audience != "" {
		options = append(options, jwt.WithAudience(s.audience))
	}

	return jwt.NewParser(options...)
}
