package security

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// RoleUser is the authority claim stamped into every issued token.
	RoleUser = "ROLE_USER"

	defaultTokenTTL = 24 * time.Hour
)

var (
	// ErrSigningKeyInvalid indicates the shared signing key is missing or malformed.
	ErrSigningKeyInvalid = errors.New("token: signing key missing or malformed")
	// ErrTokenInvalid indicates the token is malformed or its signature does not verify.
	ErrTokenInvalid = errors.New("token: invalid")
	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.New("token: expired")
)

// AccessTokenClaims carries the subject email and authority the platform
// auth service stamps into access tokens.
type AccessTokenClaims struct {
	Authority string `json:"auth"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS512 bearer tokens with the symmetric key
// shared across the platform. The verification tool uses it to mint
// credentials for arbitrary subjects without a password round trip; the API
// uses the same issuer for login and request authentication.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenIssuer decodes the base64-encoded signing key and constructs an
// issuer. An empty or undecodable key fails fast with ErrSigningKeyInvalid
// so callers can distinguish misconfiguration from a verification failure.
func NewTokenIssuer(encodedKey string, ttl time.Duration) (*TokenIssuer, error) {
	if encodedKey == "" {
		return nil, ErrSigningKeyInvalid
	}

	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningKeyInvalid, err)
	}
	if len(key) == 0 {
		return nil, ErrSigningKeyInvalid
	}

	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &TokenIssuer{key: key, ttl: ttl, now: time.Now}, nil
}

// WithClock injects a custom clock, primarily for tests.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	if now != nil {
		i.now = now
	}
	return i
}

// TTL reports the expiry horizon applied to issued tokens.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token binding the subject email, the user role, and an
// expiry of now plus the configured horizon. Tokens for distinct subjects
// are independent and simultaneously valid.
func (i *TokenIssuer) Issue(subjectEmail string) (string, error) {
	if subjectEmail == "" {
		return "", fmt.Errorf("token: subject email is required")
	}

	now := i.now().UTC()
	claims := AccessTokenClaims{
		Authority: RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectEmail,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}

	return signed, nil
}

// Parse verifies the token signature and expiry and returns its claims.
func (i *TokenIssuer) Parse(token string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.key, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
