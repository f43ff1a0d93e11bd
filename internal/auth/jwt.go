// Package auth provides session token issuance/verification, the bearer-token
// middleware, and password hashing.
//
// Tokens are HS256 JWTs carrying the user id (as the registered "sub" claim)
// and the username. They are stateless: verification needs only the shared
// secret, no storage round-trip.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed session lifetime. After expiry the client must log
// in again; there is no refresh or rotation path.
const TokenTTL = 7 * 24 * time.Hour

const issuer = "clone-x-app"

var (
	// ErrTokenExpired is returned by Validate for well-formed but expired tokens.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrTokenInvalid is returned for tampered, malformed, or mis-signed tokens.
	ErrTokenInvalid = errors.New("auth: invalid token")
)

// Identity is the authenticated principal extracted from a verified token.
type Identity struct {
	UserID   int64
	Username string
}

// TokenService signs and verifies session JWTs with a single HMAC secret.
// The secret is loaded once at startup and immutable afterwards.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret must be at least 16
// characters; generate one with `openssl rand -hex 32`.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds the registered claim set and adds the username, mirroring
// the token payload the API clients already decode.
type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate issues a signed token for the given user, valid for TokenTTL.
func (s *TokenService) Generate(userID int64, username string) (string, error) {
	return s.GenerateWithDuration(userID, username, TokenTTL)
}

// GenerateWithDuration issues a token with a custom lifetime. Used by tests
// to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID int64, username string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the identity it
// carries. The signature, expiry, issuer, and algorithm are all checked;
// pinning the method to HS256 blocks algorithm-confusion tokens.
func (s *TokenService) Validate(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, fmt.Errorf("%w: bad subject", ErrTokenInvalid)
	}

	return Identity{UserID: userID, Username: c.Username}, nil
}
