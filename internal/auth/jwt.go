// JWT admin sessions.
//
// SESSION FLOW:
//  1. The admin posts username/password to /api/auth/login
//  2. AuthService verifies the credentials (bcrypt, role check)
//  3. The server issues a signed JWT stored in an HttpOnly cookie
//  4. On every admin API call, middleware reads the cookie, validates the
//     signature and expiry, and puts the userID in the request context
//
// The admin surface is gated by re-validating the token on EVERY call —
// nothing is trusted from client-held state. A flipped flag in the browser
// gets an attacker nothing; the signature check happens server-side.
//
// WHY JWT?
// JWT is stateless — the server doesn't store session data. Everything needed
// (userID, expiry) is inside the signed token, and the signature ensures
// nobody can tamper with it without the secret key.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer is baked into every session token and checked on validation,
// so tokens minted by other apps sharing a secret are rejected.
const tokenIssuer = "heros-shop"

// TokenService handles JWT creation and validation. It holds the HMAC secret
// used to sign and verify tokens — the same secret must be used for both.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. jwt.RegisteredClaims carries the standard
// fields (Subject, ExpiresAt, IssuedAt, Issuer); Subject holds the userID.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given userID with the
// given lifetime.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, same key for signing
// and verifying. Fine for a single-server deployment.
func (s *TokenService) Generate(userID string, lifetime time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string. Returns the userID (the "sub"
// claim) if the token is valid.
//
// The jwt library checks: signature, expiry, and issuer. Passing
// jwt.WithValidMethods pins the algorithm to HS256 — without it, an
// attacker could try an algorithm-confusion attack with an "alg":"none"
// token.
func (s *TokenService) Validate(tokenStr string) (string, error) {
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
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
