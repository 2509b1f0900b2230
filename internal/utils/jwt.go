package utils // package utils provides helper functions for token creation and hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Role values carried in the token's "role" claim. Regular accounts get
// RoleUser; the admin PIN exchange issues RoleAdmin tokens for the
// reporting endpoints.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are self-contained: verification needs only the signing
// secret, no database round-trip. There is no refresh flow; when a token
// expires the client logs in again.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT. The subject is the user id
// (an opaque UUID string), the email travels along for convenience, and the
// role distinguishes regular users from admin-report tokens. Standard
// exp/iat claims bound the token's life to ttlMin minutes.
func NewAccessToken(secret, userID, email, role string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
