package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/yadu32/brickworks-pro-suite/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject, email and role claims into the request
// context. The provided secret must match the one used when issuing tokens.
// Handlers behind this middleware read their identity via c.Get("user_id").
//
// Every rejection carries a WWW-Authenticate challenge so clients know a
// bearer credential is expected. onAuth, when non-nil, is invoked with the
// user id of each authenticated regular user; the caller uses it to touch
// the account's last-active timestamp without blocking the request.
func JWTAuth(secret string, onAuth func(userID string)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, errMsg := parseBearer(c, secret)
			if claims == nil {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": errMsg})
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			role, _ := claims["role"].(string)
			if role == "" {
				role = utils.RoleUser
			}
			email, _ := claims["email"].(string)
			c.Set("user_id", sub)
			c.Set("email", email)
			c.Set("role", role)
			if onAuth != nil && role == utils.RoleUser {
				go onAuth(sub)
			}
			return next(c)
		}
	}
}

// OptionalJWTAuth resolves an identity when a valid bearer token is present
// and silently continues otherwise. Nothing user-facing depends on it today;
// it feeds per-user keys to the rate limiter on routes that do not require
// authentication.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, _ := parseBearer(c, secret); claims != nil {
				if sub, _ := claims["sub"].(string); sub != "" {
					c.Set("user_id", sub)
					if role, _ := claims["role"].(string); role != "" {
						c.Set("role", role)
					}
				}
			}
			return next(c)
		}
	}
}

// parseBearer extracts and verifies the Authorization bearer token. It
// returns the claims on success, or nil and a short reason usable in the
// 401 body. Expired, malformed and badly signed tokens are all rejected the
// same way.
func parseBearer(c echo.Context, secret string) (jwt.MapClaims, string) {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, "missing bearer token"
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, "invalid token"
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "invalid claims"
	}
	return claims, ""
}
