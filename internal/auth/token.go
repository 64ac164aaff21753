// Package auth implements the stateless session credential: an HS256-signed
// JWT carried in an HTTP-only cookie. The token itself is the full session
// state; there is no server-side session store and logout only clears the
// cookie, it does not invalidate the token cryptographically.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie the browser holds.
const CookieName = "token"

// TokenTTL is the fixed lifetime of an issued session token.
const TokenTTL = 7 * 24 * time.Hour

// Claims carries the authenticated identity: the caller's email plus any
// profile fields embedded at issuance. The role is deliberately absent — it
// is looked up fresh from the store on every role-gated request.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens with a shared secret.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue signs a session token for the given identity claim. Emails are
// lower-cased so ownership comparisons downstream stay exact.
func (tm *TokenManager) Issue(email, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: strings.ToLower(email),
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Parse verifies signature and expiry and returns the embedded claims.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
