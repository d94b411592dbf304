// Package session is the single source of truth for the signed session
// token: its claim schema, issuance, and verification.
//
// Two capabilities exist over one verify implementation: the BFF's
// access middleware runs with a verify-only Verifier, while the tiers
// that issue tokens hold a Signer. The role inside a token is a
// snapshot taken at issuance; a role change only takes effect on
// re-issuance (accepted staleness window, narrowed for admin-gated
// backend operations by the pod's role cache).
package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"panda-gate/roles"
)

// TokenTTL is the fixed lifetime of a session token and its cookie.
const TokenTTL = 7 * 24 * time.Hour

type Claims struct {
	UserID string     `json:"uid"`
	Email  string     `json:"email"`
	Role   roles.Role `json:"role"`
	jwt.RegisteredClaims
}

// Verifier is the verify-only capability. Verify returns nil for any
// token that is malformed, expired, tampered with, or signed with the
// wrong method or secret; "no session" is a result, not an error.
type Verifier interface {
	Verify(token string) *Claims
}

type HMACVerifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *HMACVerifier) Verify(tokenStr string) *Claims {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil
	}
	return claims
}

// Signer adds issuance on top of the shared verify path. Construct it
// once at process start from explicit config; the secret is immutable
// afterwards.
type Signer struct {
	HMACVerifier
	ttl time.Duration
}

func NewSigner(secret, issuer string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("session: signing secret is empty")
	}
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &Signer{HMACVerifier: *NewVerifier(secret, issuer), ttl: ttl}, nil
}

func (s *Signer) Sign(userID, email string, role roles.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID, Email: email, Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
