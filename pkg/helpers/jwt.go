package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalid = errors.New("invalid token")

// JWTManager mints and validates the two token shapes this service uses:
// session credentials for authenticated calls and signed email-link tokens.
// Both secrets are process-wide configuration loaded once at startup;
// an empty secret is a fatal startup condition, checked in main.
type JWTManager struct {
	SessionSecret []byte
	LinkSecret    []byte
}

func NewJWTManager(sessionSecret, linkSecret string) *JWTManager {
	return &JWTManager{
		SessionSecret: []byte(sessionSecret),
		LinkSecret:    []byte(linkSecret),
	}
}

// SessionClaims bind a user id (and role, when issued at login) to a
// bearer credential. No expiry is embedded; expiry policy is a deployment
// decision enforced outside this subsystem.
type SessionClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// LinkClaims carry the user's email identity and an absolute expiry for
// the email-link verification channel. The token is never stored; it is
// validated by signature and expiry alone.
type LinkClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateSessionToken mints a session credential for a user id. Role may
// be empty for tokens issued by the verification flow.
func (m *JWTManager) GenerateSessionToken(userID string, role string) (string, error) {
	claims := &SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.SessionSecret)
}

// GenerateLinkToken mints a tamper-evident verification-link token whose
// subject is the user's email and whose expiry is now+ttl.
func (m *JWTManager) GenerateLinkToken(email string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &LinkClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.LinkSecret)
	return s, exp, err
}

func (m *JWTManager) ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := parseInto(tokenStr, claims, m.SessionSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseLinkToken validates signature and expiry and returns the claims.
// Expired or tampered tokens come back as ErrTokenInvalid.
func (m *JWTManager) ParseLinkToken(tokenStr string) (*LinkClaims, error) {
	claims := &LinkClaims{}
	if err := parseInto(tokenStr, claims, m.LinkSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseInto(tokenStr string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return ErrTokenInvalid
	}
	if !tkn.Valid {
		return ErrTokenInvalid
	}
	return nil
}
