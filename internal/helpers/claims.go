package helpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims identify the caller of a single request.
type SessionClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (sc *SessionClaims) IsOwner(email string) bool {
	return sc != nil && sc.Email != "" && sc.Email == email
}

// TokenID returns the jti claim used for revocation.
func (sc *SessionClaims) TokenID() string {
	return sc.ID
}

// Expiry returns when the token stops being valid, or the zero time if unset.
func (sc *SessionClaims) Expiry() time.Time {
	if sc.ExpiresAt == nil {
		return time.Time{}
	}
	return sc.ExpiresAt.Time
}
