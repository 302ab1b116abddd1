package helpers

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordCost    = 10
	tokenIssuer     = "eventhall-api"
	signingMethodHS = "HS256"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// HashPassword returns the bcrypt hash of plain at PasswordCost.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// DummyHash is a fixed bcrypt hash at PasswordCost. Comparing against it
// costs the same as checking a real account.
var DummyHash = sync.OnceValue(func() string {
	b, err := bcrypt.GenerateFromPassword([]byte("eventhall-no-such-user"), PasswordCost)
	if err != nil {
		panic(fmt.Sprintf("helpers: generating dummy hash: %v", err))
	}
	return string(b)
})

// TokenManager signs session tokens with the active key and verifies them
// against every known key, looked up by the kid header.
type TokenManager struct {
	activeKID string
	secret    []byte
	ttl       time.Duration
	jwks      *keyfunc.JWKS
}

// NewTokenManager builds a manager from kid -> secret pairs. activeKID must be one of them.
func NewTokenManager(keys map[string]string, activeKID string, ttl time.Duration) (*TokenManager, error) {
	secret, ok := keys[activeKID]
	if !ok || secret == "" {
		return nil, fmt.Errorf("no signing secret for key %q", activeKID)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	given := make(map[string]keyfunc.GivenKey, len(keys))
	for kid, s := range keys {
		if strings.TrimSpace(s) == "" {
			continue
		}
		given[kid] = keyfunc.NewGivenHMAC([]byte(s), keyfunc.GivenKeyOptions{
			Algorithm: signingMethodHS,
		})
	}

	return &TokenManager{
		activeKID: activeKID,
		secret:    []byte(secret),
		ttl:       ttl,
		jwks:      keyfunc.NewGiven(given),
	}, nil
}

func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs a new token for the user.
func (tm *TokenManager) Issue(userID, email, username string) (string, *SessionClaims, error) {
	now := time.Now().UTC()
	claims := &SessionClaims{
		Email:    email,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = tm.activeKID

	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// ValidateToken parses tokenStr and checks signature, issuer and expiry.
func (tm *TokenManager) ValidateToken(tokenStr string) (*SessionClaims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, tm.jwks.Keyfunc,
		jwt.WithValidMethods([]string{signingMethodHS}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing identity claims", ErrInvalidToken)
	}

	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
