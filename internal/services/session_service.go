package services

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/eventhall/internal/cache"
	"github.com/joshua-takyi/eventhall/internal/helpers"
	"github.com/joshua-takyi/eventhall/internal/models"
)

// SessionService issues and checks per-client session tokens. It holds no
// per-user state of its own beyond the revocation list.
type SessionService struct {
	tokens      *helpers.TokenManager
	revocations cache.RevocationStore
}

func NewSessionService(tokens *helpers.TokenManager, revocations cache.RevocationStore) *SessionService {
	return &SessionService{
		tokens:      tokens,
		revocations: revocations,
	}
}

func (ss *SessionService) Start(user *models.User) (string, *helpers.SessionClaims, error) {
	return ss.tokens.Issue(user.ID.Hex(), user.Email, user.Username)
}

// Resolve validates a raw token and rejects revoked ones.
func (ss *SessionService) Resolve(ctx context.Context, raw string) (*helpers.SessionClaims, error) {
	claims, err := ss.tokens.ValidateToken(raw)
	if err != nil {
		return nil, err
	}

	revoked, err := ss.revocations.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %v: %w", err, models.ErrStoreUnavailable)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", helpers.ErrInvalidToken)
	}
	return claims, nil
}

// End revokes the caller's token. A nil claims value is a no-op.
func (ss *SessionService) End(ctx context.Context, claims *helpers.SessionClaims) error {
	if claims == nil {
		return nil
	}
	if err := ss.revocations.Revoke(ctx, claims.TokenID(), claims.Expiry()); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (ss *SessionService) TTLSeconds() int {
	return int(ss.tokens.TTL().Seconds())
}
