package credential

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

// Credential is what a user handed us to talk to one provider on their behalf.
type Credential struct {
	UserID       string
	Provider     provider.ID
	AccessToken  string
	RefreshToken string
	Cookie       string
	ExpiresAt    time.Time
	UpdatedAt    time.Time
}

func (c Credential) Validate() error {
	if c.UserID == "" {
		return fmt.Errorf("credential user id is required")
	}
	if c.Provider == "" {
		return fmt.Errorf("credential provider is required")
	}

	return nil
}

// Expired reports whether the access token is past its expiry. A zero
// ExpiresAt never expires.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !c.ExpiresAt.After(now)
}

// Repository stores credentials keyed by (user id, provider).
type Repository interface {
	Upsert(ctx context.Context, item Credential) error
	ListByUser(ctx context.Context, userID string) ([]Credential, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}
