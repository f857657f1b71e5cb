package auth

import (
	"context"
	"time"

	"shiptrack/internal/models"
)

// ProfileStore reads and syncs application profile rows. Lookups return
// (nil, nil) when no row matches so the bridge can fall through its
// lookup chain without error juggling.
type ProfileStore interface {
	// ActiveByID fetches an active profile by primary key.
	ActiveByID(ctx context.Context, id string) (*models.User, error)
	// ActiveByPhone tries each phone variant in order.
	ActiveByPhone(ctx context.Context, variants []string) (*models.User, error)
	// ListActive returns all active profiles, for digit-sequence matching.
	ListActive(ctx context.Context) ([]models.User, error)
	// List returns every profile row, active or not.
	List(ctx context.Context) ([]models.User, error)
	// Upsert writes a full profile row keyed by ID.
	Upsert(ctx context.Context, user *models.User) error
	// SyncCredentials updates phone and pin hash; activate additionally
	// flips the row active.
	SyncCredentials(ctx context.Context, id, phone, pinHash string, activate bool) error
}

// AccountStore manages provider-side credential records.
type AccountStore interface {
	ByID(ctx context.Context, id string) (*models.AuthAccount, error)
	ByEmail(ctx context.Context, email string) (*models.AuthAccount, error)
	// Create returns ErrAccountExists when the email is already taken.
	Create(ctx context.Context, account *models.AuthAccount) error
	Update(ctx context.Context, account *models.AuthAccount) error
}

// SessionTokens issues and revokes provider session tokens. Revocation is
// what makes the role allow-list fail closed: a token minted during
// sign-in is withdrawn again when the resolved profile is rejected.
type SessionTokens interface {
	Issue(accountID string, role models.Role) (token, jti string, expiresAt time.Time, err error)
	Revoke(jti string)
}
