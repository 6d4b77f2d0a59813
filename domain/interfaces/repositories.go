package interfaces

import (
	"context"

	"bankhub/domain/entities"
)

// BankStore defines data access for per-guild banking state.
// Settings, hub location and banker role share the guild id key space but are
// independently optional.
type BankStore interface {
	// GetSettings returns the guild settings, or the defaults when none are stored
	GetSettings(ctx context.Context, guildID int64) (entities.BankSettings, error)

	// SetSettings replaces the guild settings
	SetSettings(ctx context.Context, guildID int64, settings entities.BankSettings) error

	// UpdateSettings applies mutate to the current settings (default-filled) and
	// persists the result as one atomic step for the guild. When the write fails
	// with entities.ErrPersistence the returned settings hold the in-memory value.
	UpdateSettings(ctx context.Context, guildID int64, mutate func(*entities.BankSettings) error) (entities.BankSettings, error)

	// EnsureSettings stores the defaults if the guild has no settings yet
	EnsureSettings(ctx context.Context, guildID int64) (entities.BankSettings, error)

	// GetHubLocation returns nil when no hub has been set up
	GetHubLocation(ctx context.Context, guildID int64) (*entities.HubLocation, error)

	// SetHubLocation records (or overwrites) the hub message pointer
	SetHubLocation(ctx context.Context, guildID int64, location entities.HubLocation) error

	// GetBankerRole returns nil when no banker role is configured
	GetBankerRole(ctx context.Context, guildID int64) (*int64, error)

	// SetBankerRole records (or overwrites) the banker role
	SetBankerRole(ctx context.Context, guildID int64, roleID int64) error

	// ListGuilds returns every guild with at least one stored value, ordered by guild id
	ListGuilds(ctx context.Context) ([]*entities.GuildBankRecord, error)
}
