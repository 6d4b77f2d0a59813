package interfaces

import (
	"context"

	"bankhub/domain/entities"
	"bankhub/domain/events"
)

// BankHubService orchestrates banking hub state and the hub message
type BankHubService interface {
	// SetupHub posts a new hub message in channelID and records its location (admin only)
	SetupHub(ctx context.Context, guildID int64, actor entities.Actor, channelID int64) (*entities.HubLocation, error)

	// SetBankerRole assigns the banker role for the guild (admin only)
	SetBankerRole(ctx context.Context, guildID int64, actor entities.Actor, roleID int64) error

	// OpenConsole checks console access and returns the current settings
	OpenConsole(ctx context.Context, guildID int64, actor entities.Actor) (entities.BankSettings, error)

	// SetToggle enables or disables a toggle, persists it and re-renders the hub
	SetToggle(ctx context.Context, guildID int64, actor entities.Actor, toggle entities.Toggle, enabled bool) (*entities.ToggleOutcome, error)

	// Enable is SetToggle(..., true)
	Enable(ctx context.Context, guildID int64, actor entities.Actor, toggle entities.Toggle) (*entities.ToggleOutcome, error)

	// Disable is SetToggle(..., false)
	Disable(ctx context.Context, guildID int64, actor entities.Actor, toggle entities.Toggle) (*entities.ToggleOutcome, error)

	// GetSettings returns the current (default-filled) settings
	GetSettings(ctx context.Context, guildID int64) (entities.BankSettings, error)

	// RefreshHub re-renders the hub message from stored settings
	RefreshHub(ctx context.Context, guildID int64) (entities.HubSyncStatus, error)

	// RefreshAllHubs re-renders the hub of every guild that has one
	RefreshAllHubs(ctx context.Context) (entities.HubRefreshSummary, error)

	// OpenRequest fails with entities.ErrToggleDisabled when the toggle behind a hub button is off
	OpenRequest(ctx context.Context, guildID int64, toggle entities.Toggle) error
}

// HubPublisher is the messaging surface the hub is rendered onto
type HubPublisher interface {
	// PostHub sends a new hub message and returns its message id
	PostHub(ctx context.Context, guildID, channelID int64, settings entities.BankSettings) (int64, error)

	// UpdateHub edits the existing hub message
	UpdateHub(ctx context.Context, guildID int64, location entities.HubLocation, settings entities.BankSettings) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}
