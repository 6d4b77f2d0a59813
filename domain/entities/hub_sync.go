package entities

import "time"

// HubSyncStatus describes what happened to the hub message after a settings change
type HubSyncStatus int

const (
	HubSynced        HubSyncStatus = iota // hub message edited
	HubNotConfigured                      // guild has no hub yet, nothing to edit
	HubPushFailed                         // edit failed; the settings change still stands
)

func (s HubSyncStatus) String() string {
	switch s {
	case HubSynced:
		return "synced"
	case HubNotConfigured:
		return "not_configured"
	case HubPushFailed:
		return "push_failed"
	default:
		return "unknown"
	}
}

// ToggleOutcome is the result of a toggle transition
type ToggleOutcome struct {
	Settings  BankSettings
	Toggle    Toggle
	Enabled   bool
	Persisted bool // false when the store write failed and only memory changed
	HubStatus HubSyncStatus
	HubErr    error
	ActorID   int64
	ChangedAt time.Time
}

// HubRefreshSummary counts the results of re-rendering every configured hub
type HubRefreshSummary struct {
	Synced int
	Failed int
}
