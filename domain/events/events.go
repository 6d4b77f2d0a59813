package events

import "time"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBankToggleChanged EventType = "bank.toggle_changed"
	EventTypeBankHubPosted     EventType = "bank.hub_posted"
	EventTypeBankerRoleChanged EventType = "bank.banker_role_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GuildScoped is implemented by events that belong to a single guild
type GuildScoped interface {
	Guild() int64
}

// BankToggleChangedEvent is published after a deposit/withdraw toggle transition
type BankToggleChangedEvent struct {
	GuildID    int64     `json:"guild_id"`
	Toggle     string    `json:"toggle"`
	Enabled    bool      `json:"enabled"`
	ActorID    int64     `json:"actor_id"`
	HubSynced  bool      `json:"hub_synced"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e BankToggleChangedEvent) Type() EventType {
	return EventTypeBankToggleChanged
}

func (e BankToggleChangedEvent) Guild() int64 {
	return e.GuildID
}

// BankHubPostedEvent is published when a new hub message is set up
type BankHubPostedEvent struct {
	GuildID    int64     `json:"guild_id"`
	ChannelID  int64     `json:"channel_id"`
	MessageID  int64     `json:"message_id"`
	ActorID    int64     `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e BankHubPostedEvent) Type() EventType {
	return EventTypeBankHubPosted
}

func (e BankHubPostedEvent) Guild() int64 {
	return e.GuildID
}

// BankerRoleChangedEvent is published when an admin assigns the banker role
type BankerRoleChangedEvent struct {
	GuildID    int64     `json:"guild_id"`
	RoleID     int64     `json:"role_id"`
	ActorID    int64     `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e BankerRoleChangedEvent) Type() EventType {
	return EventTypeBankerRoleChanged
}

func (e BankerRoleChangedEvent) Guild() int64 {
	return e.GuildID
}
