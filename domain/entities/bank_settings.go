package entities

import (
	"errors"
	"fmt"
)

// Domain errors for the banking hub
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrPersistence      = errors.New("failed to persist banking data")
	ErrUnknownToggle    = errors.New("unknown toggle")
	ErrToggleDisabled   = errors.New("toggle is disabled")

	ErrAdminRequired  = fmt.Errorf("%w: administrator permission required", ErrPermissionDenied)
	ErrBankerRequired = fmt.Errorf("%w: banker role or administrator permission required", ErrPermissionDenied)
)

// Toggle identifies one of the two independent bank switches
type Toggle string

const (
	ToggleDeposit  Toggle = "deposit"
	ToggleWithdraw Toggle = "withdraw"
)

// AllToggles lists toggles in display order
var AllToggles = []Toggle{ToggleDeposit, ToggleWithdraw}

// ParseToggle converts a raw string into a Toggle
func ParseToggle(raw string) (Toggle, error) {
	switch Toggle(raw) {
	case ToggleDeposit, ToggleWithdraw:
		return Toggle(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownToggle, raw)
	}
}

// Label returns the capitalized display name of the toggle
func (t Toggle) Label() string {
	switch t {
	case ToggleDeposit:
		return "Deposit"
	case ToggleWithdraw:
		return "Withdraw"
	default:
		return string(t)
	}
}

// BankSettings represents the per-guild deposit/withdraw switches
type BankSettings struct {
	DepositEnabled  bool `json:"deposit_enabled" db:"deposit_enabled"`
	WithdrawEnabled bool `json:"withdraw_enabled" db:"withdraw_enabled"`
}

// DefaultBankSettings returns the settings used for guilds without a stored entry
func DefaultBankSettings() BankSettings {
	return BankSettings{
		DepositEnabled:  true,
		WithdrawEnabled: true,
	}
}

// IsEnabled reports the state of a toggle
func (s BankSettings) IsEnabled(t Toggle) bool {
	switch t {
	case ToggleDeposit:
		return s.DepositEnabled
	case ToggleWithdraw:
		return s.WithdrawEnabled
	default:
		return false
	}
}

// Set updates a single toggle, leaving the other untouched.
// Setting a toggle to its current value is a no-op.
func (s *BankSettings) Set(t Toggle, enabled bool) error {
	switch t {
	case ToggleDeposit:
		s.DepositEnabled = enabled
	case ToggleWithdraw:
		s.WithdrawEnabled = enabled
	default:
		return fmt.Errorf("%w: %q", ErrUnknownToggle, t)
	}
	return nil
}

// HubLocation points at the hub message of a guild
type HubLocation struct {
	ChannelID int64 `db:"channel_id"`
	MessageID int64 `db:"message_id"`
}

// IsValid checks that both ids are set
func (l *HubLocation) IsValid() bool {
	return l != nil && l.ChannelID > 0 && l.MessageID > 0
}

// GuildBankRecord aggregates everything stored for a guild
type GuildBankRecord struct {
	GuildID      int64
	Settings     *BankSettings // nil when the guild has never been written
	Hub          *HubLocation
	BankerRoleID *int64
}
