package bankhub

import (
	"fmt"
	"strings"

	"bankhub/config"
	"bankhub/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Custom id prefixes routed to this feature
const (
	HubButtonPrefix   = "bank_"
	ControlMenuPrefix = "bank_ctl_"
)

// Control panel selector values
const (
	ControlValueEnable  = "enable"
	ControlValueDisable = "disable"
)

// HubButtonID returns the custom id of a hub button, e.g. bank_deposit_123
func HubButtonID(toggle entities.Toggle, guildID int64) string {
	return fmt.Sprintf("%s%s_%d", HubButtonPrefix, toggle, guildID)
}

// ControlMenuID returns the custom id of a control panel selector, e.g. bank_ctl_deposit
func ControlMenuID(toggle entities.Toggle) string {
	return ControlMenuPrefix + string(toggle)
}

// ParseControlMenuID extracts the toggle from a control panel selector id
func ParseControlMenuID(customID string) (entities.Toggle, error) {
	raw, ok := strings.CutPrefix(customID, ControlMenuPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a control selector", entities.ErrUnknownToggle, customID)
	}
	return entities.ParseToggle(raw)
}

// ParseHubButtonID extracts the toggle from a hub button id
func ParseHubButtonID(customID string) (entities.Toggle, error) {
	rest, ok := strings.CutPrefix(customID, HubButtonPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a hub button", entities.ErrUnknownToggle, customID)
	}
	raw, _, _ := strings.Cut(rest, "_")
	return entities.ParseToggle(raw)
}

// ParseControlValue maps a selector value to the requested state
func ParseControlValue(value string) (bool, error) {
	switch value {
	case ControlValueEnable:
		return true, nil
	case ControlValueDisable:
		return false, nil
	default:
		return false, fmt.Errorf("unknown control value %q", value)
	}
}

// CreateHubComponents builds the hub buttons. A button is disabled exactly when its toggle is off.
func CreateHubComponents(guildID int64, settings entities.BankSettings, emojis config.Emojis) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    entities.ToggleDeposit.Label(),
					Style:    discordgo.SecondaryButton,
					Disabled: !settings.DepositEnabled,
					Emoji:    componentEmoji(emojis.Deposit),
					CustomID: HubButtonID(entities.ToggleDeposit, guildID),
				},
				discordgo.Button{
					Label:    entities.ToggleWithdraw.Label(),
					Style:    discordgo.SecondaryButton,
					Disabled: !settings.WithdrawEnabled,
					Emoji:    componentEmoji(emojis.Withdraw),
					CustomID: HubButtonID(entities.ToggleWithdraw, guildID),
				},
			},
		},
	}
}

// CreateControlPanelComponents builds one enable/disable selector per toggle
func CreateControlPanelComponents() []discordgo.MessageComponent {
	placeholders := map[entities.Toggle]string{
		entities.ToggleDeposit:  "🏦 Deposit Control",
		entities.ToggleWithdraw: "💸 Withdraw Control",
	}

	rows := make([]discordgo.MessageComponent, 0, len(entities.AllToggles))
	for _, toggle := range entities.AllToggles {
		one := 1
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    ControlMenuID(toggle),
					Placeholder: placeholders[toggle],
					MinValues:   &one,
					MaxValues:   1,
					Options: []discordgo.SelectMenuOption{
						{
							Label: "Enable " + toggle.Label(),
							Value: ControlValueEnable,
							Emoji: &discordgo.ComponentEmoji{Name: config.DefaultDepositEmoji},
						},
						{
							Label: "Disable " + toggle.Label(),
							Value: ControlValueDisable,
							Emoji: &discordgo.ComponentEmoji{Name: config.DefaultWithdrawEmoji},
						},
					},
				},
			},
		})
	}
	return rows
}

// componentEmoji accepts a unicode emoji or custom emoji markup (<:name:id> or <a:name:id>)
func componentEmoji(raw string) *discordgo.ComponentEmoji {
	if raw == "" {
		return nil
	}
	if !strings.HasPrefix(raw, "<") || !strings.HasSuffix(raw, ">") {
		return &discordgo.ComponentEmoji{Name: raw}
	}

	parts := strings.Split(strings.Trim(raw, "<>"), ":")
	if len(parts) != 3 {
		return &discordgo.ComponentEmoji{Name: raw}
	}
	return &discordgo.ComponentEmoji{
		Name:     parts[1],
		ID:       parts[2],
		Animated: parts[0] == "a",
	}
}
