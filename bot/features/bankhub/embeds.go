package bankhub

import (
	"fmt"

	"bankhub/bot/common"
	"bankhub/config"
	"bankhub/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// StatusCardFile is the attachment name of the hub status card
const StatusCardFile = "bank-status.png"

const zeroWidthSpace = "\u200b"

// CreateHubEmbed builds the public hub embed.
// Each toggle field shows its emoji and its current state.
func CreateHubEmbed(settings entities.BankSettings, emojis config.Emojis, imageURL string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Bank Status", emojis.Bank),
		Description: "Here you can deposit and withdraw your in-game items!",
		Color:       common.ColorBank,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   fmt.Sprintf("**Depositing:** %s", emojis.Deposit),
				Value:  hubState(settings.DepositEnabled),
				Inline: true,
			},
			{
				Name:   fmt.Sprintf("**Withdrawing:** %s", emojis.Withdraw),
				Value:  hubState(settings.WithdrawEnabled),
				Inline: true,
			},
			{
				Name:   zeroWidthSpace,
				Value:  "Use buttons below to proceed.",
				Inline: false,
			},
		},
	}

	if imageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: imageURL}
	}

	return embed
}

func hubState(enabled bool) string {
	if enabled {
		return "🟢 Open"
	}
	return "🔴 Closed"
}

// CreateControlPanelEmbed builds the private banker console embed
func CreateControlPanelEmbed(settings entities.BankSettings) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🏦 Banker Control Panel",
		Description: "Use the dropdowns below to control the banking system:",
		Color:       common.ColorBank,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "💰 Deposit Status",
				Value:  common.FormatToggleStatus(settings.DepositEnabled),
				Inline: true,
			},
			{
				Name:   "💸 Withdraw Status",
				Value:  common.FormatToggleStatus(settings.WithdrawEnabled),
				Inline: true,
			},
		},
	}
}

// FormatToggleResult is the reply shown to a banker after a toggle transition
func FormatToggleResult(outcome *entities.ToggleOutcome) string {
	icon := "💰"
	if outcome.Toggle == entities.ToggleWithdraw {
		icon = "💸"
	}
	state := "❌ disabled"
	if outcome.Enabled {
		state = "✅ enabled"
	}

	message := fmt.Sprintf("%s %s has been %s!", icon, outcome.Toggle.Label(), state)
	if outcome.ActorID != 0 {
		message += fmt.Sprintf("\nChanged by %s %s", common.GetUserMention(outcome.ActorID), common.FormatDiscordTimestamp(outcome.ChangedAt, "R"))
	}
	if outcome.HubStatus == entities.HubPushFailed {
		message += "\n⚠️ The setting was saved, but the hub message could not be updated. Run /setuphub again if it was deleted."
	}
	if !outcome.Persisted {
		message += "\n⚠️ The setting is active but could not be written to storage and may be lost on restart."
	}
	return message
}
