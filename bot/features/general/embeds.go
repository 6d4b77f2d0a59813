package general

import (
	"fmt"
	"strconv"
	"time"

	"bankhub/bot/common"
	"bankhub/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// HelpEntry is one line of the /help embed
type HelpEntry struct {
	Command     string
	Description string
}

// HelpEntries lists every slash command the bot registers
var HelpEntries = []HelpEntry{
	{"🏓 `/ping`", "Check bot latency"},
	{"ℹ️ `/info`", "Show bot information"},
	{"📚 `/help`", "Show this help message"},
	{"👋 `/hello`", "Say hello to the bot"},
	{"🎲 `/roll [sides]`", "Roll a dice (default 6 sides)"},
	{"💎 `/serverinfo`", "Show server information"},
	{"🏦 `/setuphub channel`", "Post the banking hub (administrators)"},
	{"🔑 `/setbanker role`", "Set the banker role (administrators)"},
	{"🎛️ `/bankerconsole`", "Open the banker control panel (bankers)"},
}

// BotInfo is what /info reports about the running bot
type BotInfo struct {
	Name      string
	ID        string
	AvatarURL string
	Servers   int
	Users     int
}

// ServerInfo is what /serverinfo reports about a guild
type ServerInfo struct {
	Name     string
	ID       string
	OwnerID  string
	IconURL  string
	Members  int
	Channels int
	Roles    int
}

// CreatePingEmbed reports the gateway heartbeat latency
func CreatePingEmbed(latency time.Duration) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🏓 Pong!",
		Description: fmt.Sprintf("Latency: `%s`", common.FormatLatency(latency)),
		Color:       common.ColorInfo,
	}
}

// CreateInfoEmbed builds the /info embed
func CreateInfoEmbed(info BotInfo) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🤖 Bot Information",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Bot Name", Value: info.Name, Inline: true},
			{Name: "🆔 Bot ID", Value: info.ID, Inline: true},
			{Name: "🌐 Servers", Value: strconv.Itoa(info.Servers), Inline: true},
			{Name: "👥 Users", Value: strconv.Itoa(info.Users), Inline: true},
			{Name: "📝 Commands", Value: "Slash commands", Inline: true},
			{Name: "🐹 Library", Value: "discordgo " + discordgo.VERSION, Inline: true},
		},
	}
	if info.AvatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: info.AvatarURL}
	}
	return embed
}

// CreateHelpEmbed lists the available commands
func CreateHelpEmbed() *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(HelpEntries))
	for _, entry := range HelpEntries {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  entry.Command,
			Value: entry.Description,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "📚 Bot Commands",
		Description: "Here are the available commands:",
		Color:       common.ColorInfo,
		Fields:      fields,
	}
}

// GreetingCount is the number of greetings /hello picks from
const GreetingCount = 3

// Greeting returns greeting number pick (taken modulo GreetingCount)
func Greeting(pick int, mention, displayName string) string {
	switch pick % GreetingCount {
	case 0:
		return fmt.Sprintf("Hello %s! 👋", mention)
	case 1:
		return fmt.Sprintf("Hi there, %s! 😊", displayName)
	default:
		return fmt.Sprintf("Hey %s! How are you doing? 🎉", mention)
	}
}

// RollDice returns a value in [1, sides]. intN must return a value in [0, n).
func RollDice(intN func(n int) int, sides int) (int, error) {
	if err := entities.ValidateDiceSides(sides); err != nil {
		return 0, err
	}
	return intN(sides) + 1, nil
}

// CreateRollEmbed reports a dice roll
func CreateRollEmbed(result, sides int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎲 Dice Roll",
		Description: fmt.Sprintf("You rolled a **%d** on a %d-sided dice!", result, sides),
		Color:       common.ColorSuccess,
	}
}

// CreateServerInfoEmbed builds the /serverinfo embed
func CreateServerInfoEmbed(info ServerInfo) *discordgo.MessageEmbed {
	owner := "Unknown"
	if info.OwnerID != "" {
		owner = "<@" + info.OwnerID + ">"
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏰 " + info.Name,
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👑 Owner", Value: owner, Inline: true},
			{Name: "🆔 Server ID", Value: info.ID, Inline: true},
			{Name: "📅 Created", Value: common.FormatCreationDate(info.ID), Inline: true},
			{Name: "👥 Members", Value: strconv.Itoa(info.Members), Inline: true},
			{Name: "📝 Channels", Value: strconv.Itoa(info.Channels), Inline: true},
			{Name: "🎭 Roles", Value: strconv.Itoa(info.Roles), Inline: true},
		},
	}
	if info.IconURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: info.IconURL}
	}
	return embed
}

// CreateWelcomeEmbed greets a new member
func CreateWelcomeEmbed(guildName, mention, avatarURL string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "👋 Welcome!",
		Description: fmt.Sprintf("Welcome to **%s**, %s!", guildName, mention),
		Color:       common.ColorSuccess,
	}
	if avatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarURL}
	}
	return embed
}
