package bot

import (
	"fmt"

	"bankhub/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Commands returns every slash command the bot registers
func Commands() []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)
	minSides := float64(entities.MinDiceSides)

	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check bot latency",
		},
		{
			Name:        "info",
			Description: "Show bot information",
		},
		{
			Name:        "help",
			Description: "Show the available commands",
		},
		{
			Name:        "hello",
			Description: "Say hello to the bot",
		},
		{
			Name:        "roll",
			Description: "Roll a dice",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "sides",
					Description: "Number of sides (default 6)",
					Required:    false,
					MinValue:    &minSides,
					MaxValue:    entities.MaxDiceSides,
				},
			},
		},
		{
			Name:        "serverinfo",
			Description: "Show server information",
		},
		{
			Name:                     "setuphub",
			Description:              "Post the banking hub in a channel",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Channel for the banking hub",
					Required:     true,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
		{
			Name:                     "setbanker",
			Description:              "Set the banker role",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role allowed to operate the banker console",
					Required:    true,
				},
			},
		},
		{
			Name:        "bankerconsole",
			Description: "Open the banker control panel",
		},
	}
}

// registerCommands registers all slash commands with Discord.
// With a guild id configured the commands are scoped to that guild and show up immediately.
func (b *Bot) registerCommands() error {
	for _, cmd := range Commands() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	log.WithField("guild_id", b.config.GuildID).Infof("Registered %d slash commands", len(Commands()))
	return nil
}
