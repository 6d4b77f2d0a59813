package general

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleMemberJoin posts the welcome embed in the configured channel.
// Failures are logged and never surfaced.
func (f *Feature) HandleMemberJoin(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if !f.config.WelcomeEnabled || m.Member == nil || m.User == nil {
		return
	}

	logger := log.WithFields(log.Fields{
		"guild_id": m.GuildID,
		"user_id":  m.User.ID,
	})

	guildName := m.GuildID
	var channels []*discordgo.Channel
	if guild, err := s.State.Guild(m.GuildID); err == nil {
		guildName = guild.Name
		channels = guild.Channels
	}
	if len(channels) == 0 {
		fetched, err := s.GuildChannels(m.GuildID)
		if err != nil {
			logger.WithError(err).Error("Error sending welcome message")
			return
		}
		channels = fetched
	}

	channelID := findTextChannel(channels, f.config.WelcomeChannelName)
	if channelID == "" {
		logger.WithField("channel", f.config.WelcomeChannelName).Debug("No welcome channel in guild")
		return
	}

	embed := CreateWelcomeEmbed(guildName, m.User.Mention(), m.User.AvatarURL("256"))
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logger.WithError(err).Error("Error sending welcome message")
	}
}

func findTextChannel(channels []*discordgo.Channel, name string) string {
	for _, channel := range channels {
		if channel.Type == discordgo.ChannelTypeGuildText && channel.Name == name {
			return channel.ID
		}
	}
	return ""
}
