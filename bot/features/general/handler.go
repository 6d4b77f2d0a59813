package general

import (
	"errors"

	"bankhub/bot/common"
	"bankhub/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.RespondWithEmbed(s, i, CreatePingEmbed(s.HeartbeatLatency()), nil, false); err != nil {
		log.WithError(err).Error("Failed to respond to ping")
	}
}

func (f *Feature) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	info := BotInfo{}
	if user := s.State.User; user != nil {
		info.Name = user.Username
		info.ID = user.ID
		info.AvatarURL = user.AvatarURL("256")
	}

	s.State.RLock()
	info.Servers = len(s.State.Guilds)
	for _, guild := range s.State.Guilds {
		info.Users += guild.MemberCount
	}
	s.State.RUnlock()

	if err := common.RespondWithEmbed(s, i, CreateInfoEmbed(info), nil, false); err != nil {
		log.WithError(err).Error("Failed to respond to info")
	}
}

func (f *Feature) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.RespondWithEmbed(s, i, CreateHelpEmbed(), nil, false); err != nil {
		log.WithError(err).Error("Failed to respond to help")
	}
}

func (f *Feature) handleHello(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var mention, displayName string
	switch {
	case i.Member != nil && i.Member.User != nil:
		mention = i.Member.Mention()
		displayName = i.Member.DisplayName()
	case i.User != nil:
		mention = i.User.Mention()
		displayName = i.User.DisplayName()
	}

	if err := common.RespondWithMessage(s, i, Greeting(f.intN(GreetingCount), mention, displayName), false); err != nil {
		log.WithError(err).Error("Failed to respond to hello")
	}
}

func (f *Feature) handleRoll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sides := entities.DefaultDiceSides
	for _, option := range i.ApplicationCommandData().Options {
		if option.Name == "sides" {
			sides = int(option.IntValue())
		}
	}

	result, err := RollDice(f.intN, sides)
	if err != nil {
		message := "Invalid dice."
		if errors.Is(err, entities.ErrInvalidDiceSides) {
			message = rollErrorMessage(sides)
		}
		common.RespondWithError(s, i, message)
		return
	}

	if err := common.RespondWithEmbed(s, i, CreateRollEmbed(result, sides), nil, false); err != nil {
		log.WithError(err).Error("Failed to respond to roll")
	}
}

func rollErrorMessage(sides int) string {
	if sides < entities.MinDiceSides {
		return "Dice must have at least 2 sides!"
	}
	return "Dice can't have more than 100 sides!"
}

func (f *Feature) handleServerInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return
	}

	info, err := lookupServerInfo(s, i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to load server info"), false)
		return
	}

	if err := common.RespondWithEmbed(s, i, CreateServerInfoEmbed(info), nil, false); err != nil {
		log.WithError(err).Error("Failed to respond to serverinfo")
	}
}

// lookupServerInfo prefers the state cache and falls back to the REST API
func lookupServerInfo(s *discordgo.Session, guildID string) (ServerInfo, error) {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		guild, err = s.GuildWithCounts(guildID)
		if err != nil {
			return ServerInfo{}, err
		}
	}

	info := ServerInfo{
		Name:     guild.Name,
		ID:       guild.ID,
		OwnerID:  guild.OwnerID,
		IconURL:  guild.IconURL("256"),
		Members:  guild.MemberCount,
		Channels: len(guild.Channels),
		Roles:    len(guild.Roles),
	}
	if info.Members == 0 {
		info.Members = guild.ApproximateMemberCount
	}
	if info.Channels == 0 {
		if channels, err := s.GuildChannels(guildID); err == nil {
			info.Channels = len(channels)
		}
	}
	return info, nil
}
