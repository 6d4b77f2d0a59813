package common

import (
	"strconv"

	"bankhub/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// ParseID converts a Discord snowflake string to int64
func ParseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// FormatID converts an int64 snowflake to string
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID int64) string {
	return "<@" + FormatID(userID) + ">"
}

// GetRoleMention returns a Discord mention string for a role
func GetRoleMention(roleID int64) string {
	return "<@&" + FormatID(roleID) + ">"
}

// GetChannelMention returns a Discord mention string for a channel
func GetChannelMention(channelID int64) string {
	return "<#" + FormatID(channelID) + ">"
}

// InteractionUserID returns the id of the user behind an interaction, in a guild or a DM
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// BuildActor computes the actor capability from the interaction's member payload.
// Outside a guild the actor has no permissions.
func BuildActor(i *discordgo.InteractionCreate) entities.Actor {
	userID, _ := ParseID(InteractionUserID(i))
	if i.Member == nil {
		return entities.NewActor(userID, false)
	}

	isAdmin := i.Member.Permissions&discordgo.PermissionAdministrator != 0

	roleIDs := make([]int64, 0, len(i.Member.Roles))
	for _, raw := range i.Member.Roles {
		roleID, err := ParseID(raw)
		if err != nil {
			log.WithField("role_id", raw).Warn("Ignoring unparseable member role")
			continue
		}
		roleIDs = append(roleIDs, roleID)
	}

	return entities.NewActor(userID, isAdmin, roleIDs...)
}
