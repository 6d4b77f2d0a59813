package common

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatToggleStatus(t *testing.T) {
	assert.Equal(t, "✅ Enabled", FormatToggleStatus(true))
	assert.Equal(t, "❌ Disabled", FormatToggleStatus(false))
}

func TestFormatCreationDate(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{"discord epoch", "0", "January 01, 2015"},
		{"known guild", "81384788765712384", "August 13, 2015"},
		{"invalid", "abc", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCreationDate(tt.id))
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "42ms", FormatLatency(42*time.Millisecond+300*time.Microsecond))
	assert.Equal(t, "https://discord.com/channels/1/2/3", FormatDiscordMessageLink(1, 2, 3))
	assert.Equal(t, "<t:0:R>", FormatDiscordTimestamp(time.Unix(0, 0), "R"))
	assert.Equal(t, "<@5>", GetUserMention(5))
	assert.Equal(t, "<@&6>", GetRoleMention(6))
	assert.Equal(t, "<#7>", GetChannelMention(7))
}

func TestBuildActor(t *testing.T) {
	t.Run("administrator with roles", func(t *testing.T) {
		i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "10"},
				Permissions: discordgo.PermissionAdministrator | discordgo.PermissionSendMessages,
				Roles:       []string{"20", "not-a-number", "30"},
			},
		}}

		actor := BuildActor(i)
		assert.Equal(t, int64(10), actor.UserID)
		assert.True(t, actor.IsAdministrator)
		assert.True(t, actor.HasRole(20))
		assert.True(t, actor.HasRole(30))
		assert.Len(t, actor.RoleIDs, 2)
	})

	t.Run("member without admin", func(t *testing.T) {
		i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "11"},
				Permissions: discordgo.PermissionManageMessages,
				Roles:       []string{"20"},
			},
		}}

		actor := BuildActor(i)
		assert.False(t, actor.IsAdministrator)
		assert.True(t, actor.CanOperateConsole(ptr(int64(20))))
		assert.False(t, actor.CanManageHub())
	})

	t.Run("direct message", func(t *testing.T) {
		i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			User: &discordgo.User{ID: "12"},
		}}

		actor := BuildActor(i)
		assert.Equal(t, int64(12), actor.UserID)
		assert.False(t, actor.IsAdministrator)
		assert.Empty(t, actor.RoleIDs)
	})
}

func TestBotError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewSystemError(cause, "Failed to save")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to save: disk full", err.Error())
	assert.True(t, err.Ephemeral)

	userErr := NewUserError("Pick a channel", "missing channel option")
	assert.Equal(t, "missing channel option", userErr.Error())

	var botErr *BotError
	wrapped := errors.Join(errors.New("context"), userErr)
	require.ErrorAs(t, wrapped, &botErr)
	assert.Equal(t, "Pick a channel", botErr.UserMessage)
}

func ptr[T any](v T) *T { return &v }
