package bankhub

import (
	"context"
	"errors"
	"fmt"

	"bankhub/bot/common"
	"bankhub/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleSetupHub handles /setuphub channel
func (f *Feature) handleSetupHub(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireGuild(s, i)
	if !ok {
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 || options[0].Type != discordgo.ApplicationCommandOptionChannel {
		common.RespondWithError(s, i, "Please choose a channel for the banking hub.")
		return
	}
	channelID, err := common.ParseID(options[0].ChannelValue(nil).ID)
	if err != nil {
		common.RespondWithError(s, i, "Invalid channel selected.")
		return
	}

	actor := common.BuildActor(i)
	if !actor.CanManageHub() {
		common.RespondWithError(s, i, "You need administrator permissions to use this command!")
		return
	}

	// sending the hub uploads the status card, which can outlast the response window
	if err := common.DeferResponse(s, i, true); err != nil {
		log.WithError(err).Error("Failed to defer setuphub response")
		return
	}

	location, err := f.service.SetupHub(context.Background(), guildID, actor, channelID)
	if err != nil {
		common.HandleError(s, i, toBotError(err, "Error setting up hub"), true)
		return
	}

	common.FollowUpWithSuccess(s, i, fmt.Sprintf("Banking hub has been set up in %s! %s",
		common.GetChannelMention(location.ChannelID),
		common.FormatDiscordMessageLink(guildID, location.ChannelID, location.MessageID)), true)
}

// handleSetBanker handles /setbanker role
func (f *Feature) handleSetBanker(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireGuild(s, i)
	if !ok {
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 || options[0].Type != discordgo.ApplicationCommandOptionRole {
		common.RespondWithError(s, i, "Please choose the banker role.")
		return
	}
	roleID, err := common.ParseID(options[0].RoleValue(nil, "").ID)
	if err != nil {
		common.RespondWithError(s, i, "Invalid role selected.")
		return
	}

	if err := f.service.SetBankerRole(context.Background(), guildID, common.BuildActor(i), roleID); err != nil {
		common.HandleError(s, i, toBotError(err, "Error setting banker role"), false)
		return
	}

	message := fmt.Sprintf("✅ Banker role has been set to %s!", common.GetRoleMention(roleID))
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.WithError(err).Error("Failed to respond to setbanker")
	}
}

// handleBankerConsole handles /bankerconsole
func (f *Feature) handleBankerConsole(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireGuild(s, i)
	if !ok {
		return
	}

	settings, err := f.service.OpenConsole(context.Background(), guildID, common.BuildActor(i))
	if err != nil {
		common.HandleError(s, i, toBotError(err, "Error opening banker console"), false)
		return
	}

	embed, components := f.renderer.RenderControlPanel(settings)
	if err := common.RespondWithEmbed(s, i, embed, components, true); err != nil {
		log.WithError(err).WithField("guild_id", guildID).Error("Failed to send banker console")
	}
}

// handleControlSelect applies a control panel selection
func (f *Feature) handleControlSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireGuild(s, i)
	if !ok {
		return
	}

	data := i.MessageComponentData()
	toggle, err := ParseControlMenuID(data.CustomID)
	if err != nil {
		common.HandleError(s, i, common.NewUserError("Unknown control.", err.Error()), false)
		return
	}
	if len(data.Values) != 1 {
		common.RespondWithError(s, i, "Please pick one option.")
		return
	}
	enabled, err := ParseControlValue(data.Values[0])
	if err != nil {
		common.HandleError(s, i, common.NewUserError("Unknown option.", err.Error()), false)
		return
	}

	// the hub edit re-uploads the status card
	if err := common.DeferResponse(s, i, true); err != nil {
		log.WithError(err).WithField("guild_id", guildID).Error("Failed to defer toggle change")
		return
	}

	outcome, err := f.service.SetToggle(context.Background(), guildID, common.BuildActor(i), toggle, enabled)
	if err != nil {
		common.HandleError(s, i, toBotError(err, "Error changing bank toggle"), true)
		return
	}

	common.FollowUpWithMessage(s, i, FormatToggleResult(outcome), true)
}

// handleHubButton answers a click on a hub button. The hub message may be
// stale, so the toggle is checked against the stored settings first.
func (f *Feature) handleHubButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireGuild(s, i)
	if !ok {
		return
	}

	toggle, err := ParseHubButtonID(i.MessageComponentData().CustomID)
	if err != nil {
		log.WithError(err).Warn("Ignoring unknown hub button")
		return
	}

	if err := f.service.OpenRequest(context.Background(), guildID, toggle); err != nil {
		if errors.Is(err, entities.ErrToggleDisabled) {
			common.RespondWithError(s, i, disabledMessage(toggle))
			return
		}
		common.HandleError(s, i, toBotError(err, "Error opening bank request"), false)
		return
	}

	message := fmt.Sprintf("%s request received! A banker will be with you shortly.", toggle.Label())
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.WithError(err).Error("Failed to answer hub button")
	}
}

// requireGuild parses the guild of the interaction and rejects direct messages
func requireGuild(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, bool) {
	if i.GuildID == "" {
		common.RespondWithError(s, i, "This command can only be used in a server.")
		return 0, false
	}
	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		log.WithError(err).WithField("guild_id", i.GuildID).Error("Failed to parse guild ID")
		common.RespondWithError(s, i, "Failed to process command.")
		return 0, false
	}
	return guildID, true
}

// toBotError maps service errors to user-facing messages
func toBotError(err error, logMessage string) error {
	switch {
	case errors.Is(err, entities.ErrPermissionDenied):
		return common.NewUserError(permissionMessage(err), logMessage)
	case errors.Is(err, entities.ErrUnknownToggle):
		return common.NewUserError("Unknown banking option.", logMessage)
	default:
		botErr := common.NewSystemError(err, logMessage)
		botErr.UserMessage = fmt.Sprintf("%s: %v", logMessage, err)
		return botErr
	}
}

func permissionMessage(err error) string {
	if errors.Is(err, entities.ErrAdminRequired) {
		return "You need administrator permissions to use this command!"
	}
	return "You need to be an administrator or have the banker role to use this command!"
}

func disabledMessage(toggle entities.Toggle) string {
	return fmt.Sprintf("%s is currently disabled. Please try again later.", toggle.Label())
}
