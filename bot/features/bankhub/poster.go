package bankhub

import (
	"context"
	"fmt"

	"bankhub/bot/common"
	"bankhub/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// MessageSender is the part of the Discord session the hub poster needs
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// HubPoster publishes rendered hubs to Discord
type HubPoster struct {
	sender   MessageSender
	renderer *HubRenderer
}

// NewHubPoster creates a hub poster
func NewHubPoster(sender MessageSender, renderer *HubRenderer) *HubPoster {
	return &HubPoster{
		sender:   sender,
		renderer: renderer,
	}
}

// PostHub sends a new hub message and returns its id
func (p *HubPoster) PostHub(ctx context.Context, guildID, channelID int64, settings entities.BankSettings) (int64, error) {
	msg := p.renderer.Render(guildID, settings)

	sent, err := p.sender.ChannelMessageSendComplex(common.FormatID(channelID), &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{msg.Embed},
		Components: msg.Components,
		Files:      msg.Files(),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to send hub message: %w", err)
	}

	messageID, err := common.ParseID(sent.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to parse hub message ID %q: %w", sent.ID, err)
	}
	return messageID, nil
}

// UpdateHub edits the hub message in place
func (p *HubPoster) UpdateHub(ctx context.Context, guildID int64, location entities.HubLocation, settings entities.BankSettings) error {
	msg := p.renderer.Render(guildID, settings)

	edit := &discordgo.MessageEdit{
		Channel:    common.FormatID(location.ChannelID),
		ID:         common.FormatID(location.MessageID),
		Embeds:     &[]*discordgo.MessageEmbed{msg.Embed},
		Components: &msg.Components,
	}
	if files := msg.Files(); files != nil {
		// drop the previous card so the message carries a single attachment
		edit.Attachments = &[]*discordgo.MessageAttachment{}
		edit.Files = files
	}

	if _, err := p.sender.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to edit hub message: %w", err)
	}
	return nil
}
