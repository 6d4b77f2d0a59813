package bankhub

import (
	"bytes"

	"bankhub/config"
	"bankhub/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HubMessage is everything needed to send or edit the hub message
type HubMessage struct {
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Card       []byte // PNG status card, nil when disabled
}

// Files returns fresh upload readers for the attachments of the message
func (m *HubMessage) Files() []*discordgo.File {
	if len(m.Card) == 0 {
		return nil
	}
	return []*discordgo.File{{
		Name:        StatusCardFile,
		ContentType: "image/png",
		Reader:      bytes.NewReader(m.Card),
	}}
}

// HubRenderer turns guild settings into the hub message payload
type HubRenderer struct {
	emojis   config.Emojis
	imageURL string
	cards    *StatusCardRenderer // nil disables the status card
}

// NewHubRenderer creates a renderer. cards may be nil.
func NewHubRenderer(emojis config.Emojis, imageURL string, cards *StatusCardRenderer) *HubRenderer {
	return &HubRenderer{
		emojis:   emojis,
		imageURL: imageURL,
		cards:    cards,
	}
}

// Render builds the hub payload. A card that fails to render falls back to the configured image.
func (r *HubRenderer) Render(guildID int64, settings entities.BankSettings) *HubMessage {
	msg := &HubMessage{
		Components: CreateHubComponents(guildID, settings, r.emojis),
	}

	imageURL := r.imageURL
	if r.cards != nil {
		card, err := r.cards.Render(settings)
		if err != nil {
			log.WithError(err).WithField("guild_id", guildID).Warn("Failed to render status card")
		} else {
			msg.Card = card
			imageURL = "attachment://" + StatusCardFile
		}
	}

	msg.Embed = CreateHubEmbed(settings, r.emojis, imageURL)
	return msg
}

// RenderControlPanel builds the banker console payload
func (r *HubRenderer) RenderControlPanel(settings entities.BankSettings) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	return CreateControlPanelEmbed(settings), CreateControlPanelComponents()
}
