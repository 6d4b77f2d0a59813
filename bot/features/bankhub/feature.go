package bankhub

import (
	"context"
	"strings"

	"bankhub/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles the banking hub commands and components
type Feature struct {
	service  interfaces.BankHubService
	renderer *HubRenderer
}

// NewFeature creates a new banking hub feature instance
func NewFeature(service interfaces.BankHubService, renderer *HubRenderer) *Feature {
	return &Feature{
		service:  service,
		renderer: renderer,
	}
}

// HandleCommand routes banking slash commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "setuphub":
		f.handleSetupHub(s, i)
	case "setbanker":
		f.handleSetBanker(s, i)
	case "bankerconsole":
		f.handleBankerConsole(s, i)
	}
}

// HandleInteraction routes control panel selections and hub button clicks
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, ControlMenuPrefix):
		f.handleControlSelect(s, i)
	case strings.HasPrefix(customID, HubButtonPrefix):
		f.handleHubButton(s, i)
	}
}

// ResyncHubs re-renders every hub so toggles changed while the bot was offline show up
func (f *Feature) ResyncHubs(ctx context.Context) {
	summary, err := f.service.RefreshAllHubs(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to resync banking hubs")
		return
	}
	log.WithFields(log.Fields{
		"synced": summary.Synced,
		"failed": summary.Failed,
	}).Info("Banking hubs resynced")
}
