package bot

import (
	"context"
	"fmt"
	"strings"

	"bankhub/bot/common"
	"bankhub/bot/features/bankhub"
	"bankhub/bot/features/general"
	"bankhub/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// PresenceText is shown as the bot's playing status
const PresenceText = "/help | Ready to serve!"

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
	Welcome general.Config
}

type Bot struct {
	config  Config
	session *discordgo.Session

	// Feature handlers
	generalFeature *general.Feature
	bankhubFeature *bankhub.Feature
}

// NewSession creates the Discord session without connecting it, so the hub
// poster can be built on it before the bot is started.
func NewSession(token string) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages
	return dg, nil
}

// New wires the feature handlers onto session, opens the gateway and registers the slash commands
func New(config Config, session *discordgo.Session, bankHubService interfaces.BankHubService, renderer *bankhub.HubRenderer) (*Bot, error) {
	bot := &Bot{
		config:         config,
		session:        session,
		generalFeature: general.NewFeature(config.Welcome),
		bankhubFeature: bankhub.NewFeature(bankHubService, renderer),
	}

	session.AddHandler(bot.handleReady)
	session.AddHandler(bot.handleCommands)
	session.AddHandler(bot.handleInteractions)
	session.AddHandler(bot.generalFeature.HandleMemberJoin)

	// Open websocket connection
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		session.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"id":     r.User.ID,
		"guilds": len(r.Guilds),
	}).Info("Bot is online")

	if err := s.UpdateGameStatus(0, PresenceText); err != nil {
		log.WithError(err).Warn("Failed to set presence")
	}

	b.bankhubFeature.ResyncHubs(context.Background())
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	log.WithFields(log.Fields{
		"command":  name,
		"user_id":  common.InteractionUserID(i),
		"guild_id": i.GuildID,
	}).Debug("Slash command received")

	switch {
	case general.Handles(name):
		b.generalFeature.HandleCommand(s, i)
	default:
		b.bankhubFeature.HandleCommand(s, i)
	}
}

func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	if strings.HasPrefix(i.MessageComponentData().CustomID, bankhub.HubButtonPrefix) {
		b.bankhubFeature.HandleInteraction(s, i)
	}
}
