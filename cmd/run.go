package cmd

import (
	"context"
	"fmt"
	"time"

	"bankhub/bot"
	"bankhub/bot/features/bankhub"
	"bankhub/bot/features/general"
	"bankhub/config"
	"bankhub/domain/events"
	"bankhub/domain/interfaces"
	"bankhub/domain/services"
	"bankhub/infrastructure"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting bankhub bot...")

	// Load configuration
	cfg := config.Get()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, keeping info")
	}

	emojis, err := config.LoadEmojis(cfg.EmojisFile)
	if err != nil {
		return fmt.Errorf("failed to load emojis: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize event publisher
	eventPublisher, closeEvents := newEventPublisher(ctx, cfg)
	defer closeEvents()
	eventBus := infrastructure.NewLocalEventBus(eventPublisher)
	eventBus.Subscribe(infrastructure.AuditLogHandler,
		events.EventTypeBankToggleChanged,
		events.EventTypeBankHubPosted,
		events.EventTypeBankerRoleChanged,
	)
	defer eventBus.Wait()

	// Initialize hub rendering
	var cards *bankhub.StatusCardRenderer
	if cfg.HubStatusCard {
		cards, err = bankhub.NewStatusCardRenderer()
		if err != nil {
			log.WithError(err).Warn("Status card disabled")
			cards = nil
		}
	}
	renderer := bankhub.NewHubRenderer(emojis, cfg.HubImageURL, cards)

	session, err := bot.NewSession(cfg.DiscordToken)
	if err != nil {
		return err
	}
	poster := bankhub.NewHubPoster(session, renderer)

	bankHubService := services.NewBankHubService(store, poster, eventBus)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.GuildID,
		Welcome: general.Config{
			WelcomeEnabled:     cfg.WelcomeMessageEnabled,
			WelcomeChannelName: cfg.WelcomeChannelName,
		},
	}
	discordBot, err := bot.New(botConfig, session, bankHubService, renderer)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	log.Info("Shutdown completed")
	return nil
}

// newEventPublisher connects to NATS when servers are configured. Without NATS,
// or when the connection fails, events are dropped.
func newEventPublisher(ctx context.Context, cfg *config.Config) (interfaces.EventPublisher, func()) {
	if cfg.NATSServers == "" {
		log.Info("NATS not configured, domain events disabled")
		return infrastructure.NewNoopEventPublisher(), func() {}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(connectCtx); err != nil {
		log.WithError(err).Warn("Failed to connect to NATS, domain events disabled")
		return infrastructure.NewNoopEventPublisher(), func() {}
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureStream(infrastructure.BankEventStream, mapper.GetAllSubjects()); err != nil {
		log.WithError(err).Warn("Failed to ensure bank event stream")
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	}
	return infrastructure.NewNATSEventPublisher(client, mapper), closeFn
}
