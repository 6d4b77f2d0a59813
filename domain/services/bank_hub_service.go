package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bankhub/domain/entities"
	"bankhub/domain/events"
	"bankhub/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// bankHubService implements the BankHubService interface
type bankHubService struct {
	store          interfaces.BankStore
	hubPublisher   interfaces.HubPublisher
	eventPublisher interfaces.EventPublisher

	// guildLocks serializes persist + hub edit per guild so edits land in write order
	guildLocks sync.Map
	now        func() time.Time
}

// NewBankHubService creates a new banking hub service
func NewBankHubService(
	store interfaces.BankStore,
	hubPublisher interfaces.HubPublisher,
	eventPublisher interfaces.EventPublisher,
) interfaces.BankHubService {
	return &bankHubService{
		store:          store,
		hubPublisher:   hubPublisher,
		eventPublisher: eventPublisher,
		now:            time.Now,
	}
}

func (s *bankHubService) lockGuild(guildID int64) func() {
	mu, _ := s.guildLocks.LoadOrStore(guildID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// SetupHub posts a new hub message and records where it lives.
// An older hub message for the guild is left in place.
func (s *bankHubService) SetupHub(ctx context.Context, guildID int64, actor entities.Actor, channelID int64) (*entities.HubLocation, error) {
	if !actor.CanManageHub() {
		return nil, entities.ErrAdminRequired
	}

	location, err := s.postHub(ctx, guildID, channelID)
	if err != nil {
		return nil, err
	}

	s.publish(events.BankHubPostedEvent{
		GuildID:    guildID,
		ChannelID:  location.ChannelID,
		MessageID:  location.MessageID,
		ActorID:    actor.UserID,
		OccurredAt: s.now(),
	})

	log.WithFields(log.Fields{
		"guild_id":   guildID,
		"channel_id": location.ChannelID,
		"message_id": location.MessageID,
	}).Info("Banking hub posted")

	return location, nil
}

func (s *bankHubService) postHub(ctx context.Context, guildID, channelID int64) (*entities.HubLocation, error) {
	unlock := s.lockGuild(guildID)
	defer unlock()

	settings, err := s.store.GetSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank settings: %w", err)
	}

	messageID, err := s.hubPublisher.PostHub(ctx, guildID, channelID, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to post hub message: %w", err)
	}

	location := entities.HubLocation{ChannelID: channelID, MessageID: messageID}
	if err := tolerateWriteFailure(s.store.SetHubLocation(ctx, guildID, location), guildID, "hub location"); err != nil {
		return nil, fmt.Errorf("failed to record hub location: %w", err)
	}

	if _, err := s.store.EnsureSettings(ctx, guildID); err != nil {
		if err := tolerateWriteFailure(err, guildID, "default settings"); err != nil {
			return nil, fmt.Errorf("failed to initialize bank settings: %w", err)
		}
	}

	return &location, nil
}

// SetBankerRole assigns the banker role for a guild
func (s *bankHubService) SetBankerRole(ctx context.Context, guildID int64, actor entities.Actor, roleID int64) error {
	if !actor.CanManageHub() {
		return entities.ErrAdminRequired
	}

	if err := tolerateWriteFailure(s.store.SetBankerRole(ctx, guildID, roleID), guildID, "banker role"); err != nil {
		return fmt.Errorf("failed to set banker role: %w", err)
	}

	s.publish(events.BankerRoleChangedEvent{
		GuildID:    guildID,
		RoleID:     roleID,
		ActorID:    actor.UserID,
		OccurredAt: s.now(),
	})

	return nil
}

// OpenConsole verifies the actor may operate the control panel
func (s *bankHubService) OpenConsole(ctx context.Context, guildID int64, actor entities.Actor) (entities.BankSettings, error) {
	if err := s.checkConsoleAccess(ctx, guildID, actor); err != nil {
		return entities.BankSettings{}, err
	}

	settings, err := s.store.GetSettings(ctx, guildID)
	if err != nil {
		return entities.BankSettings{}, fmt.Errorf("failed to get bank settings: %w", err)
	}
	return settings, nil
}

// SetToggle performs a toggle transition.
// The settings change always wins: a failed hub edit is reported in the outcome, never as an error.
func (s *bankHubService) SetToggle(ctx context.Context, guildID int64, actor entities.Actor, toggle entities.Toggle, enabled bool) (*entities.ToggleOutcome, error) {
	if _, err := entities.ParseToggle(string(toggle)); err != nil {
		return nil, err
	}
	if err := s.checkConsoleAccess(ctx, guildID, actor); err != nil {
		return nil, err
	}

	outcome, err := s.applyToggle(ctx, guildID, toggle, enabled)
	if err != nil {
		return nil, err
	}
	outcome.ActorID = actor.UserID
	outcome.ChangedAt = s.now()

	// published outside the guild lock
	s.publish(events.BankToggleChangedEvent{
		GuildID:    guildID,
		Toggle:     string(toggle),
		Enabled:    enabled,
		ActorID:    actor.UserID,
		HubSynced:  outcome.HubStatus == entities.HubSynced,
		OccurredAt: outcome.ChangedAt,
	})

	log.WithFields(log.Fields{
		"guild_id":   guildID,
		"user_id":    actor.UserID,
		"toggle":     toggle,
		"enabled":    enabled,
		"hub_status": outcome.HubStatus,
	}).Info("Bank toggle updated")

	return outcome, nil
}

// applyToggle persists the transition and pushes the hub under the guild lock
func (s *bankHubService) applyToggle(ctx context.Context, guildID int64, toggle entities.Toggle, enabled bool) (*entities.ToggleOutcome, error) {
	unlock := s.lockGuild(guildID)
	defer unlock()

	outcome := &entities.ToggleOutcome{
		Toggle:    toggle,
		Enabled:   enabled,
		Persisted: true,
	}

	settings, err := s.store.UpdateSettings(ctx, guildID, func(current *entities.BankSettings) error {
		return current.Set(toggle, enabled)
	})
	if err != nil {
		if !errors.Is(err, entities.ErrPersistence) {
			return nil, fmt.Errorf("failed to update bank settings: %w", err)
		}
		log.WithError(err).WithFields(log.Fields{
			"guild_id": guildID,
			"toggle":   toggle,
		}).Error("Bank settings changed in memory but could not be saved")
		outcome.Persisted = false
	}
	outcome.Settings = settings

	outcome.HubStatus, outcome.HubErr = s.pushHub(ctx, guildID, settings)
	return outcome, nil
}

// Enable turns a toggle on
func (s *bankHubService) Enable(ctx context.Context, guildID int64, actor entities.Actor, toggle entities.Toggle) (*entities.ToggleOutcome, error) {
	return s.SetToggle(ctx, guildID, actor, toggle, true)
}

// Disable turns a toggle off
func (s *bankHubService) Disable(ctx context.Context, guildID int64, actor entities.Actor, toggle entities.Toggle) (*entities.ToggleOutcome, error) {
	return s.SetToggle(ctx, guildID, actor, toggle, false)
}

// GetSettings returns the current settings for a guild
func (s *bankHubService) GetSettings(ctx context.Context, guildID int64) (entities.BankSettings, error) {
	settings, err := s.store.GetSettings(ctx, guildID)
	if err != nil {
		return entities.BankSettings{}, fmt.Errorf("failed to get bank settings: %w", err)
	}
	return settings, nil
}

// RefreshHub re-renders the hub from the stored settings
func (s *bankHubService) RefreshHub(ctx context.Context, guildID int64) (entities.HubSyncStatus, error) {
	unlock := s.lockGuild(guildID)
	defer unlock()

	settings, err := s.store.GetSettings(ctx, guildID)
	if err != nil {
		return entities.HubPushFailed, fmt.Errorf("failed to get bank settings: %w", err)
	}

	return s.pushHub(ctx, guildID, settings)
}

// OpenRequest checks that a hub button may be used right now. A stale hub
// message can still show a button whose toggle has since been disabled.
func (s *bankHubService) OpenRequest(ctx context.Context, guildID int64, toggle entities.Toggle) error {
	if _, err := entities.ParseToggle(string(toggle)); err != nil {
		return err
	}

	settings, err := s.store.GetSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get bank settings: %w", err)
	}
	if !settings.IsEnabled(toggle) {
		return fmt.Errorf("%w: %s", entities.ErrToggleDisabled, toggle)
	}
	return nil
}

// RefreshAllHubs re-renders every recorded hub so edits missed while offline are caught up
func (s *bankHubService) RefreshAllHubs(ctx context.Context) (entities.HubRefreshSummary, error) {
	var summary entities.HubRefreshSummary

	records, err := s.store.ListGuilds(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list guilds: %w", err)
	}

	for _, record := range records {
		if !record.Hub.IsValid() {
			continue
		}
		status, err := s.RefreshHub(ctx, record.GuildID)
		if err != nil || status != entities.HubSynced {
			summary.Failed++
			continue
		}
		summary.Synced++
	}

	return summary, nil
}

func (s *bankHubService) checkConsoleAccess(ctx context.Context, guildID int64, actor entities.Actor) error {
	bankerRoleID, err := s.store.GetBankerRole(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get banker role: %w", err)
	}
	if !actor.CanOperateConsole(bankerRoleID) {
		return entities.ErrBankerRequired
	}
	return nil
}

// pushHub edits the hub message if one exists. Failures are logged and returned
// for the caller to display; they never undo the settings change.
func (s *bankHubService) pushHub(ctx context.Context, guildID int64, settings entities.BankSettings) (entities.HubSyncStatus, error) {
	location, err := s.store.GetHubLocation(ctx, guildID)
	if err != nil {
		log.WithError(err).WithField("guild_id", guildID).Error("Failed to look up hub location")
		return entities.HubPushFailed, err
	}
	if !location.IsValid() {
		return entities.HubNotConfigured, nil
	}

	if err := s.hubPublisher.UpdateHub(ctx, guildID, *location, settings); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id":   guildID,
			"channel_id": location.ChannelID,
			"message_id": location.MessageID,
		}).Warn("Failed to update hub message")
		return entities.HubPushFailed, err
	}

	return entities.HubSynced, nil
}

func (s *bankHubService) publish(event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).WithField("event_type", event.Type()).Warn("Failed to publish event")
	}
}

// tolerateWriteFailure swallows persistence failures (memory already holds the
// new value) and passes every other error through.
func tolerateWriteFailure(err error, guildID int64, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, entities.ErrPersistence) {
		log.WithError(err).WithField("guild_id", guildID).Errorf("Failed to save %s; keeping in-memory value", what)
		return nil
	}
	return err
}
