package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"bankhub/domain/entities"
	"bankhub/domain/events"
	"bankhub/domain/testhelpers"
	"bankhub/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID = int64(123456789)
	testRoleID  = int64(777)
	testChannel = int64(1)
	testMessage = int64(2)
	testUserID  = int64(42)
	otherRoleID = int64(888)
)

func admin() entities.Actor { return entities.NewActor(testUserID, true) }
func banker() entities.Actor { return entities.NewActor(testUserID, false, testRoleID) }
func member() entities.Actor { return entities.NewActor(testUserID, false, otherRoleID) }

func roleID(id int64) *int64 { return &id }

func TestBankHubService_SetToggle(t *testing.T) {
	t.Parallel()

	hub := &entities.HubLocation{ChannelID: testChannel, MessageID: testMessage}
	disabledDeposit := entities.BankSettings{DepositEnabled: false, WithdrawEnabled: true}

	tests := []struct {
		name          string
		actor         entities.Actor
		toggle        entities.Toggle
		enabled       bool
		setupMocks    func(*testhelpers.MockBankStore, *testhelpers.MockHubPublisher, *testhelpers.MockEventPublisher)
		wantErr       error
		errContains   string
		wantSettings  entities.BankSettings
		wantHub       entities.HubSyncStatus
		wantPersisted bool
	}{
		{
			name:    "banker disables deposit and hub is edited",
			actor:   banker(),
			toggle:  entities.ToggleDeposit,
			enabled: false,
			setupMocks: func(store *testhelpers.MockBankStore, hubs *testhelpers.MockHubPublisher, pub *testhelpers.MockEventPublisher) {
				store.On("GetBankerRole", mock.Anything, testGuildID).Return(roleID(testRoleID), nil)
				store.On("UpdateSettings", mock.Anything, testGuildID, mock.AnythingOfType(testhelpers.MutateFuncType)).Return(entities.DefaultBankSettings(), nil)
				store.On("GetHubLocation", mock.Anything, testGuildID).Return(hub, nil)
				hubs.On("UpdateHub", mock.Anything, testGuildID, *hub, disabledDeposit).Return(nil)
				pub.On("Publish", mock.MatchedBy(func(e events.BankToggleChangedEvent) bool {
					return e.Toggle == "deposit" && !e.Enabled && e.HubSynced
				})).Return(nil)
			},
			wantSettings:  disabledDeposit,
			wantHub:       entities.HubSynced,
			wantPersisted: true,
		},
		{
			name:    "administrator without banker role",
			actor:   entities.NewActor(testUserID, true),
			toggle:  entities.ToggleWithdraw,
			enabled: false,
			setupMocks: func(store *testhelpers.MockBankStore, hubs *testhelpers.MockHubPublisher, pub *testhelpers.MockEventPublisher) {
				store.On("GetBankerRole", mock.Anything, testGuildID).Return(nil, nil)
				store.On("UpdateSettings", mock.Anything, testGuildID, mock.AnythingOfType(testhelpers.MutateFuncType)).Return(entities.DefaultBankSettings(), nil)
				store.On("GetHubLocation", mock.Anything, testGuildID).Return(nil, nil)
				pub.On("Publish", mock.Anything).Return(nil)
			},
			wantSettings:  entities.BankSettings{DepositEnabled: true, WithdrawEnabled: false},
			wantHub:       entities.HubNotConfigured,
			wantPersisted: true,
		},
		{
			name:    "hub edit failure keeps the settings change",
			actor:   banker(),
			toggle:  entities.ToggleDeposit,
			enabled: false,
			setupMocks: func(store *testhelpers.MockBankStore, hubs *testhelpers.MockHubPublisher, pub *testhelpers.MockEventPublisher) {
				store.On("GetBankerRole", mock.Anything, testGuildID).Return(roleID(testRoleID), nil)
				store.On("UpdateSettings", mock.Anything, testGuildID, mock.AnythingOfType(testhelpers.MutateFuncType)).Return(entities.DefaultBankSettings(), nil)
				store.On("GetHubLocation", mock.Anything, testGuildID).Return(hub, nil)
				hubs.On("UpdateHub", mock.Anything, testGuildID, *hub, disabledDeposit).Return(errors.New("message not found"))
				pub.On("Publish", mock.MatchedBy(func(e events.BankToggleChangedEvent) bool {
					return !e.HubSynced
				})).Return(nil)
			},
			wantSettings:  disabledDeposit,
			wantHub:       entities.HubPushFailed,
			wantPersisted: true,
		},
		{
			name:    "persistence failure still updates memory and hub",
			actor:   banker(),
			toggle:  entities.ToggleDeposit,
			enabled: false,
			setupMocks: func(store *testhelpers.MockBankStore, hubs *testhelpers.MockHubPublisher, pub *testhelpers.MockEventPublisher) {
				store.On("GetBankerRole", mock.Anything, testGuildID).Return(roleID(testRoleID), nil)
				store.On("UpdateSettings", mock.Anything, testGuildID, mock.AnythingOfType(testhelpers.MutateFuncType)).
					Return(entities.DefaultBankSettings(), fmt.Errorf("%w: disk full", entities.ErrPersistence))
				store.On("GetHubLocation", mock.Anything, testGuildID).Return(hub, nil)
				hubs.On("UpdateHub", mock.Anything, testGuildID, *hub, disabledDeposit).Return(nil)
				pub.On("Publish", mock.Anything).Return(errors.New("nats down"))
			},
			wantSettings:  disabledDeposit,
			wantHub:       entities.HubSynced,
			wantPersisted: false,
		},
		{
			name:    "member without banker role is denied",
			actor:   member(),
			toggle:  entities.ToggleDeposit,
			enabled: false,
			setupMocks: func(store *testhelpers.MockBankStore, hubs *testhelpers.MockHubPublisher, pub *testhelpers.MockEventPublisher) {
				store.On("GetBankerRole", mock.Anything, testGuildID).Return(roleID(testRoleID), nil)
			},
			wantErr: entities.ErrPermissionDenied,
		},
		{
			name:    "non admin denied when no banker role is configured",
			actor:   banker(),
			toggle:  entities.ToggleWithdraw,
			enabled: true,
			setupMocks: func(store *testhelpers.MockBankStore, hubs *testhelpers.MockHubPublisher, pub *testhelpers.MockEventPublisher) {
				store.On("GetBankerRole", mock.Anything, testGuildID).Return(nil, nil)
			},
			wantErr: entities.ErrPermissionDenied,
		},
		{
			name:       "unknown toggle",
			actor:      admin(),
			toggle:     entities.Toggle("loans"),
			enabled:    true,
			setupMocks: func(*testhelpers.MockBankStore, *testhelpers.MockHubPublisher, *testhelpers.MockEventPublisher) {},
			wantErr:    entities.ErrUnknownToggle,
		},
		{
			name:    "store failure other than persistence is returned",
			actor:   admin(),
			toggle:  entities.ToggleDeposit,
			enabled: true,
			setupMocks: func(store *testhelpers.MockBankStore, hubs *testhelpers.MockHubPublisher, pub *testhelpers.MockEventPublisher) {
				store.On("GetBankerRole", mock.Anything, testGuildID).Return(nil, nil)
				store.On("UpdateSettings", mock.Anything, testGuildID, mock.AnythingOfType(testhelpers.MutateFuncType)).
					Return(entities.BankSettings{}, errors.New("connection refused"))
			},
			errContains: "failed to update bank settings",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := new(testhelpers.MockBankStore)
			hubs := new(testhelpers.MockHubPublisher)
			pub := new(testhelpers.MockEventPublisher)
			tt.setupMocks(store, hubs, pub)

			service := NewBankHubService(store, hubs, pub)

			outcome, err := service.SetToggle(context.Background(), testGuildID, tt.actor, tt.toggle, tt.enabled)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, outcome)
				store.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything, mock.Anything)
				hubs.AssertNotCalled(t, "UpdateHub", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			case tt.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				hubs.AssertNotCalled(t, "UpdateHub", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			default:
				require.NoError(t, err)
				require.NotNil(t, outcome)
				assert.Equal(t, tt.wantSettings, outcome.Settings)
				assert.Equal(t, tt.wantHub, outcome.HubStatus)
				assert.Equal(t, tt.wantPersisted, outcome.Persisted)
				assert.Equal(t, tt.toggle, outcome.Toggle)
				assert.Equal(t, tt.enabled, outcome.Enabled)
				if tt.wantHub == entities.HubPushFailed {
					assert.Error(t, outcome.HubErr)
				} else {
					assert.NoError(t, outcome.HubErr)
				}
			}

			store.AssertExpectations(t)
			hubs.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestBankHubService_SetupHub(t *testing.T) {
	t.Parallel()

	t.Run("administrator posts and records the hub", func(t *testing.T) {
		t.Parallel()

		store := new(testhelpers.MockBankStore)
		hubs := new(testhelpers.MockHubPublisher)
		pub := new(testhelpers.MockEventPublisher)

		settings := entities.BankSettings{DepositEnabled: false, WithdrawEnabled: true}
		store.On("GetSettings", mock.Anything, testGuildID).Return(settings, nil)
		hubs.On("PostHub", mock.Anything, testGuildID, int64(55), settings).Return(int64(66), nil)
		store.On("SetHubLocation", mock.Anything, testGuildID, entities.HubLocation{ChannelID: 55, MessageID: 66}).Return(nil)
		store.On("EnsureSettings", mock.Anything, testGuildID).Return(settings, nil)
		pub.On("Publish", mock.MatchedBy(func(e events.BankHubPostedEvent) bool {
			return e.ChannelID == 55 && e.MessageID == 66 && e.ActorID == testUserID
		})).Return(nil)

		service := NewBankHubService(store, hubs, pub)
		location, err := service.SetupHub(context.Background(), testGuildID, admin(), 55)

		require.NoError(t, err)
		assert.Equal(t, &entities.HubLocation{ChannelID: 55, MessageID: 66}, location)
		store.AssertExpectations(t)
		hubs.AssertExpectations(t)
	})

	t.Run("non administrator is denied", func(t *testing.T) {
		t.Parallel()

		store := new(testhelpers.MockBankStore)
		hubs := new(testhelpers.MockHubPublisher)

		service := NewBankHubService(store, hubs, nil)
		location, err := service.SetupHub(context.Background(), testGuildID, banker(), 55)

		require.ErrorIs(t, err, entities.ErrPermissionDenied)
		assert.Nil(t, location)
		hubs.AssertNotCalled(t, "PostHub", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "SetHubLocation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("post failure records nothing", func(t *testing.T) {
		t.Parallel()

		store := new(testhelpers.MockBankStore)
		hubs := new(testhelpers.MockHubPublisher)

		store.On("GetSettings", mock.Anything, testGuildID).Return(entities.DefaultBankSettings(), nil)
		hubs.On("PostHub", mock.Anything, testGuildID, int64(55), entities.DefaultBankSettings()).
			Return(int64(0), errors.New("missing access"))

		service := NewBankHubService(store, hubs, nil)
		_, err := service.SetupHub(context.Background(), testGuildID, admin(), 55)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to post hub message")
		store.AssertNotCalled(t, "SetHubLocation", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBankHubService_SetBankerRole(t *testing.T) {
	t.Parallel()

	t.Run("administrator assigns role", func(t *testing.T) {
		t.Parallel()

		store := new(testhelpers.MockBankStore)
		pub := new(testhelpers.MockEventPublisher)
		store.On("SetBankerRole", mock.Anything, testGuildID, testRoleID).Return(nil)
		pub.On("Publish", mock.MatchedBy(func(e events.BankerRoleChangedEvent) bool {
			return e.RoleID == testRoleID
		})).Return(nil)

		service := NewBankHubService(store, new(testhelpers.MockHubPublisher), pub)
		require.NoError(t, service.SetBankerRole(context.Background(), testGuildID, admin(), testRoleID))

		store.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("persistence failure is tolerated", func(t *testing.T) {
		t.Parallel()

		store := new(testhelpers.MockBankStore)
		store.On("SetBankerRole", mock.Anything, testGuildID, testRoleID).
			Return(fmt.Errorf("%w: read-only file system", entities.ErrPersistence))

		service := NewBankHubService(store, new(testhelpers.MockHubPublisher), nil)
		assert.NoError(t, service.SetBankerRole(context.Background(), testGuildID, admin(), testRoleID))
	})

	t.Run("banker cannot reassign the role", func(t *testing.T) {
		t.Parallel()

		store := new(testhelpers.MockBankStore)
		service := NewBankHubService(store, new(testhelpers.MockHubPublisher), nil)

		err := service.SetBankerRole(context.Background(), testGuildID, banker(), otherRoleID)
		require.ErrorIs(t, err, entities.ErrPermissionDenied)
		store.AssertNotCalled(t, "SetBankerRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBankHubService_OpenConsole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		actor      entities.Actor
		bankerRole *int64
		wantErr    bool
	}{
		{name: "administrator", actor: admin(), bankerRole: nil},
		{name: "banker", actor: banker(), bankerRole: roleID(testRoleID)},
		{name: "member", actor: member(), bankerRole: roleID(testRoleID), wantErr: true},
		{name: "no banker role configured", actor: banker(), bankerRole: nil, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := new(testhelpers.MockBankStore)
			if tt.bankerRole == nil {
				store.On("GetBankerRole", mock.Anything, testGuildID).Return(nil, nil)
			} else {
				store.On("GetBankerRole", mock.Anything, testGuildID).Return(tt.bankerRole, nil)
			}
			store.On("GetSettings", mock.Anything, testGuildID).Return(entities.DefaultBankSettings(), nil).Maybe()

			service := NewBankHubService(store, new(testhelpers.MockHubPublisher), nil)
			settings, err := service.OpenConsole(context.Background(), testGuildID, tt.actor)

			if tt.wantErr {
				require.ErrorIs(t, err, entities.ErrPermissionDenied)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entities.DefaultBankSettings(), settings)
		})
	}
}

// recordingHub stands in for the chat surface: it records every render and can be told to fail
type recordingHub struct {
	mu       sync.Mutex
	nextID   int64
	updates  []entities.BankSettings
	failWith error
}

func (h *recordingHub) PostHub(ctx context.Context, guildID, channelID int64, settings entities.BankSettings) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	return h.nextID, nil
}

func (h *recordingHub) UpdateHub(ctx context.Context, guildID int64, location entities.HubLocation, settings entities.BankSettings) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failWith != nil {
		return h.failWith
	}
	h.updates = append(h.updates, settings)
	return nil
}

func openStore(t *testing.T) *repository.JSONBankStore {
	t.Helper()
	store, err := repository.OpenJSONBankStore(filepath.Join(t.TempDir(), "banking.json"))
	require.NoError(t, err)
	return store
}

func TestBankHubService_SettingsChangeWinsOverHubFailure(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.SetHubLocation(ctx, testGuildID, entities.HubLocation{ChannelID: testChannel, MessageID: testMessage}))

	hub := &recordingHub{failWith: errors.New("message not found")}
	service := NewBankHubService(store, hub, nil)

	outcome, err := service.Disable(ctx, testGuildID, admin(), entities.ToggleDeposit)
	require.NoError(t, err)
	assert.Equal(t, entities.HubPushFailed, outcome.HubStatus)
	assert.EqualError(t, outcome.HubErr, "message not found")

	settings, err := service.GetSettings(ctx, testGuildID)
	require.NoError(t, err)
	assert.False(t, settings.DepositEnabled)
	assert.True(t, settings.WithdrawEnabled)

	reopened, err := repository.OpenJSONBankStore(store.Path())
	require.NoError(t, err)
	persisted, err := reopened.GetSettings(ctx, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, settings, persisted)
}

func TestBankHubService_ToggleSequence(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	hub := &recordingHub{}
	service := NewBankHubService(store, hub, nil)

	_, err := service.SetupHub(ctx, testGuildID, admin(), testChannel)
	require.NoError(t, err)
	require.NoError(t, service.SetBankerRole(ctx, testGuildID, admin(), testRoleID))

	first, err := service.Disable(ctx, testGuildID, banker(), entities.ToggleDeposit)
	require.NoError(t, err)
	second, err := service.Disable(ctx, testGuildID, banker(), entities.ToggleDeposit)
	require.NoError(t, err)

	// disabling twice is the same as disabling once
	assert.Equal(t, first.Settings, second.Settings)
	assert.Equal(t, entities.HubSynced, second.HubStatus)

	_, err = service.Disable(ctx, testGuildID, banker(), entities.ToggleWithdraw)
	require.NoError(t, err)
	enabled, err := service.Enable(ctx, testGuildID, banker(), entities.ToggleDeposit)
	require.NoError(t, err)
	assert.Equal(t, entities.BankSettings{DepositEnabled: true, WithdrawEnabled: false}, enabled.Settings)

	// hub renders arrive in write order
	assert.Equal(t, []entities.BankSettings{
		{DepositEnabled: false, WithdrawEnabled: true},
		{DepositEnabled: false, WithdrawEnabled: true},
		{DepositEnabled: false, WithdrawEnabled: false},
		{DepositEnabled: true, WithdrawEnabled: false},
	}, hub.updates)

	location, err := store.GetHubLocation(ctx, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, &entities.HubLocation{ChannelID: testChannel, MessageID: 1}, location)
	role, err := store.GetBankerRole(ctx, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, testRoleID, *role)

	status, err := service.RefreshHub(ctx, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, entities.HubSynced, status)
	assert.Len(t, hub.updates, 5)
}

func TestBankHubService_GuildsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	service := NewBankHubService(store, &recordingHub{}, nil)

	_, err := service.Disable(ctx, 1, admin(), entities.ToggleDeposit)
	require.NoError(t, err)

	other, err := service.GetSettings(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultBankSettings(), other)

	status, err := service.RefreshHub(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, entities.HubNotConfigured, status)
}

func TestBankHubService_ConcurrentTogglesConverge(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.SetHubLocation(ctx, testGuildID, entities.HubLocation{ChannelID: testChannel, MessageID: testMessage}))
	hub := &recordingHub{}
	service := NewBankHubService(store, hub, nil)

	var wg sync.WaitGroup
	for _, toggle := range entities.AllToggles {
		toggle := toggle
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Disable(ctx, testGuildID, admin(), toggle)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	settings, err := service.GetSettings(ctx, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, entities.BankSettings{}, settings)

	// the last render always reflects the final stored state
	require.Len(t, hub.updates, 2)
	assert.Equal(t, settings, hub.updates[1])
}

func TestBankHubService_OpenRequest(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	service := NewBankHubService(store, &recordingHub{}, nil)

	require.NoError(t, service.OpenRequest(ctx, testGuildID, entities.ToggleDeposit))

	_, err := service.Disable(ctx, testGuildID, admin(), entities.ToggleDeposit)
	require.NoError(t, err)

	// a stale hub message still shows an enabled deposit button
	err = service.OpenRequest(ctx, testGuildID, entities.ToggleDeposit)
	require.ErrorIs(t, err, entities.ErrToggleDisabled)
	require.NoError(t, service.OpenRequest(ctx, testGuildID, entities.ToggleWithdraw))

	err = service.OpenRequest(ctx, testGuildID, entities.Toggle("loans"))
	require.ErrorIs(t, err, entities.ErrUnknownToggle)
}

func TestBankHubService_OpenRequestStoreError(t *testing.T) {
	store := new(testhelpers.MockBankStore)
	store.On("GetSettings", mock.Anything, testGuildID).Return(entities.BankSettings{}, errors.New("connection refused"))

	service := NewBankHubService(store, new(testhelpers.MockHubPublisher), nil)
	err := service.OpenRequest(context.Background(), testGuildID, entities.ToggleWithdraw)

	require.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrToggleDisabled)
	store.AssertExpectations(t)
}

func TestBankHubService_RefreshAllHubs(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	require.NoError(t, store.SetHubLocation(ctx, 1, entities.HubLocation{ChannelID: 10, MessageID: 11}))
	require.NoError(t, store.SetHubLocation(ctx, 2, entities.HubLocation{ChannelID: 20, MessageID: 21}))
	require.NoError(t, store.SetSettings(ctx, 2, entities.BankSettings{WithdrawEnabled: true}))
	require.NoError(t, store.SetBankerRole(ctx, 3, testRoleID))

	hub := &recordingHub{}
	service := NewBankHubService(store, hub, nil)

	summary, err := service.RefreshAllHubs(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.HubRefreshSummary{Synced: 2}, summary)
	assert.Equal(t, []entities.BankSettings{
		entities.DefaultBankSettings(),
		{DepositEnabled: false, WithdrawEnabled: true},
	}, hub.updates)

	hub.failWith = errors.New("Unknown Message")
	summary, err = service.RefreshAllHubs(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.HubRefreshSummary{Failed: 2}, summary)
}

func TestBankHubService_RefreshAllHubsListError(t *testing.T) {
	store := new(testhelpers.MockBankStore)
	store.On("ListGuilds", mock.Anything).Return(nil, errors.New("connection refused"))

	service := NewBankHubService(store, new(testhelpers.MockHubPublisher), nil)
	_, err := service.RefreshAllHubs(context.Background())

	require.ErrorContains(t, err, "connection refused")
}

// blockingPublisher stalls the first publish until release is closed
type blockingPublisher struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (p *blockingPublisher) Publish(event events.Event) error {
	first := false
	p.once.Do(func() { first = true })
	if first {
		close(p.entered)
		<-p.release
	}
	return nil
}

func TestBankHubService_SlowPublisherDoesNotHoldGuildLock(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	pub := &blockingPublisher{entered: make(chan struct{}), release: make(chan struct{})}
	service := NewBankHubService(store, &recordingHub{}, pub)

	firstDone := make(chan *entities.ToggleOutcome)
	go func() {
		outcome, err := service.Disable(ctx, testGuildID, admin(), entities.ToggleDeposit)
		assert.NoError(t, err)
		firstDone <- outcome
	}()
	<-pub.entered

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		_, err := service.Disable(ctx, testGuildID, admin(), entities.ToggleWithdraw)
		assert.NoError(t, err)
	}()

	select {
	case <-secondDone:
	case <-time.After(2 * time.Second):
		t.Error("second toggle waited on the stalled publish")
	}

	close(pub.release)
	first := <-firstDone
	<-secondDone

	assert.Equal(t, testUserID, first.ActorID)
	assert.False(t, first.ChangedAt.IsZero())

	settings, err := service.GetSettings(ctx, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, entities.BankSettings{}, settings)
}
