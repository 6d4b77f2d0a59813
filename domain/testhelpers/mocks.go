package testhelpers

import (
	"context"

	"bankhub/domain/entities"
	"bankhub/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockBankStore is a mock implementation of BankStore
type MockBankStore struct {
	mock.Mock
}

func (m *MockBankStore) GetSettings(ctx context.Context, guildID int64) (entities.BankSettings, error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(entities.BankSettings), args.Error(1)
}

func (m *MockBankStore) SetSettings(ctx context.Context, guildID int64, settings entities.BankSettings) error {
	args := m.Called(ctx, guildID, settings)
	return args.Error(0)
}

// MutateFuncType matches the mutate argument of UpdateSettings in expectations
const MutateFuncType = "func(*entities.BankSettings) error"

// UpdateSettings runs mutate against the settings passed to Return so callers
// observe the same read-modify-write as a real store.
func (m *MockBankStore) UpdateSettings(ctx context.Context, guildID int64, mutate func(*entities.BankSettings) error) (entities.BankSettings, error) {
	args := m.Called(ctx, guildID, mutate)
	current := args.Get(0).(entities.BankSettings)
	if err := mutate(&current); err != nil {
		return entities.BankSettings{}, err
	}
	return current, args.Error(1)
}

func (m *MockBankStore) EnsureSettings(ctx context.Context, guildID int64) (entities.BankSettings, error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(entities.BankSettings), args.Error(1)
}

func (m *MockBankStore) GetHubLocation(ctx context.Context, guildID int64) (*entities.HubLocation, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.HubLocation), args.Error(1)
}

func (m *MockBankStore) SetHubLocation(ctx context.Context, guildID int64, location entities.HubLocation) error {
	args := m.Called(ctx, guildID, location)
	return args.Error(0)
}

func (m *MockBankStore) GetBankerRole(ctx context.Context, guildID int64) (*int64, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *MockBankStore) SetBankerRole(ctx context.Context, guildID int64, roleID int64) error {
	args := m.Called(ctx, guildID, roleID)
	return args.Error(0)
}

func (m *MockBankStore) ListGuilds(ctx context.Context) ([]*entities.GuildBankRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GuildBankRecord), args.Error(1)
}

// MockHubPublisher is a mock implementation of HubPublisher
type MockHubPublisher struct {
	mock.Mock
}

func (m *MockHubPublisher) PostHub(ctx context.Context, guildID, channelID int64, settings entities.BankSettings) (int64, error) {
	args := m.Called(ctx, guildID, channelID, settings)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHubPublisher) UpdateHub(ctx context.Context, guildID int64, location entities.HubLocation, settings entities.BankSettings) error {
	args := m.Called(ctx, guildID, location, settings)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
