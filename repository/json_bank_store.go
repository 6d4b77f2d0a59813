package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"bankhub/domain/entities"
)

// snowflake is a Discord id written as a JSON string. Numeric ids are accepted on load.
type snowflake int64

func (s snowflake) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(s), 10))
}

func (s *snowflake) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", raw, err)
		}
		*s = snowflake(id)
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*s = snowflake(id)
	return nil
}

type hubMessageRecord struct {
	ChannelID snowflake `json:"channel_id"`
	MessageID snowflake `json:"message_id"`
}

// settingsRecord default-fills missing flags so a partial entry never reads as disabled
type settingsRecord entities.BankSettings

func (r *settingsRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		DepositEnabled  *bool `json:"deposit_enabled"`
		WithdrawEnabled *bool `json:"withdraw_enabled"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	settings := entities.DefaultBankSettings()
	if raw.DepositEnabled != nil {
		settings.DepositEnabled = *raw.DepositEnabled
	}
	if raw.WithdrawEnabled != nil {
		settings.WithdrawEnabled = *raw.WithdrawEnabled
	}
	*r = settingsRecord(settings)
	return nil
}

// bankDocument is the on-disk layout of the banking data file
type bankDocument struct {
	BankerRoles map[string]snowflake        `json:"banker_roles"`
	HubMessages map[string]hubMessageRecord `json:"hub_messages"`
	Settings    map[string]settingsRecord   `json:"settings"`
}

// JSONBankStore keeps the banking document in memory and rewrites the file on
// every mutation. All mutations go through one mutex, so the process has a
// single writer.
type JSONBankStore struct {
	path string

	mu          sync.RWMutex
	settings    map[int64]entities.BankSettings
	hubs        map[int64]entities.HubLocation
	bankerRoles map[int64]int64
}

// OpenJSONBankStore loads the document at path, creating an empty one if the file does not exist
func OpenJSONBankStore(path string) (*JSONBankStore, error) {
	store := &JSONBankStore{
		path:        path,
		settings:    make(map[int64]entities.BankSettings),
		hubs:        make(map[int64]entities.HubLocation),
		bankerRoles: make(map[int64]int64),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		store.mu.Lock()
		defer store.mu.Unlock()
		if err := store.persistLocked(); err != nil {
			return nil, err
		}
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read banking data %s: %w", path, err)
	}

	if err := store.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse banking data %s: %w", path, err)
	}
	return store, nil
}

// Path returns the file backing the store
func (s *JSONBankStore) Path() string {
	return s.path
}

func (s *JSONBankStore) decode(data []byte) error {
	var doc bankDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	for key, role := range doc.BankerRoles {
		guildID, err := parseGuildKey(key)
		if err != nil {
			return err
		}
		s.bankerRoles[guildID] = int64(role)
	}
	for key, hub := range doc.HubMessages {
		guildID, err := parseGuildKey(key)
		if err != nil {
			return err
		}
		s.hubs[guildID] = entities.HubLocation{
			ChannelID: int64(hub.ChannelID),
			MessageID: int64(hub.MessageID),
		}
	}
	for key, settings := range doc.Settings {
		guildID, err := parseGuildKey(key)
		if err != nil {
			return err
		}
		s.settings[guildID] = entities.BankSettings(settings)
	}
	return nil
}

func parseGuildKey(key string) (int64, error) {
	guildID, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid guild id key %q: %w", key, err)
	}
	return guildID, nil
}

// persistLocked writes the whole document. The caller must hold s.mu.
// The file is replaced through a rename so a crash never leaves it half written.
func (s *JSONBankStore) persistLocked() error {
	doc := bankDocument{
		BankerRoles: make(map[string]snowflake, len(s.bankerRoles)),
		HubMessages: make(map[string]hubMessageRecord, len(s.hubs)),
		Settings:    make(map[string]settingsRecord, len(s.settings)),
	}
	for guildID, role := range s.bankerRoles {
		doc.BankerRoles[strconv.FormatInt(guildID, 10)] = snowflake(role)
	}
	for guildID, hub := range s.hubs {
		doc.HubMessages[strconv.FormatInt(guildID, 10)] = hubMessageRecord{
			ChannelID: snowflake(hub.ChannelID),
			MessageID: snowflake(hub.MessageID),
		}
	}
	for guildID, settings := range s.settings {
		doc.Settings[strconv.FormatInt(guildID, 10)] = settingsRecord(settings)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", entities.ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", entities.ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", entities.ErrPersistence, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", entities.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", entities.ErrPersistence, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", entities.ErrPersistence, err)
	}
	return nil
}

// GetSettings returns the stored settings or the defaults. It never fails.
func (s *JSONBankStore) GetSettings(ctx context.Context, guildID int64) (entities.BankSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if settings, ok := s.settings[guildID]; ok {
		return settings, nil
	}
	return entities.DefaultBankSettings(), nil
}

// SetSettings replaces the settings for a guild.
// On a failed write the in-memory value is kept.
func (s *JSONBankStore) SetSettings(ctx context.Context, guildID int64, settings entities.BankSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[guildID] = settings
	return s.persistLocked()
}

// UpdateSettings applies mutate under the writer lock and persists the result
func (s *JSONBankStore) UpdateSettings(ctx context.Context, guildID int64, mutate func(*entities.BankSettings) error) (entities.BankSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.settings[guildID]
	if !ok {
		settings = entities.DefaultBankSettings()
	}
	if err := mutate(&settings); err != nil {
		return entities.BankSettings{}, err
	}

	s.settings[guildID] = settings
	return settings, s.persistLocked()
}

// EnsureSettings stores the defaults for a guild that has none
func (s *JSONBankStore) EnsureSettings(ctx context.Context, guildID int64) (entities.BankSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings, ok := s.settings[guildID]; ok {
		return settings, nil
	}
	settings := entities.DefaultBankSettings()
	s.settings[guildID] = settings
	return settings, s.persistLocked()
}

// GetHubLocation returns nil when the guild has no hub
func (s *JSONBankStore) GetHubLocation(ctx context.Context, guildID int64) (*entities.HubLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hub, ok := s.hubs[guildID]
	if !ok {
		return nil, nil
	}
	return &hub, nil
}

// SetHubLocation overwrites the hub pointer for a guild
func (s *JSONBankStore) SetHubLocation(ctx context.Context, guildID int64, location entities.HubLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hubs[guildID] = location
	return s.persistLocked()
}

// GetBankerRole returns nil when no banker role is set
func (s *JSONBankStore) GetBankerRole(ctx context.Context, guildID int64) (*int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.bankerRoles[guildID]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

// SetBankerRole overwrites the banker role for a guild
func (s *JSONBankStore) SetBankerRole(ctx context.Context, guildID int64, roleID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bankerRoles[guildID] = roleID
	return s.persistLocked()
}

// ListGuilds returns a record per known guild ordered by guild id
func (s *JSONBankStore) ListGuilds(ctx context.Context) ([]*entities.GuildBankRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make(map[int64]*entities.GuildBankRecord)
	record := func(guildID int64) *entities.GuildBankRecord {
		if r, ok := records[guildID]; ok {
			return r
		}
		r := &entities.GuildBankRecord{GuildID: guildID}
		records[guildID] = r
		return r
	}

	for guildID, settings := range s.settings {
		settings := settings
		record(guildID).Settings = &settings
	}
	for guildID, hub := range s.hubs {
		hub := hub
		record(guildID).Hub = &hub
	}
	for guildID, role := range s.bankerRoles {
		role := role
		record(guildID).BankerRoleID = &role
	}

	result := make([]*entities.GuildBankRecord, 0, len(records))
	for _, r := range records {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GuildID < result[j].GuildID })
	return result, nil
}
