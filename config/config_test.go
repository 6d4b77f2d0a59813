package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		skipsToken  bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{"DISCORD_TOKEN": "token"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StoreBackendJSON, cfg.StoreBackend)
				assert.Equal(t, "data/banking.json", cfg.BankDataFile)
				assert.Equal(t, "emojis.json", cfg.EmojisFile)
				assert.Equal(t, "general", cfg.WelcomeChannelName)
				assert.True(t, cfg.WelcomeMessageEnabled)
				assert.True(t, cfg.HubStatusCard)
				assert.Empty(t, cfg.NATSServers)
				assert.Equal(t, "development", cfg.Environment)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"DISCORD_TOKEN":           "token",
				"STORE_BACKEND":           "Postgres",
				"DATABASE_URL":            "postgres://u:p@db:5432",
				"DATABASE_NAME":           "bank",
				"WELCOME_MESSAGE_ENABLED": "false",
				"HUB_STATUS_CARD":         "0",
				"NATS_SERVERS":            "nats://nats:4222",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.UsesPostgres())
				assert.False(t, cfg.WelcomeMessageEnabled)
				assert.False(t, cfg.HubStatusCard)
				assert.Equal(t, "postgres://u:p@db:5432/bank?sslmode=disable", cfg.GetDatabaseURL())
			},
		},
		{
			name:        "missing token",
			env:         map[string]string{},
			errContains: "DISCORD_TOKEN is required",
		},
		{
			name:       "missing token allowed offline",
			env:        map[string]string{"ENVIRONMENT": "production"},
			skipsToken: true,
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.DiscordToken)
				assert.Equal(t, "production", cfg.Environment)
			},
		},
		{
			name:        "offline load still validates postgres",
			env:         map[string]string{"STORE_BACKEND": "postgres"},
			skipsToken:  true,
			errContains: "DATABASE_URL is required",
		},
		{
			name:        "postgres without url",
			env:         map[string]string{"DISCORD_TOKEN": "token", "STORE_BACKEND": "postgres"},
			errContains: "DATABASE_URL is required",
		},
		{
			name:        "unknown backend",
			env:         map[string]string{"DISCORD_TOKEN": "token", "STORE_BACKEND": "redis"},
			errContains: "STORE_BACKEND must be",
		},
		{
			name: "test environment skips validation",
			env:  map[string]string{"ENVIRONMENT": "test"},
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.DiscordToken)
			},
		},
	}

	keys := []string{
		"DISCORD_TOKEN", "GUILD_ID", "STORE_BACKEND", "BANK_DATA_FILE", "DATABASE_URL",
		"DATABASE_NAME", "NATS_SERVERS", "EMOJIS_FILE", "WELCOME_MESSAGE_ENABLED",
		"WELCOME_CHANNEL_NAME", "HUB_IMAGE_URL", "HUB_STATUS_CARD", "LOG_LEVEL", "ENVIRONMENT",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range keys {
				t.Setenv(key, tt.env[key])
			}

			load := Load
			if tt.skipsToken {
				load = LoadWithoutToken
			}
			cfg, err := load()
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestGet_UsesTestConfig(t *testing.T) {
	defer ResetConfig()

	custom := NewTestConfig()
	custom.GuildID = "42"
	SetTestConfig(custom)

	assert.Same(t, custom, Get())
}

func TestLoadEmojis(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file yields defaults", func(t *testing.T) {
		emojis, err := LoadEmojis(filepath.Join(dir, "missing.json"))
		require.NoError(t, err)
		assert.Equal(t, DefaultEmojis(), emojis)
	})

	t.Run("partial file is default filled", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"banking": {"deposite_up": "<:up:123>"}}`), 0o644))

		emojis, err := LoadEmojis(path)
		require.NoError(t, err)
		assert.Equal(t, Emojis{Bank: DefaultBankEmoji, Deposit: "<:up:123>", Withdraw: DefaultWithdrawEmoji}, emojis)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

		emojis, err := LoadEmojis(path)
		require.Error(t, err)
		assert.Equal(t, DefaultEmojis(), emojis)
	})
}
