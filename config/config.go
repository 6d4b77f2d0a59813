package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"bankhub/database"
)

// Store backends
const (
	StoreBackendJSON     = "json"
	StoreBackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string // Guild used for command registration; empty registers globally

	// Storage configuration
	StoreBackend string // "json" or "postgres"
	BankDataFile string
	DatabaseURL  string
	DatabaseName string

	// NATS configuration
	NATSServers string // empty disables event publishing

	// Presentation
	EmojisFile            string
	WelcomeMessageEnabled bool
	WelcomeChannelName    string
	HubImageURL           string
	HubStatusCard         bool // attach a rendered status card image to the hub

	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load(true)
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// Load reads the configuration from the environment without touching the singleton
func Load() (*Config, error) {
	return load(true)
}

// LoadWithoutToken is Load for offline commands (status, migrate) that never
// connect to Discord. The token is read but not required.
func LoadWithoutToken() (*Config, error) {
	return load(false)
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// UsesPostgres reports whether the Postgres store is selected
func (c *Config) UsesPostgres() bool {
	return c.StoreBackend == StoreBackendPostgres
}

// load loads configuration from environment variables
func load(requireToken bool) (*Config, error) {
	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		StoreBackend: strings.ToLower(getEnvWithDefault("STORE_BACKEND", StoreBackendJSON)),
		BankDataFile: getEnvWithDefault("BANK_DATA_FILE", "data/banking.json"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		EmojisFile:            getEnvWithDefault("EMOJIS_FILE", "emojis.json"),
		WelcomeMessageEnabled: getEnvBool("WELCOME_MESSAGE_ENABLED", true),
		WelcomeChannelName:    getEnvWithDefault("WELCOME_CHANNEL_NAME", "general"),
		HubImageURL:           os.Getenv("HUB_IMAGE_URL"),
		HubStatusCard:         getEnvBool("HUB_STATUS_CARD", true),

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	switch config.StoreBackend {
	case StoreBackendJSON, StoreBackendPostgres:
	default:
		return nil, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendJSON, StoreBackendPostgres, config.StoreBackend)
	}

	if config.Environment != "test" {
		if requireToken && config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.UsesPostgres() && config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_BACKEND is postgres")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		DiscordToken:       "test-token",
		StoreBackend:       StoreBackendJSON,
		BankDataFile:       "data/banking.json",
		EmojisFile:         "emojis.json",
		WelcomeChannelName: "general",
		LogLevel:           "info",
		Environment:        "test",
	}
}
