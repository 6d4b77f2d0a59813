package general

import (
	"math/rand"

	"github.com/bwmarrin/discordgo"
)

// Config controls the general feature
type Config struct {
	WelcomeEnabled     bool
	WelcomeChannelName string
}

// Feature handles informational commands and the welcome message
type Feature struct {
	config Config
	intN   func(n int) int
}

// NewFeature creates a new general feature instance
func NewFeature(config Config) *Feature {
	return &Feature{
		config: config,
		intN:   rand.Intn,
	}
}

// HandleCommand routes general slash commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "ping":
		f.handlePing(s, i)
	case "info":
		f.handleInfo(s, i)
	case "help":
		f.handleHelp(s, i)
	case "hello":
		f.handleHello(s, i)
	case "roll":
		f.handleRoll(s, i)
	case "serverinfo":
		f.handleServerInfo(s, i)
	}
}

// Handles reports whether name is a command of this feature
func Handles(name string) bool {
	switch name {
	case "ping", "info", "help", "hello", "roll", "serverinfo":
		return true
	}
	return false
}
