package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Default banking emojis used when the emojis file is missing or incomplete
const (
	DefaultBankEmoji     = "🏦"
	DefaultDepositEmoji  = "⬆️"
	DefaultWithdrawEmoji = "⬇️"
)

// Emojis holds the emojis used to render the banking hub.
// Values are unicode emoji or custom emoji markup such as <:name:id>.
type Emojis struct {
	Bank     string `json:"bank"`
	Deposit  string `json:"deposite_up"`
	Withdraw string `json:"withdraw_down"`
}

// DefaultEmojis returns the built-in emoji set
func DefaultEmojis() Emojis {
	return Emojis{
		Bank:     DefaultBankEmoji,
		Deposit:  DefaultDepositEmoji,
		Withdraw: DefaultWithdrawEmoji,
	}
}

type emojisFile struct {
	Banking Emojis `json:"banking"`
}

// LoadEmojis reads the "banking" section of the emojis file.
// A missing file yields the defaults; missing keys are filled from the defaults.
func LoadEmojis(path string) (Emojis, error) {
	emojis := DefaultEmojis()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return emojis, nil
	}
	if err != nil {
		return emojis, fmt.Errorf("failed to read emojis file %s: %w", path, err)
	}

	var file emojisFile
	if err := json.Unmarshal(data, &file); err != nil {
		return emojis, fmt.Errorf("failed to parse emojis file %s: %w", path, err)
	}

	if file.Banking.Bank != "" {
		emojis.Bank = file.Banking.Bank
	}
	if file.Banking.Deposit != "" {
		emojis.Deposit = file.Banking.Deposit
	}
	if file.Banking.Withdraw != "" {
		emojis.Withdraw = file.Banking.Withdraw
	}
	return emojis, nil
}
