package cmd

import (
	"context"
	"fmt"
	"io"

	"bankhub/bot/common"
	"bankhub/config"
	"bankhub/domain/entities"
)

// Status prints the stored banking state of every guild. It never connects to
// Discord, so a missing token is reported rather than treated as an error.
func Status(ctx context.Context, w io.Writer) error {
	cfg, err := config.LoadWithoutToken()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
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

	records, err := store.ListGuilds(ctx)
	if err != nil {
		return fmt.Errorf("failed to list guilds: %w", err)
	}

	WriteStatus(w, cfg, records, emojis)
	return nil
}

// WriteStatus renders the status report
func WriteStatus(w io.Writer, cfg *config.Config, records []*entities.GuildBankRecord, emojis config.Emojis) {
	var roles, hubs, settings int
	for _, r := range records {
		if r.BankerRoleID != nil {
			roles++
		}
		if r.Hub != nil {
			hubs++
		}
		if r.Settings != nil {
			settings++
		}
	}

	fmt.Fprintln(w, "🏦 Banking System Status")
	token := "Missing"
	if cfg.DiscordToken != "" {
		token = "Set"
	}
	fmt.Fprintf(w, "Discord token: %s\n", token)
	fmt.Fprintf(w, "Store backend: %s\n\n", cfg.StoreBackend)
	fmt.Fprintf(w, "Banker roles: %d\n", roles)
	fmt.Fprintf(w, "Hub messages: %d\n", hubs)
	fmt.Fprintf(w, "Guild settings: %d\n", settings)

	for _, r := range records {
		fmt.Fprintf(w, "\nGuild %d\n", r.GuildID)
		if r.Settings != nil {
			fmt.Fprintf(w, "  Deposit:  %s\n", common.FormatToggleStatus(r.Settings.DepositEnabled))
			fmt.Fprintf(w, "  Withdraw: %s\n", common.FormatToggleStatus(r.Settings.WithdrawEnabled))
		} else {
			fmt.Fprintln(w, "  Settings: defaults")
		}
		if r.Hub != nil {
			fmt.Fprintf(w, "  Hub: channel %d, message %d\n", r.Hub.ChannelID, r.Hub.MessageID)
		}
		if r.BankerRoleID != nil {
			fmt.Fprintf(w, "  Banker role: %d\n", *r.BankerRoleID)
		}
	}

	fmt.Fprintln(w, "\nEmojis")
	fmt.Fprintf(w, "  Bank:     %s\n", emojis.Bank)
	fmt.Fprintf(w, "  Deposit:  %s\n", emojis.Deposit)
	fmt.Fprintf(w, "  Withdraw: %s\n", emojis.Withdraw)
}
