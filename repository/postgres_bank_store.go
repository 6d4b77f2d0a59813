package repository

import (
	"context"
	"errors"
	"fmt"

	"bankhub/database"
	"bankhub/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryable is satisfied by both the pool and a transaction
type Queryable interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresBankStore implements BankStore on PostgreSQL.
// Each guild row is updated atomically, so concurrent toggles never lose a write.
type PostgresBankStore struct {
	db *database.DB
	q  Queryable
}

// NewPostgresBankStore creates a new PostgreSQL-backed bank store
func NewPostgresBankStore(db *database.DB) *PostgresBankStore {
	return &PostgresBankStore{db: db, q: db.Pool}
}

// GetSettings returns the stored settings or the defaults
func (r *PostgresBankStore) GetSettings(ctx context.Context, guildID int64) (entities.BankSettings, error) {
	query := `
		SELECT deposit_enabled, withdraw_enabled
		FROM bank_settings
		WHERE guild_id = $1
	`

	var settings entities.BankSettings
	err := r.q.QueryRow(ctx, query, guildID).Scan(&settings.DepositEnabled, &settings.WithdrawEnabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.DefaultBankSettings(), nil
	}
	if err != nil {
		return entities.BankSettings{}, fmt.Errorf("failed to get bank settings for guild %d: %w", guildID, err)
	}
	return settings, nil
}

// SetSettings upserts the settings for a guild
func (r *PostgresBankStore) SetSettings(ctx context.Context, guildID int64, settings entities.BankSettings) error {
	return upsertSettings(ctx, r.q, guildID, settings)
}

func upsertSettings(ctx context.Context, q Queryable, guildID int64, settings entities.BankSettings) error {
	query := `
		INSERT INTO bank_settings (guild_id, deposit_enabled, withdraw_enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id) DO UPDATE
		SET deposit_enabled = EXCLUDED.deposit_enabled,
		    withdraw_enabled = EXCLUDED.withdraw_enabled,
		    updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, guildID, settings.DepositEnabled, settings.WithdrawEnabled); err != nil {
		return fmt.Errorf("failed to save bank settings for guild %d: %w", guildID, err)
	}
	return nil
}

// UpdateSettings locks the guild row, applies mutate and writes it back in one transaction
func (r *PostgresBankStore) UpdateSettings(ctx context.Context, guildID int64, mutate func(*entities.BankSettings) error) (entities.BankSettings, error) {
	var settings entities.BankSettings

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		ensure := `
			INSERT INTO bank_settings (guild_id) VALUES ($1)
			ON CONFLICT (guild_id) DO NOTHING
		`
		if _, err := tx.Exec(ctx, ensure, guildID); err != nil {
			return fmt.Errorf("failed to initialize bank settings for guild %d: %w", guildID, err)
		}

		lock := `
			SELECT deposit_enabled, withdraw_enabled
			FROM bank_settings
			WHERE guild_id = $1
			FOR UPDATE
		`
		if err := tx.QueryRow(ctx, lock, guildID).Scan(&settings.DepositEnabled, &settings.WithdrawEnabled); err != nil {
			return fmt.Errorf("failed to lock bank settings for guild %d: %w", guildID, err)
		}

		if err := mutate(&settings); err != nil {
			return err
		}

		return upsertSettings(ctx, tx, guildID, settings)
	})
	if err != nil {
		return entities.BankSettings{}, err
	}
	return settings, nil
}

// EnsureSettings inserts the default row when the guild has none
func (r *PostgresBankStore) EnsureSettings(ctx context.Context, guildID int64) (entities.BankSettings, error) {
	query := `
		INSERT INTO bank_settings (guild_id) VALUES ($1)
		ON CONFLICT (guild_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, query, guildID); err != nil {
		return entities.BankSettings{}, fmt.Errorf("failed to initialize bank settings for guild %d: %w", guildID, err)
	}
	return r.GetSettings(ctx, guildID)
}

// GetHubLocation returns nil when the guild has no hub
func (r *PostgresBankStore) GetHubLocation(ctx context.Context, guildID int64) (*entities.HubLocation, error) {
	query := `
		SELECT channel_id, message_id
		FROM hub_messages
		WHERE guild_id = $1
	`

	var location entities.HubLocation
	err := r.q.QueryRow(ctx, query, guildID).Scan(&location.ChannelID, &location.MessageID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hub location for guild %d: %w", guildID, err)
	}
	return &location, nil
}

// SetHubLocation overwrites the hub pointer for a guild
func (r *PostgresBankStore) SetHubLocation(ctx context.Context, guildID int64, location entities.HubLocation) error {
	query := `
		INSERT INTO hub_messages (guild_id, channel_id, message_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id) DO UPDATE
		SET channel_id = EXCLUDED.channel_id,
		    message_id = EXCLUDED.message_id,
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, guildID, location.ChannelID, location.MessageID); err != nil {
		return fmt.Errorf("failed to save hub location for guild %d: %w", guildID, err)
	}
	return nil
}

// GetBankerRole returns nil when no banker role is set
func (r *PostgresBankStore) GetBankerRole(ctx context.Context, guildID int64) (*int64, error) {
	query := `SELECT role_id FROM banker_roles WHERE guild_id = $1`

	var roleID int64
	err := r.q.QueryRow(ctx, query, guildID).Scan(&roleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get banker role for guild %d: %w", guildID, err)
	}
	return &roleID, nil
}

// SetBankerRole overwrites the banker role for a guild
func (r *PostgresBankStore) SetBankerRole(ctx context.Context, guildID int64, roleID int64) error {
	query := `
		INSERT INTO banker_roles (guild_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id) DO UPDATE
		SET role_id = EXCLUDED.role_id,
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, guildID, roleID); err != nil {
		return fmt.Errorf("failed to save banker role for guild %d: %w", guildID, err)
	}
	return nil
}

// ListGuilds returns a record per known guild ordered by guild id
func (r *PostgresBankStore) ListGuilds(ctx context.Context) ([]*entities.GuildBankRecord, error) {
	query := `
		WITH guilds AS (
			SELECT guild_id FROM bank_settings
			UNION
			SELECT guild_id FROM hub_messages
			UNION
			SELECT guild_id FROM banker_roles
		)
		SELECT
			g.guild_id,
			s.deposit_enabled,
			s.withdraw_enabled,
			h.channel_id,
			h.message_id,
			b.role_id
		FROM guilds g
		LEFT JOIN bank_settings s ON s.guild_id = g.guild_id
		LEFT JOIN hub_messages h ON h.guild_id = g.guild_id
		LEFT JOIN banker_roles b ON b.guild_id = g.guild_id
		ORDER BY g.guild_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list banking guilds: %w", err)
	}
	defer rows.Close()

	var records []*entities.GuildBankRecord
	for rows.Next() {
		var (
			guildID              int64
			depositEnabled       *bool
			withdrawEnabled      *bool
			channelID, messageID *int64
			roleID               *int64
		)
		if err := rows.Scan(&guildID, &depositEnabled, &withdrawEnabled, &channelID, &messageID, &roleID); err != nil {
			return nil, fmt.Errorf("failed to scan banking guild: %w", err)
		}

		record := &entities.GuildBankRecord{GuildID: guildID, BankerRoleID: roleID}
		if depositEnabled != nil && withdrawEnabled != nil {
			record.Settings = &entities.BankSettings{
				DepositEnabled:  *depositEnabled,
				WithdrawEnabled: *withdrawEnabled,
			}
		}
		if channelID != nil && messageID != nil {
			record.Hub = &entities.HubLocation{ChannelID: *channelID, MessageID: *messageID}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate banking guilds: %w", err)
	}

	return records, nil
}
