package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"logoped/internal/models"
)

// GetNotificationSettings returns stored settings for a channel.
// If none exist yet, disabled defaults are returned.
func (db *DB) GetNotificationSettings(ctx context.Context, channel models.NotificationChannel) (*models.NotificationSettings, error) {
	row := db.QueryRowContext(ctx, `
		SELECT channel, enabled, COALESCE(token, ''), COALESCE(chat_id, ''),
		       COALESCE(host, ''), COALESCE(port, 0), COALESCE(username, ''),
		       COALESCE(password, ''), updated_at
		FROM notification_settings
		WHERE channel = ?`, string(channel))

	var s models.NotificationSettings
	err := row.Scan(&s.Channel, &s.Enabled, &s.Token, &s.ChatID,
		&s.Host, &s.Port, &s.Username, &s.Password, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return &models.NotificationSettings{Channel: channel}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification settings: %w", err)
	}
	return &s, nil
}

// UpsertNotificationSettings creates or updates settings for a channel.
func (db *DB) UpsertNotificationSettings(ctx context.Context, s *models.NotificationSettings) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO notification_settings (channel, enabled, token, chat_id, host, port, username, password, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(channel) DO UPDATE SET
			enabled = excluded.enabled,
			token = excluded.token,
			chat_id = excluded.chat_id,
			host = excluded.host,
			port = excluded.port,
			username = excluded.username,
			password = excluded.password,
			updated_at = excluded.updated_at`,
		string(s.Channel), s.Enabled, s.Token, s.ChatID,
		s.Host, s.Port, s.Username, s.Password, time.Now())
	if err != nil {
		return fmt.Errorf("upsert notification settings: %w", err)
	}
	return nil
}
