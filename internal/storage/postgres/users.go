package postgres

import (
	"context"
	"fmt"

	"talentgraph-bot/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

const userColumns = "id, username, first_name, last_name, api_token, created_at, last_check, check_enabled, notify_interval"

// UpsertUser registers a Telegram user or refreshes its names and returns the
// stored row. The session and notification settings of a known user are kept.
func (s *Store) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, username, first_name, last_name, check_enabled, notify_interval)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name
		RETURNING ` + userColumns

	var stored models.User
	err := s.sess.
		SelectBySql(query, user.ID, user.Username, user.FirstName, user.LastName, user.CheckEnabled, user.NotifyInterval).
		LoadOneContext(ctx, &stored)

	if err != nil {
		s.logger.Error("failed to upsert user",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	s.logger.Debug("user upserted",
		zap.Int64("user_id", stored.ID),
		zap.Stringp("username", stored.Username),
	)

	return &stored, nil
}

// updateUser applies one SET clause and returns the changed row, or nil when
// the user is unknown.
func (s *Store) updateUser(ctx context.Context, userID int64, set string, args ...interface{}) (*models.User, error) {
	query := "UPDATE users SET " + set + " WHERE id = ? RETURNING " + userColumns

	var user models.User
	err := s.sess.
		SelectBySql(query, append(args, userID)...).
		LoadOneContext(ctx, &user)

	if err == dbr.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetAPIToken returns "" when the user is unknown or signed out.
func (s *Store) GetAPIToken(ctx context.Context, userID int64) (string, error) {
	var token dbr.NullString

	err := s.sess.
		Select("api_token").
		From("users").
		Where("id = ?", userID).
		LoadOneContext(ctx, &token)

	if err == dbr.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get api token: %w", err)
	}

	return token.String, nil
}

// SignIn stores the bearer token and turns notification checks on.
func (s *Store) SignIn(ctx context.Context, userID int64, token string) error {
	user, err := s.updateUser(ctx, userID, "api_token = ?, check_enabled = TRUE", token)
	if err != nil {
		s.logger.Error("failed to store api token",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("sign in: %w", err)
	}
	if user == nil {
		return fmt.Errorf("sign in: user %d is not registered", userID)
	}

	s.logger.Info("user signed in", zap.Int64("user_id", userID))
	return nil
}

// ClearAPIToken signs the user out and stops their notification checks.
func (s *Store) ClearAPIToken(ctx context.Context, userID int64) error {
	if _, err := s.updateUser(ctx, userID, "api_token = NULL, check_enabled = FALSE"); err != nil {
		s.logger.Error("failed to clear api token",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("clear api token: %w", err)
	}

	s.logger.Info("user signed out", zap.Int64("user_id", userID))
	return nil
}

func (s *Store) UpdateLastCheck(ctx context.Context, userID int64) error {
	_, err := s.sess.
		Update("users").
		Set("last_check", dbr.Expr("NOW()")).
		Where("id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("update last check: %w", err)
	}

	return nil
}

// SetCheckEnabled switches notification checks and returns the updated user.
func (s *Store) SetCheckEnabled(ctx context.Context, userID int64, enabled bool) (*models.User, error) {
	user, err := s.updateUser(ctx, userID, "check_enabled = ?", enabled)
	if err != nil {
		s.logger.Error("failed to set check enabled",
			zap.Int64("user_id", userID),
			zap.Bool("enabled", enabled),
			zap.Error(err),
		)
		return nil, fmt.Errorf("set check enabled: %w", err)
	}

	return user, nil
}

// SetNotifyInterval changes the check interval in minutes and returns the updated user.
func (s *Store) SetNotifyInterval(ctx context.Context, userID int64, intervalMinutes int) (*models.User, error) {
	user, err := s.updateUser(ctx, userID, "notify_interval = ?", intervalMinutes)
	if err != nil {
		s.logger.Error("failed to set notify interval",
			zap.Int64("user_id", userID),
			zap.Int("interval", intervalMinutes),
			zap.Error(err),
		)
		return nil, fmt.Errorf("set notify interval: %w", err)
	}

	return user, nil
}

// GetUsersToCheck returns signed-in users with checks on whose interval has elapsed.
func (s *Store) GetUsersToCheck(ctx context.Context) ([]models.User, error) {
	var users []models.User

	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE check_enabled
		AND COALESCE(api_token, '') <> ''
		AND (
			last_check IS NULL
			OR last_check + make_interval(mins => notify_interval) <= NOW()
		)
		ORDER BY last_check NULLS FIRST
	`

	if _, err := s.sess.SelectBySql(query).LoadContext(ctx, &users); err != nil {
		s.logger.Error("failed to get users to check", zap.Error(err))
		return nil, fmt.Errorf("get users to check: %w", err)
	}

	s.logger.Debug("users to check", zap.Int("count", len(users)))

	return users, nil
}
