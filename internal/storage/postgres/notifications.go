package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

func (s *Store) MarkNotificationSeen(ctx context.Context, userID, notificationID int64) error {
	query := `
		INSERT INTO user_seen_notifications (user_id, notification_id, seen_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (user_id, notification_id) DO NOTHING
	`

	_, err := s.sess.
		InsertBySql(query, userID, notificationID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to mark notification as seen",
			zap.Int64("user_id", userID),
			zap.Int64("notification_id", notificationID),
			zap.Error(err),
		)
		return fmt.Errorf("mark notification as seen: %w", err)
	}

	return nil
}

// GetUnseenNotifications returns the ids from notificationIDs the user has
// not been sent yet.
func (s *Store) GetUnseenNotifications(ctx context.Context, userID int64, notificationIDs []int64) ([]int64, error) {
	if len(notificationIDs) == 0 {
		return []int64{}, nil
	}

	query := `
		SELECT unnest(?::bigint[]) AS id
		EXCEPT
		SELECT notification_id FROM user_seen_notifications WHERE user_id = ?
	`

	var unseen []int64
	_, err := s.sess.
		SelectBySql(query, pq.Array(notificationIDs), userID).
		LoadContext(ctx, &unseen)

	if err != nil {
		s.logger.Error("failed to get unseen notifications",
			zap.Int64("user_id", userID),
			zap.Int("total", len(notificationIDs)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get unseen notifications: %w", err)
	}

	s.logger.Debug("unseen notifications",
		zap.Int64("user_id", userID),
		zap.Int("total", len(notificationIDs)),
		zap.Int("unseen", len(unseen)),
	)

	return unseen, nil
}

func (s *Store) CleanOldSeenNotifications(ctx context.Context, daysOld int) (int64, error) {
	result, err := s.sess.
		DeleteFrom("user_seen_notifications").
		Where("seen_at < NOW() - make_interval(days => ?)", daysOld).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to clean old seen notifications",
			zap.Int("days_old", daysOld),
			zap.Error(err),
		)
		return 0, fmt.Errorf("clean old seen notifications: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	s.logger.Info("old seen notifications cleaned",
		zap.Int("days_old", daysOld),
		zap.Int64("count", rowsAffected),
	)

	return rowsAffected, nil
}
