package scheduler

import (
	"context"
	"fmt"
	"time"

	"talentgraph-bot/internal/api/talentgraph"
	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	seenRetentionDays = 30
	cleanupEvery      = 24 * time.Hour
)

type Store interface {
	GetUsersToCheck(ctx context.Context) ([]models.User, error)
	GetUnseenNotifications(ctx context.Context, userID int64, notificationIDs []int64) ([]int64, error)
	MarkNotificationSeen(ctx context.Context, userID, notificationID int64) error
	UpdateLastCheck(ctx context.Context, userID int64) error
	ClearAPIToken(ctx context.Context, userID int64) error
	CleanOldSeenNotifications(ctx context.Context, daysOld int) (int64, error)
}

type NotificationSource interface {
	ListNotifications(ctx context.Context, unreadOnly bool) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
}

// Sender is satisfied by *tele.Bot.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// NotificationChecker pushes unseen TalentGraph notifications to the users
// who enabled checks. Each user is polled at their own interval.
type NotificationChecker struct {
	sender   Sender
	store    Store
	api      NotificationSource
	interval time.Duration
	logger   *zap.Logger

	startDelay  time.Duration
	pause       time.Duration
	lastCleanup time.Time
}

func New(sender Sender, store Store, api NotificationSource, interval time.Duration, logger *zap.Logger) *NotificationChecker {
	return &NotificationChecker{
		sender:     sender,
		store:      store,
		api:        api,
		interval:   interval,
		logger:     logger,
		startDelay: 30 * time.Second,
		pause:      500 * time.Millisecond,
	}
}

func (nc *NotificationChecker) Start(ctx context.Context) {
	ticker := time.NewTicker(nc.interval)
	defer ticker.Stop()

	nc.logger.Info("notification checker started",
		zap.Duration("interval", nc.interval),
	)

	select {
	case <-ctx.Done():
		return
	case <-time.After(nc.startDelay):
	}
	nc.checkAllUsers(ctx)

	for {
		select {
		case <-ctx.Done():
			nc.logger.Info("notification checker stopped")
			return
		case <-ticker.C:
			nc.checkAllUsers(ctx)
		}
	}
}

func (nc *NotificationChecker) checkAllUsers(ctx context.Context) {
	nc.logger.Info("starting notification check for all users")

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	nc.cleanup(dbCtx)

	users, err := nc.store.GetUsersToCheck(dbCtx)
	if err != nil {
		nc.logger.Error("failed to get users to check", zap.Error(err))
		return
	}

	if len(users) == 0 {
		nc.logger.Debug("no users to check")
		return
	}

	nc.logger.Info("checking notifications for users", zap.Int("count", len(users)))

	for i := range users {
		user := &users[i]

		if err := nc.checkUser(dbCtx, user); err != nil {
			nc.logger.Error("failed to check notifications for user",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
			continue
		}

		if err := nc.store.UpdateLastCheck(dbCtx, user.ID); err != nil {
			nc.logger.Error("failed to update last check",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}

		if nc.pause > 0 {
			time.Sleep(nc.pause)
		}
	}

	nc.logger.Info("finished notification check for all users")
}

func (nc *NotificationChecker) checkUser(ctx context.Context, user *models.User) error {
	if !user.SignedIn() {
		return nil
	}

	apiCtx := talentgraph.WithToken(ctx, *user.APIToken)
	notifications, err := nc.api.ListNotifications(apiCtx, true)
	if talentgraph.IsUnauthorized(err) {
		nc.logger.Info("token expired, signing user out", zap.Int64("user_id", user.ID))
		if err := nc.store.ClearAPIToken(ctx, user.ID); err != nil {
			return fmt.Errorf("clear expired token: %w", err)
		}
		_, _ = nc.sender.Send(&tele.User{ID: user.ID}, "🔒 Your TalentGraph session has expired. Send /login <token> to keep getting notifications.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}

	if len(notifications) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}

	unseenIDs, err := nc.store.GetUnseenNotifications(ctx, user.ID, ids)
	if err != nil {
		return fmt.Errorf("get unseen notifications: %w", err)
	}

	unseen := make(map[int64]bool, len(unseenIDs))
	for _, id := range unseenIDs {
		unseen[id] = true
	}

	recipient := &tele.User{ID: user.ID}
	sent := 0

	for _, n := range notifications {
		if !unseen[n.ID] {
			continue
		}

		if _, err := nc.sender.Send(recipient, utils.FormatNotification(n), tele.ModeMarkdownV2); err != nil {
			nc.logger.Error("failed to send notification",
				zap.Int64("user_id", user.ID),
				zap.Int64("notification_id", n.ID),
				zap.Error(err),
			)
			continue
		}

		if err := nc.store.MarkNotificationSeen(ctx, user.ID, n.ID); err != nil {
			nc.logger.Error("failed to mark notification as seen",
				zap.Int64("user_id", user.ID),
				zap.Int64("notification_id", n.ID),
				zap.Error(err),
			)
		}
		// The seen table still covers a failed read mark.
		if err := nc.api.MarkNotificationRead(apiCtx, n.ID); err != nil {
			nc.logger.Debug("failed to mark notification read upstream",
				zap.Int64("notification_id", n.ID),
				zap.Error(err),
			)
		}
		sent++
	}

	if sent > 0 {
		nc.logger.Info("sent notifications to user",
			zap.Int64("user_id", user.ID),
			zap.Int("count", sent),
		)
	}

	return nil
}

// cleanup forgets seen notifications older than the retention window, once a day.
func (nc *NotificationChecker) cleanup(ctx context.Context) {
	if time.Since(nc.lastCleanup) < cleanupEvery {
		return
	}

	removed, err := nc.store.CleanOldSeenNotifications(ctx, seenRetentionDays)
	if err != nil {
		nc.logger.Warn("failed to clean seen notifications", zap.Error(err))
		return
	}

	nc.lastCleanup = time.Now()
	nc.logger.Info("cleaned seen notifications", zap.Int64("removed", removed))
}
