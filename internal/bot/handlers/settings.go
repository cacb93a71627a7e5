package handlers

import (
	"context"

	"talentgraph-bot/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /settings command
func HandleSettings(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		dbCtx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()

		user, err := ensureUser(dbCtx, ctx, c.Sender())
		if err != nil {
			ctx.Logger.Error("failed to get user",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return c.Send("😔 Could not load your settings")
		}

		return c.Send(
			utils.FormatSettingsMessage(user),
			utils.SettingsKeyboard(user.CheckEnabled),
			tele.ModeMarkdownV2,
		)
	}
}

func setNotifications(ctx *Context, c tele.Context, enabled bool) error {
	userID := c.Sender().ID

	dbCtx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	user, err := ctx.Store.SetCheckEnabled(dbCtx, userID, enabled)
	if err != nil || user == nil {
		return c.Send("😔 Could not change notification settings")
	}
	ctx.Logger.Info("notifications switched",
		zap.Int64("user_id", userID),
		zap.Bool("enabled", enabled),
	)

	header := "🔕 Notifications disabled\n\n"
	if enabled {
		header = "✅ Notifications enabled\\!\n\n"
	}

	return c.Send(
		header+utils.FormatSettingsMessage(user),
		utils.SettingsKeyboard(user.CheckEnabled),
		tele.ModeMarkdownV2,
	)
}

func changeInterval(ctx *Context, c tele.Context) error {
	if err := setUserState(ctx, c.Sender().ID, StateInterval, ""); err != nil {
		ctx.Logger.Warn("failed to set user state", zap.Error(err))
	}

	return c.Send("⏰ How often should I check for new notifications?", utils.IntervalKeyboard())
}

func saveInterval(ctx *Context, c tele.Context, intervalMinutes int) error {
	userID := c.Sender().ID

	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	user, err := ctx.Store.SetNotifyInterval(dbCtx, userID, intervalMinutes)
	if err != nil || user == nil {
		return c.Send("😔 Could not save the interval")
	}

	return c.Send(
		"✅ Interval updated\n\n"+utils.FormatSettingsMessage(user),
		utils.SettingsKeyboard(user.CheckEnabled),
		tele.ModeMarkdownV2,
	)
}
