package handlers

import (
	"context"
	"fmt"
	"strings"

	"talentgraph-bot/internal/api/talentgraph"
	"talentgraph-bot/internal/bot/middleware"
	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// minutes between notification checks for new users
const defaultNotifyInterval = 60

// /start command
func HandleStart(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		ctx.Logger.Info("user started bot",
			zap.Int64("user_id", userID),
			zap.String("username", c.Sender().Username),
		)

		dbCtx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()

		if _, err := ensureUser(dbCtx, ctx, c.Sender()); err != nil {
			ctx.Logger.Error("failed to register user", zap.Int64("user_id", userID), zap.Error(err))
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		_, signedIn := c.Get(middleware.TokenKey).(string)

		return c.Send(
			utils.FormatWelcomeMessage(c.Sender().FirstName, signedIn),
			utils.MainMenuKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}

// ensureUser creates the user row or refreshes its Telegram names.
func ensureUser(dbCtx context.Context, ctx *Context, sender *tele.User) (*models.User, error) {
	return ctx.Store.UpsertUser(dbCtx, &models.User{
		ID:             sender.ID,
		Username:       stringPtr(sender.Username),
		FirstName:      stringPtr(sender.FirstName),
		LastName:       stringPtr(sender.LastName),
		CheckEnabled:   false, // enabled on sign in
		NotifyInterval: defaultNotifyInterval,
	})
}

// /login <token>
func HandleLogin(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		token := strings.TrimSpace(c.Message().Payload)

		// the token should not stay in the chat history
		if err := c.Delete(); err != nil {
			ctx.Logger.Debug("failed to delete login message", zap.Error(err))
		}

		if token == "" {
			return c.Send(utils.FormatLoginRequired(), tele.ModeMarkdownV2)
		}

		apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		profile, err := ctx.API.GetCandidateProfile(talentgraph.WithToken(apiCtx, token))
		if err != nil {
			ctx.Logger.Warn("token rejected", zap.Int64("user_id", userID), zap.Error(err))
			if talentgraph.IsUnauthorized(err) {
				return c.Send("🔒 This token was not accepted. Copy a fresh one from the web app and try again.")
			}
			return c.Send("😔 " + talentgraph.UserMessage(err))
		}

		dbCtx, cancelDB := context.WithTimeout(context.Background(), dbTimeout)
		defer cancelDB()

		if _, err := ensureUser(dbCtx, ctx, c.Sender()); err != nil {
			ctx.Logger.Error("failed to register user", zap.Int64("user_id", userID), zap.Error(err))
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if err := ctx.Store.SignIn(dbCtx, userID, token); err != nil {
			return c.Send("😔 Could not save your session. Please try again later.")
		}

		name := profile.FullName
		if name == "" {
			name = profile.Email
		}

		return c.Send(
			fmt.Sprintf("✅ Signed in as *%s*\\.\n\nOpen /preferences or your /dashboard\\.", utils.EscapeMarkdown(name)),
			utils.MainMenuKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}

// /logout
func HandleLogout(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		dbCtx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()

		if err := ctx.Store.ClearAPIToken(dbCtx, userID); err != nil {
			return c.Send("😔 Could not sign you out. Please try again later.")
		}
		ctx.forgetSession(userID)

		return c.Send("👋 Signed out. Send /login <token> to sign in again.", utils.RemoveKeyboard())
	}
}
