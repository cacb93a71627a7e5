package middleware

import (
	"context"
	"strings"
	"time"

	"talentgraph-bot/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// TokenKey is where Auth puts the user's TalentGraph token in tele.Context.
const TokenKey = "api_token"

type TokenStore interface {
	GetAPIToken(ctx context.Context, userID int64) (string, error)
}

// Auth loads the stored bearer token of the sender. Updates from users who
// are not signed in only reach the public commands.
func Auth(store TokenStore, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			token, err := store.GetAPIToken(ctx, user.ID)
			if err != nil {
				logger.Error("failed to load api token",
					zap.Int64("user_id", user.ID),
					zap.Error(err),
				)
				return c.Send("😔 Something went wrong. Please try again later.")
			}

			if token != "" {
				c.Set(TokenKey, token)
				return next(c)
			}

			if c.Callback() == nil && IsPublic(c.Text()) {
				return next(c)
			}

			logger.Debug("signed-out user blocked", zap.Int64("user_id", user.ID))

			if c.Callback() != nil {
				_ = c.Respond(&tele.CallbackResponse{Text: "🔒 Please sign in first"})
			}
			return c.Send(utils.FormatLoginRequired(), tele.ModeMarkdownV2)
		}
	}
}

// IsPublic reports whether a message is allowed without a stored token.
func IsPublic(text string) bool {
	text = strings.TrimSpace(text)
	if text == utils.BtnHelp {
		return true
	}

	switch command(text) {
	case "/start", "/login", "/help":
		return true
	}
	return false
}

func isLoginCommand(text string) bool {
	return command(strings.TrimSpace(text)) == "/login"
}

// command returns the leading /command of text without a @botname suffix.
func command(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return strings.ToLower(cmd)
}
