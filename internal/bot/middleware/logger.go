package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logger logs every update with its sender, kind and handling time.
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			var (
				userID   int64
				username string
			)
			if user := c.Sender(); user != nil {
				userID = user.ID
				username = user.Username
			}

			var updateText, updateType string
			if message := c.Message(); message != nil {
				updateText = message.Text
				updateType = "message"
			}
			if callback := c.Callback(); callback != nil {
				updateText = callback.Data
				updateType = "callback"
			}

			// tokens never reach the log
			if updateType == "message" && isLoginCommand(updateText) {
				updateText = "/login ***"
			}

			err := next(c)

			fields := []zap.Field{
				zap.Int64("user_id", userID),
				zap.String("username", username),
				zap.String("type", updateType),
				zap.String("text", updateText),
				zap.Duration("duration", time.Since(start)),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				logger.Error("handler error", fields...)
			} else {
				logger.Info("request handled", fields...)
			}

			return err
		}
	}
}
