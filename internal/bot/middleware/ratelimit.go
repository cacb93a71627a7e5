package middleware

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const MaxRequestsPerMinute = 50

// Counter counts a user's updates in the current one-minute window.
type Counter interface {
	IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error)
}

// RateLimit drops updates above limit per minute. The user is told once per
// window; later updates in the same window are dropped silently. A counter
// failure lets the update through.
func RateLimit(counter Counter, limit int64, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			count, err := counter.IncrementUserRateLimit(ctx, user.ID)
			if err != nil {
				logger.Error("failed to check rate limit",
					zap.Int64("user_id", user.ID),
					zap.Error(err),
				)
				return next(c)
			}

			if count <= limit {
				return next(c)
			}

			if count > limit+1 {
				if c.Callback() != nil {
					return c.Respond()
				}
				return nil
			}

			logger.Warn("rate limit exceeded",
				zap.Int64("user_id", user.ID),
				zap.Int64("limit", limit),
			)

			msg := fmt.Sprintf("⚠️ Too many requests. Please wait a minute.\nLimit: %d requests per minute.", limit)
			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: msg, ShowAlert: true})
			}
			return c.Reply(msg)
		}
	}
}
