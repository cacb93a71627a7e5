package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const panicMessage = "😔 Something went wrong. Please try again later."

// Recovery turns a handler panic into an apology. A pending callback is
// answered so the button stops spinning.
func Recovery(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				fields := []zap.Field{zap.Any("panic", r), zap.Stack("stack")}
				if c.Sender() != nil {
					fields = append(fields, zap.Int64("user_id", c.Sender().ID))
				}
				if cb := c.Callback(); cb != nil {
					fields = append(fields, zap.String("callback", cb.Data))
				}
				logger.Error("panic recovered", fields...)

				if c.Callback() != nil {
					_ = c.Respond(&tele.CallbackResponse{Text: panicMessage})
				}
				err = c.Send(panicMessage)
			}()

			return next(c)
		}
	}
}
