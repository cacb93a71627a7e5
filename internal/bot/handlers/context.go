package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"talentgraph-bot/internal/api/talentgraph"
	"talentgraph-bot/internal/bot/middleware"
	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/config"
	"talentgraph-bot/internal/dashboard"
	"talentgraph-bot/internal/preference"
	"talentgraph-bot/internal/storage/postgres"
	"talentgraph-bot/internal/storage/redis"
	"talentgraph-bot/internal/validator"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	dbTimeout  = 10 * time.Second
	apiTimeout = 30 * time.Second
)

// Context contains deps for all handlers
type Context struct {
	Store     *postgres.Store
	Cache     *redis.Cache
	API       *talentgraph.Client
	Validator *validator.Validator
	Config    *config.Config
	Logger    *zap.Logger

	mu         sync.Mutex
	candidates map[int64]*dashboard.Candidate
	recruiters map[int64]*dashboard.Recruiter
}

// apiContext returns a context carrying the sender's bearer token.
func apiContext(c tele.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	if token, ok := c.Get(middleware.TokenKey).(string); ok {
		ctx = talentgraph.WithToken(ctx, token)
	}
	return ctx, cancel
}

func (ctx *Context) controller() *preference.Controller {
	return preference.NewController(ctx.API, ctx.Validator, ctx.Logger)
}

func (ctx *Context) candidateDashboard(userID int64) *dashboard.Candidate {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if ctx.candidates == nil {
		ctx.candidates = make(map[int64]*dashboard.Candidate)
	}
	d, ok := ctx.candidates[userID]
	if !ok {
		d = dashboard.NewCandidate(ctx.API, ctx.Cache.InFlight(userID), ctx.Logger.With(zap.Int64("user_id", userID)))
		ctx.candidates[userID] = d
	}
	return d
}

func (ctx *Context) recruiterDashboard(userID int64) *dashboard.Recruiter {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if ctx.recruiters == nil {
		ctx.recruiters = make(map[int64]*dashboard.Recruiter)
	}
	d, ok := ctx.recruiters[userID]
	if !ok {
		d = dashboard.NewRecruiter(ctx.API, ctx.Cache.InFlight(userID), ctx.Logger.With(zap.Int64("user_id", userID)))
		ctx.recruiters[userID] = d
	}
	return d
}

// forgetSession drops everything cached for a user who signed out.
func (ctx *Context) forgetSession(userID int64) {
	ctx.mu.Lock()
	delete(ctx.candidates, userID)
	delete(ctx.recruiters, userID)
	ctx.mu.Unlock()

	cacheCtx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	if err := ctx.Cache.DropForm(cacheCtx, userID); err != nil {
		ctx.Logger.Warn("failed to drop form draft", zap.Int64("user_id", userID), zap.Error(err))
	}
	if err := ctx.Cache.DeleteUserState(cacheCtx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// apiFailure reports a failed backend call to the user. An expired token
// signs the user out.
func (ctx *Context) apiFailure(c tele.Context, what string, err error) error {
	userID := c.Sender().ID

	ctx.Logger.Error("api call failed",
		zap.Int64("user_id", userID),
		zap.String("call", what),
		zap.Error(err),
	)

	if talentgraph.IsUnauthorized(err) {
		dbCtx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()

		if err := ctx.Store.ClearAPIToken(dbCtx, userID); err != nil {
			ctx.Logger.Error("failed to clear api token", zap.Int64("user_id", userID), zap.Error(err))
		}
		ctx.forgetSession(userID)

		return notify(c, "🔒 Your session has expired. Please sign in again with /login <token>")
	}

	return notify(c, "😔 "+talentgraph.UserMessage(err))
}

// notify answers a callback with a toast, or sends a plain message otherwise.
func notify(c tele.Context, text string) error {
	if c.Callback() != nil && c.Get(respondedKey) == nil {
		c.Set(respondedKey, true)
		return c.Respond(&tele.CallbackResponse{Text: utils.TruncateString(text, 190), ShowAlert: len(text) > 60})
	}
	return c.Send(text)
}

// show replaces the message a callback came from, or sends a new one.
func show(ctx *Context, c tele.Context, text string, menu *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		err := c.Edit(text, menu, tele.ModeMarkdownV2, tele.NoPreview)
		if err == nil || errors.Is(err, tele.ErrSameMessageContent) {
			return nil
		}
		ctx.Logger.Warn("failed to edit message", zap.Error(err))
	}
	return c.Send(text, menu, tele.ModeMarkdownV2, tele.NoPreview)
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
