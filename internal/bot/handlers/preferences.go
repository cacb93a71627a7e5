package handlers

import (
	"context"
	"errors"
	"fmt"

	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/preference"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /preferences command
func HandlePreferences(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		if err := clearUserState(ctx, c.Sender().ID); err != nil {
			ctx.Logger.Warn("failed to clear user state", zap.Error(err))
		}
		return showList(ctx, c)
	}
}

// showList renders the preference list with the saved search and worktype filter.
func showList(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	apiCtx, cancel := apiContext(c)
	defer cancel()

	snap, err := preference.NewLister(ctx.API).Load(apiCtx)
	if err != nil {
		return ctx.apiFailure(c, "load preferences", err)
	}

	q, err := ctx.Cache.LoadListQuery(context.Background(), userID)
	if err != nil {
		ctx.Logger.Warn("failed to load list query", zap.Int64("user_id", userID), zap.Error(err))
	}

	profiles := preference.Filter(snap.Profiles, q.Search, q.Worktype)

	return show(ctx, c, utils.FormatProfileList(profiles, len(snap.Profiles), q), listKeyboard(profiles, q))
}

func updateListQuery(ctx *Context, c tele.Context, fn func(q *preference.ListQuery)) error {
	userID := c.Sender().ID
	cacheCtx := context.Background()

	q, err := ctx.Cache.LoadListQuery(cacheCtx, userID)
	if err != nil {
		ctx.Logger.Warn("failed to load list query", zap.Int64("user_id", userID), zap.Error(err))
	}

	fn(&q)

	if err := ctx.Cache.SaveListQuery(cacheCtx, userID, q); err != nil {
		ctx.Logger.Error("failed to save list query", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, "😔 Could not apply the filter")
	}

	return showList(ctx, c)
}

func handleWorktypeFilter(ctx *Context, c tele.Context, worktype string) error {
	return updateListQuery(ctx, c, func(q *preference.ListQuery) {
		if worktype == worktypeAll {
			q.Worktype = ""
			return
		}
		q.Worktype = worktype
	})
}

func handleResetFilters(ctx *Context, c tele.Context) error {
	return updateListQuery(ctx, c, func(q *preference.ListQuery) {
		*q = preference.ListQuery{}
	})
}

func startListSearch(ctx *Context, c tele.Context) error {
	if err := setUserState(ctx, c.Sender().ID, StateListSearch, ""); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}

	return c.Send("🔍 Type part of a name, role, vendor or product:", utils.CancelKeyboard())
}

func handleListSearchInput(ctx *Context, c tele.Context) error {
	search := utils.CleanInput(c.Text())

	if err := clearUserState(ctx, c.Sender().ID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}
	if err := c.Send("🔍 Searching…", utils.MainMenuKeyboard()); err != nil {
		return err
	}

	return updateListQuery(ctx, c, func(q *preference.ListQuery) {
		q.Search = search
	})
}

// ==================== Open ====================

// openForm stores f as the user's draft and shows it. The skill catalog of
// the previous draft is dropped with it.
func openForm(ctx *Context, c tele.Context, f *preference.Form) error {
	userID := c.Sender().ID
	cacheCtx := context.Background()

	if err := ctx.Cache.DropForm(cacheCtx, userID); err != nil {
		ctx.Logger.Warn("failed to drop previous draft", zap.Int64("user_id", userID), zap.Error(err))
	}
	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	if err := ctx.Cache.SaveForm(cacheCtx, userID, f, ctx.Config.FormTTL); err != nil {
		ctx.Logger.Error("failed to save form draft", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, "😔 Could not open the form. Please try again.")
	}

	return showForm(ctx, c, f)
}

func handleProfileAdd(ctx *Context, c tele.Context) error {
	f := preference.NewForm()
	f.OpenNew()
	return openForm(ctx, c, f)
}

func handleProfileEdit(ctx *Context, c tele.Context, id int64) error {
	apiCtx, cancel := apiContext(c)
	defer cancel()

	f := preference.NewForm()
	if err := ctx.controller().Open(apiCtx, f, id); err != nil {
		return ctx.apiFailure(c, "open preference", err)
	}
	if f.IsNew() {
		_ = notify(c, "This preference no longer exists, starting a new one")
	}

	return openForm(ctx, c, f)
}

func handleProfileDuplicate(ctx *Context, c tele.Context, id int64) error {
	apiCtx, cancel := apiContext(c)
	defer cancel()

	f := preference.NewForm()
	found, err := ctx.controller().OpenCopy(apiCtx, f, id)
	if err != nil {
		return ctx.apiFailure(c, "load preference", err)
	}
	if !found {
		_ = notify(c, "This preference no longer exists")
		return showList(ctx, c)
	}

	_ = notify(c, "📑 Copy created. Save it to keep it.")
	return openForm(ctx, c, f)
}

// ==================== Delete ====================

func handleProfileDelete(ctx *Context, c tele.Context, id int64) error {
	userID := c.Sender().ID

	apiCtx, cancel := apiContext(c)
	defer cancel()

	profiles, err := ctx.API.ListJobProfiles(apiCtx)
	if err != nil {
		return ctx.apiFailure(c, "list preferences", err)
	}

	target, ok := preference.Find(profiles, id)
	if !ok {
		_ = notify(c, "This preference no longer exists")
		return showList(ctx, c)
	}

	flow := preference.NewDeleteFlow()
	flow.Request(target.ID, profileName(*target))

	if err := ctx.Cache.SaveDeleteFlow(context.Background(), userID, flow); err != nil {
		ctx.Logger.Error("failed to save delete flow", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, "😔 Something went wrong. Please try again.")
	}
	if err := setUserState(ctx, userID, StateConfirmDelete, ""); err != nil {
		ctx.Logger.Warn("failed to set user state", zap.Error(err))
	}

	return show(ctx, c,
		fmt.Sprintf("🗑 Delete *%s*?\n\nThis cannot be undone\\.", utils.EscapeMarkdown(flow.TargetName)),
		deleteConfirmKeyboard(),
	)
}

func handleDeleteConfirm(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID
	cacheCtx := context.Background()

	flow, err := ctx.Cache.LoadDeleteFlow(cacheCtx, userID)
	if err != nil {
		ctx.Logger.Error("failed to load delete flow", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, "😔 Something went wrong. Please try again.")
	}

	apiCtx, cancel := apiContext(c)
	defer cancel()

	id, err := flow.Confirm(apiCtx, ctx.API)

	if saveErr := ctx.Cache.SaveDeleteFlow(cacheCtx, userID, flow); saveErr != nil {
		ctx.Logger.Warn("failed to save delete flow", zap.Int64("user_id", userID), zap.Error(saveErr))
	}
	if stateErr := clearUserState(ctx, userID); stateErr != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(stateErr))
	}

	switch {
	case errors.Is(err, preference.ErrNoPendingDelete):
		_ = notify(c, "Nothing to delete")
	case err != nil:
		return ctx.apiFailure(c, "delete preference", err)
	default:
		ctx.Logger.Info("job preference deleted", zap.Int64("user_id", userID), zap.Int64("profile_id", id))
		_ = notify(c, "🗑 Deleted")
	}

	return showList(ctx, c)
}

func handleDeleteCancel(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	cancelDelete(ctx, userID)
	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	return showList(ctx, c)
}

func cancelDelete(ctx *Context, userID int64) {
	cacheCtx := context.Background()

	flow, err := ctx.Cache.LoadDeleteFlow(cacheCtx, userID)
	if err != nil {
		ctx.Logger.Warn("failed to load delete flow", zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	flow.Cancel()
	if err := ctx.Cache.SaveDeleteFlow(cacheCtx, userID, flow); err != nil {
		ctx.Logger.Warn("failed to save delete flow", zap.Int64("user_id", userID), zap.Error(err))
	}
}
