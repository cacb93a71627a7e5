package handlers

import (
	"context"

	"talentgraph-bot/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// What the next text message of a user answers.
const (
	StateIdle          = ""
	StateFieldValue    = "awaiting_field"
	StateTagValue      = "awaiting_tag"
	StateLocation      = "awaiting_location"
	StateSkillSearch   = "awaiting_skill_search"
	StateListSearch    = "awaiting_list_search"
	StateConfirmDelete = "confirm_delete"
	StateInterval      = "awaiting_interval"
)

func setUserState(ctx *Context, userID int64, state, arg string) error {
	return ctx.Cache.SetUserState(context.Background(), userID, state, arg)
}

func getUserState(ctx *Context, userID int64) (string, string, error) {
	return ctx.Cache.GetUserState(context.Background(), userID)
}

func clearUserState(ctx *Context, userID int64) error {
	return ctx.Cache.DeleteUserState(context.Background(), userID)
}

func cancelConversation(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	state, _, _ := getUserState(ctx, userID)
	if state == StateConfirmDelete {
		cancelDelete(ctx, userID)
	}

	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	form, err := loadForm(ctx, userID)
	if err == nil && form.Open {
		if err := c.Send("❌ Cancelled", utils.MainMenuKeyboard()); err != nil {
			return err
		}
		return showForm(ctx, c, form)
	}

	return c.Send("❌ Cancelled", utils.MainMenuKeyboard())
}
