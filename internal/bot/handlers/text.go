package handlers

import (
	"strings"

	"talentgraph-bot/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// HandleText processes all text messages
func HandleText(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		text := strings.TrimSpace(c.Text())
		userID := c.Sender().ID

		if text == utils.BtnCancel {
			return cancelConversation(ctx, c)
		}

		state, arg, err := getUserState(ctx, userID)
		if err != nil {
			ctx.Logger.Warn("failed to get user state", zap.Error(err))
			state = StateIdle
		}

		if state != StateIdle {
			return handleStateInput(ctx, c, state, arg)
		}

		switch text {
		case utils.BtnPreferences:
			return HandlePreferences(ctx)(c)
		case utils.BtnDashboard:
			return HandleDashboard(ctx)(c)
		case utils.BtnSettings:
			return HandleSettings(ctx)(c)
		case utils.BtnHelp:
			return HandleHelp(ctx)(c)
		case utils.BtnBack:
			return c.Send("Main menu", utils.MainMenuKeyboard())

		case utils.BtnEnableNotifications:
			return setNotifications(ctx, c, true)
		case utils.BtnDisableNotifications:
			return setNotifications(ctx, c, false)
		case utils.BtnChangeInterval:
			return changeInterval(ctx, c)

		default:
			return c.Reply("Use the menu buttons or commands")
		}
	}
}

func handleStateInput(ctx *Context, c tele.Context, state, arg string) error {
	switch state {
	case StateFieldValue:
		return handleFieldInput(ctx, c, arg)
	case StateTagValue:
		return handleTagInput(ctx, c, arg)
	case StateLocation:
		return handleLocationInput(ctx, c)
	case StateSkillSearch:
		return handleSkillSearchInput(ctx, c, arg)
	case StateListSearch:
		return handleListSearchInput(ctx, c)
	case StateConfirmDelete:
		return c.Send("Please confirm or cancel the deletion with the buttons above.")
	case StateInterval:
		if minutes := utils.ParseIntervalText(strings.TrimSpace(c.Text())); minutes > 0 {
			return saveInterval(ctx, c, minutes)
		}
		return c.Send("Please pick one of the options", utils.IntervalKeyboard())
	default:
		ctx.Logger.Warn("unknown user state", zap.String("state", state))
		if err := clearUserState(ctx, c.Sender().ID); err != nil {
			ctx.Logger.Warn("failed to clear state", zap.Error(err))
		}
		return c.Send("Use the menu buttons or commands", utils.MainMenuKeyboard())
	}
}
