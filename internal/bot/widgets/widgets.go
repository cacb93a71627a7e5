// Package widgets renders the selection controls of the preference form as
// inline keyboards. Widgets own no server state: they are built from the
// collection and the current selection on every render.
package widgets

import (
	"fmt"
	"strings"

	"talentgraph-bot/internal/bot/utils"

	tele "gopkg.in/telebot.v3"
)

// Callback actions emitted by the widget keyboards.
const (
	ActionSkillAdd    = "sk_add"
	ActionSkillUp     = "sk_up"
	ActionSkillDown   = "sk_down"
	ActionSkillRemove = "sk_rm"
	ActionSkillSearch = "sk_find"
	ActionSkillClear  = "sk_clear"

	ActionResumePrimary = "rs_pri"
	ActionResumeAttach  = "rs_att"

	ActionCertToggle = "ct_tog"

	// ActionBack returns to the form overview.
	ActionBack = "form_show"
)

// MaxCallbackData is the room left for button data once telebot has put its
// \f marker in front of Telegram's 64-byte limit.
const MaxCallbackData = 63

func callback(action string, args ...interface{}) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, action)
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, ":")
}

// emptyState is shown instead of the control when there is nothing to pick
// from. The profile page is the only place the collection can be filled.
func emptyState(what, profileURL string) (string, *tele.ReplyMarkup) {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.URL("🔗 Open profile page", profileURL)),
		menu.Row(menu.Data("◀️ Back", ActionBack)),
	)

	text := fmt.Sprintf("*%s*\n\nYou have none yet\\. Add them on your profile page, then come back here\\.",
		utils.EscapeMarkdown(what))
	return text, menu
}

func check(on bool) string {
	if on {
		return "☑️"
	}
	return "⬜"
}

func radio(on bool) string {
	if on {
		return "🔘"
	}
	return "⚪"
}
