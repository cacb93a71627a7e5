package utils

import (
	tele "gopkg.in/telebot.v3"
)

// Reply keyboard labels.
const (
	BtnPreferences = "📝 Preferences"
	BtnDashboard   = "📊 Dashboard"
	BtnSettings    = "⚙️ Settings"
	BtnHelp        = "❓ Help"
	BtnCancel      = "❌ Cancel"
	BtnBack        = "◀️ Back"
	BtnClear       = "➖ Clear value"

	BtnEnableNotifications  = "🔔 Enable notifications"
	BtnDisableNotifications = "🔕 Disable notifications"
	BtnChangeInterval       = "⏰ Change interval"
)

// Interval choices of the settings screen, in minutes.
var IntervalChoices = []struct {
	Label   string
	Minutes int
}{
	{"15 minutes", 15},
	{"30 minutes", 30},
	{"1 hour", 60},
	{"2 hours", 120},
	{"6 hours", 360},
	{"12 hours", 720},
}

func ParseIntervalText(text string) int {
	for _, c := range IntervalChoices {
		if c.Label == text {
			return c.Minutes
		}
	}
	return 0
}

func MainMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	menu.Reply(
		menu.Row(menu.Text(BtnPreferences), menu.Text(BtnDashboard)),
		menu.Row(menu.Text(BtnSettings), menu.Text(BtnHelp)),
	)

	return menu
}

func CancelKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(BtnCancel)))
	return menu
}

// FieldInputKeyboard is shown while a field value is awaited. options, when
// given, are offered as buttons.
func FieldInputKeyboard(options []string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	var rows []tele.Row
	for i := 0; i < len(options); i += 2 {
		row := []tele.Btn{menu.Text(options[i])}
		if i+1 < len(options) {
			row = append(row, menu.Text(options[i+1]))
		}
		rows = append(rows, menu.Row(row...))
	}
	rows = append(rows, menu.Row(menu.Text(BtnClear), menu.Text(BtnCancel)))

	menu.Reply(rows...)
	return menu
}

func SettingsKeyboard(checkEnabled bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	toggle := menu.Text(BtnEnableNotifications)
	if checkEnabled {
		toggle = menu.Text(BtnDisableNotifications)
	}

	menu.Reply(
		menu.Row(toggle),
		menu.Row(menu.Text(BtnChangeInterval)),
		menu.Row(menu.Text(BtnBack)),
	)

	return menu
}

func IntervalKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	var rows []tele.Row
	for i := 0; i < len(IntervalChoices); i += 2 {
		rows = append(rows, menu.Row(
			menu.Text(IntervalChoices[i].Label),
			menu.Text(IntervalChoices[i+1].Label),
		))
	}
	rows = append(rows, menu.Row(menu.Text(BtnCancel)))

	menu.Reply(rows...)
	return menu
}

func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}
