package widgets

import (
	"fmt"
	"strings"

	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/models"

	tele "gopkg.in/telebot.v3"
)

// ResumeSelector picks one primary resume and any number of attached ones.
// A resume can be both.
type ResumeSelector struct {
	Resumes     []models.Resume
	PrimaryID   *int64
	AttachedIDs []int64
	ProfileURL  string
}

func (s *ResumeSelector) isPrimary(id int64) bool {
	return s.PrimaryID != nil && *s.PrimaryID == id
}

func (s *ResumeSelector) isAttached(id int64) bool {
	for _, a := range s.AttachedIDs {
		if a == id {
			return true
		}
	}
	return false
}

func (s *ResumeSelector) Render() (string, *tele.ReplyMarkup) {
	if len(s.Resumes) == 0 {
		return emptyState("Resumes", s.ProfileURL)
	}

	var sb strings.Builder
	sb.WriteString("*Resumes*\n\n🔘 primary resume, ☑️ attached\n\n")

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row

	for _, r := range s.Resumes {
		sb.WriteString(fmt.Sprintf("• %s _%s_\n",
			utils.EscapeMarkdown(r.Filename),
			utils.EscapeMarkdown(r.UploadedAt.Format("02 Jan 2006")),
		))

		rows = append(rows, menu.Row(
			menu.Data(radio(s.isPrimary(r.ID))+" "+utils.TruncateString(r.Filename, 24), callback(ActionResumePrimary, r.ID)),
			menu.Data(check(s.isAttached(r.ID))+" attach", callback(ActionResumeAttach, r.ID)),
		))
	}

	rows = append(rows,
		menu.Row(menu.Data(radio(s.PrimaryID == nil)+" No primary resume", callback(ActionResumePrimary, 0))),
		menu.Row(menu.Data("✅ Done", ActionBack)),
	)

	menu.Inline(rows...)
	return sb.String(), menu
}
