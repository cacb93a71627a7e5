package widgets

import (
	"fmt"
	"strings"

	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/models"

	tele "gopkg.in/telebot.v3"
)

type CertificationsSelector struct {
	Certifications []models.Certification
	SelectedIDs    []int64
	ProfileURL     string
}

func (s *CertificationsSelector) selected(id int64) bool {
	for _, sel := range s.SelectedIDs {
		if sel == id {
			return true
		}
	}
	return false
}

func (s *CertificationsSelector) Render() (string, *tele.ReplyMarkup) {
	if len(s.Certifications) == 0 {
		return emptyState("Certifications", s.ProfileURL)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*Certifications* \\(%d selected\\)\n\n", len(s.SelectedIDs)))

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row

	for _, c := range s.Certifications {
		line := utils.EscapeMarkdown(c.Name)
		if c.Issuer != nil && *c.Issuer != "" {
			line += " · " + utils.EscapeMarkdown(*c.Issuer)
		}
		if c.ExpiryDate != nil && *c.ExpiryDate != "" {
			line += " _until " + utils.EscapeMarkdown(*c.ExpiryDate) + "_"
		}
		sb.WriteString("• " + line + "\n")

		rows = append(rows, menu.Row(
			menu.Data(check(s.selected(c.ID))+" "+utils.TruncateString(c.Name, 30), callback(ActionCertToggle, c.ID)),
		))
	}

	rows = append(rows, menu.Row(menu.Data("✅ Done", ActionBack)))

	menu.Inline(rows...)
	return sb.String(), menu
}
