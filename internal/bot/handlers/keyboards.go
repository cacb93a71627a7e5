package handlers

import (
	"fmt"
	"strings"

	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/bot/widgets"
	"talentgraph-bot/internal/dashboard"
	"talentgraph-bot/internal/models"
	"talentgraph-bot/internal/preference"

	tele "gopkg.in/telebot.v3"
)

const (
	fieldsPerPage    = 10
	maxDashboardRows = 5
	worktypeAll      = "all"
)

func data(action string, args ...interface{}) string {
	parts := []string{action}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, ":")
}

func listKeyboard(profiles []models.JobProfile, q preference.ListQuery) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row

	for i, p := range profiles {
		rows = append(rows, menu.Row(
			menu.Data(fmt.Sprintf("✏️ %d. %s", i+1, utils.TruncateString(profileName(p), 24)), data(actionProfileEdit, p.ID)),
			menu.Data("📑", data(actionProfileDuplicate, p.ID)),
			menu.Data("🗑", data(actionProfileDelete, p.ID)),
		))
	}

	worktypes := []tele.Btn{menu.Data(mark(q.Worktype == "")+"All", data(actionProfileWorktype, worktypeAll))}
	for _, w := range models.WorktypeOptions() {
		worktypes = append(worktypes, menu.Data(mark(q.Worktype == w)+models.GetWorktypeDisplayName(w), data(actionProfileWorktype, w)))
	}
	rows = append(rows, menu.Row(worktypes...))

	searchRow := []tele.Btn{menu.Data("🔍 Search", actionProfileSearch)}
	if !q.IsZero() {
		searchRow = append(searchRow, menu.Data("✖️ Reset filters", actionProfileReset))
	}
	rows = append(rows, menu.Row(searchRow...))
	rows = append(rows, menu.Row(menu.Data("➕ Add preference", actionProfileAdd)))

	menu.Inline(rows...)
	return menu
}

func profileName(p models.JobProfile) string {
	if p.ProfileName != "" {
		return p.ProfileName
	}
	return fmt.Sprintf("Preference #%d", p.ID)
}

func mark(on bool) string {
	if on {
		return "• "
	}
	return ""
}

func deleteConfirmKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("🗑 Delete", actionDeleteConfirm),
		menu.Data("Cancel", actionDeleteCancel),
	))
	return menu
}

// formText is the overview of the draft.
func formText(f *preference.Form) string {
	var sb strings.Builder

	if f.IsNew() {
		sb.WriteString("*📝 New job preference*\n\n")
	} else {
		sb.WriteString("*✏️ Editing job preference*\n\n")
	}

	name := f.State.ProfileName
	if name == "" {
		name = "not set"
	}
	sb.WriteString(fmt.Sprintf("Name: %s\n", utils.EscapeMarkdown(name)))
	if f.State.JobRole != "" {
		sb.WriteString(fmt.Sprintf("Role: %s\n", utils.EscapeMarkdown(f.State.JobRole)))
	}

	sb.WriteString(fmt.Sprintf("Skills: %d technical, %d soft\n",
		len(f.SkillsOf(models.SkillTechnical)), len(f.SkillsOf(models.SkillSoft))))
	sb.WriteString(fmt.Sprintf("Locations: %d/%d\n", len(f.State.LocationPreferences), models.MaxLocations))
	sb.WriteString(fmt.Sprintf("Resumes attached: %d, certifications: %d\n",
		len(f.State.AttachedResumeIDs), len(f.State.CertificationIDs)))

	sb.WriteString("\n_Pick a section to edit\\. Nothing is saved until you tap Save\\._")
	return sb.String()
}

func formKeyboard(f *preference.Form) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	tagBtn := func(label string, field preference.TagField) tele.Btn {
		return menu.Data(fmt.Sprintf("%s (%d)", label, len(f.Tags(field))), data(actionFormTags, field))
	}

	rows := []tele.Row{
		menu.Row(menu.Data("✏️ Fields", data(actionFormFields, 0))),
		menu.Row(
			tagBtn("🏷 Titles", preference.TagPreferredJobTitles),
			tagBtn("🗂 Categories", preference.TagJobCategory),
		),
		menu.Row(
			tagBtn("💪 Strengths", preference.TagCoreStrengths),
			menu.Data(fmt.Sprintf("📍 Locations (%d)", len(f.State.LocationPreferences)), actionFormLocations),
		),
		menu.Row(
			menu.Data(fmt.Sprintf("🛠 Technical (%d)", len(f.SkillsOf(models.SkillTechnical))), data(actionFormSkills, models.SkillTechnical)),
			menu.Data(fmt.Sprintf("🤝 Soft (%d)", len(f.SkillsOf(models.SkillSoft))), data(actionFormSkills, models.SkillSoft)),
		),
		menu.Row(
			menu.Data("📄 Resumes", actionFormResumes),
			menu.Data(fmt.Sprintf("🏅 Certifications (%d)", len(f.State.CertificationIDs)), actionFormCerts),
		),
		menu.Row(menu.Data("👀 Preview", actionFormPreview)),
	}

	save := []tele.Btn{menu.Data("💾 Save", actionFormSave)}
	if !f.IsNew() {
		save = append(save, menu.Data("📑 Save as new", actionFormSaveNew))
	}
	rows = append(rows, menu.Row(save...))
	rows = append(rows, menu.Row(menu.Data("❌ Close without saving", actionFormClose)))

	menu.Inline(rows...)
	return menu
}

// fieldsKeyboard lists one page of scalar fields, two per row.
func fieldsKeyboard(f *preference.Form, page int) *tele.ReplyMarkup {
	all := preference.Fields()
	pages := (len(all) + fieldsPerPage - 1) / fieldsPerPage
	if page < 0 || page >= pages {
		page = 0
	}

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row

	chunk := all[page*fieldsPerPage:]
	if len(chunk) > fieldsPerPage {
		chunk = chunk[:fieldsPerPage]
	}
	for i := 0; i < len(chunk); i += 2 {
		row := []tele.Btn{fieldButton(menu, f, chunk[i])}
		if i+1 < len(chunk) {
			row = append(row, fieldButton(menu, f, chunk[i+1]))
		}
		rows = append(rows, menu.Row(row...))
	}

	var nav []tele.Btn
	if page > 0 {
		nav = append(nav, menu.Data("⬅️", data(actionFormFields, page-1)))
	}
	nav = append(nav, menu.Data(fmt.Sprintf("%d/%d", page+1, pages), data(actionFormFields, page)))
	if page < pages-1 {
		nav = append(nav, menu.Data("➡️", data(actionFormFields, page+1)))
	}
	rows = append(rows, menu.Row(nav...))
	rows = append(rows, menu.Row(menu.Data("◀️ Back", widgets.ActionBack)))

	menu.Inline(rows...)
	return menu
}

func fieldButton(menu *tele.ReplyMarkup, f *preference.Form, fd preference.Field) tele.Btn {
	label := fd.Label
	if f.FieldValue(fd.Key) != "" {
		label = "✅ " + label
	}
	return menu.Data(label, data(actionFormField, fd.Key))
}

func tagLabel(field preference.TagField) string {
	switch field {
	case preference.TagPreferredJobTitles:
		return "Preferred job titles"
	case preference.TagJobCategory:
		return "Job categories"
	case preference.TagCoreStrengths:
		return "Core strengths"
	default:
		return string(field)
	}
}

func tagsText(f *preference.Form, field preference.TagField) string {
	tags := f.Tags(field)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* \\(%d/%d\\)\n\n", utils.EscapeMarkdown(tagLabel(field)), len(tags), preference.TagLimit(field)))
	if len(tags) == 0 {
		sb.WriteString("_None yet_")
	}
	for _, t := range tags {
		sb.WriteString("• " + utils.EscapeMarkdown(t) + "\n")
	}
	return sb.String()
}

func tagsKeyboard(f *preference.Form, field preference.TagField) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row

	tags := f.Tags(field)
	for i, t := range tags {
		rows = append(rows, menu.Row(menu.Data("✖️ "+utils.TruncateString(t, 30), data(actionTagRemove, field, i))))
	}
	if len(tags) < preference.TagLimit(field) {
		rows = append(rows, menu.Row(menu.Data("➕ Add", data(actionTagAdd, field))))
	}
	rows = append(rows, menu.Row(menu.Data("◀️ Back", widgets.ActionBack)))

	menu.Inline(rows...)
	return menu
}

func locationsText(f *preference.Form) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*Preferred locations* \\(%d/%d\\)\n\n", len(f.State.LocationPreferences), models.MaxLocations))
	if len(f.State.LocationPreferences) == 0 {
		sb.WriteString("_None yet_")
	}
	for _, l := range f.State.LocationPreferences {
		sb.WriteString("• " + utils.EscapeMarkdown(l.String()) + "\n")
	}
	return sb.String()
}

func locationsKeyboard(f *preference.Form) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row

	for i, l := range f.State.LocationPreferences {
		rows = append(rows, menu.Row(menu.Data("✖️ "+utils.TruncateString(l.String(), 30), data(actionLocationRemove, i))))
	}
	if len(f.State.LocationPreferences) < models.MaxLocations {
		rows = append(rows, menu.Row(menu.Data("➕ Add", actionLocationAdd)))
	}
	rows = append(rows, menu.Row(menu.Data("◀️ Back", widgets.ActionBack)))

	menu.Inline(rows...)
	return menu
}

// parseLocation reads "City, State" with an optional ", Country".
func parseLocation(text string) (models.Location, bool) {
	parts := strings.Split(text, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return models.Location{}, false
	}

	loc := models.Location{
		City:  strings.TrimSpace(parts[0]),
		State: strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		loc.Country = strings.TrimSpace(parts[2])
	}
	if loc.City == "" || loc.State == "" {
		return models.Location{}, false
	}
	return loc, true
}

func backToFormKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data("◀️ Back", widgets.ActionBack)))
	return menu
}

func candidateKeyboard(view *dashboard.CandidateView) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row

	for i, rec := range view.Recommendations {
		if i == maxDashboardRows {
			break
		}
		rows = append(rows, menu.Row(menu.Data(
			fmt.Sprintf("🔎 %d. %s", i+1, utils.TruncateString(rec.Job.Title, 30)),
			data(actionJobShow, rec.Job.ID),
		)))
	}

	rows = append(rows, menu.Row(
		menu.Data("🔄 Refresh", actionDashboardRefresh),
		menu.Data("🏢 Recruiter view", data(actionRecruiterOpen, 0)),
	))

	menu.Inline(rows...)
	return menu
}

func jobKeyboard(jobID int64) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(
			menu.Data("👍 Like", data(actionJobLike, jobID)),
			menu.Data("👎 Pass", data(actionJobPass, jobID)),
		),
		menu.Row(menu.Data("📨 Apply", data(actionJobApply, jobID))),
		menu.Row(menu.Data("◀️ Back", actionDashboardShow)),
	)
	return menu
}

// Statuses a recruiter can move an application to.
var applicationActions = []struct {
	Status string
	Label  string
}{
	{models.ApplicationShortlisted, "⭐ Shortlist"},
	{models.ApplicationInterview, "🗓 Interview"},
	{models.ApplicationHired, "🎉 Hire"},
	{models.ApplicationRejected, "✖️ Reject"},
}

func recruiterKeyboard(view *dashboard.RecruiterView) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row

	for _, p := range view.Postings {
		rows = append(rows, menu.Row(menu.Data(
			mark(p.ID == view.PostingID)+utils.TruncateString(p.Title, 40),
			data(actionRecruiterOpen, p.ID),
		)))
	}

	for i, cand := range view.Candidates {
		if i == maxDashboardRows {
			break
		}
		rows = append(rows, menu.Row(
			menu.Data("👍 "+utils.TruncateString(cand.FullName, 24), data(actionCandidateLike, view.PostingID, cand.CandidateID)),
			menu.Data("👎", data(actionCandidatePass, view.PostingID, cand.CandidateID)),
		))
	}

	for i, app := range view.Applications {
		if i == maxDashboardRows {
			break
		}
		rows = append(rows, menu.Row(menu.Data(
			fmt.Sprintf("📋 %s: %s", utils.TruncateString(app.CandidateName, 24), app.Status),
			data(actionApplicationShow, app.ID),
		)))
	}

	rows = append(rows, menu.Row(menu.Data("◀️ Candidate view", actionDashboardShow)))

	menu.Inline(rows...)
	return menu
}

func applicationKeyboard(appID int64) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	var row []tele.Btn
	for _, a := range applicationActions {
		row = append(row, menu.Data(a.Label, data(actionApplicationStatus, appID, a.Status)))
	}

	menu.Inline(
		menu.Row(row[:2]...),
		menu.Row(row[2:]...),
		menu.Row(menu.Data("◀️ Back", data(actionRecruiterShow))),
	)
	return menu
}
