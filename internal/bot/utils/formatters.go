package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"talentgraph-bot/internal/dashboard"
	"talentgraph-bot/internal/models"
	"talentgraph-bot/internal/preference"
)

func FormatWelcomeMessage(firstName string, signedIn bool) string {
	name := firstName
	if name == "" {
		name = "there"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👋 Hi, *%s*\\!\n\n", EscapeMarkdown(name)))
	sb.WriteString("I am the TalentGraph assistant\\. I keep your job preferences in shape and tell you about new matches\\.\n\n")

	if signedIn {
		sb.WriteString("You are signed in\\. Start with /preferences or open your /dashboard\\.")
	} else {
		sb.WriteString("To begin, copy your access token from the TalentGraph web app and send:\n`/login <token>`")
	}

	return sb.String()
}

func FormatHelpMessage() string {
	return `*📖 Help*

*Commands:*

/start \- start the bot
/login \<token\> \- sign in with your TalentGraph access token
/logout \- sign out
/preferences \- manage your job preferences
/dashboard \- recommendations, invites, matches and applications
/settings \- notification settings
/help \- this message

*Job preferences*

1️⃣ Open /preferences and tap *Add preference*
2️⃣ Fill in the fields, tags, locations and skills
3️⃣ Pick resumes and certifications
4️⃣ Tap *Save*\. *Save as new* stores your edits as a copy

Resumes, certifications and the skill catalog are managed in the web app\.`
}

func FormatLoginRequired() string {
	return "🔒 Please sign in first: `/login <token>`"
}

func FormatSettingsMessage(user *models.User) string {
	var sb strings.Builder

	sb.WriteString("*⚙️ Notification settings*\n\n")

	status := "❌ Off"
	if user.CheckEnabled {
		status = "✅ On"
	}
	sb.WriteString(fmt.Sprintf("*Status:* %s\n", status))
	sb.WriteString(fmt.Sprintf("*Interval:* every %s\n", EscapeMarkdown(FormatInterval(user.NotifyInterval))))

	return sb.String()
}

func FormatInterval(minutes int) string {
	switch {
	case minutes%60 == 0 && minutes >= 120:
		return fmt.Sprintf("%d hours", minutes/60)
	case minutes == 60:
		return "hour"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}

// FormatSalary renders a salary range, "" when neither bound is set.
func FormatSalary(min, max float64, currency, payType string) string {
	var amount string
	switch {
	case min > 0 && max > 0:
		amount = fmt.Sprintf("%s – %s", formatAmount(min), formatAmount(max))
	case min > 0:
		amount = "from " + formatAmount(min)
	case max > 0:
		amount = "up to " + formatAmount(max)
	default:
		return ""
	}

	if currency != "" {
		amount += " " + currency
	}
	if payType != "" {
		amount += " " + models.GetPayTypeDisplayName(payType)
	}
	return amount
}

func formatAmount(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	if len(s) <= 3 {
		return s
	}

	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// FormatProfileList renders the preference list screen. total is the size of
// the unfiltered list.
func FormatProfileList(profiles []models.JobProfile, total int, q preference.ListQuery) string {
	var sb strings.Builder

	sb.WriteString("*📝 Job preferences*\n")

	if !q.IsZero() {
		var parts []string
		if s := strings.TrimSpace(q.Search); s != "" {
			parts = append(parts, fmt.Sprintf("search _%s_", EscapeMarkdown(s)))
		}
		if q.Worktype != "" {
			parts = append(parts, EscapeMarkdown(models.GetWorktypeDisplayName(q.Worktype)))
		}
		sb.WriteString(fmt.Sprintf("Showing %d of %d: %s\n", len(profiles), total, strings.Join(parts, ", ")))
	}
	sb.WriteString("\n")

	if total == 0 {
		sb.WriteString("_You have no job preferences yet\\. Tap Add preference to create one\\._")
		return sb.String()
	}
	if len(profiles) == 0 {
		sb.WriteString("_Nothing matches your search\\._")
		return sb.String()
	}

	for i, p := range profiles {
		sb.WriteString(fmt.Sprintf("*%d\\. %s*\n", i+1, EscapeMarkdown(profileTitle(p))))

		var details []string
		if p.JobRole != "" {
			details = append(details, p.JobRole)
		}
		if p.Worktype != "" {
			details = append(details, models.GetWorktypeDisplayName(p.Worktype))
		}
		if salary := FormatSalary(p.SalaryMin, p.SalaryMax, p.SalaryCurrency, p.PayType); salary != "" {
			details = append(details, salary)
		}
		if len(details) > 0 {
			sb.WriteString("   " + EscapeMarkdown(strings.Join(details, " · ")) + "\n")
		}
		if n := len(p.Skills); n > 0 {
			sb.WriteString(fmt.Sprintf("   🛠 %d skills\n", n))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func profileTitle(p models.JobProfile) string {
	if p.ProfileName != "" {
		return p.ProfileName
	}
	return fmt.Sprintf("Preference #%d", p.ID)
}

func FormatCandidateDashboard(view *dashboard.CandidateView) string {
	var sb strings.Builder

	sb.WriteString("*📊 Dashboard*\n\n")

	sb.WriteString(fmt.Sprintf("*Recommended jobs* \\(%d\\)\n", len(view.Recommendations)))
	if err := view.Errors[dashboard.SectionRecommendations]; err != nil {
		sb.WriteString("_Could not load recommendations_\n")
	}
	for i, rec := range view.Recommendations {
		sb.WriteString(fmt.Sprintf("%d\\. %s\n", i+1, formatJobLine(rec.Job, rec.MatchPercentage)))
	}

	writeCount(&sb, "Invites", len(view.Invites), view.Errors[dashboard.SectionInvites])
	for _, inv := range view.Invites {
		sb.WriteString("• " + EscapeMarkdown(inv.Job.Title+" at "+inv.Job.CompanyName) + "\n")
	}

	writeCount(&sb, "Matches", len(view.Matches), view.Errors[dashboard.SectionMatches])
	for _, m := range view.Matches {
		sb.WriteString("• " + EscapeMarkdown(m.Job.Title+" at "+m.Job.CompanyName) + "\n")
	}

	writeCount(&sb, "Applications", len(view.Applications), view.Errors[dashboard.SectionApplications])
	for _, a := range view.Applications {
		title := fmt.Sprintf("Job #%d", a.JobID)
		if a.Job != nil {
			title = a.Job.Title
		}
		sb.WriteString(fmt.Sprintf("• %s: _%s_\n", EscapeMarkdown(title), EscapeMarkdown(a.Status)))
	}

	return sb.String()
}

func FormatRecruiterDashboard(view *dashboard.RecruiterView) string {
	var sb strings.Builder

	sb.WriteString("*🏢 Recruiter dashboard*\n\n")

	writeCount(&sb, "Job postings", len(view.Postings), view.Errors[dashboard.SectionPostings])
	for _, p := range view.Postings {
		marker := "•"
		if p.ID == view.PostingID {
			marker = "▶️"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, EscapeMarkdown(p.Title)))
	}

	if view.PostingID != 0 {
		writeCount(&sb, "Recommended candidates", len(view.Candidates), view.Errors[dashboard.SectionCandidates])
		for _, c := range view.Candidates {
			line := fmt.Sprintf("%s, %.0f%% match", c.FullName, c.MatchPercentage)
			if c.Headline != "" {
				line += " · " + c.Headline
			}
			sb.WriteString("• " + EscapeMarkdown(line) + "\n")
		}
	}

	writeCount(&sb, "Matches", len(view.Matches), view.Errors[dashboard.SectionMatches])
	for _, m := range view.Matches {
		sb.WriteString("• " + EscapeMarkdown(m.CandidateName+" for "+m.Job.Title) + "\n")
	}

	writeCount(&sb, "Applications", len(view.Applications), view.Errors[dashboard.SectionApplications])
	for _, a := range view.Applications {
		sb.WriteString(fmt.Sprintf("• %s: _%s_\n", EscapeMarkdown(a.CandidateName), EscapeMarkdown(a.Status)))
	}

	return sb.String()
}

func writeCount(sb *strings.Builder, title string, n int, err error) {
	sb.WriteString(fmt.Sprintf("\n*%s* \\(%d\\)\n", EscapeMarkdown(title), n))
	if err != nil {
		sb.WriteString(fmt.Sprintf("_Could not load %s_\n", EscapeMarkdown(strings.ToLower(title))))
	}
}

func formatJobLine(job models.JobPosting, match float64) string {
	line := job.Title
	if job.CompanyName != "" {
		line += " at " + job.CompanyName
	}
	line = EscapeMarkdown(line)
	if match > 0 {
		line += fmt.Sprintf(" *%s*", EscapeMarkdown(fmt.Sprintf("%.0f%%", match)))
	}
	return line
}

// FormatJob renders one recommended job card.
func FormatJob(rec models.Recommendation) string {
	job := rec.Job
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n", EscapeMarkdown(job.Title)))
	if job.CompanyName != "" {
		sb.WriteString(fmt.Sprintf("🏢 %s\n", EscapeMarkdown(job.CompanyName)))
	}
	if rec.MatchPercentage > 0 {
		sb.WriteString(fmt.Sprintf("🎯 *Match:* %s\n", EscapeMarkdown(fmt.Sprintf("%.0f%%", rec.MatchPercentage))))
	}
	if salary := FormatSalary(job.SalaryMin, job.SalaryMax, job.SalaryCurrency, ""); salary != "" {
		sb.WriteString(fmt.Sprintf("💰 %s\n", EscapeMarkdown(salary)))
	}
	if job.Location != "" || job.Worktype != "" {
		var where []string
		if job.Location != "" {
			where = append(where, job.Location)
		}
		if job.Worktype != "" {
			where = append(where, models.GetWorktypeDisplayName(job.Worktype))
		}
		sb.WriteString(fmt.Sprintf("📍 %s\n", EscapeMarkdown(strings.Join(where, " · "))))
	}
	if len(job.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("🛠 %s\n", EscapeMarkdown(strings.Join(job.Skills, ", "))))
	}
	if job.Description != "" {
		sb.WriteString("\n" + EscapeMarkdown(TruncateString(job.Description, 600)) + "\n")
	}

	return sb.String()
}

func FormatNotification(n models.Notification) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🔔 *%s*\n", EscapeMarkdown(n.Title)))
	if n.Message != "" {
		sb.WriteString(EscapeMarkdown(n.Message) + "\n")
	}
	sb.WriteString(fmt.Sprintf("\n_%s_", EscapeMarkdown(n.CreatedAt.Format("02 Jan 2006 15:04"))))

	return sb.String()
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	return replacer.Replace(text)
}

// TruncateString shortens s to maxLen runes.
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}
