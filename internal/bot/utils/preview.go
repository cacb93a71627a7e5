package utils

import (
	"fmt"
	"strings"

	"talentgraph-bot/internal/models"
)

// PreviewInput is everything the live preview reads.
type PreviewInput struct {
	State             models.FormState
	TechSkills        []models.Skill
	SoftSkills        []models.Skill
	Resumes           []models.Resume
	Certifications    []models.Certification
	SelectedCertIDs   []int64
	PrimaryResumeID   *int64
	AttachedResumeIDs []int64
}

// FormatPreview renders the read-only summary card of a preference being
// edited. Sections without data are left out entirely.
func FormatPreview(in PreviewInput) string {
	s := in.State

	var sections []string

	if title := previewTitle(s); title != "" {
		sections = append(sections, title)
	}

	var basics []string
	addLine(&basics, "🏢 Vendor", s.ProductVendor)
	addLine(&basics, "📦 Product", s.ProductType)
	addLine(&basics, "🎓 Seniority", models.GetSeniorityDisplayName(s.SeniorityLevel))
	if s.YearsOfExperience > 0 || s.RelevantExperience > 0 {
		exp := fmt.Sprintf("%g years", s.YearsOfExperience)
		if s.RelevantExperience > 0 {
			exp += fmt.Sprintf(", %g relevant", s.RelevantExperience)
		}
		addLine(&basics, "💼 Experience", exp)
	}
	addLine(&basics, "🏠 Work type", models.GetWorktypeDisplayName(s.Worktype))
	addLine(&basics, "📋 Employment", models.GetEmploymentTypeDisplayName(s.EmploymentType))
	if salary := FormatSalary(s.SalaryMin, s.SalaryMax, s.SalaryCurrency, s.PayType); salary != "" {
		if s.Negotiability != "" {
			salary += ", " + s.Negotiability
		}
		addLine(&basics, "💰 Salary", salary)
	}
	addSection(&sections, "", basics)

	var tags []string
	addLine(&tags, "Titles", strings.Join(models.DecodeTags(s.PreferredJobTitles), ", "))
	addLine(&tags, "Categories", strings.Join(models.DecodeTags(s.JobCategory), ", "))
	addLine(&tags, "Core strengths", strings.Join(models.DecodeTags(s.CoreStrengths), ", "))
	addSection(&sections, "🏷 Tags", tags)

	var locs []string
	for _, l := range s.LocationPreferences {
		locs = append(locs, "• "+EscapeMarkdown(l.String()))
	}
	addSection(&sections, "📍 Locations", locs)

	addSection(&sections, "🛠 Technical skills", skillLines(in.TechSkills))
	addSection(&sections, "🤝 Soft skills", skillLines(in.SoftSkills))

	var resumes []string
	for _, r := range in.Resumes {
		primary := in.PrimaryResumeID != nil && *in.PrimaryResumeID == r.ID
		attached := containsID(in.AttachedResumeIDs, r.ID)
		switch {
		case primary && attached:
			resumes = append(resumes, "• "+EscapeMarkdown(r.Filename)+" _primary, attached_")
		case primary:
			resumes = append(resumes, "• "+EscapeMarkdown(r.Filename)+" _primary_")
		case attached:
			resumes = append(resumes, "• "+EscapeMarkdown(r.Filename)+" _attached_")
		}
	}
	addSection(&sections, "📄 Resumes", resumes)

	var certs []string
	for _, c := range in.Certifications {
		if containsID(in.SelectedCertIDs, c.ID) {
			certs = append(certs, "• "+EscapeMarkdown(c.Name))
		}
	}
	addSection(&sections, "🏅 Certifications", certs)

	var logistics []string
	addLine(&logistics, "Visa", s.VisaStatus)
	addLine(&logistics, "Clearance", s.SecurityClearance)
	addLine(&logistics, "Education", s.HighestEducation)
	addLine(&logistics, "Notice period", s.NoticePeriod)
	addLine(&logistics, "Available from", s.AvailabilityDate)
	addLine(&logistics, "Start", s.StartDatePreference)
	addLine(&logistics, "Travel", s.TravelWillingness)
	addLine(&logistics, "Shift", s.ShiftPreference)
	addLine(&logistics, "Remote", s.RemoteAcceptance)
	addLine(&logistics, "Relocation", s.RelocationWillingness)
	addSection(&sections, "🧭 Availability", logistics)

	var links []string
	addLine(&links, "LinkedIn", s.LinkedinURL)
	addLine(&links, "GitHub", s.GithubURL)
	addLine(&links, "Portfolio", s.PortfolioURL)
	addLine(&links, "Twitter", s.TwitterURL)
	addLine(&links, "Website", s.WebsiteURL)
	addSection(&sections, "🔗 Links", links)

	if summary := strings.TrimSpace(s.ProfileSummary); summary != "" {
		sections = append(sections, "_"+EscapeMarkdown(TruncateString(summary, 400))+"_")
	}

	if len(sections) == 0 {
		return "*👀 Preview*\n\n_Fill in the form to see your preference here\\._"
	}

	return "*👀 Preview*\n\n" + strings.Join(sections, "\n\n")
}

func previewTitle(s models.FormState) string {
	var parts []string
	if s.ProfileName != "" {
		parts = append(parts, "*"+EscapeMarkdown(s.ProfileName)+"*")
	}
	if s.JobRole != "" {
		parts = append(parts, EscapeMarkdown(s.JobRole))
	}
	return strings.Join(parts, "\n")
}

func addLine(lines *[]string, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	*lines = append(*lines, fmt.Sprintf("%s: %s", EscapeMarkdown(label), EscapeMarkdown(value)))
}

func addSection(sections *[]string, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	body := strings.Join(lines, "\n")
	if title != "" {
		body = "*" + EscapeMarkdown(title) + "*\n" + body
	}
	*sections = append(*sections, body)
}

func skillLines(skills []models.Skill) []string {
	var lines []string
	for _, s := range skills {
		lines = append(lines, fmt.Sprintf("• %s %s", EscapeMarkdown(s.SkillName), strings.Repeat("★", s.ProficiencyLevel)))
	}
	return lines
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
