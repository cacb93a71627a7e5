package utils

import (
	"errors"
	"testing"

	"talentgraph-bot/internal/dashboard"
	"talentgraph-bot/internal/models"
	"talentgraph-bot/internal/preference"

	"github.com/stretchr/testify/assert"
)

func TestPreviewOfEmptyFormHasNoSections(t *testing.T) {
	out := FormatPreview(PreviewInput{State: models.DefaultFormState()})

	assert.Equal(t, "*👀 Preview*\n\n_Fill in the form to see your preference here\\._", out)
}

func TestPreviewRendersOnlyFilledSections(t *testing.T) {
	state := models.DefaultFormState()
	state.ProfileName = "Oracle Dev"
	state.SalaryMin = 120000
	state.CoreStrengths = `["Tuning"]`
	primary := int64(2)

	out := FormatPreview(PreviewInput{
		State:           state,
		TechSkills:      []models.Skill{{SkillName: "PL/SQL", ProficiencyLevel: 4}},
		Resumes:         []models.Resume{{ID: 1, Filename: "old.pdf"}, {ID: 2, Filename: "cv.pdf"}},
		PrimaryResumeID: &primary,
		Certifications:  []models.Certification{{ID: 9, Name: "OCP"}},
	})

	assert.Contains(t, out, "*Oracle Dev*")
	assert.Contains(t, out, "Salary: from 120,000 USD")
	assert.Contains(t, out, "Core strengths: Tuning")
	assert.NotContains(t, out, "Titles")
	assert.Contains(t, out, "PL/SQL ★★★★")
	assert.NotContains(t, out, "Soft skills")
	assert.Contains(t, out, "cv\\.pdf _primary_")
	assert.NotContains(t, out, "old")
	assert.NotContains(t, out, "Certifications")
	assert.NotContains(t, out, "Locations")
	assert.NotContains(t, out, "Links")
}

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, "", FormatSalary(0, 0, "USD", "annual"))
	assert.Equal(t, "90,000 – 1,200,000 USD per year", FormatSalary(90000, 1200000, "USD", "annual"))
	assert.Equal(t, "up to 80 EUR per hour", FormatSalary(0, 80, "EUR", "hourly"))
}

func TestFormatProfileList(t *testing.T) {
	profiles := []models.JobProfile{
		{ID: 1, ProfileFields: models.ProfileFields{ProfileName: "Oracle Dev", Worktype: models.WorktypeRemote}},
	}

	out := FormatProfileList(profiles, 2, preference.ListQuery{Search: "dev"})
	assert.Contains(t, out, "Showing 1 of 2")
	assert.Contains(t, out, "*1\\. Oracle Dev*")
	assert.Contains(t, out, "Remote")

	assert.Contains(t, FormatProfileList(nil, 0, preference.ListQuery{}), "no job preferences yet")
	assert.Contains(t, FormatProfileList(nil, 3, preference.ListQuery{Worktype: models.WorktypeOnsite}), "Nothing matches")
}

func TestCandidateDashboardShowsSectionErrors(t *testing.T) {
	view := &dashboard.CandidateView{
		Recommendations: []models.Recommendation{{Job: models.JobPosting{Title: "DBA", CompanyName: "Acme"}, MatchPercentage: 91}},
		Errors:          map[string]error{dashboard.SectionInvites: errors.New("down")},
	}

	out := FormatCandidateDashboard(view)
	assert.Contains(t, out, "DBA at Acme *91%*")
	assert.Contains(t, out, "_Could not load invites_")
	assert.NotContains(t, out, "Could not load matches")
}

func TestCleanInput(t *testing.T) {
	assert.Equal(t, "Senior DBA & architect", CleanInput("  <b>Senior</b>   DBA &amp; architect\n"))
	assert.Equal(t, "", CleanInput("<script>alert(1)</script>"))
}

func TestEscapeAndTruncate(t *testing.T) {
	assert.Equal(t, "a\\.b\\-c", EscapeMarkdown("a.b-c"))
	assert.Equal(t, "Прив…", TruncateString("Привет", 5))
	assert.Equal(t, "ok", TruncateString("ok", 5))
}

func TestParseIntervalText(t *testing.T) {
	assert.Equal(t, 120, ParseIntervalText("2 hours"))
	assert.Zero(t, ParseIntervalText("forever"))
}
