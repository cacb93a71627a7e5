package validator

import (
	"errors"
	"strings"
	"testing"

	"talentgraph-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validState() models.FormState {
	state := models.DefaultFormState()
	state.ProfileName = "Oracle Dev"
	return state
}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Errors
}

func TestValidStateHasNoErrors(t *testing.T) {
	v := newValidator(t)
	state := validState()
	state.Skills = []models.Skill{
		{SkillName: "Go", SkillCategory: models.SkillTechnical, ProficiencyLevel: 4},
		{SkillName: "Go", SkillCategory: models.SkillSoft, ProficiencyLevel: 2},
	}

	assert.NoError(t, v.Validate(&models.ProfilePayload{FormState: state}))
}

func TestFieldNamesFollowJSON(t *testing.T) {
	v := newValidator(t)
	state := models.DefaultFormState()
	state.YearsOfExperience = -1

	errs := fieldErrors(t, v.Validate(&models.ProfilePayload{FormState: state}))
	assert.Equal(t, "is required", errs["profile_name"])
	assert.Equal(t, "must be at least 0", errs["years_of_experience"])
}

func TestFreeFormValuesFromBackendPass(t *testing.T) {
	v := newValidator(t)
	state := validState()
	state.GithubURL = "github.com/me"
	state.LinkedinURL = "linkedin.com/in/me"
	state.Worktype = "flexible"
	state.YearsOfExperience = 75
	state.ProfileSummary = strings.Repeat("x", 5000)

	assert.NoError(t, v.Validate(&models.ProfilePayload{FormState: state}))
}

func TestTagRules(t *testing.T) {
	v := newValidator(t)

	state := validState()
	state.CoreStrengths = models.EncodeTags([]string{"a", "b", "c", "d", "e", "f"})
	state.JobCategory = `["x","x"]`
	state.PreferredJobTitles = `[" "]`

	errs := fieldErrors(t, v.Validate(&models.ProfilePayload{FormState: state}))
	assert.Contains(t, errs, "core_strengths")
	assert.Contains(t, errs, "job_category")
	assert.Contains(t, errs, "preferred_job_titles")
}

func TestSalaryRangeAndDuplicateSkills(t *testing.T) {
	v := newValidator(t)

	state := validState()
	state.SalaryMin = 150000
	state.SalaryMax = 90000
	state.Skills = []models.Skill{
		{SkillName: "SQL", SkillCategory: models.SkillTechnical, ProficiencyLevel: 3},
		{SkillName: "SQL", SkillCategory: models.SkillTechnical, ProficiencyLevel: 5},
	}

	err := v.Validate(&models.ProfilePayload{FormState: state})
	errs := fieldErrors(t, err)
	assert.Equal(t, "minimum salary is above the maximum", errs["salary_min"])
	assert.Equal(t, "contains the same skill twice", errs["skills"])
	assert.Contains(t, err.Error(), "salary_min: minimum salary is above the maximum")

	state.SalaryMax = 0
	state.Skills = nil
	assert.NoError(t, v.Validate(&models.ProfilePayload{FormState: state}))
}

func TestNestedPaths(t *testing.T) {
	v := newValidator(t)

	state := validState()
	state.Skills = []models.Skill{{SkillName: "Go", SkillCategory: "other", ProficiencyLevel: 7}}
	state.LocationPreferences = []models.Location{{City: "Austin"}}

	errs := fieldErrors(t, v.Validate(&models.ProfilePayload{FormState: state}))
	assert.Contains(t, errs, "skills[0].skill_category")
	assert.Equal(t, "must be at most 5", errs["skills[0].proficiency_level"])
	assert.Equal(t, "is required", errs["location_preferences[0].state"])
}
