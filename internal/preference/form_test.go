package preference

import (
	"encoding/json"
	"testing"

	"talentgraph-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTagRoundTrip(t *testing.T) {
	f := NewForm()
	f.OpenNew()

	want := []string{"DBA", "Developer", "Architect", "dba", "Team Lead"}
	for _, tag := range want {
		require.True(t, f.AddTag(TagPreferredJobTitles, tag, models.MaxTags))
	}
	assert.Equal(t, want, f.Tags(TagPreferredJobTitles))

	before := f.State.PreferredJobTitles
	assert.False(t, f.AddTag(TagPreferredJobTitles, "DBA", models.MaxTags))
	assert.False(t, f.AddTag(TagPreferredJobTitles, "   ", models.MaxTags))
	assert.Equal(t, before, f.State.PreferredJobTitles)
}

func TestAddTagCap(t *testing.T) {
	f := NewForm()

	for i := 0; i < models.MaxCoreStrengths; i++ {
		require.True(t, f.AddTag(TagCoreStrengths, string(rune('a'+i)), TagLimit(TagCoreStrengths)))
	}

	before := f.State.CoreStrengths
	assert.False(t, f.AddTag(TagCoreStrengths, "z", TagLimit(TagCoreStrengths)))
	assert.Equal(t, before, f.State.CoreStrengths)
	assert.Len(t, f.Tags(TagCoreStrengths), 5)
}

func TestAddTagTreatsCorruptStateAsEmpty(t *testing.T) {
	f := NewForm()
	f.State.JobCategory = "not json"

	assert.Empty(t, f.Tags(TagJobCategory))
	require.True(t, f.AddTag(TagJobCategory, "Databases", models.MaxTags))
	assert.Equal(t, `["Databases"]`, f.State.JobCategory)
}

func TestRemoveTag(t *testing.T) {
	f := NewForm()
	f.AddTag(TagJobCategory, "a", models.MaxTags)
	f.AddTag(TagJobCategory, "b", models.MaxTags)
	f.AddTag(TagJobCategory, "c", models.MaxTags)

	assert.False(t, f.RemoveTag(TagJobCategory, 3))
	assert.False(t, f.RemoveTag(TagJobCategory, -1))
	assert.True(t, f.RemoveTag(TagJobCategory, 1))
	assert.Equal(t, []string{"a", "c"}, f.Tags(TagJobCategory))
}

func TestLocationCap(t *testing.T) {
	f := NewForm()

	assert.False(t, f.AddLocation(models.Location{City: "Austin"}))
	assert.False(t, f.AddLocation(models.Location{City: " ", State: "TX"}))

	for i := 0; i < models.MaxLocations; i++ {
		require.True(t, f.AddLocation(models.Location{City: "City", State: "ST"}))
	}
	assert.False(t, f.AddLocation(models.Location{City: "Denver", State: "CO"}))
	assert.Len(t, f.State.LocationPreferences, models.MaxLocations)

	require.True(t, f.RemoveLocation(0))
	assert.Len(t, f.State.LocationPreferences, models.MaxLocations-1)
}

func TestSetSkillsKeepsOtherCategory(t *testing.T) {
	f := NewForm()
	f.State.Skills = []models.Skill{
		{SkillName: "Go", SkillCategory: models.SkillTechnical, ProficiencyLevel: 4},
		{SkillName: "Leadership", SkillCategory: models.SkillSoft, ProficiencyLevel: 3},
		{SkillName: "SQL", SkillCategory: models.SkillTechnical, ProficiencyLevel: 5},
		{SkillName: "Mentoring", SkillCategory: models.SkillSoft, ProficiencyLevel: 2},
	}
	soft := f.SkillsOf(models.SkillSoft)

	f.SetSkills(models.SkillTechnical, []models.Skill{
		{SkillName: "Oracle", ProficiencyLevel: 3},
	})

	assert.Equal(t, soft, f.SkillsOf(models.SkillSoft))
	assert.Equal(t, []models.Skill{
		{SkillName: "Oracle", SkillCategory: models.SkillTechnical, ProficiencyLevel: 3},
	}, f.SkillsOf(models.SkillTechnical))

	f.SetSkills(models.SkillTechnical, nil)
	assert.Empty(t, f.SkillsOf(models.SkillTechnical))
	assert.Equal(t, soft, f.SkillsOf(models.SkillSoft))
}

func TestPrimaryAndAttachedAreIndependent(t *testing.T) {
	f := NewForm()
	one, two := int64(1), int64(2)

	f.ToggleAttachedResume(one)
	f.SetPrimaryResume(&one)
	assert.Equal(t, []int64{1}, f.State.AttachedResumeIDs)
	assert.True(t, f.IsAttached(one))

	f.SetPrimaryResume(&two)
	assert.Equal(t, []int64{1}, f.State.AttachedResumeIDs)
	require.NotNil(t, f.State.PrimaryResumeID)
	assert.Equal(t, two, *f.State.PrimaryResumeID)

	f.ToggleAttachedResume(two)
	f.ToggleAttachedResume(one)
	assert.Equal(t, []int64{2}, f.State.AttachedResumeIDs)
	assert.Equal(t, two, *f.State.PrimaryResumeID)
}

func TestPayloadAliasesResumeID(t *testing.T) {
	f := NewForm()

	payload := f.Payload()
	assert.Nil(t, payload.ResumeID)
	assert.Nil(t, payload.PrimaryResumeID)

	id := int64(8)
	f.SetPrimaryResume(&id)
	payload = f.Payload()
	require.NotNil(t, payload.ResumeID)
	assert.Equal(t, *payload.PrimaryResumeID, *payload.ResumeID)

	// the payload is a copy
	f.ToggleCertification(3)
	assert.Empty(t, payload.CertificationIDs)
}

func TestStartEditNormalisesBackendShapes(t *testing.T) {
	raw := `{
		"id": 15,
		"profile_name": "SAP Lead",
		"salary_currency": "",
		"preferred_job_titles": "[\"Lead\"]",
		"core_strengths": ["Delivery"],
		"certification_ids": "[2,2,5]",
		"attached_resume_ids": [7],
		"resume_id": 7,
		"location_preferences": [{"city": "Berlin", "state": "BE"}, {"city": "", "state": "X"}],
		"skills": [
			{"skill_name": "ABAP", "skill_category": "Technical", "proficiency_level": 9},
			{"skill_name": "ABAP", "skill_category": "technical", "proficiency_level": 2},
			{"skill_name": "", "skill_category": "soft"},
			{"skill_name": "Negotiation", "skill_category": "soft"}
		]
	}`
	var p models.JobProfile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	f := NewForm()
	f.StartEdit(&p)

	require.NotNil(t, f.EditingID)
	assert.Equal(t, int64(15), *f.EditingID)
	assert.True(t, f.Open)
	assert.Equal(t, models.DefaultCurrency, f.State.SalaryCurrency)
	assert.Equal(t, []string{"Lead"}, f.Tags(TagPreferredJobTitles))
	assert.Equal(t, []string{"Delivery"}, f.Tags(TagCoreStrengths))
	assert.Equal(t, []string{}, f.Tags(TagJobCategory))
	assert.Equal(t, []int64{2, 5}, f.State.CertificationIDs)
	assert.Equal(t, []int64{7}, f.State.AttachedResumeIDs)
	require.NotNil(t, f.State.PrimaryResumeID)
	assert.Equal(t, int64(7), *f.State.PrimaryResumeID)
	assert.Len(t, f.State.LocationPreferences, 1)
	assert.Equal(t, []models.Skill{
		{SkillName: "ABAP", SkillCategory: models.SkillTechnical, ProficiencyLevel: 5},
		{SkillName: "Negotiation", SkillCategory: models.SkillSoft, ProficiencyLevel: models.DefaultProficiency},
	}, f.State.Skills)
}

func TestDuplicateClearsIdentity(t *testing.T) {
	p := &models.JobProfile{ID: 3, ProfileFields: models.ProfileFields{ProfileName: "Oracle Dev"}}

	f := NewForm()
	f.Duplicate(p)

	assert.True(t, f.IsNew())
	assert.True(t, f.Open)
	assert.Equal(t, "Oracle Dev", f.State.ProfileName)
}

func TestOpenNewClearsEverything(t *testing.T) {
	f := NewForm()
	f.StartEdit(&models.JobProfile{ID: 4, ProfileFields: models.ProfileFields{ProfileName: "x"}})
	f.SkillSearch = map[string]string{models.SkillTechnical: "or"}

	f.OpenNew()

	assert.True(t, f.IsNew())
	assert.True(t, f.Open)
	assert.Nil(t, f.SkillSearch)
	assert.Equal(t, models.DefaultFormState(), f.State)
}

func TestSetField(t *testing.T) {
	f := NewForm()

	require.NoError(t, f.SetField("profile_name", "  Oracle Dev "))
	assert.Equal(t, "Oracle Dev", f.State.ProfileName)

	require.NoError(t, f.SetField("salary_min", "120,000"))
	assert.Equal(t, float64(120000), f.State.SalaryMin)
	assert.Equal(t, "120000", f.FieldValue("salary_min"))

	assert.Error(t, f.SetField("salary_max", "lots"))
	assert.Error(t, f.SetField("worktype", "mars"))
	require.NoError(t, f.SetField("worktype", "hybrid"))

	require.NoError(t, f.SetField("worktype", "-"))
	assert.Empty(t, f.State.Worktype)

	assert.ErrorIs(t, f.SetField("id", "4"), ErrUnknownField)
}
