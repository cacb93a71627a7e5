package handlers

import (
	"testing"

	"talentgraph-bot/internal/bot/widgets"
	"talentgraph-bot/internal/dashboard"
	"talentgraph-bot/internal/models"
	"talentgraph-bot/internal/preference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func uniques(menu *tele.ReplyMarkup) []string {
	var out []string
	for _, row := range menu.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.Unique)
		}
	}
	return out
}

func TestParseCallback(t *testing.T) {
	action, args := parseCallback("\fsk_add:technical:4:C++: Modern")
	assert.Equal(t, widgets.ActionSkillAdd, action)
	assert.Equal(t, []string{"technical", "4", "C++", " Modern"}, args)

	action, args = parseCallback(actionFormSave)
	assert.Equal(t, actionFormSave, action)
	assert.Empty(t, args)
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	longest := data(actionApplicationStatus, int64(9223372036854775807), models.ApplicationShortlisted)
	assert.LessOrEqual(t, len(longest), 64)

	longest = data(actionCandidateLike, int64(9223372036854775807), int64(9223372036854775807))
	assert.LessOrEqual(t, len(longest), 64)
}

func TestParseLocation(t *testing.T) {
	loc, ok := parseLocation("Austin, TX")
	require.True(t, ok)
	assert.Equal(t, models.Location{City: "Austin", State: "TX"}, loc)

	loc, ok = parseLocation(" Berlin , BE , Germany ")
	require.True(t, ok)
	assert.Equal(t, "Germany", loc.Country)

	for _, bad := range []string{"Austin", ", TX", "Austin, ", "a, b, c, d"} {
		_, ok := parseLocation(bad)
		assert.False(t, ok, bad)
	}
}

func TestListKeyboard(t *testing.T) {
	profiles := []models.JobProfile{{ID: 7, ProfileFields: models.ProfileFields{ProfileName: "Oracle Dev"}}}

	menu := listKeyboard(profiles, preference.ListQuery{})
	got := uniques(menu)
	assert.Contains(t, got, "pf_edit:7")
	assert.Contains(t, got, "pf_dup:7")
	assert.Contains(t, got, "pf_del:7")
	assert.Contains(t, got, "pf_wt:all")
	assert.Contains(t, got, "pf_wt:remote")
	assert.NotContains(t, got, actionProfileReset)

	menu = listKeyboard(nil, preference.ListQuery{Worktype: models.WorktypeHybrid})
	assert.Contains(t, uniques(menu), actionProfileReset)
}

func TestFormKeyboardOffersSaveAsNewOnlyWhenEditing(t *testing.T) {
	f := preference.NewForm()
	f.OpenNew()
	assert.NotContains(t, uniques(formKeyboard(f)), actionFormSaveNew)

	f.StartEdit(&models.JobProfile{ID: 3})
	got := uniques(formKeyboard(f))
	assert.Contains(t, got, actionFormSave)
	assert.Contains(t, got, actionFormSaveNew)
	assert.Contains(t, got, "form_skills:technical")
	assert.Contains(t, got, "form_tags:core_strengths")
}

func TestFieldsKeyboardPaging(t *testing.T) {
	f := preference.NewForm()
	f.OpenNew()
	require.NoError(t, f.SetField("profile_name", "Oracle Dev"))

	first := uniques(fieldsKeyboard(f, 0))
	assert.Contains(t, first, "form_field:profile_name")
	assert.Contains(t, first, "form_fields:1")
	assert.NotContains(t, first, "form_fields:-1")

	last := (len(preference.Fields()) - 1) / fieldsPerPage
	got := uniques(fieldsKeyboard(f, last))
	assert.Contains(t, got, "form_field:website_url")
	assert.Contains(t, got, widgets.ActionBack)

	// out of range pages fall back to the first one
	assert.Equal(t, first, uniques(fieldsKeyboard(f, 99)))

	assert.Equal(t, 0, fieldPage("profile_name"))
	assert.Equal(t, last, fieldPage("website_url"))
}

func TestTagsKeyboardHidesAddWhenFull(t *testing.T) {
	f := preference.NewForm()
	f.OpenNew()

	for _, v := range []string{"a", "b", "c", "d", "e"} {
		require.True(t, f.AddTag(preference.TagCoreStrengths, v, preference.TagLimit(preference.TagCoreStrengths)))
	}

	got := uniques(tagsKeyboard(f, preference.TagCoreStrengths))
	assert.NotContains(t, got, "tag_add:core_strengths")
	assert.Contains(t, got, "tag_rm:core_strengths:4")

	assert.Contains(t, uniques(tagsKeyboard(f, preference.TagJobCategory)), "tag_add:job_category")
}

func TestParseTagField(t *testing.T) {
	field, ok := parseTagField("job_category")
	assert.True(t, ok)
	assert.Equal(t, preference.TagJobCategory, field)

	_, ok = parseTagField("skills")
	assert.False(t, ok)
}

func TestDashboardKeyboards(t *testing.T) {
	view := &dashboard.CandidateView{Recommendations: []models.Recommendation{
		{Job: models.JobPosting{ID: 31, Title: "DBA"}},
	}}
	assert.Contains(t, uniques(candidateKeyboard(view)), "db_job:31")
	assert.Equal(t, []string{"db_like:31", "db_pass:31", "db_apply:31", actionDashboardShow}, uniques(jobKeyboard(31)))

	rview := &dashboard.RecruiterView{
		PostingID:    5,
		Postings:     []models.JobPosting{{ID: 5, Title: "DBA"}},
		Candidates:   []models.CandidateRecommendation{{CandidateID: 8, FullName: "Ann"}},
		Applications: []models.Application{{ID: 2, CandidateName: "Bob", Status: models.ApplicationApplied}},
	}
	got := uniques(recruiterKeyboard(rview))
	assert.Contains(t, got, "rc_open:5")
	assert.Contains(t, got, "rc_like:5:8")
	assert.Contains(t, got, "rc_pass:5:8")
	assert.Contains(t, got, "rc_app:2")

	assert.Contains(t, uniques(applicationKeyboard(2)), "rc_status:2:hired")
}

func TestFormText(t *testing.T) {
	f := preference.NewForm()
	f.OpenNew()
	assert.Contains(t, formText(f), "New job preference")
	assert.Contains(t, formText(f), "Name: not set")

	f.StartEdit(&models.JobProfile{ID: 3, ProfileFields: models.ProfileFields{ProfileName: "Oracle Dev"}})
	assert.Contains(t, formText(f), "Editing job preference")
	assert.Contains(t, formText(f), "Name: Oracle Dev")
}
