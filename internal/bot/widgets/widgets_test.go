package widgets

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"talentgraph-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

const profileURL = "https://talentgraph.example/candidate/profile"

func buttons(menu *tele.ReplyMarkup) []tele.InlineButton {
	var out []tele.InlineButton
	for _, row := range menu.InlineKeyboard {
		out = append(out, row...)
	}
	return out
}

func uniques(menu *tele.ReplyMarkup) []string {
	var out []string
	for _, b := range buttons(menu) {
		if b.Unique != "" {
			out = append(out, b.Unique)
		}
	}
	return out
}

func assertEmptyState(t *testing.T, text string, menu *tele.ReplyMarkup) {
	t.Helper()

	assert.Contains(t, text, "profile page")
	btns := buttons(menu)
	require.Len(t, btns, 2)
	assert.Equal(t, profileURL, btns[0].URL)
	assert.Equal(t, []string{ActionBack}, uniques(menu))
}

func TestEmptyCollectionsRenderEmptyState(t *testing.T) {
	text, menu := (&SkillsPicker{Category: models.SkillTechnical, ProfileURL: profileURL, Search: "go"}).Render()
	assertEmptyState(t, text, menu)
	assert.NotContains(t, text, "Search")

	text, menu = (&ResumeSelector{ProfileURL: profileURL}).Render()
	assertEmptyState(t, text, menu)

	text, menu = (&CertificationsSelector{ProfileURL: profileURL, SelectedIDs: []int64{4}}).Render()
	assertEmptyState(t, text, menu)
}

func TestSkillOptionsExcludeSelected(t *testing.T) {
	p := &SkillsPicker{
		Category: models.SkillTechnical,
		Catalog:  []string{"Oracle", "PostgreSQL", "Oracle APEX", "Go"},
		Selected: []models.Skill{{SkillName: "Oracle", SkillCategory: models.SkillTechnical, ProficiencyLevel: 3}},
		Search:   "ORA",
	}

	assert.Equal(t, []int{2}, p.Options())

	p.Search = ""
	assert.Equal(t, []int{1, 2, 3}, p.Options())
}

func TestSkillAddUpdateRemove(t *testing.T) {
	p := &SkillsPicker{Category: models.SkillSoft, Catalog: []string{"Leadership", "Mentoring"}, MaxSkills: 2}

	skills, ok := p.AddMatching(0, "Leadership")
	require.True(t, ok)
	assert.Equal(t, []models.Skill{{SkillName: "Leadership", SkillCategory: models.SkillSoft, ProficiencyLevel: 3}}, skills)

	p.Selected = skills
	_, ok = p.Add("Leadership")
	assert.False(t, ok)

	skills, ok = p.Add("Mentoring")
	require.True(t, ok)
	p.Selected = skills

	_, ok = p.Add("Negotiation")
	assert.False(t, ok, "picker is full")

	skills, ok = p.UpdateRating(1, 5)
	require.True(t, ok)
	assert.Equal(t, 5, skills[1].ProficiencyLevel)
	assert.Equal(t, 3, p.Selected[1].ProficiencyLevel, "input is not mutated")

	_, ok = p.UpdateRating(1, 6)
	assert.False(t, ok)
	_, ok = p.UpdateRating(0, 0)
	assert.False(t, ok)

	skills, ok = p.Remove(0)
	require.True(t, ok)
	assert.Equal(t, "Mentoring", skills[0].SkillName)
	_, ok = p.Remove(5)
	assert.False(t, ok)
}

func TestSkillPickerDefaultCap(t *testing.T) {
	p := &SkillsPicker{Category: models.SkillTechnical}
	for i := 0; i < models.DefaultMaxSkills; i++ {
		p.Selected = append(p.Selected, models.Skill{SkillName: string(rune('A' + i))})
	}

	_, ok := p.Add("Extra")
	assert.False(t, ok)
}

func TestSkillPickerRender(t *testing.T) {
	p := &SkillsPicker{
		Category: models.SkillTechnical,
		Catalog:  []string{"Oracle", "PostgreSQL"},
		Selected: []models.Skill{{SkillName: "Oracle", SkillCategory: models.SkillTechnical, ProficiencyLevel: 4}},
	}

	text, menu := p.Render()
	assert.Contains(t, text, "Oracle ★★★★☆")
	assert.Equal(t, []string{
		"sk_up:technical:0", "sk_down:technical:0", "sk_rm:technical:0",
		"sk_add:technical:1:PostgreSQL",
		"sk_find:technical",
		ActionBack,
	}, uniques(menu))
}

func TestSkillAddFollowsNameWhenCatalogShifts(t *testing.T) {
	p := &SkillsPicker{Category: models.SkillTechnical, Catalog: []string{"Go", "Oracle", "PostgreSQL"}}

	skills, ok := p.AddMatching(1, "PostgreSQL")
	require.True(t, ok)
	assert.Equal(t, "PostgreSQL", skills[0].SkillName)

	_, ok = p.AddMatching(2, "Kafka")
	assert.False(t, ok, "name no longer in the catalog")

	_, ok = p.AddMatching(0, "")
	assert.False(t, ok)

	p.Catalog = []string{"Oracle Database", "Oracle APEX"}
	_, ok = p.AddMatching(5, "Oracle")
	assert.False(t, ok, "cut name matches more than one entry")

	skills, ok = p.AddMatching(5, "Oracle AP")
	require.True(t, ok)
	assert.Equal(t, "Oracle APEX", skills[0].SkillName)
}

func TestSkillAddDataFitsCallbackLimit(t *testing.T) {
	long := strings.Repeat("é", 40)
	p := &SkillsPicker{Category: models.SkillTechnical, Catalog: []string{long}}

	_, menu := p.Render()
	var add string
	for _, u := range uniques(menu) {
		if strings.HasPrefix(u, ActionSkillAdd) {
			add = u
		}
	}
	require.NotEmpty(t, add)
	assert.LessOrEqual(t, len(add), MaxCallbackData)
	assert.True(t, utf8.ValidString(add))

	name := strings.TrimPrefix(add, "sk_add:technical:0:")
	skills, ok := p.AddMatching(0, name)
	require.True(t, ok)
	assert.Equal(t, long, skills[0].SkillName)
}

func TestResumeSelectorMarksPrimaryAndAttached(t *testing.T) {
	primary := int64(2)
	s := &ResumeSelector{
		Resumes: []models.Resume{
			{ID: 1, Filename: "cv.pdf", UploadedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Filename: "cv-long.pdf", UploadedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		},
		PrimaryID:   &primary,
		AttachedIDs: []int64{2},
	}

	_, menu := s.Render()
	rows := menu.InlineKeyboard
	require.Len(t, rows, 4)

	assert.Equal(t, "⚪ cv.pdf", rows[0][0].Text)
	assert.Equal(t, "⬜ attach", rows[0][1].Text)
	assert.Equal(t, "🔘 cv-long.pdf", rows[1][0].Text)
	assert.Equal(t, "☑️ attach", rows[1][1].Text)
	assert.Equal(t, "rs_pri:2", rows[1][0].Unique)
	assert.Equal(t, "rs_att:2", rows[1][1].Unique)
	assert.Equal(t, "rs_pri:0", rows[2][0].Unique)
}

func TestCertificationsSelector(t *testing.T) {
	issuer := "Oracle"
	s := &CertificationsSelector{
		Certifications: []models.Certification{{ID: 4, Name: "OCP", Issuer: &issuer}, {ID: 5, Name: "AWS SA"}},
		SelectedIDs:    []int64{5},
	}

	text, menu := s.Render()
	assert.Contains(t, text, "1 selected")
	assert.Contains(t, text, "OCP · Oracle")
	assert.Equal(t, "⬜ OCP", menu.InlineKeyboard[0][0].Text)
	assert.Equal(t, "☑️ AWS SA", menu.InlineKeyboard[1][0].Text)
	assert.Equal(t, "ct_tog:5", menu.InlineKeyboard[1][0].Unique)
}
