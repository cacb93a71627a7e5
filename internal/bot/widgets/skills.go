package widgets

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/models"

	tele "gopkg.in/telebot.v3"
)

// MaxSkillOptions is how many search results are offered at once.
const MaxSkillOptions = 8

// SkillsPicker edits the skills of one category.
type SkillsPicker struct {
	Category   string
	Catalog    []string
	Selected   []models.Skill
	Search     string
	MaxSkills  int
	ProfileURL string
}

func (p *SkillsPicker) max() int {
	if p.MaxSkills <= 0 {
		return models.DefaultMaxSkills
	}
	return p.MaxSkills
}

func (p *SkillsPicker) isSelected(name string) bool {
	for _, s := range p.Selected {
		if s.SkillName == name {
			return true
		}
	}
	return false
}

// Options returns catalog indexes whose name contains the search text,
// case-insensitively, leaving out names already selected.
func (p *SkillsPicker) Options() []int {
	needle := strings.ToLower(strings.TrimSpace(p.Search))

	out := []int{}
	for i, name := range p.Catalog {
		if p.isSelected(name) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Add returns the selection with name appended at the default level. The
// selection is returned unchanged when it is full or name is already in it.
func (p *SkillsPicker) Add(name string) ([]models.Skill, bool) {
	if strings.TrimSpace(name) == "" || len(p.Selected) >= p.max() || p.isSelected(name) {
		return p.Selected, false
	}

	out := append(copySkills(p.Selected), models.Skill{
		SkillName:        name,
		SkillCategory:    p.Category,
		ProficiencyLevel: models.DefaultProficiency,
	})
	return out, true
}

// AddMatching adds the catalog entry a button was drawn for. name is the
// entry's name as carried in the button, possibly cut short. The entry at
// index i is used only while it still carries that name; otherwise the
// catalog changed since rendering and the name alone decides.
func (p *SkillsPicker) AddMatching(i int, name string) ([]models.Skill, bool) {
	if name == "" {
		return p.Selected, false
	}
	if i >= 0 && i < len(p.Catalog) && strings.HasPrefix(p.Catalog[i], name) {
		return p.Add(p.Catalog[i])
	}

	for _, entry := range p.Catalog {
		if entry == name {
			return p.Add(entry)
		}
	}

	found := ""
	for _, entry := range p.Catalog {
		if !strings.HasPrefix(entry, name) {
			continue
		}
		if found != "" {
			return p.Selected, false
		}
		found = entry
	}
	if found == "" {
		return p.Selected, false
	}
	return p.Add(found)
}

// addData is the callback of the add button for catalog entry i: the index
// followed by as much of the name as fits.
func (p *SkillsPicker) addData(i int) string {
	head := callback(ActionSkillAdd, p.Category, i) + ":"
	return head + cutBytes(p.Catalog[i], MaxCallbackData-len(head))
}

func (p *SkillsPicker) UpdateRating(i, level int) ([]models.Skill, bool) {
	if i < 0 || i >= len(p.Selected) || level < 1 || level > 5 {
		return p.Selected, false
	}

	out := copySkills(p.Selected)
	out[i].ProficiencyLevel = level
	return out, true
}

func (p *SkillsPicker) Remove(i int) ([]models.Skill, bool) {
	if i < 0 || i >= len(p.Selected) {
		return p.Selected, false
	}

	out := copySkills(p.Selected)
	return append(out[:i], out[i+1:]...), true
}

func (p *SkillsPicker) title() string {
	if p.Category == models.SkillSoft {
		return "Soft skills"
	}
	return "Technical skills"
}

func (p *SkillsPicker) Render() (string, *tele.ReplyMarkup) {
	if len(p.Catalog) == 0 {
		return emptyState(p.title(), p.ProfileURL)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* \\(%d/%d\\)\n\n", utils.EscapeMarkdown(p.title()), len(p.Selected), p.max()))

	if len(p.Selected) == 0 {
		sb.WriteString("_Nothing selected yet_\n")
	}
	for _, s := range p.Selected {
		sb.WriteString(fmt.Sprintf("• %s %s\n", utils.EscapeMarkdown(s.SkillName), Stars(s.ProficiencyLevel)))
	}

	if p.Search != "" {
		sb.WriteString(fmt.Sprintf("\n🔍 Search: _%s_\n", utils.EscapeMarkdown(p.Search)))
	}

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row

	for i, s := range p.Selected {
		rows = append(rows, menu.Row(
			menu.Data(fmt.Sprintf("%s %d", utils.TruncateString(s.SkillName, 20), s.ProficiencyLevel), callback(ActionSkillUp, p.Category, i)),
			menu.Data("−", callback(ActionSkillDown, p.Category, i)),
			menu.Data("✖️", callback(ActionSkillRemove, p.Category, i)),
		))
	}

	options := p.Options()
	if len(p.Selected) < p.max() {
		shown := options
		if len(shown) > MaxSkillOptions {
			shown = shown[:MaxSkillOptions]
		}
		for _, idx := range shown {
			rows = append(rows, menu.Row(menu.Data("➕ "+p.Catalog[idx], p.addData(idx))))
		}
	}
	if len(options) > MaxSkillOptions {
		sb.WriteString(fmt.Sprintf("\n_%d more match, narrow the search_\n", len(options)-MaxSkillOptions))
	}

	searchRow := []tele.Btn{menu.Data("🔍 Search", callback(ActionSkillSearch, p.Category))}
	if p.Search != "" {
		searchRow = append(searchRow, menu.Data("✖️ Clear search", callback(ActionSkillClear, p.Category)))
	}
	rows = append(rows, menu.Row(searchRow...))
	rows = append(rows, menu.Row(menu.Data("✅ Done", ActionBack)))

	menu.Inline(rows...)
	return sb.String(), menu
}

// Stars renders a 1..5 proficiency level.
func Stars(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 5 {
		level = 5
	}
	return strings.Repeat("★", level) + strings.Repeat("☆", 5-level)
}

// cutBytes shortens s to at most n bytes without splitting a rune.
func cutBytes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func copySkills(skills []models.Skill) []models.Skill {
	return append([]models.Skill{}, skills...)
}
