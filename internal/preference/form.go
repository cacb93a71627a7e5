package preference

import (
	"strings"

	"talentgraph-bot/internal/models"
)

// TagField names one of the JSON-encoded tag lists of the form.
type TagField string

const (
	TagPreferredJobTitles TagField = "preferred_job_titles"
	TagJobCategory        TagField = "job_category"
	TagCoreStrengths      TagField = "core_strengths"
)

// TagLimit is the size cap of a tag list.
func TagLimit(field TagField) int {
	if field == TagCoreStrengths {
		return models.MaxCoreStrengths
	}
	return models.MaxTags
}

func TagFields() []TagField {
	return []TagField{TagPreferredJobTitles, TagJobCategory, TagCoreStrengths}
}

// Form holds one job preference while it is being edited. It is plain data so
// a conversation can store it between messages.
type Form struct {
	State     models.FormState `json:"state"`
	EditingID *int64           `json:"editing_id,omitempty"`
	Open      bool             `json:"open"`

	// SkillSearch is the skills picker search text per category.
	SkillSearch map[string]string `json:"skill_search,omitempty"`
}

func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// Reset closes the form and drops all edits.
func (f *Form) Reset() {
	f.State = models.DefaultFormState()
	f.EditingID = nil
	f.Open = false
	f.SkillSearch = nil
}

// OpenNew starts a blank preference.
func (f *Form) OpenNew() {
	f.Reset()
	f.Open = true
}

// IsNew reports whether submitting will create a record.
func (f *Form) IsNew() bool {
	return f.EditingID == nil
}

// StartEdit loads a saved profile into the form. Collections are re-derived
// from whatever shape the backend sent.
func (f *Form) StartEdit(p *models.JobProfile) {
	f.Reset()

	state := models.DefaultFormState()

	state.ProfileFields = p.ProfileFields
	if state.SalaryCurrency == "" {
		state.SalaryCurrency = models.DefaultCurrency
	}

	state.PreferredJobTitles = models.EncodeTags(p.PreferredJobTitles.Tags())
	state.JobCategory = models.EncodeTags(p.JobCategory.Tags())
	state.CoreStrengths = models.EncodeTags(p.CoreStrengths.Tags())

	state.Skills = deriveSkills(p.Skills)
	state.LocationPreferences = deriveLocations(p.LocationPreferences)
	state.CertificationIDs = uniqueIDs(p.CertificationIDs)
	state.AttachedResumeIDs = uniqueIDs(p.AttachedResumeIDs)

	switch {
	case p.PrimaryResumeID != nil:
		state.PrimaryResumeID = int64Ptr(*p.PrimaryResumeID)
	case p.ResumeID != nil:
		// records saved before primary/attached existed only have resume_id
		state.PrimaryResumeID = int64Ptr(*p.ResumeID)
	}

	id := p.ID
	f.State = state
	f.EditingID = &id
	f.Open = true
}

// Duplicate opens a new record pre-filled from an existing one.
func (f *Form) Duplicate(p *models.JobProfile) {
	f.StartEdit(p)
	f.EditingID = nil
}

func (f *Form) tagRef(field TagField) *string {
	switch field {
	case TagPreferredJobTitles:
		return &f.State.PreferredJobTitles
	case TagJobCategory:
		return &f.State.JobCategory
	case TagCoreStrengths:
		return &f.State.CoreStrengths
	default:
		return nil
	}
}

// Tags decodes one tag list.
func (f *Form) Tags(field TagField) []string {
	ref := f.tagRef(field)
	if ref == nil {
		return []string{}
	}
	return models.DecodeTags(*ref)
}

// AddTag appends value to a tag list. It does nothing and returns false when
// the list is full, already holds value, or value is blank.
func (f *Form) AddTag(field TagField, value string, max int) bool {
	ref := f.tagRef(field)
	if ref == nil || strings.TrimSpace(value) == "" {
		return false
	}

	tags := models.DecodeTags(*ref)
	if len(tags) >= max {
		return false
	}
	for _, t := range tags {
		if t == value {
			return false
		}
	}

	*ref = models.EncodeTags(append(tags, value))
	return true
}

func (f *Form) RemoveTag(field TagField, index int) bool {
	ref := f.tagRef(field)
	if ref == nil {
		return false
	}

	tags := models.DecodeTags(*ref)
	if index < 0 || index >= len(tags) {
		return false
	}

	*ref = models.EncodeTags(append(tags[:index], tags[index+1:]...))
	return true
}

// AddLocation appends a location. City and state are required and at most
// MaxLocations entries are kept.
func (f *Form) AddLocation(loc models.Location) bool {
	loc.City = strings.TrimSpace(loc.City)
	loc.State = strings.TrimSpace(loc.State)
	loc.Country = strings.TrimSpace(loc.Country)

	if loc.City == "" || loc.State == "" {
		return false
	}
	if len(f.State.LocationPreferences) >= models.MaxLocations {
		return false
	}

	f.State.LocationPreferences = append(f.State.LocationPreferences, loc)
	return true
}

func (f *Form) RemoveLocation(index int) bool {
	locs := f.State.LocationPreferences
	if index < 0 || index >= len(locs) {
		return false
	}

	f.State.LocationPreferences = append(locs[:index:index], locs[index+1:]...)
	return true
}

// SkillsOf returns the skills of one category in form order.
func (f *Form) SkillsOf(category string) []models.Skill {
	out := []models.Skill{}
	for _, s := range f.State.Skills {
		if s.SkillCategory == category {
			out = append(out, s)
		}
	}
	return out
}

// SetSkills replaces every skill of category with skills and keeps the other
// category as it was. Both pickers share the one backing list.
func (f *Form) SetSkills(category string, skills []models.Skill) {
	merged := make([]models.Skill, 0, len(f.State.Skills)+len(skills))
	for _, s := range f.State.Skills {
		if s.SkillCategory != category {
			merged = append(merged, s)
		}
	}
	for _, s := range skills {
		s.SkillCategory = category
		merged = append(merged, s)
	}
	f.State.Skills = merged
}

// SetPrimaryResume selects the primary resume, nil clears it. Attached
// resumes are not touched.
func (f *Form) SetPrimaryResume(id *int64) {
	if id == nil {
		f.State.PrimaryResumeID = nil
		return
	}
	f.State.PrimaryResumeID = int64Ptr(*id)
}

func (f *Form) ToggleAttachedResume(id int64) {
	f.State.AttachedResumeIDs = toggleID(f.State.AttachedResumeIDs, id)
}

func (f *Form) ToggleCertification(id int64) {
	f.State.CertificationIDs = toggleID(f.State.CertificationIDs, id)
}

// Payload builds the create/update body. resume_id always equals
// primary_resume_id.
func (f *Form) Payload() *models.ProfilePayload {
	state := f.State
	state.Skills = append([]models.Skill{}, f.State.Skills...)
	state.LocationPreferences = append([]models.Location{}, f.State.LocationPreferences...)
	state.CertificationIDs = append([]int64{}, f.State.CertificationIDs...)
	state.AttachedResumeIDs = append([]int64{}, f.State.AttachedResumeIDs...)

	var resumeID *int64
	if f.State.PrimaryResumeID != nil {
		state.PrimaryResumeID = int64Ptr(*f.State.PrimaryResumeID)
		resumeID = int64Ptr(*f.State.PrimaryResumeID)
	}

	return &models.ProfilePayload{FormState: state, ResumeID: resumeID}
}

func deriveSkills(rows []models.Skill) []models.Skill {
	type key struct{ name, category string }

	skills := []models.Skill{}
	seen := make(map[key]struct{}, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.SkillName)
		if name == "" {
			continue
		}

		category := strings.ToLower(strings.TrimSpace(row.SkillCategory))
		if category != models.SkillSoft {
			category = models.SkillTechnical
		}

		k := key{name, category}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		skills = append(skills, models.Skill{
			SkillName:        name,
			SkillCategory:    category,
			ProficiencyLevel: clampLevel(row.ProficiencyLevel),
		})
	}
	return skills
}

func deriveLocations(rows []models.Location) []models.Location {
	locs := []models.Location{}
	for _, row := range rows {
		if len(locs) == models.MaxLocations {
			break
		}
		row.City = strings.TrimSpace(row.City)
		row.State = strings.TrimSpace(row.State)
		row.Country = strings.TrimSpace(row.Country)
		if row.City == "" || row.State == "" {
			continue
		}
		locs = append(locs, row)
	}
	return locs
}

func clampLevel(level int) int {
	switch {
	case level == 0:
		return models.DefaultProficiency
	case level < 1:
		return 1
	case level > 5:
		return 5
	default:
		return level
	}
}

func uniqueIDs(ids []int64) []int64 {
	out := []int64{}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toggleID(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids)+1)
	found := false
	for _, existing := range ids {
		if existing == id {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func int64Ptr(v int64) *int64 {
	return &v
}

func (f *Form) IsAttached(id int64) bool {
	return containsID(f.State.AttachedResumeIDs, id)
}

func (f *Form) HasCertification(id int64) bool {
	return containsID(f.State.CertificationIDs, id)
}
