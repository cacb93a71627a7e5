package models

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	SkillTechnical = "technical"
	SkillSoft      = "soft"
)

const (
	MaxLocations       = 5
	MaxCoreStrengths   = 5
	MaxTags            = 10
	DefaultProficiency = 3
	DefaultMaxSkills   = 20
	DefaultCurrency    = "USD"
)

type Skill struct {
	SkillName        string `json:"skill_name" validate:"required,max=100"`
	SkillCategory    string `json:"skill_category" validate:"oneof=technical soft"`
	ProficiencyLevel int    `json:"proficiency_level" validate:"min=1,max=5"`
}

type Location struct {
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Country string `json:"country,omitempty"`
}

func (l Location) String() string {
	parts := []string{l.City, l.State}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	return strings.Join(parts, ", ")
}

// ProfileFields are the scalar attributes shared by the form and the saved profile.
type ProfileFields struct {
	ProfileName           string  `json:"profile_name" validate:"required"`
	ProductVendor         string  `json:"product_vendor"`
	ProductType           string  `json:"product_type"`
	JobRole               string  `json:"job_role"`
	SeniorityLevel        string  `json:"seniority_level"`
	YearsOfExperience     float64 `json:"years_of_experience" validate:"min=0"`
	RelevantExperience    float64 `json:"relevant_experience" validate:"min=0"`
	Worktype              string  `json:"worktype"`
	EmploymentType        string  `json:"employment_type"`
	SalaryMin             float64 `json:"salary_min" validate:"min=0"`
	SalaryMax             float64 `json:"salary_max" validate:"min=0"`
	SalaryCurrency        string  `json:"salary_currency"`
	PayType               string  `json:"pay_type"`
	Negotiability         string  `json:"negotiability"`
	VisaStatus            string  `json:"visa_status"`
	SecurityClearance     string  `json:"security_clearance"`
	HighestEducation      string  `json:"highest_education"`
	NoticePeriod          string  `json:"notice_period"`
	AvailabilityDate      string  `json:"availability_date"`
	StartDatePreference   string  `json:"start_date_preference"`
	TravelWillingness     string  `json:"travel_willingness"`
	ShiftPreference       string  `json:"shift_preference"`
	RemoteAcceptance      string  `json:"remote_acceptance"`
	RelocationWillingness string  `json:"relocation_willingness"`
	ProfileSummary        string  `json:"profile_summary"`
	Ethnicity             string  `json:"ethnicity"`
	LinkedinURL           string  `json:"linkedin_url"`
	GithubURL             string  `json:"github_url"`
	PortfolioURL          string  `json:"portfolio_url"`
	TwitterURL            string  `json:"twitter_url"`
	WebsiteURL            string  `json:"website_url"`
}

// FormState is the editable shape of a job preference. The three tag fields
// hold JSON-encoded string arrays because the backend stores them as text.
type FormState struct {
	ProfileFields

	PreferredJobTitles string `json:"preferred_job_titles" validate:"tags=10"`
	JobCategory        string `json:"job_category" validate:"tags=10"`
	CoreStrengths      string `json:"core_strengths" validate:"tags=5"`

	Skills              []Skill    `json:"skills" validate:"dive"`
	LocationPreferences []Location `json:"location_preferences" validate:"max=5,dive"`
	CertificationIDs    []int64    `json:"certification_ids"`
	PrimaryResumeID     *int64     `json:"primary_resume_id"`
	AttachedResumeIDs   []int64    `json:"attached_resume_ids"`
}

// DefaultFormState is the all-defaults record of a new preference.
func DefaultFormState() FormState {
	return FormState{
		ProfileFields: ProfileFields{
			SalaryCurrency: DefaultCurrency,
		},
		PreferredJobTitles:  EncodeTags(nil),
		JobCategory:         EncodeTags(nil),
		CoreStrengths:       EncodeTags(nil),
		Skills:              []Skill{},
		LocationPreferences: []Location{},
		CertificationIDs:    []int64{},
		AttachedResumeIDs:   []int64{},
	}
}

// ProfilePayload is the body of create and update calls. ResumeID mirrors
// PrimaryResumeID for the backend's legacy single-resume field and is always
// serialised, null included.
type ProfilePayload struct {
	FormState
	ResumeID *int64 `json:"resume_id"`
}

// JobProfile is a saved preference as the backend returns it. Collection
// fields accept either native arrays or JSON strings holding arrays.
type JobProfile struct {
	ID int64 `json:"id"`
	ProfileFields

	PreferredJobTitles TagText `json:"preferred_job_titles"`
	JobCategory        TagText `json:"job_category"`
	CoreStrengths      TagText `json:"core_strengths"`

	Skills              Lenient[Skill]    `json:"skills"`
	LocationPreferences Lenient[Location] `json:"location_preferences"`
	CertificationIDs    Lenient[int64]    `json:"certification_ids"`
	PrimaryResumeID     *int64            `json:"primary_resume_id"`
	AttachedResumeIDs   Lenient[int64]    `json:"attached_resume_ids"`
	ResumeID            *int64            `json:"resume_id"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Resume struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Certification struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Issuer     *string `json:"issuer,omitempty"`
	IssuedDate *string `json:"issued_date,omitempty"`
	ExpiryDate *string `json:"expiry_date,omitempty"`
}

type SkillCatalog struct {
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
}

// Names returns the catalog list for a skill category.
func (c *SkillCatalog) Names(category string) []string {
	if c == nil {
		return nil
	}
	if category == SkillSoft {
		return c.SoftSkills
	}
	return c.TechnicalSkills
}

// DecodeTags parses a JSON-encoded tag array. Anything unparsable is an empty list.
func DecodeTags(encoded string) []string {
	tags := []string{}
	if strings.TrimSpace(encoded) == "" {
		return tags
	}
	if err := json.Unmarshal([]byte(encoded), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

func EncodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}
