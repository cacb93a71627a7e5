package preference

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"talentgraph-bot/internal/models"
)

var ErrUnknownField = errors.New("unknown field")

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldChoice
)

// Field describes one scalar attribute that can be edited by key.
type Field struct {
	Key     string
	Label   string
	Kind    FieldKind
	Options []string
	ref     func(*models.ProfileFields) interface{}
}

var fields = []Field{
	{Key: "profile_name", Label: "Profile name", ref: func(p *models.ProfileFields) interface{} { return &p.ProfileName }},
	{Key: "job_role", Label: "Job role", ref: func(p *models.ProfileFields) interface{} { return &p.JobRole }},
	{Key: "product_vendor", Label: "Product vendor", ref: func(p *models.ProfileFields) interface{} { return &p.ProductVendor }},
	{Key: "product_type", Label: "Product type", ref: func(p *models.ProfileFields) interface{} { return &p.ProductType }},
	{Key: "seniority_level", Label: "Seniority", Kind: FieldChoice, Options: []string{"junior", "mid", "senior", "lead", "principal"}, ref: func(p *models.ProfileFields) interface{} { return &p.SeniorityLevel }},
	{Key: "years_of_experience", Label: "Years of experience", Kind: FieldNumber, ref: func(p *models.ProfileFields) interface{} { return &p.YearsOfExperience }},
	{Key: "relevant_experience", Label: "Relevant experience", Kind: FieldNumber, ref: func(p *models.ProfileFields) interface{} { return &p.RelevantExperience }},
	{Key: "worktype", Label: "Work type", Kind: FieldChoice, Options: models.WorktypeOptions(), ref: func(p *models.ProfileFields) interface{} { return &p.Worktype }},
	{Key: "employment_type", Label: "Employment type", Kind: FieldChoice, Options: []string{"full_time", "part_time", "contract", "freelance", "internship"}, ref: func(p *models.ProfileFields) interface{} { return &p.EmploymentType }},
	{Key: "salary_min", Label: "Salary from", Kind: FieldNumber, ref: func(p *models.ProfileFields) interface{} { return &p.SalaryMin }},
	{Key: "salary_max", Label: "Salary to", Kind: FieldNumber, ref: func(p *models.ProfileFields) interface{} { return &p.SalaryMax }},
	{Key: "salary_currency", Label: "Currency", ref: func(p *models.ProfileFields) interface{} { return &p.SalaryCurrency }},
	{Key: "pay_type", Label: "Pay type", Kind: FieldChoice, Options: []string{"annual", "monthly", "hourly"}, ref: func(p *models.ProfileFields) interface{} { return &p.PayType }},
	{Key: "negotiability", Label: "Negotiability", ref: func(p *models.ProfileFields) interface{} { return &p.Negotiability }},
	{Key: "visa_status", Label: "Visa status", ref: func(p *models.ProfileFields) interface{} { return &p.VisaStatus }},
	{Key: "security_clearance", Label: "Security clearance", ref: func(p *models.ProfileFields) interface{} { return &p.SecurityClearance }},
	{Key: "highest_education", Label: "Highest education", ref: func(p *models.ProfileFields) interface{} { return &p.HighestEducation }},
	{Key: "notice_period", Label: "Notice period", ref: func(p *models.ProfileFields) interface{} { return &p.NoticePeriod }},
	{Key: "availability_date", Label: "Available from", ref: func(p *models.ProfileFields) interface{} { return &p.AvailabilityDate }},
	{Key: "start_date_preference", Label: "Start date preference", ref: func(p *models.ProfileFields) interface{} { return &p.StartDatePreference }},
	{Key: "travel_willingness", Label: "Travel", ref: func(p *models.ProfileFields) interface{} { return &p.TravelWillingness }},
	{Key: "shift_preference", Label: "Shift preference", ref: func(p *models.ProfileFields) interface{} { return &p.ShiftPreference }},
	{Key: "remote_acceptance", Label: "Remote acceptance", ref: func(p *models.ProfileFields) interface{} { return &p.RemoteAcceptance }},
	{Key: "relocation_willingness", Label: "Relocation", ref: func(p *models.ProfileFields) interface{} { return &p.RelocationWillingness }},
	{Key: "profile_summary", Label: "Summary", ref: func(p *models.ProfileFields) interface{} { return &p.ProfileSummary }},
	{Key: "ethnicity", Label: "Ethnicity", ref: func(p *models.ProfileFields) interface{} { return &p.Ethnicity }},
	{Key: "linkedin_url", Label: "LinkedIn", ref: func(p *models.ProfileFields) interface{} { return &p.LinkedinURL }},
	{Key: "github_url", Label: "GitHub", ref: func(p *models.ProfileFields) interface{} { return &p.GithubURL }},
	{Key: "portfolio_url", Label: "Portfolio", ref: func(p *models.ProfileFields) interface{} { return &p.PortfolioURL }},
	{Key: "twitter_url", Label: "Twitter", ref: func(p *models.ProfileFields) interface{} { return &p.TwitterURL }},
	{Key: "website_url", Label: "Website", ref: func(p *models.ProfileFields) interface{} { return &p.WebsiteURL }},
}

// Fields lists the editable scalar fields in display order.
func Fields() []Field {
	return fields
}

func LookupField(key string) (Field, bool) {
	for _, fd := range fields {
		if fd.Key == key {
			return fd, true
		}
	}
	return Field{}, false
}

// SetField assigns a scalar field from text input. "-" clears the field.
func (f *Form) SetField(key, value string) error {
	fd, ok := LookupField(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}

	value = strings.TrimSpace(value)
	clear := value == "-"

	switch ref := fd.ref(&f.State.ProfileFields).(type) {
	case *string:
		if clear {
			*ref = ""
			return nil
		}
		if fd.Kind == FieldChoice && !contains(fd.Options, value) {
			return fmt.Errorf("%s must be one of: %s", fd.Label, strings.Join(fd.Options, ", "))
		}
		*ref = value
	case *float64:
		if clear {
			*ref = 0
			return nil
		}
		n, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a positive number", fd.Label)
		}
		*ref = n
	}

	return nil
}

// FieldValue renders the current value of a scalar field, "" when unset.
func (f *Form) FieldValue(key string) string {
	fd, ok := LookupField(key)
	if !ok {
		return ""
	}

	switch ref := fd.ref(&f.State.ProfileFields).(type) {
	case *string:
		return *ref
	case *float64:
		if *ref == 0 {
			return ""
		}
		return strconv.FormatFloat(*ref, 'f', -1, 64)
	}
	return ""
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
