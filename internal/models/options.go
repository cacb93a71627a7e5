package models

const (
	WorktypeRemote = "remote"
	WorktypeOnsite = "onsite"
	WorktypeHybrid = "hybrid"
)

var WorktypeDisplayNames = map[string]string{
	WorktypeRemote: "Remote",
	WorktypeOnsite: "On-site",
	WorktypeHybrid: "Hybrid",
}

var EmploymentTypeDisplayNames = map[string]string{
	"full_time":  "Full-time",
	"part_time":  "Part-time",
	"contract":   "Contract",
	"freelance":  "Freelance",
	"internship": "Internship",
}

var SeniorityDisplayNames = map[string]string{
	"junior":    "Junior",
	"mid":       "Mid-level",
	"senior":    "Senior",
	"lead":      "Lead",
	"principal": "Principal",
}

var PayTypeDisplayNames = map[string]string{
	"annual":  "per year",
	"monthly": "per month",
	"hourly":  "per hour",
}

func WorktypeOptions() []string {
	return []string{WorktypeRemote, WorktypeOnsite, WorktypeHybrid}
}

func IsValidWorktype(id string) bool {
	_, ok := WorktypeDisplayNames[id]
	return ok
}

func GetWorktypeDisplayName(id string) string {
	if name, ok := WorktypeDisplayNames[id]; ok {
		return name
	}
	return id
}

func GetEmploymentTypeDisplayName(id string) string {
	if name, ok := EmploymentTypeDisplayNames[id]; ok {
		return name
	}
	return id
}

func GetSeniorityDisplayName(id string) string {
	if name, ok := SeniorityDisplayNames[id]; ok {
		return name
	}
	return id
}

func GetPayTypeDisplayName(id string) string {
	if name, ok := PayTypeDisplayNames[id]; ok {
		return name
	}
	return id
}
