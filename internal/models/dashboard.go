package models

import "time"

const (
	SwipeLike = "like"
	SwipePass = "pass"
)

const (
	ApplicationApplied     = "applied"
	ApplicationShortlisted = "shortlisted"
	ApplicationInterview   = "interview"
	ApplicationRejected    = "rejected"
	ApplicationHired       = "hired"
)

type JobPosting struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	CompanyName    string   `json:"company_name"`
	Location       string   `json:"location"`
	Worktype       string   `json:"worktype"`
	EmploymentType string   `json:"employment_type"`
	SalaryMin      float64  `json:"salary_min"`
	SalaryMax      float64  `json:"salary_max"`
	SalaryCurrency string   `json:"salary_currency"`
	Description    string   `json:"description"`
	Skills         []string `json:"skills"`
}

// Recommendation is a job suggested to a candidate. MatchPercentage is
// computed by the backend.
type Recommendation struct {
	Job             JobPosting `json:"job"`
	MatchPercentage float64    `json:"match_percentage"`
}

// CandidateRecommendation is a candidate suggested to a recruiter for a posting.
type CandidateRecommendation struct {
	CandidateID     int64    `json:"candidate_id"`
	FullName        string   `json:"full_name"`
	Headline        string   `json:"headline"`
	TopSkills       []string `json:"top_skills"`
	MatchPercentage float64  `json:"match_percentage"`
}

type Invite struct {
	ID        int64      `json:"id"`
	Job       JobPosting `json:"job"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

type Match struct {
	ID            int64      `json:"id"`
	Job           JobPosting `json:"job"`
	CandidateID   int64      `json:"candidate_id"`
	CandidateName string     `json:"candidate_name"`
	MatchedAt     time.Time  `json:"matched_at"`
}

type Application struct {
	ID            int64       `json:"id"`
	JobID         int64       `json:"job_id"`
	Job           *JobPosting `json:"job,omitempty"`
	CandidateID   int64       `json:"candidate_id"`
	CandidateName string      `json:"candidate_name"`
	Status        string      `json:"status"`
	AppliedAt     time.Time   `json:"applied_at"`
}

type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type CandidateProfile struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Headline string `json:"headline"`
}

type SwipeRequest struct {
	JobID       int64  `json:"job_id"`
	CandidateID *int64 `json:"candidate_id,omitempty"`
	Direction   string `json:"direction"`
}
