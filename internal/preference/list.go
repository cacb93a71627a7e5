package preference

import (
	"context"
	"fmt"
	"strings"

	"talentgraph-bot/internal/models"

	"golang.org/x/sync/errgroup"
)

// Reader is the part of the API the list screen needs.
type Reader interface {
	ListJobProfiles(ctx context.Context) ([]models.JobProfile, error)
	ListResumes(ctx context.Context) ([]models.Resume, error)
	ListCertifications(ctx context.Context) ([]models.Certification, error)
	GetSkillCatalog(ctx context.Context) (*models.SkillCatalog, error)
}

// Snapshot is everything the list and form screens render from.
type Snapshot struct {
	Profiles       []models.JobProfile
	Resumes        []models.Resume
	Certifications []models.Certification
	Catalog        *models.SkillCatalog
}

type Lister struct {
	api Reader
}

func NewLister(api Reader) *Lister {
	return &Lister{api: api}
}

// Load fetches the profiles and their reference collections in parallel.
// Any failure fails the whole load.
func (l *Lister) Load(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profiles, err := l.api.ListJobProfiles(gctx)
		snap.Profiles = profiles
		return err
	})
	g.Go(func() error {
		resumes, err := l.api.ListResumes(gctx)
		snap.Resumes = resumes
		return err
	})
	g.Go(func() error {
		certs, err := l.api.ListCertifications(gctx)
		snap.Certifications = certs
		return err
	})
	g.Go(func() error {
		catalog, err := l.api.GetSkillCatalog(gctx)
		snap.Catalog = catalog
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load job preferences: %w", err)
	}

	if snap.Catalog == nil {
		snap.Catalog = &models.SkillCatalog{}
	}

	return &snap, nil
}

// ListQuery is the search box and work type filter of the list screen.
type ListQuery struct {
	Search   string `json:"search"`
	Worktype string `json:"worktype"`
}

func (q ListQuery) IsZero() bool {
	return strings.TrimSpace(q.Search) == "" && q.Worktype == ""
}

// Filter keeps the profiles whose name, role, vendor or product type contains
// search (case-insensitive) and whose work type equals worktype when set.
func Filter(profiles []models.JobProfile, search, worktype string) []models.JobProfile {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := []models.JobProfile{}
	for _, p := range profiles {
		if worktype != "" && p.Worktype != worktype {
			continue
		}
		if needle != "" && !matches(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p models.JobProfile, needle string) bool {
	for _, field := range []string{p.ProfileName, p.JobRole, p.ProductVendor, p.ProductType} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Find returns the profile with id from profiles.
func Find(profiles []models.JobProfile, id int64) (*models.JobProfile, bool) {
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i], true
		}
	}
	return nil, false
}
