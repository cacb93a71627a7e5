package dashboard

import (
	"context"
	"fmt"
	"sync"

	"talentgraph-bot/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RecruiterAPI interface {
	ListJobPostings(ctx context.Context) ([]models.JobPosting, error)
	ListCandidateRecommendations(ctx context.Context, postingID int64) ([]models.CandidateRecommendation, error)
	ListRecruiterMatches(ctx context.Context) ([]models.Match, error)
	ListRecruiterApplications(ctx context.Context) ([]models.Application, error)
	Swipe(ctx context.Context, req models.SwipeRequest) error
	UpdateApplicationStatus(ctx context.Context, applicationID int64, status string) error
}

var applicationStatuses = map[string]struct{}{
	models.ApplicationApplied:     {},
	models.ApplicationShortlisted: {},
	models.ApplicationInterview:   {},
	models.ApplicationRejected:    {},
	models.ApplicationHired:       {},
}

// RecruiterView is the recruiter dashboard for one selected posting.
type RecruiterView struct {
	PostingID    int64
	Postings     []models.JobPosting
	Candidates   []models.CandidateRecommendation
	Matches      []models.Match
	Applications []models.Application
	Errors       map[string]error
}

type Recruiter struct {
	api    RecruiterAPI
	guard  Guard
	logger *zap.Logger

	mu   sync.Mutex
	view RecruiterView
}

func NewRecruiter(api RecruiterAPI, guard Guard, logger *zap.Logger) *Recruiter {
	return &Recruiter{
		api:    api,
		guard:  guard,
		logger: logger,
		view:   RecruiterView{Errors: map[string]error{}},
	}
}

// Load fetches the dashboard with postingID selected. Zero selects no posting
// and skips the candidate list.
func (r *Recruiter) Load(ctx context.Context, postingID int64) *RecruiterView {
	r.mu.Lock()
	r.view.PostingID = postingID
	r.view.Candidates = nil
	r.mu.Unlock()

	return r.refetch(ctx, SectionPostings, SectionCandidates, SectionMatches, SectionApplications)
}

func (r *Recruiter) Like(ctx context.Context, postingID, candidateID int64) (*RecruiterView, error) {
	return r.swipe(ctx, postingID, candidateID, models.SwipeLike)
}

func (r *Recruiter) Pass(ctx context.Context, postingID, candidateID int64) (*RecruiterView, error) {
	return r.swipe(ctx, postingID, candidateID, models.SwipePass)
}

func (r *Recruiter) swipe(ctx context.Context, postingID, candidateID int64, direction string) (*RecruiterView, error) {
	err := guarded(ctx, r.guard, candidateKey(postingID, candidateID), func() error {
		return r.api.Swipe(ctx, models.SwipeRequest{
			JobID:       postingID,
			CandidateID: &candidateID,
			Direction:   direction,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%s candidate %d: %w", direction, candidateID, err)
	}

	r.mu.Lock()
	r.view.PostingID = postingID
	r.mu.Unlock()

	return r.refetch(ctx, SectionCandidates, SectionMatches), nil
}

func (r *Recruiter) SetApplicationStatus(ctx context.Context, applicationID int64, status string) (*RecruiterView, error) {
	if _, ok := applicationStatuses[status]; !ok {
		return nil, fmt.Errorf("unknown application status %q", status)
	}

	err := guarded(ctx, r.guard, applicationKey(applicationID), func() error {
		return r.api.UpdateApplicationStatus(ctx, applicationID, status)
	})
	if err != nil {
		return nil, fmt.Errorf("update application %d: %w", applicationID, err)
	}

	r.logger.Info("application status updated",
		zap.Int64("application_id", applicationID),
		zap.String("status", status),
	)

	return r.refetch(ctx, SectionApplications), nil
}

func (r *Recruiter) refetch(ctx context.Context, sections ...string) *RecruiterView {
	var g errgroup.Group

	for _, section := range sections {
		section := section
		g.Go(func() error {
			r.loadSection(ctx, section)
			return nil
		})
	}
	_ = g.Wait()

	return r.View()
}

// View returns the last loaded dashboard without fetching.
func (r *Recruiter) View() *RecruiterView {
	r.mu.Lock()
	defer r.mu.Unlock()

	view := r.view
	view.Errors = make(map[string]error, len(r.view.Errors))
	for k, v := range r.view.Errors {
		view.Errors[k] = v
	}
	return &view
}

func (r *Recruiter) loadSection(ctx context.Context, section string) {
	r.mu.Lock()
	postingID := r.view.PostingID
	r.mu.Unlock()

	var (
		apply func()
		err   error
	)

	switch section {
	case SectionPostings:
		var items []models.JobPosting
		items, err = r.api.ListJobPostings(ctx)
		apply = func() { r.view.Postings = items }
	case SectionCandidates:
		if postingID == 0 {
			return
		}
		var items []models.CandidateRecommendation
		items, err = r.api.ListCandidateRecommendations(ctx, postingID)
		apply = func() { r.view.Candidates = items }
	case SectionMatches:
		var items []models.Match
		items, err = r.api.ListRecruiterMatches(ctx)
		apply = func() { r.view.Matches = items }
	case SectionApplications:
		var items []models.Application
		items, err = r.api.ListRecruiterApplications(ctx)
		apply = func() { r.view.Applications = items }
	default:
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.logger.Warn("failed to load recruiter section", zap.String("section", section), zap.Error(err))
		r.view.Errors[section] = err
		return
	}
	delete(r.view.Errors, section)
	apply()
}
