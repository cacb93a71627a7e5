package dashboard

import (
	"context"
	"fmt"
	"sync"

	"talentgraph-bot/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	SectionRecommendations = "recommendations"
	SectionInvites         = "invites"
	SectionMatches         = "matches"
	SectionApplications    = "applications"
	SectionPostings        = "postings"
	SectionCandidates      = "candidates"
)

type CandidateAPI interface {
	ListRecommendations(ctx context.Context) ([]models.Recommendation, error)
	ListInvites(ctx context.Context) ([]models.Invite, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
	Swipe(ctx context.Context, req models.SwipeRequest) error
	Apply(ctx context.Context, jobID int64) (*models.Application, error)
}

// CandidateView is the candidate dashboard. A section that failed to load is
// empty and has its error in Errors.
type CandidateView struct {
	Recommendations []models.Recommendation
	Invites         []models.Invite
	Matches         []models.Match
	Applications    []models.Application
	Errors          map[string]error
}

type Candidate struct {
	api    CandidateAPI
	guard  Guard
	logger *zap.Logger

	mu   sync.Mutex
	view CandidateView
}

func NewCandidate(api CandidateAPI, guard Guard, logger *zap.Logger) *Candidate {
	return &Candidate{
		api:    api,
		guard:  guard,
		logger: logger,
		view:   CandidateView{Errors: map[string]error{}},
	}
}

// Load fetches every section in parallel.
func (c *Candidate) Load(ctx context.Context) *CandidateView {
	return c.refetch(ctx, SectionRecommendations, SectionInvites, SectionMatches, SectionApplications)
}

func (c *Candidate) Like(ctx context.Context, jobID int64) (*CandidateView, error) {
	return c.swipe(ctx, jobID, models.SwipeLike)
}

func (c *Candidate) Pass(ctx context.Context, jobID int64) (*CandidateView, error) {
	return c.swipe(ctx, jobID, models.SwipePass)
}

func (c *Candidate) swipe(ctx context.Context, jobID int64, direction string) (*CandidateView, error) {
	err := guarded(ctx, c.guard, jobKey(jobID), func() error {
		return c.api.Swipe(ctx, models.SwipeRequest{JobID: jobID, Direction: direction})
	})
	if err != nil {
		return nil, fmt.Errorf("%s job %d: %w", direction, jobID, err)
	}

	c.logger.Info("job swiped", zap.Int64("job_id", jobID), zap.String("direction", direction))

	return c.refetch(ctx, SectionRecommendations, SectionMatches), nil
}

func (c *Candidate) Apply(ctx context.Context, jobID int64) (*CandidateView, error) {
	err := guarded(ctx, c.guard, jobKey(jobID), func() error {
		_, err := c.api.Apply(ctx, jobID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("apply to job %d: %w", jobID, err)
	}

	c.logger.Info("applied to job", zap.Int64("job_id", jobID))

	return c.refetch(ctx, SectionApplications, SectionRecommendations), nil
}

func (c *Candidate) refetch(ctx context.Context, sections ...string) *CandidateView {
	var g errgroup.Group

	for _, section := range sections {
		section := section
		g.Go(func() error {
			c.loadSection(ctx, section)
			return nil
		})
	}
	_ = g.Wait()

	return c.snapshot()
}

func (c *Candidate) loadSection(ctx context.Context, section string) {
	var (
		apply func()
		err   error
	)

	switch section {
	case SectionRecommendations:
		var items []models.Recommendation
		items, err = c.api.ListRecommendations(ctx)
		apply = func() { c.view.Recommendations = items }
	case SectionInvites:
		var items []models.Invite
		items, err = c.api.ListInvites(ctx)
		apply = func() { c.view.Invites = items }
	case SectionMatches:
		var items []models.Match
		items, err = c.api.ListMatches(ctx)
		apply = func() { c.view.Matches = items }
	case SectionApplications:
		var items []models.Application
		items, err = c.api.ListApplications(ctx)
		apply = func() { c.view.Applications = items }
	default:
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Warn("failed to load dashboard section", zap.String("section", section), zap.Error(err))
		c.view.Errors[section] = err
		return
	}
	delete(c.view.Errors, section)
	apply()
}

func (c *Candidate) snapshot() *CandidateView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := c.view
	view.Errors = make(map[string]error, len(c.view.Errors))
	for k, v := range c.view.Errors {
		view.Errors[k] = v
	}
	return &view
}

// View returns the last loaded dashboard without fetching.
func (c *Candidate) View() *CandidateView {
	return c.snapshot()
}

// Recommendation finds a loaded recommendation by job id.
func (v *CandidateView) Recommendation(jobID int64) (models.Recommendation, bool) {
	for _, rec := range v.Recommendations {
		if rec.Job.ID == jobID {
			return rec, true
		}
	}
	return models.Recommendation{}, false
}
