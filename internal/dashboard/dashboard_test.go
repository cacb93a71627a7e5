package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"talentgraph-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error

	swipes   []models.SwipeRequest
	statuses map[int64]string

	// block, when set, holds Swipe and Apply until it is closed
	block   chan struct{}
	entered chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		calls:    map[string]int{},
		fail:     map[string]error{},
		statuses: map[int64]string{},
	}
}

func (f *fakeAPI) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.fail[name]
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAPI) ListRecommendations(ctx context.Context) ([]models.Recommendation, error) {
	if err := f.hit(SectionRecommendations); err != nil {
		return nil, err
	}
	return []models.Recommendation{{Job: models.JobPosting{ID: 31, Title: "DBA"}, MatchPercentage: 87}}, nil
}

func (f *fakeAPI) ListInvites(ctx context.Context) ([]models.Invite, error) {
	if err := f.hit(SectionInvites); err != nil {
		return nil, err
	}
	return []models.Invite{{ID: 1}}, nil
}

func (f *fakeAPI) ListMatches(ctx context.Context) ([]models.Match, error) {
	if err := f.hit(SectionMatches); err != nil {
		return nil, err
	}
	return []models.Match{{ID: 2}}, nil
}

func (f *fakeAPI) ListApplications(ctx context.Context) ([]models.Application, error) {
	if err := f.hit(SectionApplications); err != nil {
		return nil, err
	}
	return []models.Application{{ID: 3, JobID: 31, Status: models.ApplicationApplied}}, nil
}

func (f *fakeAPI) Swipe(ctx context.Context, req models.SwipeRequest) error {
	f.wait()
	f.mu.Lock()
	f.swipes = append(f.swipes, req)
	f.mu.Unlock()
	return f.hit("swipe")
}

func (f *fakeAPI) Apply(ctx context.Context, jobID int64) (*models.Application, error) {
	f.wait()
	if err := f.hit("apply"); err != nil {
		return nil, err
	}
	return &models.Application{JobID: jobID, Status: models.ApplicationApplied}, nil
}

func (f *fakeAPI) ListJobPostings(ctx context.Context) ([]models.JobPosting, error) {
	if err := f.hit(SectionPostings); err != nil {
		return nil, err
	}
	return []models.JobPosting{{ID: 7, Title: "Oracle DBA"}}, nil
}

func (f *fakeAPI) ListCandidateRecommendations(ctx context.Context, postingID int64) ([]models.CandidateRecommendation, error) {
	if err := f.hit(SectionCandidates); err != nil {
		return nil, err
	}
	return []models.CandidateRecommendation{{CandidateID: 50, FullName: "Ada"}}, nil
}

func (f *fakeAPI) ListRecruiterMatches(ctx context.Context) ([]models.Match, error) {
	if err := f.hit(SectionMatches); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeAPI) ListRecruiterApplications(ctx context.Context) ([]models.Application, error) {
	if err := f.hit(SectionApplications); err != nil {
		return nil, err
	}
	return []models.Application{{ID: 9, Status: models.ApplicationApplied}}, nil
}

func (f *fakeAPI) UpdateApplicationStatus(ctx context.Context, applicationID int64, status string) error {
	f.mu.Lock()
	f.statuses[applicationID] = status
	f.mu.Unlock()
	return f.hit("status")
}

func TestCandidateLoadIsolatesFailures(t *testing.T) {
	api := newFakeAPI()
	api.fail[SectionInvites] = errors.New("boom")

	view := NewCandidate(api, NewLocalGuard(), zap.NewNop()).Load(context.Background())

	assert.Len(t, view.Recommendations, 1)
	assert.Len(t, view.Matches, 1)
	assert.Len(t, view.Applications, 1)
	assert.Empty(t, view.Invites)
	require.Contains(t, view.Errors, SectionInvites)
	assert.Len(t, view.Errors, 1)
}

func TestLikeRefetchesAffectedSections(t *testing.T) {
	api := newFakeAPI()
	c := NewCandidate(api, NewLocalGuard(), zap.NewNop())
	c.Load(context.Background())

	view, err := c.Like(context.Background(), 31)
	require.NoError(t, err)

	assert.Equal(t, []models.SwipeRequest{{JobID: 31, Direction: models.SwipeLike}}, api.swipes)
	assert.Equal(t, 2, api.count(SectionRecommendations))
	assert.Equal(t, 2, api.count(SectionMatches))
	assert.Equal(t, 1, api.count(SectionInvites))
	assert.Len(t, view.Invites, 1)
}

func TestApplyRefetchesApplications(t *testing.T) {
	api := newFakeAPI()
	c := NewCandidate(api, NewLocalGuard(), zap.NewNop())

	view, err := c.Apply(context.Background(), 31)
	require.NoError(t, err)
	assert.Equal(t, 1, api.count("apply"))
	assert.Len(t, view.Applications, 1)
	assert.Zero(t, api.count(SectionInvites))
}

func TestFailedActionDoesNotRefetch(t *testing.T) {
	api := newFakeAPI()
	api.fail["swipe"] = errors.New("down")
	c := NewCandidate(api, NewLocalGuard(), zap.NewNop())

	_, err := c.Pass(context.Background(), 31)
	require.Error(t, err)
	assert.Zero(t, api.count(SectionRecommendations))
}

func TestInFlightIsPerJob(t *testing.T) {
	api := newFakeAPI()
	api.block = make(chan struct{})
	api.entered = make(chan struct{}, 2)

	guard := NewLocalGuard()
	c := NewCandidate(api, guard, zap.NewNop())

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, id := range []int64{31, 32} {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Apply(context.Background(), id)
			errs <- err
		}()
	}

	// both jobs are in flight at the same time
	<-api.entered
	<-api.entered

	_, err := c.Apply(context.Background(), 31)
	assert.ErrorIs(t, err, ErrInFlight)

	close(api.block)
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	api.entered = nil
	api.block = nil
	_, err = c.Apply(context.Background(), 31)
	assert.NoError(t, err)
	assert.Equal(t, 3, api.count("apply"))
}

func TestRecruiterFlow(t *testing.T) {
	api := newFakeAPI()
	r := NewRecruiter(api, NewLocalGuard(), zap.NewNop())

	view := r.Load(context.Background(), 0)
	assert.Len(t, view.Postings, 1)
	assert.Empty(t, view.Candidates)
	assert.Zero(t, api.count(SectionCandidates))

	view = r.Load(context.Background(), 7)
	require.Len(t, view.Candidates, 1)

	view, err := r.Like(context.Background(), 7, 50)
	require.NoError(t, err)
	require.Len(t, api.swipes, 1)
	assert.Equal(t, int64(7), api.swipes[0].JobID)
	assert.Equal(t, int64(50), *api.swipes[0].CandidateID)
	assert.Equal(t, int64(7), view.PostingID)

	_, err = r.SetApplicationStatus(context.Background(), 9, "promoted")
	assert.Error(t, err)

	view, err = r.SetApplicationStatus(context.Background(), 9, models.ApplicationShortlisted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationShortlisted, api.statuses[9])
	assert.Len(t, view.Applications, 1)
}
