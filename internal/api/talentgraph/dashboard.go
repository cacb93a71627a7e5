package talentgraph

import (
	"context"
	"fmt"

	"talentgraph-bot/internal/models"

	"go.uber.org/zap"
)

// getList fetches a JSON array endpoint into dest.
func (c *Client) getList(ctx context.Context, path string, dest interface{}) error {
	data, err := c.get(ctx, path, nil)
	if err != nil {
		return err
	}
	return c.parseResponse(data, dest)
}

func (c *Client) ListRecommendations(ctx context.Context) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	if err := c.getList(ctx, "/candidates/recommendations", &recs); err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	return recs, nil
}

func (c *Client) ListInvites(ctx context.Context) ([]models.Invite, error) {
	var invites []models.Invite
	if err := c.getList(ctx, "/candidates/invites", &invites); err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	return invites, nil
}

func (c *Client) ListMatches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := c.getList(ctx, "/candidates/matches", &matches); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (c *Client) ListApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.getList(ctx, "/candidates/applications", &apps); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func (c *Client) Swipe(ctx context.Context, req models.SwipeRequest) error {
	if _, err := c.post(ctx, "/swipes", req); err != nil {
		return fmt.Errorf("swipe: %w", err)
	}

	c.logger.Info("swipe recorded",
		zap.Int64("job_id", req.JobID),
		zap.String("direction", req.Direction),
	)

	return nil
}

func (c *Client) Apply(ctx context.Context, jobID int64) (*models.Application, error) {
	data, err := c.post(ctx, "/applications", map[string]int64{"job_id": jobID})
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	var app models.Application
	if err := c.parseResponse(data, &app); err != nil {
		return nil, err
	}

	c.logger.Info("application submitted", zap.Int64("job_id", jobID))

	return &app, nil
}

func (c *Client) ListJobPostings(ctx context.Context) ([]models.JobPosting, error) {
	var postings []models.JobPosting
	if err := c.getList(ctx, "/recruiters/job-postings", &postings); err != nil {
		return nil, fmt.Errorf("list job postings: %w", err)
	}
	return postings, nil
}

func (c *Client) ListCandidateRecommendations(ctx context.Context, postingID int64) ([]models.CandidateRecommendation, error) {
	var recs []models.CandidateRecommendation
	path := fmt.Sprintf("/recruiters/job-postings/%d/recommendations", postingID)
	if err := c.getList(ctx, path, &recs); err != nil {
		return nil, fmt.Errorf("list candidate recommendations: %w", err)
	}
	return recs, nil
}

func (c *Client) ListRecruiterMatches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	if err := c.getList(ctx, "/recruiters/matches", &matches); err != nil {
		return nil, fmt.Errorf("list recruiter matches: %w", err)
	}
	return matches, nil
}

func (c *Client) ListRecruiterApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.getList(ctx, "/recruiters/applications", &apps); err != nil {
		return nil, fmt.Errorf("list recruiter applications: %w", err)
	}
	return apps, nil
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, applicationID int64, status string) error {
	path := fmt.Sprintf("/applications/%d/status", applicationID)
	if _, err := c.put(ctx, path, map[string]string{"status": status}); err != nil {
		return fmt.Errorf("update application status: %w", err)
	}

	c.logger.Info("application status updated",
		zap.Int64("application_id", applicationID),
		zap.String("status", status),
	)

	return nil
}
