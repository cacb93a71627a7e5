package talentgraph

import (
	"context"
	"fmt"

	"talentgraph-bot/internal/models"

	"go.uber.org/zap"
)

func (c *Client) GetCandidateProfile(ctx context.Context) (*models.CandidateProfile, error) {
	data, err := c.get(ctx, "/candidates/profile", nil)
	if err != nil {
		return nil, fmt.Errorf("get candidate profile: %w", err)
	}

	var profile models.CandidateProfile
	if err := c.parseResponse(data, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (c *Client) ListResumes(ctx context.Context) ([]models.Resume, error) {
	data, err := c.get(ctx, "/candidates/resumes", nil)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}

	var resumes []models.Resume
	if err := c.parseResponse(data, &resumes); err != nil {
		c.logger.Error("failed to parse resumes", zap.Error(err))
		return nil, err
	}

	return resumes, nil
}

func (c *Client) ListCertifications(ctx context.Context) ([]models.Certification, error) {
	data, err := c.get(ctx, "/candidates/certifications", nil)
	if err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}

	var certs []models.Certification
	if err := c.parseResponse(data, &certs); err != nil {
		c.logger.Error("failed to parse certifications", zap.Error(err))
		return nil, err
	}

	return certs, nil
}

func (c *Client) GetSkillCatalog(ctx context.Context) (*models.SkillCatalog, error) {
	data, err := c.get(ctx, "/candidates/skill-catalogs", nil)
	if err != nil {
		return nil, fmt.Errorf("get skill catalog: %w", err)
	}

	var catalog models.SkillCatalog
	if err := c.parseResponse(data, &catalog); err != nil {
		c.logger.Error("failed to parse skill catalog", zap.Error(err))
		return nil, err
	}

	c.logger.Debug("skill catalog retrieved",
		zap.Int("technical", len(catalog.TechnicalSkills)),
		zap.Int("soft", len(catalog.SoftSkills)),
	)

	return &catalog, nil
}
