package preference

import (
	"context"
	"errors"
	"fmt"

	"talentgraph-bot/internal/api/talentgraph"
	"talentgraph-bot/internal/models"
	"talentgraph-bot/internal/validator"

	"go.uber.org/zap"
)

// ProfileWriter is the part of the API the form needs. Saved profiles are
// resolved from the list; there is no single-profile read.
type ProfileWriter interface {
	ListJobProfiles(ctx context.Context) ([]models.JobProfile, error)
	CreateJobProfile(ctx context.Context, payload *models.ProfilePayload) (*models.JobProfile, error)
	UpdateJobProfile(ctx context.Context, id int64, payload *models.ProfilePayload) (*models.JobProfile, error)
}

// Controller saves forms through the API and runs the saved hook on success.
type Controller struct {
	api      ProfileWriter
	validate *validator.Validator
	logger   *zap.Logger
	onSaved  func(ctx context.Context, saved *models.JobProfile)
}

func NewController(api ProfileWriter, validate *validator.Validator, logger *zap.Logger) *Controller {
	return &Controller{
		api:      api,
		validate: validate,
		logger:   logger,
	}
}

// OnSaved registers the hook run after every successful save, typically a
// list refetch.
func (c *Controller) OnSaved(fn func(ctx context.Context, saved *models.JobProfile)) {
	c.onSaved = fn
}

// Submit updates the record being edited, or creates one when the form is new.
// On failure the form is left exactly as it was.
func (c *Controller) Submit(ctx context.Context, f *Form) (*models.JobProfile, error) {
	if f.EditingID != nil {
		return c.save(ctx, f, f.EditingID)
	}
	return c.save(ctx, f, nil)
}

// SaveAsNew always creates, so an edited record can be stored as a sibling copy.
func (c *Controller) SaveAsNew(ctx context.Context, f *Form) (*models.JobProfile, error) {
	return c.save(ctx, f, nil)
}

func (c *Controller) save(ctx context.Context, f *Form, id *int64) (*models.JobProfile, error) {
	payload := f.Payload()

	if err := c.validate.Validate(payload); err != nil {
		return nil, err
	}

	var (
		saved *models.JobProfile
		err   error
	)
	if id != nil {
		saved, err = c.api.UpdateJobProfile(ctx, *id, payload)
	} else {
		saved, err = c.api.CreateJobProfile(ctx, payload)
	}
	if err != nil {
		c.logger.Warn("failed to save job preference",
			zap.Bool("update", id != nil),
			zap.Error(err),
		)
		return nil, err
	}

	f.Reset()

	if c.onSaved != nil {
		c.onSaved(ctx, saved)
	}

	return saved, nil
}

// lookup finds a saved profile in the profile list. A profile that is not
// listed, or a list that is not found, yields nil without an error.
func (c *Controller) lookup(ctx context.Context, id int64) (*models.JobProfile, error) {
	profiles, err := c.api.ListJobProfiles(ctx)
	if talentgraph.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open job preference: %w", err)
	}

	profile, ok := Find(profiles, id)
	if !ok {
		return nil, nil
	}
	return profile, nil
}

// Open loads a saved profile into f for editing. A profile that does not
// exist opens a blank form instead of failing.
func (c *Controller) Open(ctx context.Context, f *Form, id int64) error {
	profile, err := c.lookup(ctx, id)
	if err != nil {
		return err
	}
	if profile == nil {
		c.logger.Debug("job preference not found, opening create mode", zap.Int64("profile_id", id))
		f.OpenNew()
		return nil
	}

	f.StartEdit(profile)
	return nil
}

// OpenCopy loads a saved profile into f as a new record. It reports false
// when the profile no longer exists and leaves f untouched.
func (c *Controller) OpenCopy(ctx context.Context, f *Form, id int64) (bool, error) {
	profile, err := c.lookup(ctx, id)
	if err != nil || profile == nil {
		return false, err
	}

	f.Duplicate(profile)
	return true, nil
}

// ErrorMessage turns a save or load failure into text for the user.
func ErrorMessage(err error) string {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return "Please fix: " + verr.Summary()
	}
	return talentgraph.UserMessage(err)
}
