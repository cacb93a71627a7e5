package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentgraph-bot/internal/models"
	"talentgraph-bot/internal/preference"

	"github.com/redis/go-redis/v9"
)

const (
	RateLimitWindowTTL = 1 * time.Minute
	UserStateCacheTTL  = 30 * time.Minute
	InFlightTTL        = 30 * time.Second
)

const (
	stateField = "state"
	argField   = "arg"
)

func RateLimitKey(userID int64) string {
	return fmt.Sprintf("ratelimit:user:%d", userID)
}

func UserStateKey(userID int64) string {
	return fmt.Sprintf("state:user:%d", userID)
}

func FormDraftKey(userID int64) string {
	return fmt.Sprintf("form:user:%d", userID)
}

func CatalogKey(userID int64) string {
	return fmt.Sprintf("form:user:%d:catalog", userID)
}

func ListQueryKey(userID int64) string {
	return fmt.Sprintf("prefs:user:%d:query", userID)
}

func DeleteFlowKey(userID int64) string {
	return fmt.Sprintf("prefs:user:%d:delete", userID)
}

func InFlightKey(userID int64, action string) string {
	return fmt.Sprintf("inflight:user:%d:%s", userID, action)
}

func (c *Cache) IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error) {
	return c.incrWindow(ctx, RateLimitKey(userID), RateLimitWindowTTL)
}

// SetUserState records what the next text message of the user answers. arg
// carries the state parameter, such as the field being edited.
func (c *Cache) SetUserState(ctx context.Context, userID int64, state, arg string) error {
	key := UserStateKey(userID)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, stateField, state, argField, arg)
		pipe.Expire(ctx, key, UserStateCacheTTL)
		return nil
	})
	if err != nil {
		return c.fail("set state", err, key)
	}
	return nil
}

// GetUserState returns an empty state when none is set.
func (c *Cache) GetUserState(ctx context.Context, userID int64) (string, string, error) {
	key := UserStateKey(userID)

	values, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return "", "", c.fail("get state", err, key)
	}

	return values[stateField], values[argField], nil
}

func (c *Cache) DeleteUserState(ctx context.Context, userID int64) error {
	return c.del(ctx, UserStateKey(userID))
}

// SaveForm stores the draft being edited.
func (c *Cache) SaveForm(ctx context.Context, userID int64, form *preference.Form, ttl time.Duration) error {
	return c.setJSON(ctx, FormDraftKey(userID), form, ttl)
}

// LoadForm returns a closed blank form when there is no draft.
func (c *Cache) LoadForm(ctx context.Context, userID int64) (*preference.Form, error) {
	form, err := getJSON[preference.Form](ctx, c, FormDraftKey(userID))
	if errors.Is(err, ErrCacheMiss) {
		return preference.NewForm(), nil
	}
	return form, err
}

// DropForm removes the draft together with its skill catalog.
func (c *Cache) DropForm(ctx context.Context, userID int64) error {
	return c.del(ctx, FormDraftKey(userID), CatalogKey(userID))
}

// SetCatalog caches the skill catalog for the lifetime of one form session.
func (c *Cache) SetCatalog(ctx context.Context, userID int64, catalog *models.SkillCatalog, ttl time.Duration) error {
	return c.setJSON(ctx, CatalogKey(userID), catalog, ttl)
}

func (c *Cache) GetCatalog(ctx context.Context, userID int64) (*models.SkillCatalog, error) {
	return getJSON[models.SkillCatalog](ctx, c, CatalogKey(userID))
}

func (c *Cache) SaveListQuery(ctx context.Context, userID int64, q preference.ListQuery) error {
	return c.setJSON(ctx, ListQueryKey(userID), q, UserStateCacheTTL)
}

func (c *Cache) LoadListQuery(ctx context.Context, userID int64) (preference.ListQuery, error) {
	q, err := getJSON[preference.ListQuery](ctx, c, ListQueryKey(userID))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			err = nil
		}
		return preference.ListQuery{}, err
	}
	return *q, nil
}

func (c *Cache) SaveDeleteFlow(ctx context.Context, userID int64, d *preference.DeleteFlow) error {
	return c.setJSON(ctx, DeleteFlowKey(userID), d, UserStateCacheTTL)
}

func (c *Cache) LoadDeleteFlow(ctx context.Context, userID int64) (*preference.DeleteFlow, error) {
	d, err := getJSON[preference.DeleteFlow](ctx, c, DeleteFlowKey(userID))
	if errors.Is(err, ErrCacheMiss) {
		return preference.NewDeleteFlow(), nil
	}
	return d, err
}
