package redis

import (
	"context"
)

// InFlight marks user actions as running with SET NX. Keys expire after
// InFlightTTL so a crashed handler cannot block an action for good.
type InFlight struct {
	cache  *Cache
	userID int64
}

// InFlight returns the guard for one user's actions.
func (c *Cache) InFlight(userID int64) *InFlight {
	return &InFlight{cache: c, userID: userID}
}

func (g *InFlight) Acquire(ctx context.Context, key string) (bool, error) {
	redisKey := InFlightKey(g.userID, key)

	ok, err := g.cache.client.SetNX(ctx, redisKey, "1", InFlightTTL).Result()
	if err != nil {
		return false, g.cache.fail("setnx", err, redisKey)
	}
	return ok, nil
}

func (g *InFlight) Release(ctx context.Context, key string) {
	_ = g.cache.del(ctx, InFlightKey(g.userID, key))
}
