package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInFlight is returned when the same action target is already being processed.
var ErrInFlight = errors.New("action already in progress")

// Guard marks action targets as busy. Different keys never block each other.
type Guard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

// LocalGuard is an in-process Guard.
type LocalGuard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{busy: make(map[string]struct{})}
}

func (g *LocalGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[key]; ok {
		return false, nil
	}
	g.busy[key] = struct{}{}
	return true, nil
}

func (g *LocalGuard) Release(_ context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, key)
}

func jobKey(id int64) string {
	return fmt.Sprintf("job:%d", id)
}

func candidateKey(postingID, candidateID int64) string {
	return fmt.Sprintf("candidate:%d:%d", postingID, candidateID)
}

func applicationKey(id int64) string {
	return fmt.Sprintf("application:%d", id)
}

// guarded runs fn while holding key.
func guarded(ctx context.Context, g Guard, key string, fn func() error) error {
	ok, err := g.Acquire(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInFlight
	}
	defer g.Release(context.Background(), key)

	return fn()
}
