package scheduler

import (
	"context"
	"net/http"
	"testing"

	"talentgraph-bot/internal/api/talentgraph"
	"talentgraph-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

type fakeStore struct {
	users        []models.User
	seen         map[int64]bool
	checked      []int64
	cleared      []int64
	cleanupCalls int
}

func (s *fakeStore) GetUsersToCheck(ctx context.Context) ([]models.User, error) {
	return s.users, nil
}

func (s *fakeStore) GetUnseenNotifications(ctx context.Context, userID int64, ids []int64) ([]int64, error) {
	var out []int64
	for _, id := range ids {
		if !s.seen[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *fakeStore) MarkNotificationSeen(ctx context.Context, userID, id int64) error {
	s.seen[id] = true
	return nil
}

func (s *fakeStore) UpdateLastCheck(ctx context.Context, userID int64) error {
	s.checked = append(s.checked, userID)
	return nil
}

func (s *fakeStore) ClearAPIToken(ctx context.Context, userID int64) error {
	s.cleared = append(s.cleared, userID)
	return nil
}

func (s *fakeStore) CleanOldSeenNotifications(ctx context.Context, days int) (int64, error) {
	s.cleanupCalls++
	return 0, nil
}

type fakeSource struct {
	notifications []models.Notification
	err           error
	read          []int64
	readErr       error
}

func (f *fakeSource) ListNotifications(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	return f.notifications, f.err
}

func (f *fakeSource) MarkNotificationRead(ctx context.Context, id int64) error {
	f.read = append(f.read, id)
	return f.readErr
}

type fakeSender struct {
	sent []interface{}
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.sent = append(f.sent, what)
	return &tele.Message{}, nil
}

func newChecker(store *fakeStore, source *fakeSource, sender *fakeSender) *NotificationChecker {
	nc := New(sender, store, source, 0, zap.NewNop())
	nc.pause = 0
	return nc
}

func signedIn(id int64) models.User {
	token := "secret"
	return models.User{ID: id, APIToken: &token, CheckEnabled: true}
}

func TestSendsOnlyUnseenNotifications(t *testing.T) {
	store := &fakeStore{users: []models.User{signedIn(1)}, seen: map[int64]bool{10: true}}
	source := &fakeSource{notifications: []models.Notification{
		{ID: 10, Title: "Old"},
		{ID: 11, Title: "New match"},
	}}
	sender := &fakeSender{}

	newChecker(store, source, sender).checkAllUsers(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "New match")
	assert.True(t, store.seen[11])
	assert.Equal(t, []int64{11}, source.read)
	assert.Equal(t, []int64{1}, store.checked)
	assert.Equal(t, 1, store.cleanupCalls)
}

func TestSecondRunSendsNothing(t *testing.T) {
	store := &fakeStore{users: []models.User{signedIn(1)}, seen: map[int64]bool{}}
	source := &fakeSource{notifications: []models.Notification{{ID: 5, Title: "Invite"}}}
	sender := &fakeSender{}

	nc := newChecker(store, source, sender)
	nc.checkAllUsers(context.Background())
	nc.checkAllUsers(context.Background())

	assert.Len(t, sender.sent, 1)
	assert.Equal(t, 1, store.cleanupCalls)
}

func TestExpiredTokenSignsUserOut(t *testing.T) {
	store := &fakeStore{users: []models.User{signedIn(7)}, seen: map[int64]bool{}}
	source := &fakeSource{err: &talentgraph.APIError{StatusCode: http.StatusUnauthorized}}
	sender := &fakeSender{}

	newChecker(store, source, sender).checkAllUsers(context.Background())

	assert.Equal(t, []int64{7}, store.cleared)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "/login")
}

func TestUsersWithoutTokenAreSkipped(t *testing.T) {
	store := &fakeStore{users: []models.User{{ID: 3, CheckEnabled: true}}, seen: map[int64]bool{}}
	source := &fakeSource{notifications: []models.Notification{{ID: 1, Title: "x"}}}
	sender := &fakeSender{}

	newChecker(store, source, sender).checkAllUsers(context.Background())

	assert.Empty(t, sender.sent)
}

func TestFailedReadMarkStillRecordsSeen(t *testing.T) {
	store := &fakeStore{users: []models.User{signedIn(2)}, seen: map[int64]bool{}}
	source := &fakeSource{
		notifications: []models.Notification{{ID: 8, Title: "Interview"}},
		readErr:       &talentgraph.APIError{StatusCode: http.StatusInternalServerError},
	}
	sender := &fakeSender{}

	nc := newChecker(store, source, sender)
	nc.checkAllUsers(context.Background())
	nc.checkAllUsers(context.Background())

	assert.Len(t, sender.sent, 1)
	assert.True(t, store.seen[8])
}
