package middleware

import (
	"context"
	"errors"
	"testing"

	"talentgraph-bot/internal/bot/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// fakeContext implements the parts of tele.Context the middleware touches.
type fakeContext struct {
	tele.Context

	sender    *tele.User
	text      string
	callback  *tele.Callback
	values    map[string]interface{}
	sent      []interface{}
	responses []*tele.CallbackResponse
}

func newFakeContext(userID int64, text string) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: userID}, text: text, values: map[string]interface{}{}}
}

func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Text() string             { return f.text }
func (f *fakeContext) Callback() *tele.Callback { return f.callback }
func (f *fakeContext) Message() *tele.Message   { return &tele.Message{Text: f.text} }

func (f *fakeContext) Set(key string, val interface{}) { f.values[key] = val }
func (f *fakeContext) Get(key string) interface{}      { return f.values[key] }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) Reply(what interface{}, opts ...interface{}) error {
	return f.Send(what, opts...)
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		resp = []*tele.CallbackResponse{nil}
	}
	f.responses = append(f.responses, resp[0])
	return nil
}

type counterFunc func() (int64, error)

func (fn counterFunc) IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error) {
	return fn()
}

type tokenStore map[int64]string

func (s tokenStore) GetAPIToken(ctx context.Context, userID int64) (string, error) {
	return s[userID], nil
}

func counting(calls *int) tele.HandlerFunc {
	return func(c tele.Context) error {
		*calls++
		return nil
	}
}

func TestIsPublic(t *testing.T) {
	for _, text := range []string{"/start", "/help", "/login abc", "/Login@TalentGraphBot abc", utils.BtnHelp} {
		assert.True(t, IsPublic(text), text)
	}
	for _, text := range []string{"/preferences", "/dashboard", "/logout", "hello", "", utils.BtnPreferences} {
		assert.False(t, IsPublic(text), text)
	}
}

func TestLoginCommandIsDetected(t *testing.T) {
	assert.True(t, isLoginCommand("  /login secret"))
	assert.False(t, isLoginCommand("login secret"))
	assert.False(t, isLoginCommand("/logout"))
}

func TestAuthLoadsToken(t *testing.T) {
	calls := 0
	c := newFakeContext(1, "/preferences")

	err := Auth(tokenStore{1: "secret"}, zap.NewNop())(counting(&calls))(c)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "secret", c.Get(TokenKey))
}

func TestAuthBlocksSignedOutUsers(t *testing.T) {
	calls := 0
	mw := Auth(tokenStore{}, zap.NewNop())(counting(&calls))

	blocked := newFakeContext(2, "/dashboard")
	require.NoError(t, mw(blocked))
	assert.Equal(t, 0, calls)
	assert.Len(t, blocked.sent, 1)

	button := newFakeContext(2, "")
	button.callback = &tele.Callback{Data: "pf_list"}
	require.NoError(t, mw(button))
	assert.Equal(t, 0, calls)
	require.Len(t, button.responses, 1)

	require.NoError(t, mw(newFakeContext(2, "/login abc")))
	assert.Equal(t, 1, calls)
	assert.Nil(t, blocked.Get(TokenKey))
}

func TestRateLimitWarnsOncePerWindow(t *testing.T) {
	count := int64(0)
	counter := counterFunc(func() (int64, error) {
		count++
		return count, nil
	})

	calls := 0
	mw := RateLimit(counter, 2, zap.NewNop())(counting(&calls))
	c := newFakeContext(3, "hi")

	for i := 0; i < 5; i++ {
		require.NoError(t, mw(c))
	}

	assert.Equal(t, 2, calls)
	require.Len(t, c.sent, 1)
	assert.Contains(t, c.sent[0], "Too many requests")
}

func TestRateLimitFailsOpen(t *testing.T) {
	counter := counterFunc(func() (int64, error) { return 0, errors.New("redis down") })

	calls := 0
	require.NoError(t, RateLimit(counter, 1, zap.NewNop())(counting(&calls))(newFakeContext(4, "hi")))
	assert.Equal(t, 1, calls)
}

func TestRecoveryAnswersCallback(t *testing.T) {
	c := newFakeContext(5, "")
	c.callback = &tele.Callback{Data: "db_like:1"}

	err := Recovery(zap.NewNop())(func(tele.Context) error { panic("boom") })(c)

	require.NoError(t, err)
	require.Len(t, c.responses, 1)
	assert.Equal(t, panicMessage, c.responses[0].Text)
	assert.Equal(t, []interface{}{panicMessage}, c.sent)
}
