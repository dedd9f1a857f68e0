package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

// fakeConn records every frame handed to it so tests can assert on the
// exact fan-out a session received.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	closed bool
	fail   bool
}

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("send buffer full")
	}
	cp := make(core.Frame, len(f))
	copy(cp, f)
	c.frames = append(c.frames, cp)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) sent() []core.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
}

// types lists the type field of every received frame, in arrival order.
func (c *fakeConn) types(t *testing.T) []string {
	t.Helper()
	var out []string
	for _, f := range c.sent() {
		var env struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(f, &env))
		out = append(out, env.Type)
	}
	return out
}

// byType filters received frames down to one event type.
func (c *fakeConn) byType(t *testing.T, typ string) []core.Frame {
	t.Helper()
	var out []core.Frame
	for _, f := range c.sent() {
		var env struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(f, &env))
		if env.Type == typ {
			out = append(out, f)
		}
	}
	return out
}

func decode[T any](t *testing.T, f core.Frame) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(f, &v))
	return v
}

// testEnv wires a Relay to mocked collaborators.
type testEnv struct {
	relay     *Relay
	store     *MockContentStore
	policy    *MockModerationPolicy
	safety    *MockContentSafetyFilter
	notify    *MockNotificationStore
	anon      *MockAnonymousIdentityService
	callStore *MockCallStore
	conns     []*fakeConn
}

// resetFrames discards everything recorded so far on every connection,
// typically after the connect/join setup phase.
func (e *testEnv) resetFrames() {
	for _, c := range e.conns {
		c.reset()
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	env := &testEnv{
		store:     NewMockContentStore(ctrl),
		policy:    NewMockModerationPolicy(ctrl),
		safety:    NewMockContentSafetyFilter(ctrl),
		notify:    NewMockNotificationStore(ctrl),
		anon:      NewMockAnonymousIdentityService(ctrl),
		callStore: NewMockCallStore(ctrl),
	}
	env.relay = New(Config{}, Collaborators{
		Store:     env.store,
		Policy:    env.policy,
		Safety:    env.safety,
		Notify:    env.notify,
		Anon:      env.anon,
		CallStore: env.callStore,
	})
	return env
}

// connect registers a fresh session for the given user and returns its id
// plus the recording connection. Call it twice with the same uid to model
// a second tab.
func (e *testEnv) connect(t *testing.T, uid domain.UserID, username string) (core.SessionID, *fakeConn) {
	t.Helper()
	conn := &fakeConn{}
	sid := core.SessionID(uuid.NewString())
	sess := core.NewSession(sid, &domain.User{ID: uid, Username: username}, conn)
	_, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	e.relay.OnConnect(sess, cancel)
	e.conns = append(e.conns, conn)
	e.resetFrames() // discard the presence churn from connecting
	return sid, conn
}
