package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

func newTestSession(sid core.SessionID, uid domain.UserID, username string) (core.Session, *fakeConn) {
	conn := &fakeConn{}
	return core.NewSession(sid, &domain.User{ID: uid, Username: username}, conn), conn
}

func TestRegistry_MultiSession(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	s1, _ := newTestSession("s1", "u1", "alice")
	s2, _ := newTestSession("s2", "u1", "alice")

	assert.True(t, r.Register(s1, nil), "first session brings the user online")
	assert.False(t, r.Register(s2, nil), "second tab does not change presence")

	assert.True(t, r.IsOnline("u1"))
	assert.Equal(t, 1, r.OnlineCount(), "users are counted, not connections")
	assert.Len(t, r.SessionsOf("u1"), 2)

	uid, wentOffline, ok := r.Unregister("s1")
	require.True(t, ok)
	assert.Equal(t, domain.UserID("u1"), uid)
	assert.False(t, wentOffline, "one tab still open")
	assert.True(t, r.IsOnline("u1"))

	_, wentOffline, ok = r.Unregister("s2")
	require.True(t, ok)
	assert.True(t, wentOffline, "last session gone")
	assert.False(t, r.IsOnline("u1"))
	assert.Equal(t, 0, r.OnlineCount())
}

func TestRegistry_UnregisterUnknown(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	_, _, ok := r.Unregister("nope")
	assert.False(t, ok)
}

func TestRegistry_UnregisterOnlyRemovesMatchingSession(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	s1, _ := newTestSession("s1", "u1", "alice")
	s2, _ := newTestSession("s2", "u2", "bob")
	r.Register(s1, nil)
	r.Register(s2, nil)

	r.Unregister("s1")

	_, found := r.Get("s1")
	assert.False(t, found)
	got, found := r.Get("s2")
	require.True(t, found)
	assert.Equal(t, "bob", got.User().Username)
}

func TestRegistry_Username(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	s1, _ := newTestSession("s1", "u1", "alice")
	r.Register(s1, nil)

	name, ok := r.Username("u1")
	require.True(t, ok)
	assert.Equal(t, "alice", name)

	_, ok = r.Username("u2")
	assert.False(t, ok)
}

func TestRegistry_OnlineAdminCount(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	admin := core.NewSession("s1", &domain.User{ID: "u1", Username: "root", IsAdmin: true}, &fakeConn{})
	user, _ := newTestSession("s2", "u2", "bob")
	r.Register(admin, nil)
	r.Register(user, nil)

	assert.Equal(t, 1, r.OnlineAdminCount())
}

func TestRegistry_CancelFiresBoundContext(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	fired := false
	s1, _ := newTestSession("s1", "u1", "alice")
	r.Register(s1, func() { fired = true })

	assert.True(t, r.Cancel("s1"))
	assert.True(t, fired)
	assert.False(t, r.Cancel("nope"))
}

func TestRegistry_ReRegisterSameSessionIDCancelsOld(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	oldCanceled := false
	s1, _ := newTestSession("s1", "u1", "alice")
	r.Register(s1, func() { oldCanceled = true })

	s1b, _ := newTestSession("s1", "u1", "alice")
	r.Register(s1b, nil)

	assert.True(t, oldCanceled, "stale binding torn down on id reuse")
	assert.Len(t, r.SessionsOf("u1"), 1)
}
