package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

// Config tunes the relay core. Zero values are replaced by defaults in New.
type Config struct {
	HeartbeatTimeout time.Duration
	SweepInterval    time.Duration
	RateLimit        int
	RateInterval     time.Duration
}

// Collaborators groups the external boundary services the core consumes.
type Collaborators struct {
	Store     core.ContentStore
	Policy    core.ModerationPolicy
	Safety    core.ContentSafetyFilter
	Notify    core.NotificationStore
	Anon      core.AnonymousIdentityService
	CallStore core.CallStore
}

// Relay is the orchestrator: it owns the registry, the room tracker and
// the call table, and runs every domain operation the dispatcher routes
// to it. Registry/tracker mutations are short and lock-scoped; every
// collaborator call happens outside any lock.
type Relay struct {
	cfg      Config
	registry *Registry
	tracker  *RoomTracker
	calls    *callTable
	aliases  *aliasBook
	limiter  *RateLimiter
	ext      Collaborators
}

func New(cfg Config, ext Collaborators) *Relay {
	if cfg.HeartbeatTimeout <= 0 {
		cfg.HeartbeatTimeout = 45 * time.Second
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 15 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 20
	}
	if cfg.RateInterval <= 0 {
		cfg.RateInterval = 10 * time.Second
	}
	return &Relay{
		cfg:      cfg,
		registry: NewRegistry(),
		tracker:  NewRoomTracker(),
		calls:    newCallTable(),
		aliases:  newAliasBook(),
		limiter:  NewRateLimiter(cfg.RateLimit, cfg.RateInterval),
		ext:      ext,
	}
}

func (r *Relay) Registry() *Registry { return r.registry }

// Run drives the background heartbeat sweep until ctx is canceled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweepCalls(ctx, time.Now())
		}
	}
}

// ---- connect / disconnect lifecycle ----

// OnConnect records the authenticated session and auto-joins the private
// per-user room used for mention pushes and 1:1 signaling relay.
func (r *Relay) OnConnect(sess core.Session, cancel context.CancelFunc) {
	uid := sess.User().ID
	wentOnline := r.registry.Register(sess, cancel)
	r.tracker.Join(uid, domain.PersonalRoom(uid))
	if wentOnline {
		r.announceOnlineCount()
	}
}

// OnDisconnect tears down one session. Membership cleanup only happens
// when the user's last session is gone; other tabs keep their rooms.
func (r *Relay) OnDisconnect(ctx context.Context, sid core.SessionID) {
	var username string
	if sess, found := r.registry.Get(sid); found {
		username = sess.User().Username
	}

	uid, wentOffline, ok := r.registry.Unregister(sid)
	if !ok {
		return
	}
	if !wentOffline {
		return
	}
	for _, rid := range r.tracker.LeaveAll(uid) {
		switch rid.Kind() {
		case domain.RoomTopic:
			r.BroadcastRoom(rid, RoomUserEvent{Type: EvtUserLeftTopic, RoomID: rid, UserID: uid, Username: username})
		case domain.RoomCall:
			// Keep the logical call membership alive briefly: flag the
			// participant as disconnected and let the heartbeat sweep do
			// the forced leave if no reconnect shows up.
			r.markCallDisconnected(ctx, domain.CallID(rid.ScopeID()), uid)
		case domain.RoomChat, domain.RoomPost:
			r.BroadcastRoom(rid, RoomUserEvent{Type: EvtUserLeft, RoomID: rid, UserID: uid, Username: username})
		}
	}

	r.BroadcastAll(UserOfflineEvent{Type: EvtUserOffline, UserID: uid})
	r.announceOnlineCount()
}

// ---- room membership operations ----

// JoinRoom subscribes a user to a business room after the ban check.
// Call signaling rooms are off limits here: their membership flows through
// the call coordinator, which verifies participation. Private user rooms
// accept only their owner.
func (r *Relay) JoinRoom(ctx context.Context, sid core.SessionID, rid domain.RoomID) error {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return core.Authenticationf("no_session", "unknown session")
	}
	if !rid.Valid() {
		return core.Validationf("bad_room", "malformed room id %q", rid)
	}
	uid := sess.User().ID

	switch rid.Kind() {
	case domain.RoomCall:
		return core.Authorizationf("call_room_restricted", "call rooms are joined through the call, not directly")
	case domain.RoomPersonal:
		if rid.ScopeID() != string(uid) {
			return core.Authorizationf("not_room_owner", "cannot join another user's private room")
		}
		r.tracker.Join(uid, rid)
		return nil
	}

	banned, err := r.ext.Policy.IsBanned(ctx, uid, rid.ScopeID())
	if err != nil {
		return core.WrapError(core.KindPersistence, "moderation_unavailable", "ban check failed", err)
	}
	if banned {
		return core.Authorizationf("banned", "user is banned from %s", rid)
	}

	r.tracker.Join(uid, rid)
	r.BroadcastRoomExceptUser(rid, uid, RoomUserEvent{Type: EvtUserJoined, RoomID: rid, UserID: uid, Username: sess.User().Username})
	return nil
}

func (r *Relay) LeaveRoom(sid core.SessionID, rid domain.RoomID) error {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return core.Authenticationf("no_session", "unknown session")
	}
	uid := sess.User().ID
	if !r.tracker.Contains(uid, rid) {
		return core.NotFoundf("not_member", "not joined to %s", rid)
	}
	r.tracker.Leave(uid, rid)
	r.BroadcastRoomExceptUser(rid, uid, RoomUserEvent{Type: EvtUserLeft, RoomID: rid, UserID: uid, Username: sess.User().Username})
	return nil
}

// ---- fan-out plumbing ----

// marshal serializes an event once per fan-out. A marshal failure is a
// programming error on our own payload types; it is logged, not returned.
func marshal(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Msg("event marshal failed")
		return nil, false
	}
	return b, true
}

// send delivers one frame. A failed send tears the session down: the
// buffer is full or the transport is gone, and the client's recovery path
// is a reconnect either way.
func (r *Relay) send(sess core.Session, frame core.Frame) {
	if err := sess.Signal().TrySend(frame); err != nil {
		log.Warn().Str("module", "app.relay").Str("sid", string(sess.ID())).Err(err).Msg("send failed, disconnecting session")
		r.registry.Cancel(sess.ID())
	}
}

// SendToSession delivers to exactly one transport connection.
func (r *Relay) SendToSession(sid core.SessionID, v any) {
	frame, ok := marshal(v)
	if !ok {
		return
	}
	if sess, found := r.registry.Get(sid); found {
		r.send(sess, frame)
	}
}

// SendToUser delivers to every live session of one user (the private
// user_<id> room resolves to this).
func (r *Relay) SendToUser(uid domain.UserID, v any) {
	frame, ok := marshal(v)
	if !ok {
		return
	}
	for _, sess := range r.registry.SessionsOf(uid) {
		r.send(sess, frame)
	}
}

// BroadcastRoom fans out to every member's every session.
func (r *Relay) BroadcastRoom(rid domain.RoomID, v any) {
	frame, ok := marshal(v)
	if !ok {
		return
	}
	for _, uid := range r.tracker.MembersOf(rid) {
		for _, sess := range r.registry.SessionsOf(uid) {
			r.send(sess, frame)
		}
	}
}

// BroadcastRoomExceptUser fans out to a room, skipping one user entirely.
func (r *Relay) BroadcastRoomExceptUser(rid domain.RoomID, except domain.UserID, v any) {
	frame, ok := marshal(v)
	if !ok {
		return
	}
	for _, uid := range r.tracker.MembersOf(rid) {
		if uid == except {
			continue
		}
		for _, sess := range r.registry.SessionsOf(uid) {
			r.send(sess, frame)
		}
	}
}

// BroadcastAll delivers to every live session.
func (r *Relay) BroadcastAll(v any) {
	frame, ok := marshal(v)
	if !ok {
		return
	}
	for _, sess := range r.registry.AllSessions() {
		r.send(sess, frame)
	}
}
