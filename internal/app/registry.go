// Package app implements the real-time relay core: connection registry,
// room membership, presence, the message broadcast pipeline and the call
// coordinator. All shared state lives behind these types; the raw maps are
// never exposed.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

type sessionEntry struct {
	Session core.Session
	Cancel  context.CancelFunc
}

// Registry is the single source of truth for who is online. A user may
// hold several live sessions at once (multiple tabs); fan-out targets all
// of them, so a reconnect never silently drops a stale tab.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
	byUser   map[domain.UserID]map[core.SessionID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		byUser:   make(map[domain.UserID]map[core.SessionID]struct{}),
	}
}

// Register records a live session. It reports whether this brought the
// user online (first session), so the caller can announce presence.
func (r *Registry) Register(sess core.Session, cancel context.CancelFunc) (wentOnline bool) {
	uid := sess.User().ID
	sid := sess.ID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.sessions[sid]; ok && old.Cancel != nil {
		// Rapid reconnect reusing a transport id: drop the dead binding
		// before it shadows the live one.
		old.Cancel()
	}
	r.sessions[sid] = &sessionEntry{Session: sess, Cancel: cancel}

	set, ok := r.byUser[uid]
	if !ok {
		set = make(map[core.SessionID]struct{})
		r.byUser[uid] = set
	}
	set[sid] = struct{}{}

	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("user", string(uid)).Msg("session registered")
	return len(set) == 1
}

// Unregister removes only the session matching sid. It reports the owning
// user and whether the user's reference count dropped to zero.
func (r *Registry) Unregister(sid core.SessionID) (uid domain.UserID, wentOffline, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, found := r.sessions[sid]
	if !found {
		return "", false, false
	}
	delete(r.sessions, sid)

	uid = entry.Session.User().ID
	if set, has := r.byUser[uid]; has {
		delete(set, sid)
		if len(set) == 0 {
			delete(r.byUser, uid)
			wentOffline = true
		}
	}

	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("user", string(uid)).Bool("offline", wentOffline).Msg("session unregistered")
	return uid, wentOffline, true
}

func (r *Registry) Get(sid core.SessionID) (core.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Session, true
	}
	return nil, false
}

func (r *Registry) IsOnline(uid domain.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[uid]) > 0
}

// OnlineCount counts distinct online users, not transport connections.
func (r *Registry) OnlineCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}

// OnlineAdminCount cross-references online users against the admin flag.
// Computed on demand only; it is not part of the presence hot path.
func (r *Registry) OnlineAdminCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, set := range r.byUser {
		for sid := range set {
			if e, ok := r.sessions[sid]; ok && e.Session.User().IsAdmin {
				n++
			}
			break
		}
	}
	return n
}

// SessionsOf returns every live session of a user.
func (r *Registry) SessionsOf(uid domain.UserID) []core.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.byUser[uid]
	out := make([]core.Session, 0, len(set))
	for sid := range set {
		if e, ok := r.sessions[sid]; ok {
			out = append(out, e.Session)
		}
	}
	return out
}

// AllSessions snapshots every live session for a global broadcast.
func (r *Registry) AllSessions() []core.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Session, 0, len(r.sessions))
	for _, e := range r.sessions {
		out = append(out, e.Session)
	}
	return out
}

// Username reports the username of an online user.
func (r *Registry) Username(uid domain.UserID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for sid := range r.byUser[uid] {
		if e, ok := r.sessions[sid]; ok {
			return e.Session.User().Username, true
		}
	}
	return "", false
}

// Cancel fires the context cancel bound to a session, tearing down its
// pumps without touching registry state (the disconnect hook does that).
func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	return true
}
