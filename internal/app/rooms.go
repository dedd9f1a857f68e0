package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/domain"
)

// RoomTracker keeps the ephemeral user -> rooms mapping. It is rebuilt
// per connection and never persisted; clients rejoin after reconnect.
// Pure in-memory mutations only; no collaborator call happens in here.
type RoomTracker struct {
	mu     sync.RWMutex
	byUser map[domain.UserID]map[domain.RoomID]struct{}
	byRoom map[domain.RoomID]map[domain.UserID]struct{}
}

func NewRoomTracker() *RoomTracker {
	return &RoomTracker{
		byUser: make(map[domain.UserID]map[domain.RoomID]struct{}),
		byRoom: make(map[domain.RoomID]map[domain.UserID]struct{}),
	}
}

func (t *RoomTracker) Join(uid domain.UserID, rid domain.RoomID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byUser[uid]; !ok {
		t.byUser[uid] = make(map[domain.RoomID]struct{})
	}
	t.byUser[uid][rid] = struct{}{}

	if _, ok := t.byRoom[rid]; !ok {
		t.byRoom[rid] = make(map[domain.UserID]struct{})
	}
	t.byRoom[rid][uid] = struct{}{}

	log.Debug().Str("module", "app.rooms").Str("user", string(uid)).Str("room", string(rid)).Msg("joined")
}

func (t *RoomTracker) Leave(uid domain.UserID, rid domain.RoomID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leaveLocked(uid, rid)
}

func (t *RoomTracker) leaveLocked(uid domain.UserID, rid domain.RoomID) {
	if rooms, ok := t.byUser[uid]; ok {
		delete(rooms, rid)
		if len(rooms) == 0 {
			delete(t.byUser, uid)
		}
	}
	if users, ok := t.byRoom[rid]; ok {
		delete(users, uid)
		if len(users) == 0 {
			delete(t.byRoom, rid)
		}
	}
}

// LeaveAll is the disconnect hook. It returns the rooms left so the
// caller can emit the per-room side effects.
func (t *RoomTracker) LeaveAll(uid domain.UserID) []domain.RoomID {
	t.mu.Lock()
	defer t.mu.Unlock()

	rooms := t.byUser[uid]
	out := make([]domain.RoomID, 0, len(rooms))
	for rid := range rooms {
		out = append(out, rid)
	}
	for _, rid := range out {
		t.leaveLocked(uid, rid)
	}
	log.Info().Str("module", "app.rooms").Str("user", string(uid)).Int("rooms", len(out)).Msg("left all rooms")
	return out
}

func (t *RoomTracker) Contains(uid domain.UserID, rid domain.RoomID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.byUser[uid][rid]
	return ok
}

// MembersOf snapshots a room's membership for fan-out and mention
// resolution.
func (t *RoomTracker) MembersOf(rid domain.RoomID) []domain.UserID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	users := t.byRoom[rid]
	out := make([]domain.UserID, 0, len(users))
	for uid := range users {
		out = append(out, uid)
	}
	return out
}
