package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

// callState is the live bookkeeping of one call. The state machine is
// none -> active -> ended; leaving is binary, there is no paused state.
type callState struct {
	call         domain.Call
	participants map[domain.UserID]*domain.CallParticipant
}

func (s *callState) snapshot() *domain.Call {
	out := s.call
	out.Participants = make([]domain.CallParticipant, 0, len(s.participants))
	for _, p := range s.participants {
		out.Participants = append(out.Participants, *p)
	}
	return &out
}

// callTable owns call state under one mutex. Methods mutate and snapshot
// only; events and persistence are the Relay's job, outside the lock.
type callTable struct {
	mu     sync.Mutex
	byID   map[domain.CallID]*callState
	byRoom map[string]domain.CallID // business room -> active call
}

func newCallTable() *callTable {
	return &callTable{
		byID:   make(map[domain.CallID]*callState),
		byRoom: make(map[string]domain.CallID),
	}
}

// createOrGet is the compare-and-create: at most one active call exists
// per business room, so a duplicate create returns the existing call.
func (t *callTable) createOrGet(roomID string, roomType domain.CallRoomType, creator domain.UserID, now time.Time) (*domain.Call, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.byRoom[roomID]; ok {
		if s, live := t.byID[id]; live && s.call.Status == domain.CallActive {
			return s.snapshot(), false
		}
	}

	s := &callState{
		call: domain.Call{
			ID:        domain.CallID(uuid.NewString()),
			RoomID:    roomID,
			RoomType:  roomType,
			Status:    domain.CallActive,
			CreatedAt: now,
		},
		participants: map[domain.UserID]*domain.CallParticipant{
			creator: {UserID: creator, JoinedAt: now, LastHeartbeat: now},
		},
	}
	t.byID[s.call.ID] = s
	t.byRoom[roomID] = s.call.ID
	return s.snapshot(), true
}

func (t *callTable) activeLocked(id domain.CallID) (*callState, error) {
	s, ok := t.byID[id]
	if !ok {
		return nil, core.NotFoundf("call_not_found", "no call %s", id)
	}
	if s.call.Status == domain.CallEnded {
		return nil, core.NewError(core.KindConflict, "call_ended", "call already ended")
	}
	return s, nil
}

func (t *callTable) join(id domain.CallID, uid domain.UserID, now time.Time) (*domain.Call, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.activeLocked(id)
	if err != nil {
		return nil, err
	}
	if _, already := s.participants[uid]; !already {
		s.participants[uid] = &domain.CallParticipant{UserID: uid, JoinedAt: now, LastHeartbeat: now}
	}
	return s.snapshot(), nil
}

// leave removes a participant. When the last one goes, the call
// transitions to ended and the room binding is released.
func (t *callTable) leave(id domain.CallID, uid domain.UserID, now time.Time) (snap *domain.Call, ended bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, err := t.activeLocked(id)
	if err != nil {
		return nil, false, err
	}
	if _, in := s.participants[uid]; !in {
		return nil, false, core.NotFoundf("not_in_call", "user not in call %s", id)
	}
	delete(s.participants, uid)
	if len(s.participants) == 0 {
		s.call.Status = domain.CallEnded
		s.call.EndedAt = &now
		delete(t.byRoom, s.call.RoomID)
		return s.snapshot(), true, nil
	}
	return s.snapshot(), false, nil
}

func (t *callTable) participant(id domain.CallID, uid domain.UserID) (*callState, *domain.CallParticipant, error) {
	s, err := t.activeLocked(id)
	if err != nil {
		return nil, nil, err
	}
	p, in := s.participants[uid]
	if !in {
		return nil, nil, core.NotFoundf("not_in_call", "user not in call %s", id)
	}
	return s, p, nil
}

func (t *callTable) setMute(id domain.CallID, uid domain.UserID, muted bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, p, err := t.participant(id, uid)
	if err != nil {
		return err
	}
	p.IsMuted = muted
	return nil
}

func (t *callTable) setSpeaking(id domain.CallID, uid domain.UserID, speaking bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, p, err := t.participant(id, uid)
	if err != nil {
		return err
	}
	p.IsSpeaking = speaking
	return nil
}

// heartbeat refreshes liveness and clears a stale disconnected flag.
func (t *callTable) heartbeat(id domain.CallID, uid domain.UserID, now time.Time) (recovered bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, p, err := t.participant(id, uid)
	if err != nil {
		return false, err
	}
	recovered = p.IsDisconnected
	p.LastHeartbeat = now
	p.IsDisconnected = false
	return recovered, nil
}

func (t *callTable) setDisconnected(id domain.CallID, uid domain.UserID, flag bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, p, err := t.participant(id, uid)
	if err != nil {
		return err
	}
	p.IsDisconnected = flag
	return nil
}

func (t *callTable) hasParticipant(id domain.CallID, uid domain.UserID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.byID[id]
	if !ok || s.call.Status == domain.CallEnded {
		return false
	}
	_, in := s.participants[uid]
	return in
}

// findByParticipant supports reconnection recovery: "what call am I in?".
func (t *callTable) findByParticipant(uid domain.UserID) (*domain.Call, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.byID {
		if s.call.Status != domain.CallActive {
			continue
		}
		if _, in := s.participants[uid]; in {
			return s.snapshot(), true
		}
	}
	return nil, false
}

type sweepVerdict struct {
	CallID domain.CallID
	UserID domain.UserID
	Evict  bool // false: flag disconnected only
}

// sweep flags participants silent past timeout and evicts those silent
// past twice the timeout. The evictions go through the normal leave path
// so call termination and events stay uniform.
func (t *callTable) sweep(now time.Time, timeout time.Duration) []sweepVerdict {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []sweepVerdict
	for id, s := range t.byID {
		if s.call.Status != domain.CallActive {
			continue
		}
		for uid, p := range s.participants {
			silent := now.Sub(p.LastHeartbeat)
			switch {
			case silent > 2*timeout:
				out = append(out, sweepVerdict{CallID: id, UserID: uid, Evict: true})
			case silent > timeout && !p.IsDisconnected:
				p.IsDisconnected = true
				out = append(out, sweepVerdict{CallID: id, UserID: uid})
			}
		}
	}
	return out
}

// ---- Relay orchestration ----

// CreateCall is idempotent per business room: the second creator gets
// the existing call back, flagged as such, never a duplicate.
func (r *Relay) CreateCall(ctx context.Context, sid core.SessionID, roomID string, roomType domain.CallRoomType) (*domain.Call, bool, error) {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return nil, false, core.Authenticationf("no_session", "unknown session")
	}
	if roomID == "" {
		return nil, false, core.Validationf("bad_room", "missing room id")
	}
	if roomType != domain.CallGroup && roomType != domain.CallDirect {
		return nil, false, core.Validationf("bad_room_type", "room type must be group or direct")
	}
	uid := sess.User().ID

	call, created := r.calls.createOrGet(roomID, roomType, uid, time.Now())
	if !created {
		return call, false, nil
	}

	r.tracker.Join(uid, domain.CallRoom(call.ID))
	r.persistCall(ctx, call, true)
	log.Info().Str("module", "app.calls").Str("call", string(call.ID)).Str("room", roomID).Msg("call created")
	return call, true, nil
}

func (r *Relay) JoinCall(ctx context.Context, sid core.SessionID, callID domain.CallID) (*domain.Call, error) {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return nil, core.Authenticationf("no_session", "unknown session")
	}
	uid := sess.User().ID

	call, err := r.calls.join(callID, uid, time.Now())
	if err != nil {
		return nil, err
	}
	r.tracker.Join(uid, domain.CallRoom(callID))
	r.persistCall(ctx, call, false)

	r.BroadcastRoomExceptUser(domain.CallRoom(callID), uid, CallUserEvent{Type: EvtCallUserJoined, CallID: callID, UserID: uid})
	return call, nil
}

// LeaveCall handles both the explicit leave and the sweep eviction.
func (r *Relay) LeaveCall(ctx context.Context, uid domain.UserID, callID domain.CallID) error {
	call, ended, err := r.calls.leave(callID, uid, time.Now())
	if err != nil {
		return err
	}
	rid := domain.CallRoom(callID)
	r.tracker.Leave(uid, rid)
	r.persistCall(ctx, call, false)

	if ended {
		// The signaling room is empty at this point; the ended event
		// still reaches the last leaver directly.
		r.BroadcastRoom(rid, CallEndedEvent{Type: EvtCallEnded, CallID: callID, Reason: "no_participants"})
		r.SendToUser(uid, CallEndedEvent{Type: EvtCallEnded, CallID: callID, Reason: "no_participants"})
		log.Info().Str("module", "app.calls").Str("call", string(callID)).Msg("call ended, no participants")
	} else {
		r.BroadcastRoomExceptUser(rid, uid, CallUserEvent{Type: EvtCallUserLeft, CallID: callID, UserID: uid})
	}

	// The leaver gets a separate "you left" acknowledgment.
	r.SendToUser(uid, CallUserEvent{Type: EvtCallLeftAck, CallID: callID, UserID: uid})
	return nil
}

// RelaySignal is the deliberate asymmetry versus message fan-out:
// offer/answer/candidate go point-to-point to the target's private room
// only, never to the whole call (mesh topology, 1:1 per peer pair).
func (r *Relay) RelaySignal(sid core.SessionID, callID domain.CallID, target domain.UserID, eventType string, payload []byte) error {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return core.Authenticationf("no_session", "unknown session")
	}
	from := sess.User().ID

	if !r.calls.hasParticipant(callID, from) {
		return core.NotFoundf("not_in_call", "sender not in call %s", callID)
	}
	if !r.calls.hasParticipant(callID, target) {
		return core.NotFoundf("peer_not_in_call", "target not in call %s", callID)
	}

	r.SendToUser(target, CallSignalEvent{Type: eventType, CallID: callID, From: from, Payload: payload})
	return nil
}

// SetCallMute broadcasts to the whole call room: every peer renders the
// mute icon, including the muter's own other tabs.
func (r *Relay) SetCallMute(sid core.SessionID, callID domain.CallID, muted bool) error {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return core.Authenticationf("no_session", "unknown session")
	}
	uid := sess.User().ID
	if err := r.calls.setMute(callID, uid, muted); err != nil {
		return err
	}
	r.BroadcastRoom(domain.CallRoom(callID), CallFlagEvent{Type: EvtCallMuteChanged, CallID: callID, UserID: uid, Flag: muted})
	return nil
}

// SetCallSpeaking excludes the speaker: self-feedback is pointless.
func (r *Relay) SetCallSpeaking(sid core.SessionID, callID domain.CallID, speaking bool) error {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return core.Authenticationf("no_session", "unknown session")
	}
	uid := sess.User().ID
	if err := r.calls.setSpeaking(callID, uid, speaking); err != nil {
		return err
	}
	r.BroadcastRoomExceptUser(domain.CallRoom(callID), uid, CallFlagEvent{Type: EvtCallSpeaking, CallID: callID, UserID: uid, Flag: speaking})
	return nil
}

// CallHeartbeat refreshes liveness without broadcasting. If the
// participant was flagged disconnected, peers learn about the recovery.
func (r *Relay) CallHeartbeat(sid core.SessionID, callID domain.CallID) error {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return core.Authenticationf("no_session", "unknown session")
	}
	uid := sess.User().ID
	recovered, err := r.calls.heartbeat(callID, uid, time.Now())
	if err != nil {
		return err
	}
	if recovered {
		r.BroadcastRoomExceptUser(domain.CallRoom(callID), uid, CallFlagEvent{Type: EvtCallDisconnected, CallID: callID, UserID: uid, Flag: false})
	}
	return nil
}

// SetCallDisconnected is the client-reported network blip: peers show a
// "reconnecting" indicator without the participant being removed.
func (r *Relay) SetCallDisconnected(sid core.SessionID, callID domain.CallID, flag bool) error {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return core.Authenticationf("no_session", "unknown session")
	}
	uid := sess.User().ID
	if err := r.calls.setDisconnected(callID, uid, flag); err != nil {
		return err
	}
	r.BroadcastRoom(domain.CallRoom(callID), CallFlagEvent{Type: EvtCallDisconnected, CallID: callID, UserID: uid, Flag: flag})
	return nil
}

// MyCall is the reconnection recovery: a fresh session finds the call it
// is still a participant of and re-subscribes to its signaling room.
func (r *Relay) MyCall(sid core.SessionID) (*domain.Call, error) {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return nil, core.Authenticationf("no_session", "unknown session")
	}
	uid := sess.User().ID
	call, found := r.calls.findByParticipant(uid)
	if !found {
		return nil, nil
	}
	r.tracker.Join(uid, domain.CallRoom(call.ID))
	return call, nil
}

// markCallDisconnected is the transport-drop hook: the participant stays
// in the call but peers see the reconnecting state. The sweep evicts if
// no reconnect follows.
func (r *Relay) markCallDisconnected(ctx context.Context, callID domain.CallID, uid domain.UserID) {
	if err := r.calls.setDisconnected(callID, uid, true); err != nil {
		return
	}
	r.BroadcastRoom(domain.CallRoom(callID), CallFlagEvent{Type: EvtCallDisconnected, CallID: callID, UserID: uid, Flag: true})
}

func (r *Relay) sweepCalls(ctx context.Context, now time.Time) {
	for _, v := range r.calls.sweep(now, r.cfg.HeartbeatTimeout) {
		if v.Evict {
			log.Warn().Str("module", "app.calls").Str("call", string(v.CallID)).Str("user", string(v.UserID)).Msg("evicting silent participant")
			if err := r.LeaveCall(ctx, v.UserID, v.CallID); err != nil {
				log.Error().Err(err).Str("module", "app.calls").Str("call", string(v.CallID)).Msg("sweep eviction failed")
			}
			continue
		}
		r.BroadcastRoom(domain.CallRoom(v.CallID), CallFlagEvent{Type: EvtCallDisconnected, CallID: v.CallID, UserID: v.UserID, Flag: true})
	}
}

// persistCall is best-effort: live signaling never blocks on the store,
// but operators get a log line when bookkeeping diverges.
func (r *Relay) persistCall(ctx context.Context, call *domain.Call, created bool) {
	var err error
	if created {
		err = r.ext.CallStore.SaveCall(ctx, call)
	} else {
		err = r.ext.CallStore.UpdateCall(ctx, call)
	}
	if err != nil {
		log.Error().Err(err).Str("module", "app.calls").Str("call", string(call.ID)).Msg("call persistence failed")
	}
}
