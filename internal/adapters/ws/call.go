package ws

import (
	"context"
	"encoding/json"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/app"
	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

type createCallPayload struct {
	Type     string `json:"type"`
	RoomID   string `json:"room_id" validate:"required"`
	RoomType string `json:"room_type" validate:"required,oneof=group direct"`
}

func (ctl *Controller) handleCreateCall(ctx context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p createCallPayload
	if !ctl.decode(c, data, &p) {
		return
	}

	call, created, err := ctl.Relay.CreateCall(ctx, sid, p.RoomID, domain.CallRoomType(p.RoomType))
	if err != nil {
		ctl.sendError(c, err)
		return
	}
	if !created {
		// Duplicate create resolves to the existing call, not an error.
		ctl.sendJSON(c, app.CallEvent{Type: app.EvtCallExists, Call: call})
		return
	}
	ctl.sendJSON(c, app.CallEvent{Type: app.EvtCallCreated, Call: call})
}

type callPayload struct {
	Type   string `json:"type"`
	CallID string `json:"call_id" validate:"required"`
}

func (ctl *Controller) handleJoinCall(ctx context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p callPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	call, err := ctl.Relay.JoinCall(ctx, sid, domain.CallID(p.CallID))
	if err != nil {
		ctl.sendError(c, err)
		return
	}
	ctl.sendJSON(c, app.CallEvent{Type: app.EvtCallJoined, Call: call})
}

func (ctl *Controller) handleLeaveCall(ctx context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p callPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	sess, ok := ctl.Relay.Registry().Get(sid)
	if !ok {
		ctl.sendError(c, core.Authenticationf("no_session", "unknown session"))
		return
	}
	if err := ctl.Relay.LeaveCall(ctx, sess.User().ID, domain.CallID(p.CallID)); err != nil {
		ctl.sendError(c, err)
	}
}

// Offer and answer carry a pion session description; the relay treats it
// as opaque and delivers it to the target peer's private room only.
type sdpPayload struct {
	Type         string                    `json:"type"`
	CallID       string                    `json:"call_id" validate:"required"`
	TargetUserID string                    `json:"target_user_id" validate:"required"`
	SDP          webrtc.SessionDescription `json:"sdp"`
}

func (ctl *Controller) relaySDP(sid core.SessionID, c *Conn, data []byte, eventType string) {
	var p sdpPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	payload, err := json.Marshal(p.SDP)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("sdp marshal")
		ctl.sendError(c, core.Validationf("bad_payload", "malformed session description"))
		return
	}
	if err := ctl.Relay.RelaySignal(sid, domain.CallID(p.CallID), domain.UserID(p.TargetUserID), eventType, payload); err != nil {
		ctl.sendError(c, err)
	}
}

func (ctl *Controller) handleOffer(_ context.Context, sid core.SessionID, c *Conn, data []byte) {
	ctl.relaySDP(sid, c, data, app.EvtCallOffer)
}

func (ctl *Controller) handleAnswer(_ context.Context, sid core.SessionID, c *Conn, data []byte) {
	ctl.relaySDP(sid, c, data, app.EvtCallAnswer)
}

type candidatePayload struct {
	Type         string                  `json:"type"`
	CallID       string                  `json:"call_id" validate:"required"`
	TargetUserID string                  `json:"target_user_id" validate:"required"`
	Candidate    webrtc.ICECandidateInit `json:"candidate"`
}

func (ctl *Controller) handleICECandidate(_ context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p candidatePayload
	if !ctl.decode(c, data, &p) {
		return
	}
	payload, err := json.Marshal(p.Candidate)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("candidate marshal")
		ctl.sendError(c, core.Validationf("bad_payload", "malformed ice candidate"))
		return
	}
	if err := ctl.Relay.RelaySignal(sid, domain.CallID(p.CallID), domain.UserID(p.TargetUserID), app.EvtCallICECandidate, payload); err != nil {
		ctl.sendError(c, err)
	}
}

type callFlagPayload struct {
	Type   string `json:"type"`
	CallID string `json:"call_id" validate:"required"`
	Flag   bool   `json:"flag"`
}

func (ctl *Controller) handleMuteToggle(_ context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p callFlagPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	if err := ctl.Relay.SetCallMute(sid, domain.CallID(p.CallID), p.Flag); err != nil {
		ctl.sendError(c, err)
	}
}

func (ctl *Controller) handleSpeaking(_ context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p callFlagPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	if err := ctl.Relay.SetCallSpeaking(sid, domain.CallID(p.CallID), p.Flag); err != nil {
		ctl.sendError(c, err)
	}
}

func (ctl *Controller) handleHeartbeat(_ context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p callPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	if err := ctl.Relay.CallHeartbeat(sid, domain.CallID(p.CallID)); err != nil {
		ctl.sendError(c, err)
	}
}

func (ctl *Controller) handleSetDisconnected(_ context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p callFlagPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	if err := ctl.Relay.SetCallDisconnected(sid, domain.CallID(p.CallID), p.Flag); err != nil {
		ctl.sendError(c, err)
	}
}

func (ctl *Controller) handleGetMyCall(_ context.Context, sid core.SessionID, c *Conn, _ []byte) {
	call, err := ctl.Relay.MyCall(sid)
	if err != nil {
		ctl.sendError(c, err)
		return
	}
	ctl.sendJSON(c, app.MyCallEvent{Type: app.EvtMyCall, Call: call})
}
