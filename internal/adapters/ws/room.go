package ws

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/app"
	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

type roomPayload struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id" validate:"required"`
}

func (ctl *Controller) handleJoinRoom(ctx context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p roomPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	rid := domain.RoomID(p.RoomID)

	if err := ctl.Relay.JoinRoom(ctx, sid, rid); err != nil {
		ctl.sendError(c, err)
		return
	}
	log.Info().Str("module", "ws").Str("sid", string(sid)).Str("room", p.RoomID).Msg("join")
	ctl.sendJSON(c, app.RoomAckEvent{Type: app.EvtRoomJoined, RoomID: rid})
}

func (ctl *Controller) handleLeaveRoom(_ context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p roomPayload
	if !ctl.decode(c, data, &p) {
		return
	}
	rid := domain.RoomID(p.RoomID)

	if err := ctl.Relay.LeaveRoom(sid, rid); err != nil {
		ctl.sendError(c, err)
		return
	}
	ctl.sendJSON(c, app.RoomAckEvent{Type: app.EvtRoomLeft, RoomID: rid})
}
