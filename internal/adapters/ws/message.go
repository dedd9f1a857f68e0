package ws

import (
	"context"

	"github.com/parleyhq/relay/internal/app"
	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

type sendMessagePayload struct {
	Type           string `json:"type"`
	RoomID         string `json:"room_id" validate:"required"`
	Content        string `json:"content"`
	Kind           string `json:"kind"`
	AliasRequested bool   `json:"alias_requested"`
	AttachmentRef  string `json:"attachment_ref"`
}

func (ctl *Controller) handleSendMessage(ctx context.Context, sid core.SessionID, c *Conn, data []byte) {
	var p sendMessagePayload
	if !ctl.decode(c, data, &p) {
		return
	}

	kind := domain.MessageKind(p.Kind)
	if kind == "" {
		kind = domain.MessageText
	}

	// Broadcast and ack are emitted inside the pipeline; only failures
	// surface here.
	_, err := ctl.Relay.SubmitMessage(ctx, sid, app.SubmitInput{
		RoomID:         domain.RoomID(p.RoomID),
		Content:        p.Content,
		Kind:           kind,
		AliasRequested: p.AliasRequested,
		AttachmentRef:  p.AttachmentRef,
	})
	if err != nil {
		ctl.sendError(c, err)
	}
}
