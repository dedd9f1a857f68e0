package ws

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/app"
	"github.com/parleyhq/relay/internal/core"
)

var validate = validator.New()

type handlerFunc func(ctl *Controller, ctx context.Context, sid core.SessionID, conn *Conn, data []byte)

// handlers is the closed set of inbound event kinds. Each handler decodes
// its typed payload exactly once at this boundary.
var handlers = map[string]handlerFunc{
	"ping":                  (*Controller).handlePing,
	"join_room":             (*Controller).handleJoinRoom,
	"leave_room":            (*Controller).handleLeaveRoom,
	"send_message":          (*Controller).handleSendMessage,
	"voip_create_call":      (*Controller).handleCreateCall,
	"voip_join_call":        (*Controller).handleJoinCall,
	"voip_leave_call":       (*Controller).handleLeaveCall,
	"voip_offer":            (*Controller).handleOffer,
	"voip_answer":           (*Controller).handleAnswer,
	"voip_ice_candidate":    (*Controller).handleICECandidate,
	"voip_mute_toggle":      (*Controller).handleMuteToggle,
	"voip_speaking":         (*Controller).handleSpeaking,
	"voip_heartbeat":        (*Controller).handleHeartbeat,
	"voip_set_disconnected": (*Controller).handleSetDisconnected,
	"voip_get_my_call":      (*Controller).handleGetMyCall,
}

func (ctl *Controller) dispatch(ctx context.Context, sid core.SessionID, c *Conn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "ws").Msg("bad json")
		ctl.sendError(c, core.Validationf("bad_json", "payload is not valid json"))
		return
	}

	h, ok := handlers[env.Type]
	if !ok {
		log.Warn().Str("module", "ws").Str("type", env.Type).Msg("unknown event")
		ctl.sendError(c, core.Validationf("unknown_event", "unknown event type %q", env.Type))
		return
	}
	h(ctl, ctx, sid, c, data)
}

// decode unmarshals and validates one typed payload. Returns false after
// already having reported the scoped error to the sender.
func (ctl *Controller) decode(c *Conn, data []byte, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		ctl.sendError(c, core.Validationf("bad_payload", "malformed payload"))
		return false
	}
	if err := validate.Struct(v); err != nil {
		ctl.sendError(c, core.Validationf("bad_payload", "missing or invalid fields"))
		return false
	}
	return true
}

func (ctl *Controller) sendJSON(c *Conn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "ws").Msg("sendJSON dropped")
	}
}

// sendError converts any failure into a scoped error event for the
// originating session only. Errors are never broadcast.
func (ctl *Controller) sendError(c *Conn, err error) {
	ctl.sendJSON(c, app.ErrorEvent{
		Type:    app.EvtError,
		Kind:    string(core.KindOf(err)),
		Code:    core.CodeOf(err),
		Message: err.Error(),
	})
}

func (ctl *Controller) handlePing(_ context.Context, _ core.SessionID, c *Conn, _ []byte) {
	ctl.sendJSON(c, struct {
		Type string `json:"type"`
	}{Type: app.EvtPong})
}
