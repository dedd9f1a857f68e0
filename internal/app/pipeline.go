package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

// SubmitInput is one message submission from a session.
type SubmitInput struct {
	RoomID         domain.RoomID
	Content        string
	Kind           domain.MessageKind
	AliasRequested bool
	AttachmentRef  string
}

// anonymityAllowed says whether a room scope permits anonymous posting.
// Forum scopes (topics, posts) do; chat rooms and the rest do not.
func anonymityAllowed(rid domain.RoomID) bool {
	switch rid.Kind() {
	case domain.RoomTopic, domain.RoomPost:
		return true
	default:
		return false
	}
}

// SubmitMessage runs the broadcast pipeline: membership (with auto-join
// tolerance for reconnect races), posting permission, validation, safety,
// anonymous identity, persistence, read-back, mentions, fan-out and the
// ack. Each step fails with its own error kind and short-circuits; nothing
// is broadcast unless persistence succeeded.
func (r *Relay) SubmitMessage(ctx context.Context, sid core.SessionID, in SubmitInput) (*domain.Message, error) {
	sess, ok := r.registry.Get(sid)
	if !ok {
		return nil, core.Authenticationf("no_session", "unknown session")
	}
	author := sess.User()

	if !r.limiter.Allow(author.ID) {
		return nil, core.Validationf("rate_limited", "too many messages, slow down")
	}

	// Membership, with rejoin-on-send tolerance: a transport reconnect
	// may have dropped the room before the client noticed.
	if !r.tracker.Contains(author.ID, in.RoomID) {
		if err := r.JoinRoom(ctx, sid, in.RoomID); err != nil {
			return nil, err
		}
	}

	// A negative permission level marks the scope read-only for this user
	// (locked thread, muted member). Membership alone does not grant posting.
	level, err := r.ext.Policy.PermissionLevel(ctx, author.ID, in.RoomID.ScopeID())
	if err != nil {
		return nil, core.WrapError(core.KindPersistence, "permission_unavailable", "permission lookup failed", err)
	}
	if level < 0 {
		return nil, core.Authorizationf("read_only", "posting is restricted in %s", in.RoomID)
	}

	if strings.TrimSpace(in.Content) == "" && in.AttachmentRef == "" {
		return nil, core.Validationf("empty_message", "message has no content or attachment")
	}

	content := in.Content
	if content != "" {
		verdict, err := r.ext.Safety.Classify(ctx, content)
		if err != nil {
			return nil, core.WrapError(core.KindPersistence, "safety_unavailable", "safety check failed", err)
		}
		if verdict.Severity == core.SeverityCritical {
			return nil, core.Validationf("content_rejected", "message rejected by content policy")
		}
		if verdict.FilteredText != "" {
			content = verdict.FilteredText
		}
	}

	var alias string
	if in.AliasRequested && anonymityAllowed(in.RoomID) {
		a, err := r.ext.Anon.GetOrCreateAlias(ctx, author.ID, in.RoomID.ScopeID())
		if err != nil {
			return nil, core.WrapError(core.KindPersistence, "alias_unavailable", "alias resolution failed", err)
		}
		alias = a
		r.aliases.record(in.RoomID, alias, author.ID)
	}

	id, err := r.ext.Store.CreateMessage(ctx, core.NewMessage{
		RoomID:        in.RoomID,
		AuthorID:      author.ID,
		Content:       content,
		Kind:          in.Kind,
		Alias:         alias,
		AttachmentRef: in.AttachmentRef,
	})
	if err != nil {
		return nil, core.WrapError(core.KindPersistence, "create_failed", "message not persisted", err)
	}

	// Read back the canonical row so every recipient sees exactly what
	// the store kept (timestamps, defaulting, masking).
	msg, err := r.ext.Store.GetMessage(ctx, id)
	if err != nil {
		return nil, core.WrapError(core.KindPersistence, "readback_failed", "persisted message not readable", err)
	}

	if alias != "" {
		// Anonymous broadcast: the real identity never reaches the room
		// payload. Deanonymization is a separate audited path.
		msg.AuthorID = ""
		msg.Anonymous = true
		msg.DisplayName = alias
	} else if msg.DisplayName == "" {
		msg.DisplayName = author.Username
	}

	r.notifyMentions(ctx, msg, author)

	// Fan-out includes the author: the echoed copy is the confirmation
	// that the room has the message.
	r.BroadcastRoom(in.RoomID, MessageEvent{Type: EvtMessage, Message: msg})

	// Separate guarantee from the broadcast: "your submission was
	// durably accepted", delivered to the submitting session only.
	r.SendToSession(sid, MessageAckEvent{Type: EvtMessageAck, MessageID: msg.ID, RoomID: in.RoomID})

	log.Info().Str("module", "app.pipeline").Str("room", string(in.RoomID)).Str("message", string(msg.ID)).Bool("anonymous", msg.Anonymous).Msg("message broadcast")
	return msg, nil
}
