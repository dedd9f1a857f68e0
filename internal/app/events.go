package app

import (
	"encoding/json"

	"github.com/parleyhq/relay/internal/domain"
)

// Outbound event types. The Type field of every event payload is one of
// these; clients switch on it.
const (
	EvtConnected     = "connected"
	EvtError         = "error"
	EvtPong          = "pong"
	EvtRoomJoined    = "room_joined"
	EvtUserJoined    = "user_joined"
	EvtRoomLeft      = "room_left"
	EvtUserLeft      = "user_left"
	EvtUserLeftTopic = "user_left_topic"
	EvtMessage       = "message"
	EvtMessageAck    = "message_ack"
	EvtMention       = "mention"
	EvtOnlineCount   = "online_count_update"
	EvtUserOffline   = "user_offline"

	EvtCallCreated      = "voip_call_created"
	EvtCallExists       = "voip_call_exists"
	EvtCallJoined       = "voip_call_joined"
	EvtCallUserJoined   = "voip_user_joined"
	EvtCallUserLeft     = "voip_user_left"
	EvtCallLeftAck      = "voip_left_ack"
	EvtCallEnded        = "voip_call_ended"
	EvtCallOffer        = "voip_offer"
	EvtCallAnswer       = "voip_answer"
	EvtCallICECandidate = "voip_ice_candidate"
	EvtCallMuteChanged  = "voip_mute_changed"
	EvtCallSpeaking     = "voip_speaking"
	EvtCallDisconnected = "voip_participant_disconnected"
	EvtMyCall           = "voip_my_call"
)

type ErrorEvent struct {
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ConnectedEvent struct {
	Type        string        `json:"type"`
	UserID      domain.UserID `json:"user_id"`
	Username    string        `json:"username"`
	OnlineCount int           `json:"online_count"`
}

// RoomAckEvent acknowledges the caller's own join or leave; the Type
// field carries which one.
type RoomAckEvent struct {
	Type   string        `json:"type"`
	RoomID domain.RoomID `json:"room_id"`
}

type RoomUserEvent struct {
	Type     string        `json:"type"`
	RoomID   domain.RoomID `json:"room_id"`
	UserID   domain.UserID `json:"user_id"`
	Username string        `json:"username,omitempty"`
}

type MessageEvent struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message"`
}

type MessageAckEvent struct {
	Type      string           `json:"type"`
	MessageID domain.MessageID `json:"message_id"`
	RoomID    domain.RoomID    `json:"room_id"`
}

type MentionEvent struct {
	Type      string           `json:"type"`
	RoomID    domain.RoomID    `json:"room_id"`
	ScopeKind domain.RoomKind  `json:"scope_kind"`
	ScopeID   string           `json:"scope_id"`
	MessageID domain.MessageID `json:"message_id"`
	By        string           `json:"by"`
}

type OnlineCountEvent struct {
	Type        string `json:"type"`
	OnlineCount int    `json:"online_count"`
}

type UserOfflineEvent struct {
	Type   string        `json:"type"`
	UserID domain.UserID `json:"user_id"`
}

type CallEvent struct {
	Type string       `json:"type"`
	Call *domain.Call `json:"call"`
}

type CallUserEvent struct {
	Type   string        `json:"type"`
	CallID domain.CallID `json:"call_id"`
	UserID domain.UserID `json:"user_id"`
}

type CallEndedEvent struct {
	Type   string        `json:"type"`
	CallID domain.CallID `json:"call_id"`
	Reason string        `json:"reason"`
}

// CallSignalEvent carries a relayed offer/answer/candidate. Payload stays
// opaque here; the ws adapter fills it with pion session descriptions and
// ICE candidates.
type CallSignalEvent struct {
	Type    string          `json:"type"`
	CallID  domain.CallID   `json:"call_id"`
	From    domain.UserID   `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type CallFlagEvent struct {
	Type   string        `json:"type"`
	CallID domain.CallID `json:"call_id"`
	UserID domain.UserID `json:"user_id"`
	Flag   bool          `json:"flag"`
}

type MyCallEvent struct {
	Type string       `json:"type"`
	Call *domain.Call `json:"call,omitempty"`
}
