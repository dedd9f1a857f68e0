package domain

import "time"

type CallID string

type CallRoomType string

const (
	CallGroup  CallRoomType = "group"
	CallDirect CallRoomType = "direct"
)

type CallStatus string

const (
	CallActive CallStatus = "active"
	CallEnded  CallStatus = "ended"
)

type Call struct {
	ID           CallID            `json:"call_id"`
	RoomID       string            `json:"room_id"`
	RoomType     CallRoomType      `json:"room_type"`
	Status       CallStatus        `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	EndedAt      *time.Time        `json:"ended_at,omitempty"`
	Participants []CallParticipant `json:"participants"`
}

type CallParticipant struct {
	UserID         UserID    `json:"user_id"`
	JoinedAt       time.Time `json:"joined_at"`
	IsMuted        bool      `json:"is_muted"`
	IsSpeaking     bool      `json:"is_speaking"`
	IsDisconnected bool      `json:"is_disconnected"`
	LastHeartbeat  time.Time `json:"last_heartbeat"`
}
