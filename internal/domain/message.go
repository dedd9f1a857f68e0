package domain

import "time"

type MessageID string

type MessageKind string

const (
	MessageText  MessageKind = "text"
	MessageGif   MessageKind = "gif"
	MessageImage MessageKind = "image"
)

// Message is the canonical persisted representation, as read back from
// the content store after creation.
type Message struct {
	ID            MessageID   `json:"id"`
	RoomID        RoomID      `json:"room_id"`
	AuthorID      UserID      `json:"author_id,omitempty"`
	DisplayName   string      `json:"display_name"`
	Content       string      `json:"content"`
	Kind          MessageKind `json:"kind"`
	AttachmentRef string      `json:"attachment_ref,omitempty"`
	Anonymous     bool        `json:"anonymous,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}
