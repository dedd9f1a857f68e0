package core

import (
	"context"

	"github.com/parleyhq/relay/internal/domain"
)

//go:generate mockgen -source=ports.go -destination=../app/mock_collaborators_test.go -package=app

// Identity is the result of resolving a transport credential.
type Identity struct {
	UserID   domain.UserID
	Username string
	IsAdmin  bool
}

// AuthSessionProvider resolves the auth token presented on handshake.
// A token that maps to no identity yields a KindAuthentication error.
type AuthSessionProvider interface {
	CurrentIdentity(ctx context.Context, token string) (*Identity, error)
}

// NewMessage is the create request handed to the content store.
type NewMessage struct {
	RoomID        domain.RoomID
	AuthorID      domain.UserID
	Content       string
	Kind          domain.MessageKind
	Alias         string
	AttachmentRef string
}

// ContentStore persists and reads back messages. The read-back guards
// against store-level defaulting so all recipients see the canonical row.
type ContentStore interface {
	CreateMessage(ctx context.Context, m NewMessage) (domain.MessageID, error)
	GetMessage(ctx context.Context, id domain.MessageID) (*domain.Message, error)
}

// ModerationPolicy answers ban and permission questions per scope.
type ModerationPolicy interface {
	IsBanned(ctx context.Context, userID domain.UserID, scopeID string) (bool, error)
	PermissionLevel(ctx context.Context, userID domain.UserID, scopeID string) (int, error)
}

type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Verdict carries the classification plus the text with any masking the
// filter already applied.
type Verdict struct {
	Severity     Severity
	FilteredText string
}

type ContentSafetyFilter interface {
	Classify(ctx context.Context, text string) (Verdict, error)
}

// MentionRecord is stored even when the live push is muted, so the
// "you were mentioned" history stays complete.
type MentionRecord struct {
	UserID    domain.UserID
	AuthorID  domain.UserID
	RoomID    domain.RoomID
	MessageID domain.MessageID
}

type NotificationStore interface {
	IsMuted(ctx context.Context, userID domain.UserID, scopeKind domain.RoomKind, scopeID string) (bool, error)
	RecordMention(ctx context.Context, rec MentionRecord) error
}

// AnonymousIdentityService hands out per-user-per-scope aliases.
type AnonymousIdentityService interface {
	GetOrCreateAlias(ctx context.Context, userID domain.UserID, scopeID string) (string, error)
}

// CallStore persists call lifecycle so a process restart does not lose
// in-progress call bookkeeping. Live signaling membership stays in-memory.
type CallStore interface {
	SaveCall(ctx context.Context, call *domain.Call) error
	UpdateCall(ctx context.Context, call *domain.Call) error
}
