// Package core holds the transport-neutral contracts of the relay:
// sessions, signal connections, collaborator ports and the error taxonomy.
package core

import (
	"time"

	"github.com/parleyhq/relay/internal/domain"
)

// Frame is a marshaled outbound event ready for the wire.
type Frame []byte

// SessionID identifies one live transport connection.
type SessionID string

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Session binds an authenticated user and its transport endpoint.
// This is what the registry stores and fan-out delivers to.
type Session interface {
	ID() SessionID
	User() *domain.User
	Signal() SignalConnection
	ConnectedAt() time.Time
}

type session struct {
	id          SessionID
	user        *domain.User
	conn        SignalConnection
	connectedAt time.Time
}

func NewSession(id SessionID, user *domain.User, conn SignalConnection) Session {
	return &session{id: id, user: user, conn: conn, connectedAt: time.Now()}
}

func (s *session) ID() SessionID            { return s.id }
func (s *session) User() *domain.User       { return s.user }
func (s *session) Signal() SignalConnection { return s.conn }
func (s *session) ConnectedAt() time.Time   { return s.connectedAt }
