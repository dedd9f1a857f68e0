package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/app"
	"github.com/parleyhq/relay/internal/core"
	"github.com/parleyhq/relay/internal/domain"
)

type Options struct {
	HandshakeTimeout time.Duration
	WriteDeadline    time.Duration
	SendBuffer       int
}

type Controller struct {
	Relay *app.Relay
	Auth  core.AuthSessionProvider
	Opts  Options
}

func NewController(relay *app.Relay, auth core.AuthSessionProvider, opts Options) *Controller {
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = 10 * time.Second
	}
	if opts.WriteDeadline <= 0 {
		opts.WriteDeadline = 5 * time.Second
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 64
	}
	return &Controller{Relay: relay, Auth: auth, Opts: opts}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS authenticates the handshake within a bounded window and only
// then upgrades: an unauthenticated connection is rejected with 401, not
// left half-open.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	token := c.GetString("auth_token")
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	authCtx, authCancel := context.WithTimeout(ctx, ctl.Opts.HandshakeTimeout)
	identity, err := ctl.Auth.CurrentIdentity(authCtx, token)
	authCancel()
	if err != nil || identity == nil {
		log.Warn().Err(err).Str("module", "ws").Msg("handshake auth rejected")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("upgrade failed")
		return
	}

	sid := core.SessionID(uuid.NewString())
	user := &domain.User{ID: identity.UserID, Username: identity.Username, IsAdmin: identity.IsAdmin}
	conn := newConn(wsConn, ctl.Opts.SendBuffer)
	sess := core.NewSession(sid, user, conn)

	connCtx, cancel := context.WithCancel(ctx)
	ctl.Relay.OnConnect(sess, cancel)
	log.Info().Str("module", "ws").Str("sid", string(sid)).Str("user", string(user.ID)).Msg("connected")

	ctl.sendJSON(conn, app.ConnectedEvent{
		Type:        app.EvtConnected,
		UserID:      user.ID,
		Username:    user.Username,
		OnlineCount: ctl.Relay.OnlineCount(),
	})

	go ctl.writePump(connCtx, conn)
	go ctl.readPump(connCtx, sid, conn)
}
