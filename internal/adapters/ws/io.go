package ws

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/core"
)

func (ctl *Controller) writePump(ctx context.Context, c *Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Opts.WriteDeadline)); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "ws").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, sid core.SessionID, c *Conn) {
	defer func() {
		log.Info().Str("module", "ws").Str("sid", string(sid)).Msg("readPump closing")
		// The request context is gone by now; cleanup runs on its own.
		ctl.Relay.OnDisconnect(context.Background(), sid)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "ws").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			ctl.dispatch(ctx, sid, c, data)
		}
	}
}
