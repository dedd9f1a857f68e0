// Package httpapi wires the gin router: session middleware, health check
// and the websocket upgrade endpoint.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/adapters/ws"
	"github.com/parleyhq/relay/internal/config"
)

// AuthTokenMiddleware extracts the platform auth token from the cookie
// session or the Authorization header, whichever the client sent.
func AuthTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if v := sessions.Default(c).Get("auth_token"); v != nil {
			token, _ = v.(string)
		}
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		c.Set("auth_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, ctl *ws.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("RelaySessions", store))
	r.Use(AuthTokenMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "online": ctl.Relay.OnlineCount()})
	})

	log.Info().Str("module", "adapters.httpapi").Msg("router setup")

	api := r.Group("/api")

	api.GET("/ws", func(c *gin.Context) {
		ctl.HandleWS(ctx, c)
	})

	return r
}
