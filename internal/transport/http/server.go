package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peercall/peercall-server/internal/auth"
	"github.com/peercall/peercall-server/internal/config"
	"github.com/peercall/peercall-server/internal/core"
)

// NewServer builds the HTTP server: a health probe and the WebSocket
// endpoint carrying the whole presence protocol. This core exposes no
// other HTTP surface; account and friend management live elsewhere.
func NewServer(hub *core.Hub, resolver *auth.Resolver, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	ws := NewWSHandler(hub, resolver, cfg, logger)
	router.GET("/ws", ws.Handle)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
