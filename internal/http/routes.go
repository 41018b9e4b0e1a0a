package http

import (
	"net/http"
	"strings"

	"hsho_live_api/internal/http/handlers"
	"hsho_live_api/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// liveAliases lists the historical path spellings per canonical live
// operation. Every entry answers any method, matching the upstream routers.
var liveAliases = map[string][]string{
	"player/get":      {"/live/player/get", "/player/get", "/api/player/get"},
	"store/list":      {"/live/store/list", "/store/list", "/api/store/list"},
	"lootbox/balance": {"/live/lootbox/balance", "/lootbox/balance", "/api/lootbox/balance"},
	"ranked/info":     {"/live/ranked/info", "/ranked/info", "/api/ranked/info"},
	"mail/get":        {"/live/mail/get", "/mail/get", "/api/mail/get"},
	"announcement":    {"/live/announcement", "/announcement", "/api/announcement"},
	"version":         {"/live/version", "/version", "/api/version"},
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	for _, path := range []string{"/live/player/authen", "/player/authen", "/api/player/authen"} {
		r.POST(path, h.Authen)
	}

	liveHandlers := map[string]gin.HandlerFunc{
		"player/get":      h.PlayerGet,
		"store/list":      h.StoreList,
		"lootbox/balance": h.LootboxBalance,
		"ranked/info":     h.RankedInfo,
		"mail/get":        h.MailGet,
		"announcement":    h.AnnouncementGet,
		"version":         h.Version,
	}
	for op, paths := range liveAliases {
		for _, path := range paths {
			r.Any(path, liveHandlers[op])
		}
	}

	r.GET("/__debug/authen", h.DebugAuthen)
	r.GET("/__debug/captures", h.DebugCaptures)
	r.GET("/__debug/stream", h.DebugStream)

	r.GET("/YGG/:name", h.YGGGet)
	r.POST("/YGG/:name", h.YGGPost)

	r.NoRoute(fallback(r, h))
}

// fallback handles everything the route table missed: named-API tokens at
// any path depth are re-dispatched to /YGG, anything under /live answers a
// generic success envelope, and only genuinely foreign paths 404.
func fallback(engine *gin.Engine, h *handlers.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if !strings.HasPrefix(path, "/YGG/") {
			if token, ok := middleware.APIToken(path); ok &&
				(c.Request.Method == http.MethodGet || c.Request.Method == http.MethodPost) {
				c.Request.URL.Path = "/YGG/" + token
				engine.HandleContext(c)
				return
			}
		}

		if strings.HasPrefix(path, "/live/") {
			h.LiveCatchAll(c)
			return
		}

		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	}
}
