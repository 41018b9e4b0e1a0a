package handlers

import (
	"net/http"
	"time"

	"hsho_live_api/internal/envelope"
	"hsho_live_api/internal/http/middleware"
	"hsho_live_api/internal/logger"

	"github.com/gin-gonic/gin"
)

// PlayerGet answers /live/player/get for any method. Without a resolvable
// session it still answers 200, flagged inside the body, because the client
// cannot handle transport-level failures.
func (h *Handler) PlayerGet(c *gin.Context) {
	body := lenientBody(c)
	id, ok := h.currentIdentity(c, body)
	if !ok {
		c.JSON(http.StatusOK, envelope.Failure("no session"))
		return
	}

	ctx := c.Request.Context()
	profile := h.profileOrDefault(ctx, id.PlayerID)

	inv, err := h.Store.ReadInventory(ctx, id.PlayerID)
	if err != nil {
		middleware.StoreFailure("read_inventory")
		logger.Warn("inventory read failed, serving empty", "player", id.PlayerID, "error", err)
		inv = nil
	}

	c.JSON(http.StatusOK, h.Builder.Player(id, profile, inv, time.Now()))
}

// StoreList answers /live/store/list. Identity is optional here and on the
// remaining live endpoints.
func (h *Handler) StoreList(c *gin.Context) {
	body := lenientBody(c)
	id, _ := h.currentIdentity(c, body)

	products, err := h.Store.ListProducts(c.Request.Context())
	if err != nil {
		middleware.StoreFailure("list_products")
		logger.Warn("product listing failed, serving static list", "error", err)
		products = nil
	}

	c.JSON(http.StatusOK, h.Builder.StoreList(id, products, time.Now()))
}

// LootboxBalance answers /live/lootbox/balance.
func (h *Handler) LootboxBalance(c *gin.Context) {
	body := lenientBody(c)
	id, _ := h.currentIdentity(c, body)

	var balance int64
	if id.PlayerID != "" {
		balance = h.profileOrDefault(c.Request.Context(), id.PlayerID).Lootbox.Balance
	}

	c.JSON(http.StatusOK, h.Builder.LootboxBalance(id, balance, time.Now()))
}

// RankedInfo answers /live/ranked/info.
func (h *Handler) RankedInfo(c *gin.Context) {
	body := lenientBody(c)
	id, _ := h.currentIdentity(c, body)

	rank := h.profileOrDefault(c.Request.Context(), id.PlayerID).Rank
	c.JSON(http.StatusOK, h.Builder.Ranked(id, rank, time.Now()))
}

// MailGet answers /live/mail/get.
func (h *Handler) MailGet(c *gin.Context) {
	body := lenientBody(c)
	id, _ := h.currentIdentity(c, body)
	c.JSON(http.StatusOK, h.Builder.Mail(id, time.Now()))
}

// AnnouncementGet answers /live/announcement.
func (h *Handler) AnnouncementGet(c *gin.Context) {
	body := lenientBody(c)
	id, _ := h.currentIdentity(c, body)
	c.JSON(http.StatusOK, h.Builder.Announcement(id, time.Now()))
}

// Version answers /live/version.
func (h *Handler) Version(c *gin.Context) {
	body := lenientBody(c)
	id, _ := h.currentIdentity(c, body)

	version := pickString(body, "version", "clientversion", "clientVersion")
	if version == "" {
		version = h.Cfg.ClientVersion
	}
	c.JSON(http.StatusOK, h.Builder.Version(id, version, time.Now()))
}

// LiveCatchAll answers any otherwise-unmatched /live path with a generic
// success envelope echoing the request.
func (h *Handler) LiveCatchAll(c *gin.Context) {
	body := lenientBody(c)

	query := map[string]string{}
	for k, vs := range c.Request.URL.Query() {
		if len(vs) > 0 {
			query[k] = vs[0]
		}
	}

	c.JSON(http.StatusOK, h.Builder.Generic(c.Request.Method, c.Request.URL.Path, query, body, time.Now()))
}
