package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"hsho_live_api/internal/domain"
	"hsho_live_api/internal/http/middleware"
	"hsho_live_api/internal/logger"
	"hsho_live_api/internal/store"

	"github.com/gin-gonic/gin"
)

const demoPlayerID = "demo-player-001"

// YGGGet dispatches GET /YGG/:name. Core names get dedicated payload shapes;
// anything else is served from the generic API cache.
func (h *Handler) YGGGet(c *gin.Context) {
	switch c.Param("name") {
	case "GetPlayerAPI":
		h.yggPlayer(c)
	case "GetStoreAPI":
		h.yggStore(c)
	case "GetLootboxAPI":
		h.yggLootbox(c)
	case "GetRankedAPI":
		h.yggRanked(c)
	case "MailBoxGet":
		c.JSON(http.StatusOK, gin.H{"mails": []any{}})
	case "GetQuestSkinAPI":
		c.JSON(http.StatusOK, gin.H{"questSkin": gin.H{"goals": []any{}}})
	case "GetCurseRelicAPI":
		c.JSON(http.StatusOK, gin.H{"curseRelic": gin.H{"relics": []any{}, "curses": []any{}}})
	case "Announcement":
		c.JSON(http.StatusOK, gin.H{"announcements": []any{}})
	case "GetServerVersion":
		c.JSON(http.StatusOK, gin.H{"version": "1.0.0", "message": ""})
	default:
		h.yggCached(c)
	}
}

// YGGPost dispatches POST /YGG/:name. Log sinks and mailbox mutations answer
// {ok:true}; unknown names append a log entry and may update the cache.
func (h *Handler) YGGPost(c *gin.Context) {
	name := c.Param("name")
	switch name {
	case "MailBoxRead", "MailBoxClaim", "MailBoxRemove":
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case "LogReport":
		h.yggLog(c, "report")
	case "LogTransaction":
		h.yggLog(c, "transaction")
	case "LogStore":
		h.yggLog(c, "store")
	case "LogGetPlayerData":
		h.yggLog(c, "getplayerdata")
	default:
		h.yggGenericPost(c, name)
	}
}

func (h *Handler) yggPlayer(c *gin.Context) {
	ctx := c.Request.Context()
	playerID := c.Query("playerId")
	if playerID == "" {
		playerID = demoPlayerID
	}

	player := &domain.Player{
		ID:          playerID,
		DisplayName: domain.DisplayNameFor(playerID),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := h.Store.UpsertPlayer(ctx, player); err != nil {
		middleware.StoreFailure("upsert_player")
		logger.Warn("player upsert failed", "player", playerID, "error", err)
	}
	if err := h.Store.EnsureProfile(ctx, playerID); err != nil {
		middleware.StoreFailure("ensure_profile")
		logger.Warn("profile ensure failed", "player", playerID, "error", err)
	}

	profile := h.profileOrDefault(ctx, playerID)
	inv, err := h.Store.ReadInventory(ctx, playerID)
	if err != nil {
		middleware.StoreFailure("read_inventory")
		inv = nil
	}

	items := []any{}
	skins := []any{}
	stickers := []any{}
	for _, it := range inv {
		entry := gin.H{"item_type": it.Type, "short_code": it.ShortCode, "quantity": it.Quantity}
		switch it.Type {
		case "skin":
			skins = append(skins, entry)
		case "sticker":
			stickers = append(stickers, entry)
		default:
			items = append(items, entry)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"player": gin.H{
			"playerId":    playerID,
			"displayName": player.DisplayName,
			"profile":     gin.H{"level": profile.Level, "exp": profile.Exp},
			"role":        profile.Role,
		},
		"playerBalance":  gin.H{"coin": profile.Balance.Coin, "gem": profile.Balance.Gem},
		"lootBoxBalance": gin.H{"balance": profile.Lootbox.Balance, "boxes": []any{}},
		"inventory":      gin.H{"items": items, "skins": skins, "stickers": stickers},
		"records":        gin.H{"survivor": gin.H{}, "hunter": gin.H{}, "mode4v4": gin.H{}},
		"ranked":         gin.H{"rankName": profile.Rank.Name, "rankPoint": profile.Rank.Point, "mmr": profile.Rank.MMR},
	})
}

func (h *Handler) yggStore(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context())
	if err != nil {
		middleware.StoreFailure("list_products")
		logger.Warn("product listing failed, serving empty store", "error", err)
		products = nil
	}

	listing := []any{}
	tagSet := map[string]struct{}{}
	for _, p := range products {
		listing = append(listing, gin.H{
			"short_code":   p.ShortCode,
			"name":         p.Name,
			"price":        gin.H{"base": p.PriceBase, "currency": p.Currency},
			"tags":         p.Tags,
			"isNewProduct": false,
		})
		for _, t := range p.Tags {
			tagSet[t] = struct{}{}
		}
	}
	tags := []string{}
	for t := range tagSet {
		tags = append(tags, t)
	}

	c.JSON(http.StatusOK, gin.H{
		"store": gin.H{"products": listing, "tags": tags, "priceMap": gin.H{}},
	})
}

func (h *Handler) yggLootbox(c *gin.Context) {
	playerID := c.Query("playerId")
	if playerID == "" {
		playerID = demoPlayerID
	}
	profile := h.profileOrDefault(c.Request.Context(), playerID)
	c.JSON(http.StatusOK, gin.H{
		"lootbox": gin.H{"balance": profile.Lootbox.Balance, "entries": []any{}},
	})
}

func (h *Handler) yggRanked(c *gin.Context) {
	playerID := c.Query("playerId")
	if playerID == "" {
		playerID = demoPlayerID
	}
	profile := h.profileOrDefault(c.Request.Context(), playerID)
	c.JSON(http.StatusOK, gin.H{
		"ranked": gin.H{
			"rankName":    profile.Rank.Name,
			"rankPoint":   profile.Rank.Point,
			"mmr":         profile.Rank.MMR,
			"leaderboard": []any{},
		},
	})
}

func (h *Handler) yggLog(c *gin.Context, logType string) {
	body := lenientBody(c)
	entry := &domain.LogEntry{
		Type:     logType,
		PlayerID: pickString(body, "playerId", "player_id"),
		Payload:  body,
	}
	if err := h.Store.AppendLog(c.Request.Context(), entry); err != nil {
		middleware.StoreFailure("append_log")
		logger.Warn("log append failed", "type", logType, "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) yggCached(c *gin.Context) {
	name := c.Param("name")
	payload, err := h.Cache.Get(c.Request.Context(), name)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			middleware.StoreFailure("cache_get")
			logger.Warn("cache read failed", "name", name, "error", err)
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "data": []any{}})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *Handler) yggGenericPost(c *gin.Context, name string) {
	ctx := c.Request.Context()
	body := lenientBody(c)

	entry := &domain.LogEntry{
		Type:     strings.ToLower(name),
		PlayerID: pickString(body, "playerId", "player_id"),
		Payload:  body,
	}
	if err := h.Store.AppendLog(ctx, entry); err != nil {
		middleware.StoreFailure("append_log")
		logger.Warn("log append failed", "type", entry.Type, "error", err)
	}

	if payload, ok := body["payload"]; ok {
		raw, err := json.Marshal(payload)
		if err == nil {
			if err := h.Cache.Put(ctx, name, raw); err != nil {
				middleware.StoreFailure("cache_put")
				logger.Warn("cache write failed", "name", name, "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
