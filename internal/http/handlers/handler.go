package handlers

import (
	"context"
	"encoding/json"
	"strings"

	"hsho_live_api/internal/config"
	"hsho_live_api/internal/debug"
	"hsho_live_api/internal/domain"
	"hsho_live_api/internal/envelope"
	"hsho_live_api/internal/http/middleware"
	"hsho_live_api/internal/identity"
	"hsho_live_api/internal/logger"
	"hsho_live_api/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Cfg      *config.Config
	Store    store.Store
	Cache    store.Cache
	Deriver  *identity.Deriver
	Verifier *identity.Verifier
	Builder  *envelope.Builder
	Recorder *debug.Recorder
}

func NewHandler(cfg *config.Config, st store.Store, cache store.Cache, deriver *identity.Deriver, verifier *identity.Verifier, recorder *debug.Recorder) *Handler {
	return &Handler{
		Cfg:      cfg,
		Store:    st,
		Cache:    cache,
		Deriver:  deriver,
		Verifier: verifier,
		Builder:  &envelope.Builder{BaseURL: cfg.BaseURL, Region: cfg.Region},
		Recorder: recorder,
	}
}

// pickString returns the first non-empty string under any of the keys.
// Clients disagree about field spellings; the server accepts all of them.
func pickString(body map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := body[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// requestToken extracts the session token from wherever the client put it:
// Authorization header (with or without a Bearer prefix), X-Auth-Token,
// query string, or the request body.
func requestToken(c *gin.Context, body map[string]any) string {
	if tok := c.Query("token"); tok != "" {
		return tok
	}
	if tok := pickString(body, "token", "access_token", "sessionKey", "session_token"); tok != "" {
		return tok
	}
	if tok := c.GetHeader("X-Auth-Token"); tok != "" {
		return tok
	}
	auth := c.GetHeader("Authorization")
	auth = strings.TrimPrefix(auth, "Bearer ")
	auth = strings.TrimPrefix(auth, "Basic ")
	return auth
}

// currentIdentity resolves the requester's session. The store is consulted
// first; signed tokens resolve on their own when the store has no row.
func (h *Handler) currentIdentity(c *gin.Context, body map[string]any) (envelope.Identity, bool) {
	token := requestToken(c, body)
	if token == "" {
		return envelope.Identity{}, false
	}

	ctx := c.Request.Context()
	if s, err := h.Store.SessionByToken(ctx, token); err == nil {
		return envelope.Identity{PlayerID: s.PlayerID, Token: s.Token}, true
	}

	if playerID, err := h.Deriver.PlayerIDFromToken(token); err == nil {
		return envelope.Identity{PlayerID: playerID, Token: token}, true
	}
	return envelope.Identity{}, false
}

// profileOrDefault reads the stored profile, degrading to defaults on any
// store failure.
func (h *Handler) profileOrDefault(ctx context.Context, playerID string) domain.Profile {
	profile, err := h.Store.ReadProfile(ctx, playerID)
	if err != nil {
		middleware.StoreFailure("read_profile")
		logger.Warn("profile read failed, serving defaults", "player", playerID, "error", err)
		return domain.DefaultProfile()
	}
	return *profile
}

// leniently decodes the JSON body; malformed or absent bodies become an
// empty map rather than an error.
func lenientBody(c *gin.Context) map[string]any {
	body := map[string]any{}
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		return body
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return map[string]any{}
	}
	return body
}
