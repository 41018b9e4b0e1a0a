package handlers

import (
	"net/http"
	"time"

	"hsho_live_api/internal/debug"
	"hsho_live_api/internal/domain"
	"hsho_live_api/internal/envelope"
	"hsho_live_api/internal/http/middleware"
	"hsho_live_api/internal/logger"

	"github.com/gin-gonic/gin"
)

// Authen handles POST /live/player/authen and its aliases. The ticket is
// never validated here; it only seeds the id derivation. Persistence is
// best-effort: a dead store still gets the client a full auth envelope.
func (h *Handler) Authen(c *gin.Context) {
	body := lenientBody(c)
	ctx := c.Request.Context()
	now := time.Now()

	ticket := pickString(body, "ticket", "authTicket", "access_ticket")
	authType := pickString(body, "authType")
	if authType == "" {
		authType = "steam"
	}
	clientVersion := pickString(body, "clientversion", "clientVersion", "version")
	if clientVersion == "" {
		clientVersion = h.Cfg.ClientVersion
	}

	playerID := h.Deriver.PlayerID(ticket)

	if h.Verifier.Enabled() {
		verdict, err := h.Verifier.VerifyTicket(ctx, ticket)
		switch {
		case err != nil:
			logger.Warn("ticket verification unavailable, using derived id", "error", err)
		case verdict.Valid && verdict.PlayerID != "":
			playerID = verdict.PlayerID
		}
	}

	token, err := h.Deriver.Token(playerID, now)
	if err != nil {
		logger.Error("token issue failed", "error", err)
		c.JSON(http.StatusOK, envelope.Failure("cannot issue session"))
		return
	}

	player := &domain.Player{
		ID:          playerID,
		DisplayName: domain.DisplayNameFor(playerID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Store.UpsertPlayer(ctx, player); err != nil {
		middleware.StoreFailure("upsert_player")
		logger.Warn("player upsert failed", "player", playerID, "error", err)
	}

	session := &domain.Session{
		Token:     token,
		PlayerID:  playerID,
		CreatedAt: now,
		ExpiresAt: now.Add(domain.SessionTTL),
	}
	if err := h.Store.UpsertSession(ctx, session); err != nil {
		middleware.StoreFailure("upsert_session")
		logger.Warn("session upsert failed", "player", playerID, "error", err)
	}

	if err := h.Store.EnsureProfile(ctx, playerID); err != nil {
		middleware.StoreFailure("ensure_profile")
		logger.Warn("profile ensure failed", "player", playerID, "error", err)
	}

	env := h.Builder.Auth(envelope.AuthInput{
		Identity:      envelope.Identity{PlayerID: playerID, Token: token},
		Profile:       h.profileOrDefault(ctx, playerID),
		Ticket:        ticket,
		AuthType:      authType,
		ClientVersion: clientVersion,
		Now:           now,
	})

	h.Recorder.Record(debug.Capture{
		Time:   now,
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Request: map[string]any{
			"headers": c.Request.Header,
			"body":    body,
		},
		Response: env,
	})

	c.JSON(http.StatusOK, env)
}
