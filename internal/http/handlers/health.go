package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports liveness. Always HTTP 200: the hosting platform's probe
// must not recycle the process just because the optional store is down, and
// the store state is visible in the body instead.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	db := "up"
	if err := h.Store.Ping(ctx); err != nil {
		db = "down"
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "db": db})
}

// Root serves a plaintext banner so a browser poke shows signs of life.
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "HSHO live API mock running")
}
