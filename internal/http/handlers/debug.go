package handlers

import (
	"net/http"

	"hsho_live_api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// debug surface, local inspection only
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DebugAuthen returns the most recent capture, historically the auth
// handshake, or a placeholder when nothing has been recorded yet.
func (h *Handler) DebugAuthen(c *gin.Context) {
	capture, ok := h.Recorder.Last()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"note": "no auth captured yet"})
		return
	}
	c.JSON(http.StatusOK, capture)
}

// DebugCaptures returns the whole ring, oldest first.
func (h *Handler) DebugCaptures(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"captures": h.Recorder.List()})
}

// DebugStream upgrades to a websocket and feeds captures as they happen.
func (h *Handler) DebugStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("debug stream upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	feed, cancel := h.Recorder.Subscribe()
	defer cancel()

	// reader goroutine only notices the peer going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case capture := <-feed:
			if err := conn.WriteJSON(capture); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
