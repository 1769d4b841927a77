package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bhagesh4604/TimeVault1/internal/auth"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/countdown"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
)

// streamCountdown streams the vault's remaining time as Server-Sent Events,
// one tick per second, closing once the countdown reaches zero.
func (h *Handler) streamCountdown(c *gin.Context) {
	vaultID := c.Param("id")
	if vaultID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "vault id is required"})
		return
	}

	ctl := h.sessions.For(auth.UserID(c))
	if err := ctl.Load(c.Request.Context()); err != nil {
		c.JSON(statusForError(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	vaults := ctl.Snapshot().Vaults
	var vault *domain.TimeVault
	for i := range vaults {
		if vaults[i].ID == vaultID {
			vault = &vaults[i]
			break
		}
	}
	if vault == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": domain.ErrVaultNotFound.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()
	for rem := range countdown.Watch(ctx, vault.UnlockAt, h.clock) {
		data, _ := json.Marshal(rem)
		fmt.Fprintf(c.Writer, "event: countdown\ndata: %s\n\n", data)
		flusher.Flush()
	}

	// The watcher only closes cleanly once the vault is unlocked; a cancelled
	// client disconnect skips the terminal event.
	if ctx.Err() == nil {
		fmt.Fprint(c.Writer, "event: unlocked\ndata: {}\n\n")
		flusher.Flush()
	}
}
