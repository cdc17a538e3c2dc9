package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"forik/backend/internal/models"
)

// GetTelegramConfig returns the delivery settings with the bot token masked.
func (h *Handler) GetTelegramConfig(c *gin.Context) {
	cfg, err := h.Sender.Config()
	if err != nil {
		h.respondErr(c, err)
		return
	}
	if len(cfg.BotToken) > 8 {
		cfg.BotToken = cfg.BotToken[:8] + "..."
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) SaveTelegramConfig(c *gin.Context) {
	var cfg models.TelegramConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Sender.SaveConfig(cfg); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetTelegramStats(c *gin.Context) {
	stats, err := h.Sender.Stats()
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ResetTelegramStats(c *gin.Context) {
	if err := h.Sender.ResetStats(); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TestTelegram sends the probe message through the configured chat.
func (h *Handler) TestTelegram(c *gin.Context) {
	if err := h.Sender.TestConnection(); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SendComplaint forwards one record to the chat and flags it as sent.
func (h *Handler) SendComplaint(c *gin.Context) {
	ts, ok := parseTS(c)
	if !ok {
		return
	}
	record, err := h.Records.Get(ts)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	if err := h.Sender.SendComplaint(*record); err != nil {
		h.respondErr(c, err)
		return
	}
	if err := h.Records.MarkTelegramSent(ts); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SendAll launches a bulk run over the unsent queue. The run takes seconds
// per record, so it is detached; progress arrives over the websocket.
func (h *Handler) SendAll(c *gin.Context) {
	queue, err := h.Records.Unsent()
	if err != nil {
		h.respondErr(c, err)
		return
	}
	go func() {
		if _, err := h.Sender.SendAll(context.Background(), h.Records, h.Templates, h.Hub); err != nil {
			h.Log.Errorw("bulk send run failed", "error", err)
		}
	}()
	c.JSON(http.StatusAccepted, gin.H{"queued": len(queue)})
}
