package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"forik/backend/internal/analysis"
	"forik/backend/internal/localization"
	"forik/backend/internal/models"
	"forik/backend/internal/status"
	"forik/backend/internal/storage"
)

// Statistics returns the dashboard aggregate over the whole history.
func (h *Handler) Statistics(c *gin.Context) {
	list, err := h.Records.All()
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis.Summarize(list, time.Now()))
}

// StatusLabels returns the localized display names for every lifecycle state.
func (h *Handler) StatusLabels(c *gin.Context) {
	lang := c.DefaultQuery("lang", localization.DefaultLang)
	states := []status.State{
		status.New, status.Aging24, status.Aging48,
		status.Aging60, status.Expired, status.Published,
	}
	labels := make(map[string]string, len(states))
	for _, st := range states {
		labels[string(st)] = h.Loc.GetString(lang, "status."+string(st))
	}
	c.JSON(http.StatusOK, labels)
}

// GetNotification returns the stored startup banner, if any.
func (h *Handler) GetNotification(c *gin.Context) {
	var banner models.Banner
	ok, err := storage.GetJSON(h.Store, storage.KeyNotification, &banner)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, banner)
}

// SaveNotification stores the startup banner.
func (h *Handler) SaveNotification(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	banner.UpdatedAt = time.Now()
	if err := storage.SetJSON(h.Store, storage.KeyNotification, banner); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
