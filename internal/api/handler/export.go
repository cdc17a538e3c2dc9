package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forik/backend/internal/models"
)

// ExportSnapshot returns the whole application state as one document.
func (h *Handler) ExportSnapshot(c *gin.Context) {
	snap, err := h.Export.Export()
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="forik-backup.json"`)
	c.JSON(http.StatusOK, snap)
}

// ImportSnapshot replaces the stored state with the uploaded snapshot.
func (h *Handler) ImportSnapshot(c *gin.Context) {
	var snap models.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot"})
		return
	}
	if err := h.Export.Import(snap); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(snap.Complaints)})
}
