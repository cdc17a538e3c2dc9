package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forik/backend/internal/suggest"
)

// Suggestions returns the ranked autocomplete entries for a counter kind.
func (h *Handler) Suggestions(c *gin.Context) {
	out, err := h.Suggest.Suggest(c.Param("kind"), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if out == nil {
		out = []suggest.Suggestion{}
	}
	c.JSON(http.StatusOK, out)
}

// ResetSuggestions drops the counters of a kind.
func (h *Handler) ResetSuggestions(c *gin.Context) {
	if err := h.Suggest.Reset(c.Param("kind")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
