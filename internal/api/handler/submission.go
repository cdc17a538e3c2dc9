package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StartSubmission launches a forum submission run over the active queue.
func (h *Handler) StartSubmission(c *gin.Context) {
	var body struct {
		Server      string `json:"server"`
		Affiliation string `json:"affiliation"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Runner.Start(body.Server, body.Affiliation); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusAccepted, h.Runner.Status())
}

// StopSubmission cancels the current run.
func (h *Handler) StopSubmission(c *gin.Context) {
	h.Runner.Stop()
	c.JSON(http.StatusOK, h.Runner.Status())
}

func (h *Handler) SubmissionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.Runner.Status())
}
