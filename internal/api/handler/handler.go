// Package handler exposes the backend over HTTP for the desktop shell.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"forik/backend/internal/complaint"
	"forik/backend/internal/config"
	"forik/backend/internal/delivery"
	"forik/backend/internal/export"
	"forik/backend/internal/hub"
	"forik/backend/internal/localization"
	"forik/backend/internal/storage"
	"forik/backend/internal/submission"
	"forik/backend/internal/suggest"
	"forik/backend/internal/template"
)

// Handler wires the services into gin routes.
type Handler struct {
	Records   *complaint.Service
	Templates *template.Service
	Sender    *delivery.Sender
	Runner    *submission.Runner
	Suggest   *suggest.Service
	Export    *export.Service
	Hub       *hub.Manager
	Loc       *localization.Localizer
	Routing   *config.ForumRouting
	Store     storage.Store
	Log       *zap.SugaredLogger

	jwtSecret []byte
}

func NewHandler(records *complaint.Service, templates *template.Service, sender *delivery.Sender,
	runner *submission.Runner, sugg *suggest.Service, exp *export.Service, eventHub *hub.Manager,
	loc *localization.Localizer, routing *config.ForumRouting, store storage.Store,
	log *zap.SugaredLogger, jwtSecret string) *Handler {
	return &Handler{
		Records:   records,
		Templates: templates,
		Sender:    sender,
		Runner:    runner,
		Suggest:   sugg,
		Export:    exp,
		Hub:       eventHub,
		Loc:       loc,
		Routing:   routing,
		Store:     store,
		Log:       log,
		jwtSecret: []byte(jwtSecret),
	}
}

// Register mounts all routes on the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/api/v1/session", h.CreateSession)
	r.GET("/ws", h.ServeWebSocket)

	api := r.Group("/api/v1")
	{
		api.POST("/complaints", h.CreateComplaint)
		api.GET("/complaints", h.ListComplaints)
		api.DELETE("/complaints", h.ClearComplaints)
		api.GET("/complaints/:ts", h.GetComplaint)
		api.DELETE("/complaints/:ts", h.DeleteComplaint)
		api.GET("/complaints/:ts/render", h.RenderComplaint)
		api.GET("/form", h.GetFormState)
		api.PUT("/form", h.SaveFormState)

		api.GET("/templates", h.ListTemplates)
		api.PUT("/templates/:name", h.SaveTemplate)
		api.DELETE("/templates/:name", h.DeleteTemplate)
		api.GET("/rules", h.ListRules)
		api.POST("/rules", h.AddRule)
		api.PUT("/rules", h.SetRules)
		api.DELETE("/rules/:index", h.DeleteRule)
		api.POST("/markup/richtext", h.ToRichText)
		api.POST("/markup/bbcode", h.ToBBCode)

		api.GET("/telegram/config", h.GetTelegramConfig)
		api.PUT("/telegram/config", h.SaveTelegramConfig)
		api.GET("/telegram/stats", h.GetTelegramStats)
		api.POST("/telegram/stats/reset", h.ResetTelegramStats)
		api.POST("/telegram/test", h.TestTelegram)
		api.POST("/telegram/send/:ts", h.SendComplaint)
		api.POST("/telegram/send-all", h.SendAll)

		api.POST("/submission/start", h.StartSubmission)
		api.POST("/submission/stop", h.StopSubmission)
		api.GET("/submission/status", h.SubmissionStatus)

		api.GET("/suggest/:kind", h.Suggestions)
		api.DELETE("/suggest/:kind", h.ResetSuggestions)

		api.GET("/stats", h.Statistics)
		api.GET("/meta/statuses", h.StatusLabels)
		api.GET("/notification", h.GetNotification)
		api.PUT("/notification", h.SaveNotification)

		api.GET("/export", h.ExportSnapshot)
		api.POST("/import", h.ImportSnapshot)
	}
}

// respondErr maps service errors onto HTTP statuses.
func (h *Handler) respondErr(c *gin.Context, err error) {
	var fieldErr *complaint.FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message, "field": fieldErr.Field})
	case errors.Is(err, complaint.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, delivery.ErrConfig):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, submission.ErrBridgeUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, submission.ErrRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.Log.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseTS reads the :ts route param, the record identity.
func parseTS(c *gin.Context) (time.Time, bool) {
	ts, err := time.Parse(time.RFC3339Nano, c.Param("ts"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp"})
		return time.Time{}, false
	}
	return ts, true
}
