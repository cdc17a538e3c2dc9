package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"forik/backend/internal/bbcode"
	"forik/backend/internal/models"
	"forik/backend/internal/status"
	"forik/backend/internal/suggest"
)

// complaintView is a record with its current lifecycle state attached.
type complaintView struct {
	models.Complaint
	State            string `json:"state"`
	RemainingMinutes int    `json:"remainingMinutes"`
}

func viewOf(c models.Complaint, now time.Time) complaintView {
	res := status.Classify(c.ViolationDate, c.Status == models.StatusPublished, now)
	return complaintView{
		Complaint:        c,
		State:            string(res.State),
		RemainingMinutes: int(res.Remaining / time.Minute),
	}
}

// CreateComplaint validates the draft, stores it and feeds the autocomplete
// counters.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var draft models.Complaint
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.Records.Create(draft)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	if err := h.Suggest.Bump(suggest.KindNickname, record.ViolatorNickname); err != nil {
		h.Log.Warnw("nickname counter bump failed", "error", err)
	}
	if err := h.Suggest.Bump(suggest.KindViolation, record.Violation); err != nil {
		h.Log.Warnw("violation counter bump failed", "error", err)
	}

	c.JSON(http.StatusCreated, viewOf(*record, time.Now()))
}

// ListComplaints returns the history filtered by the q and affiliation query
// params, newest first, each record carrying its lifecycle state.
func (h *Handler) ListComplaints(c *gin.Context) {
	list, err := h.Records.List(c.Query("q"), c.Query("affiliation"))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	now := time.Now()
	views := make([]complaintView, 0, len(list))
	for _, record := range list {
		views = append(views, viewOf(record, now))
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) GetComplaint(c *gin.Context) {
	ts, ok := parseTS(c)
	if !ok {
		return
	}
	record, err := h.Records.Get(ts)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(*record, time.Now()))
}

func (h *Handler) DeleteComplaint(c *gin.Context) {
	ts, ok := parseTS(c)
	if !ok {
		return
	}
	if err := h.Records.Delete(ts); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearComplaints(c *gin.Context) {
	if err := h.Records.Clear(); err != nil {
		h.respondErr(c, err)
		return
	}
	for _, kind := range []string{suggest.KindNickname, suggest.KindViolation} {
		if err := h.Suggest.Reset(kind); err != nil {
			h.respondErr(c, err)
			return
		}
	}
	if err := h.Sender.ResetStats(); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RenderComplaint returns the record's forum text in both markup forms.
func (h *Handler) RenderComplaint(c *gin.Context) {
	ts, ok := parseTS(c)
	if !ok {
		return
	}
	record, err := h.Records.Get(ts)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	text, err := h.Templates.RenderFor(*record)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bbcode":   text,
		"richText": bbcode.ToRichText(text),
		"template": record.TemplateUsed,
	})
}

// GetFormState restores the autosaved draft.
func (h *Handler) GetFormState(c *gin.Context) {
	form, err := h.Records.FormState()
	if err != nil {
		h.respondErr(c, err)
		return
	}
	if form == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, form)
}

// SaveFormState autosaves the in-progress draft.
func (h *Handler) SaveFormState(c *gin.Context) {
	var form models.FormState
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Records.SaveFormState(form); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
