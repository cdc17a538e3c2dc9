package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forik/backend/internal/bbcode"
	"forik/backend/internal/models"
)

// ListTemplates returns the saved templates as a name -> text map.
func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.Templates.All()
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *Handler) SaveTemplate(c *gin.Context) {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Templates.Save(c.Param("name"), body.Text); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteTemplate(c *gin.Context) {
	if err := h.Templates.Delete(c.Param("name")); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRules returns the rule list in evaluation order.
func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.Templates.Rules()
	if err != nil {
		h.respondErr(c, err)
		return
	}
	if rules == nil {
		rules = []models.TemplateRule{}
	}
	c.JSON(http.StatusOK, rules)
}

func (h *Handler) AddRule(c *gin.Context) {
	var rule models.TemplateRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Templates.AddRule(rule); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetRules replaces the whole rule list, preserving the given order.
func (h *Handler) SetRules(c *gin.Context) {
	var rules []models.TemplateRule
	if err := c.ShouldBindJSON(&rules); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.Templates.SetRules(rules); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteRule(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule index"})
		return
	}
	if err := h.Templates.DeleteRule(index); err != nil {
		h.respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToRichText converts bracket markup to editor HTML.
func (h *Handler) ToRichText(c *gin.Context) {
	var body struct {
		BBCode string `json:"bbcode"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"richText": bbcode.ToRichText(body.BBCode)})
}

// ToBBCode converts editor HTML back to bracket markup.
func (h *Handler) ToBBCode(c *gin.Context) {
	var body struct {
		RichText string `json:"richText"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	markup, err := bbcode.FromRichText(body.RichText)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unparseable markup"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bbcode": markup})
}
