package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"forik/backend/internal/analysis"
	"forik/backend/internal/models"
	"forik/backend/internal/status"
)

func TestSummarizeEmptyHistory(t *testing.T) {
	sum := analysis.Summarize(nil, time.Now())
	assert.Zero(t, sum.Total)
	assert.Empty(t, sum.TopViolations)
}

func TestSummarizeAggregates(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	list := []models.Complaint{
		{Violation: "DM", Server: "1", Affiliation: "none", ViolationDate: now.Add(-2 * time.Hour), TelegramSent: true},
		{Violation: "DM", Server: "1", Affiliation: "gang", ViolationDate: now.Add(-30 * time.Hour)},
		{Violation: "Cheat", Server: "12", Affiliation: "org", ViolationDate: now.Add(-70 * time.Hour)},
		{Violation: "DM", Server: "12", Affiliation: "none", ViolationDate: now.Add(-80 * time.Hour)},
		{Violation: "Insult", Server: "1", Affiliation: "none", ViolationDate: now.Add(-10 * time.Hour),
			Status: models.StatusPublished, ForumSubmitted: true},
	}

	sum := analysis.Summarize(list, now)

	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 1, sum.ByState[string(status.New)])
	assert.Equal(t, 1, sum.ByState[string(status.Aging24)])
	assert.Equal(t, 1, sum.ByState[string(status.Aging60)])
	assert.Equal(t, 1, sum.ByState[string(status.Expired)])
	assert.Equal(t, 1, sum.ByState[string(status.Published)])

	assert.Equal(t, 3, sum.ByServer["1"])
	assert.Equal(t, 2, sum.ByServer["12"])
	assert.Equal(t, 3, sum.ByAffiliation["none"])

	assert.Equal(t, 1, sum.TelegramSent)
	assert.Equal(t, 1, sum.ForumSubmitted)
	// only the 70h-old record is inside the 6h window and still active
	assert.Equal(t, 1, sum.ExpiringSoon)

	assert.Equal(t, "DM", sum.TopViolations[0].Violation)
	assert.Equal(t, 3, sum.TopViolations[0].Count)
}
