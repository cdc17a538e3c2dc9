// Package analysis aggregates the complaint history into the statistics the
// shell's dashboard shows.
package analysis

import (
	"sort"
	"time"

	"forik/backend/internal/models"
	"forik/backend/internal/status"
)

// Summary is the dashboard aggregate over the whole history.
type Summary struct {
	Total          int            `json:"total"`
	ByState        map[string]int `json:"byState"`
	ByServer       map[string]int `json:"byServer"`
	ByAffiliation  map[string]int `json:"byAffiliation"`
	TelegramSent   int            `json:"telegramSent"`
	ForumSubmitted int            `json:"forumSubmitted"`
	ExpiringSoon   int            `json:"expiringSoon"`
	TopViolations  []ViolationTally `json:"topViolations"`
}

// ViolationTally is one entry of the most frequent violations list.
type ViolationTally struct {
	Violation string `json:"violation"`
	Count     int    `json:"count"`
}

// ExpiringSoonWindow is the remaining-time cutoff under which an active
// record counts as expiring soon.
const ExpiringSoonWindow = 6 * time.Hour

const topViolations = 5

// Summarize aggregates the history at the given instant.
func Summarize(list []models.Complaint, now time.Time) Summary {
	sum := Summary{
		Total:         len(list),
		ByState:       map[string]int{},
		ByServer:      map[string]int{},
		ByAffiliation: map[string]int{},
	}

	violations := map[string]int{}
	for _, c := range list {
		res := status.Classify(c.ViolationDate, c.Status == models.StatusPublished, now)
		sum.ByState[string(res.State)]++
		if c.Server != "" {
			sum.ByServer[c.Server]++
		}
		sum.ByAffiliation[c.Affiliation]++

		if c.TelegramSent {
			sum.TelegramSent++
		}
		if c.ForumSubmitted {
			sum.ForumSubmitted++
		}
		if !res.Terminal() && res.Remaining <= ExpiringSoonWindow {
			sum.ExpiringSoon++
		}
		violations[c.Violation]++
	}

	for violation, count := range violations {
		sum.TopViolations = append(sum.TopViolations, ViolationTally{Violation: violation, Count: count})
	}
	sort.Slice(sum.TopViolations, func(i, j int) bool {
		if sum.TopViolations[i].Count != sum.TopViolations[j].Count {
			return sum.TopViolations[i].Count > sum.TopViolations[j].Count
		}
		return sum.TopViolations[i].Violation < sum.TopViolations[j].Violation
	})
	if len(sum.TopViolations) > topViolations {
		sum.TopViolations = sum.TopViolations[:topViolations]
	}
	return sum
}
