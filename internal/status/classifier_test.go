package status_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"forik/backend/internal/status"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		want    status.State
	}{
		{"fresh", 0, status.New},
		{"just under 24h", 24*time.Hour - time.Minute, status.New},
		{"exactly 24h", 24 * time.Hour, status.Aging24},
		{"just under 48h", 48*time.Hour - time.Minute, status.Aging24},
		{"exactly 48h", 48 * time.Hour, status.Aging48},
		{"just under 60h", 60*time.Hour - time.Minute, status.Aging48},
		{"exactly 60h", 60 * time.Hour, status.Aging60},
		{"just under 72h", 72*time.Hour - time.Minute, status.Aging60},
		{"exactly 72h", 72 * time.Hour, status.Expired},
		{"well past", 100 * time.Hour, status.Expired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := status.Classify(base, false, base.Add(tc.elapsed))
			assert.Equal(t, tc.want, res.State)
		})
	}
}

func TestClassifyPublishedOverridesEverything(t *testing.T) {
	res := status.Classify(base, true, base.Add(100*time.Hour))
	assert.Equal(t, status.Published, res.State)
	assert.Zero(t, res.Remaining)
	assert.True(t, res.Terminal())
}

func TestClassifyRemainingFlooredToMinute(t *testing.T) {
	now := base.Add(10*time.Hour + 30*time.Second)
	res := status.Classify(base, false, now)

	assert.Equal(t, 61*time.Hour+29*time.Minute, res.Remaining)
	assert.Equal(t, 61, res.Hours())
	assert.Equal(t, 29, res.Minutes())
}

func TestClassifyFutureViolationDateClamps(t *testing.T) {
	res := status.Classify(base.Add(time.Hour), false, base)
	assert.Equal(t, status.New, res.State)
	assert.Equal(t, 72*time.Hour, res.Remaining)
}

func TestClassifyExpiredHasNoRemaining(t *testing.T) {
	res := status.Classify(base, false, base.Add(80*time.Hour))
	assert.Equal(t, status.Expired, res.State)
	assert.Zero(t, res.Remaining)
	assert.True(t, res.Terminal())
}
