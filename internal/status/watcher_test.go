package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"forik/backend/internal/models"
	"forik/backend/internal/storage"
)

type fakeRecords struct {
	list []models.Complaint
}

func (f *fakeRecords) All() ([]models.Complaint, error) { return f.list, nil }

func (f *fakeRecords) MarkExpiredNotified(ts time.Time) error {
	for i := range f.list {
		if f.list[i].Timestamp.Equal(ts) {
			f.list[i].ExpiredNotified = true
		}
	}
	return nil
}

type fakeNotifier struct {
	events []models.Event
}

func (f *fakeNotifier) Broadcast(ev models.Event) { f.events = append(f.events, ev) }

type fakeWarner struct {
	calls []time.Duration
}

func (f *fakeWarner) SendWarning(c models.Complaint, remaining time.Duration) error {
	f.calls = append(f.calls, remaining)
	return nil
}

func newTestWatcher(records *fakeRecords, at time.Time) (*Watcher, *fakeNotifier, *fakeWarner, storage.Store) {
	notify := &fakeNotifier{}
	warner := &fakeWarner{}
	store := storage.NewMemStore()
	w := NewWatcher(records, store, notify, warner, zap.NewNop().Sugar())
	w.now = func() time.Time { return at }
	return w, notify, warner, store
}

func record(violation, created time.Time) models.Complaint {
	return models.Complaint{
		ViolatorNickname: "Bad_Guy",
		Violation:        "DM",
		ViolationDate:    violation,
		Timestamp:        created,
		Status:           models.StatusDraft,
	}
}

func TestWatcherFiresMostUrgentUnseenThreshold(t *testing.T) {
	violation := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	created := violation.Add(time.Hour)
	records := &fakeRecords{list: []models.Complaint{record(violation, created)}}

	// remaining 5h30m: only the 6h mark is crossed
	w, notify, warner, _ := newTestWatcher(records, violation.Add(66*time.Hour+30*time.Minute))
	require.NoError(t, w.Check())

	require.Len(t, notify.events, 1)
	assert.Equal(t, models.EventWarning, notify.events[0].Type)
	assert.Contains(t, notify.events[0].Message, "Bad_Guy")
	assert.Contains(t, notify.events[0].Message, "5ч 30м")
	assert.Len(t, warner.calls, 1)
}

func TestWatcherThresholdFiresOnlyOnce(t *testing.T) {
	violation := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := &fakeRecords{list: []models.Complaint{record(violation, violation)}}

	w, notify, _, _ := newTestWatcher(records, violation.Add(67*time.Hour))
	require.NoError(t, w.Check())
	require.NoError(t, w.Check())
	require.NoError(t, w.Check())

	assert.Len(t, notify.events, 1)
}

func TestWatcherEscalatesAsDeadlineNears(t *testing.T) {
	violation := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := &fakeRecords{list: []models.Complaint{record(violation, violation)}}

	w, notify, _, store := newTestWatcher(records, violation.Add(67*time.Hour)) // 5h left
	require.NoError(t, w.Check())

	w.now = func() time.Time { return violation.Add(70 * time.Hour) } // 2h left
	require.NoError(t, w.Check())

	w.now = func() time.Time { return violation.Add(71*time.Hour + 30*time.Minute) } // 30m left
	require.NoError(t, w.Check())

	assert.Len(t, notify.events, 3)

	marker, ok, err := store.Get(storage.WarnedKey(violation))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, marker, "6h")
	assert.Contains(t, marker, "3h")
	assert.Contains(t, marker, "1h")
}

func TestWatcherMarkersSurviveRestart(t *testing.T) {
	violation := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := &fakeRecords{list: []models.Complaint{record(violation, violation)}}

	w, notify, _, store := newTestWatcher(records, violation.Add(67*time.Hour))
	require.NoError(t, w.Check())
	require.Len(t, notify.events, 1)

	// a fresh watcher over the same store sees the fired marker
	notify2 := &fakeNotifier{}
	w2 := NewWatcher(records, store, notify2, nil, zap.NewNop().Sugar())
	w2.now = func() time.Time { return violation.Add(67*time.Hour + time.Minute) }
	require.NoError(t, w2.Check())

	assert.Empty(t, notify2.events)
}

func TestWatcherExpiredFiresOnce(t *testing.T) {
	violation := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := &fakeRecords{list: []models.Complaint{record(violation, violation)}}

	w, notify, warner, _ := newTestWatcher(records, violation.Add(73*time.Hour))
	require.NoError(t, w.Check())
	require.NoError(t, w.Check())

	require.Len(t, notify.events, 1)
	assert.Equal(t, models.EventExpired, notify.events[0].Type)
	assert.True(t, records.list[0].ExpiredNotified)
	// expiry announcements stay in-app
	assert.Empty(t, warner.calls)
}

func TestWatcherIgnoresPublished(t *testing.T) {
	violation := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := record(violation, violation)
	c.Status = models.StatusPublished
	records := &fakeRecords{list: []models.Complaint{c}}

	w, notify, _, _ := newTestWatcher(records, violation.Add(73*time.Hour))
	require.NoError(t, w.Check())

	assert.Empty(t, notify.events)
}
