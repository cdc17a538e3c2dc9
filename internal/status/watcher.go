package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"forik/backend/internal/config"
	"forik/backend/internal/models"
	"forik/backend/internal/storage"
)

// Records is the slice of the complaint service the watcher needs.
type Records interface {
	All() ([]models.Complaint, error)
	MarkExpiredNotified(ts time.Time) error
}

// Notifier receives watcher events, normally the websocket hub.
type Notifier interface {
	Broadcast(ev models.Event)
}

// WarningSender forwards an expiry warning to the messaging chat. Optional;
// delivery errors are logged and never interrupt the watcher.
type WarningSender interface {
	SendWarning(c models.Complaint, remaining time.Duration) error
}

// Watcher re-evaluates every record on a fixed interval, raising one-time
// warning events when the remaining window crosses 6h, 3h and 1h, and a
// one-time expired event past the 72h deadline. Fired thresholds are tracked
// per record in the store so restarts do not repeat them.
type Watcher struct {
	records  Records
	store    storage.Store
	notify   Notifier
	telegram WarningSender
	log      *zap.SugaredLogger

	interval time.Duration
	now      func() time.Time
}

func NewWatcher(records Records, store storage.Store, notify Notifier, telegram WarningSender, log *zap.SugaredLogger) *Watcher {
	return &Watcher{
		records:  records,
		store:    store,
		notify:   notify,
		telegram: telegram,
		log:      log,
		interval: config.WatcherInterval,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled, checking the history once per interval.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Infow("expiry watcher started", "interval", w.interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Check(); err != nil {
				w.log.Errorw("expiry check failed", "error", err)
			}
		}
	}
}

// Check runs one idempotent pass over all records.
func (w *Watcher) Check() error {
	list, err := w.records.All()
	if err != nil {
		return err
	}
	now := w.now()

	for _, c := range list {
		res := Classify(c.ViolationDate, c.Status == models.StatusPublished, now)
		switch {
		case res.State == Published:
			// Terminal, nothing to announce.
		case res.State == Expired:
			if !c.ExpiredNotified {
				w.announceExpired(c)
			}
		default:
			if threshold, ok := w.dueThreshold(c, res.Remaining); ok {
				w.announceWarning(c, res, threshold)
			}
		}
	}
	return nil
}

// dueThreshold returns the most urgent threshold the remaining time has
// crossed that has not fired yet, and marks it fired.
func (w *Watcher) dueThreshold(c models.Complaint, remaining time.Duration) (time.Duration, bool) {
	key := storage.WarnedKey(c.Timestamp)
	marker, _, err := w.store.Get(key)
	if err != nil {
		w.log.Errorw("warning marker read failed", "key", key, "error", err)
		return 0, false
	}

	for _, threshold := range config.WarningThresholds {
		token := thresholdToken(threshold)
		if remaining <= threshold && !strings.Contains(marker, token) {
			if err := w.store.Set(key, marker+token+" "); err != nil {
				w.log.Errorw("warning marker write failed", "key", key, "error", err)
				return 0, false
			}
			return threshold, true
		}
	}
	return 0, false
}

func thresholdToken(threshold time.Duration) string {
	return fmt.Sprintf("%dh", int(threshold/time.Hour))
}

func (w *Watcher) announceWarning(c models.Complaint, res Result, threshold time.Duration) {
	timeLeft := fmt.Sprintf("%dч %dм", res.Hours(), res.Minutes())
	w.log.Infow("complaint expiring soon",
		"violator", c.ViolatorNickname, "remaining", res.Remaining, "threshold", threshold)

	w.notify.Broadcast(models.Event{
		ID:        uuid.New().String(),
		Type:      models.EventWarning,
		Message:   fmt.Sprintf("⚠️ Жалоба на %s просрочится через %s!", c.ViolatorNickname, timeLeft),
		Complaint: &c,
		CreatedAt: w.now(),
	})

	if w.telegram != nil {
		if err := w.telegram.SendWarning(c, res.Remaining); err != nil {
			w.log.Warnw("telegram warning failed", "violator", c.ViolatorNickname, "error", err)
		}
	}
}

func (w *Watcher) announceExpired(c models.Complaint) {
	w.log.Infow("complaint expired", "violator", c.ViolatorNickname)

	w.notify.Broadcast(models.Event{
		ID:        uuid.New().String(),
		Type:      models.EventExpired,
		Message:   fmt.Sprintf("🚨 Жалоба на %s просрочена! Немедленно отправьте на форум!", c.ViolatorNickname),
		Complaint: &c,
		CreatedAt: w.now(),
	})

	if err := w.records.MarkExpiredNotified(c.Timestamp); err != nil {
		w.log.Errorw("marking expired record failed", "error", err)
	}
}
