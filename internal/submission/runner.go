package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"forik/backend/internal/config"
	"forik/backend/internal/models"
)

// ErrRunning is returned when a run is started while another is in flight.
var ErrRunning = errors.New("submission: a run is already in progress")

// Queue is the slice of the complaint service a run needs.
type Queue interface {
	ActiveQueue(server, affiliation string) ([]models.Complaint, error)
	MarkSubmitted(ts time.Time) error
}

// Renderer produces the forum post body. Satisfied by template.Service.
type Renderer interface {
	RenderFor(c models.Complaint) (string, error)
}

// Notifier receives progress events. Satisfied by the websocket hub.
type Notifier interface {
	Broadcast(models.Event)
}

// Progress is a point-in-time snapshot of the current (or last) run.
type Progress struct {
	Running bool   `json:"running"`
	Total   int    `json:"total"`
	Done    int    `json:"done"`
	Failed  int    `json:"failed"`
	Current string `json:"current,omitempty"`
	Halted  string `json:"halted,omitempty"`
}

// Runner walks the active submission queue through the automation bridge,
// one record at a time with a fixed pause between posts so the forum's
// flood control is never tripped.
type Runner struct {
	queue   Queue
	render  Renderer
	routing *config.ForumRouting
	auto    Automator
	notify  Notifier
	log     *zap.SugaredLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	prog   Progress
}

func NewRunner(queue Queue, render Renderer, routing *config.ForumRouting, auto Automator, notify Notifier, log *zap.SugaredLogger) *Runner {
	return &Runner{
		queue:   queue,
		render:  render,
		routing: routing,
		auto:    auto,
		notify:  notify,
		log:     log,
	}
}

// Start launches a run over the active queue filtered by server and
// affiliation ("all" disables a filter). Only one run may be in flight.
func (r *Runner) Start(server, affiliation string) error {
	items, err := r.queue.ActiveQueue(server, affiliation)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.prog.Running {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.prog = Progress{Running: true, Total: len(items)}

	go r.run(ctx, items)
	return nil
}

// Stop cancels the current run. The in-flight record finishes; the queue walk
// stops before the next one.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// Status returns a snapshot of the run state.
func (r *Runner) Status() Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prog
}

func (r *Runner) run(ctx context.Context, items []models.Complaint) {
	defer func() {
		r.mu.Lock()
		r.prog.Running = false
		r.prog.Current = ""
		r.cancel = nil
		r.mu.Unlock()
	}()

	if err := r.auto.Ping(ctx); err != nil {
		r.halt(err)
		return
	}

	for i, c := range items {
		if ctx.Err() != nil {
			r.log.Infow("submission run cancelled", "done", i, "total", len(items))
			return
		}
		r.setCurrent(c.ViolatorNickname)

		err := r.submitOne(ctx, c)
		switch {
		case errors.Is(err, ErrBridgeUnavailable):
			r.halt(err)
			return
		case errors.Is(err, context.Canceled):
			return
		case err != nil:
			r.addFailed()
			r.log.Errorw("forum submit failed", "violator", c.ViolatorNickname, "error", err)
			r.event(models.EventSubmission,
				fmt.Sprintf("❌ Не удалось опубликовать жалобу на %s", c.ViolatorNickname), c)
		default:
			if err := r.queue.MarkSubmitted(c.Timestamp); err != nil {
				r.log.Errorw("submission mark failed", "violator", c.ViolatorNickname, "error", err)
			}
			done := r.addDone()
			r.event(models.EventSubmission,
				fmt.Sprintf("✅ Жалоба на %s опубликована (%d/%d)", c.ViolatorNickname, done, len(items)), c)
		}

		if i < len(items)-1 && !sleepCtx(ctx, config.SubmitItemDelay) {
			return
		}
	}
	r.log.Infow("submission run finished", "total", len(items))
}

func (r *Runner) submitOne(ctx context.Context, c models.Complaint) error {
	forumURL, ok := r.routing.URL(c.Server, c.Affiliation)
	if !ok {
		return fmt.Errorf("submission: no forum section for server %q affiliation %q", c.Server, c.Affiliation)
	}
	body, err := r.render.RenderFor(c)
	if err != nil {
		return err
	}
	return r.auto.Submit(ctx, Request{
		ForumURL: forumURL,
		Title:    fmt.Sprintf("Жалоба на %s", c.ViolatorNickname),
		Body:     body,
	})
}

// halt records a bridge outage: the run stops and the remaining queue is left
// untouched for a later retry.
func (r *Runner) halt(err error) {
	r.log.Errorw("submission run halted", "error", err)
	r.mu.Lock()
	r.prog.Halted = err.Error()
	r.mu.Unlock()
	r.event(models.EventSubmission,
		"🔌 Мост автоматизации недоступен, отправка остановлена", models.Complaint{})
}

func (r *Runner) setCurrent(name string) {
	r.mu.Lock()
	r.prog.Current = name
	r.mu.Unlock()
}

func (r *Runner) addDone() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prog.Done++
	return r.prog.Done
}

func (r *Runner) addFailed() {
	r.mu.Lock()
	r.prog.Failed++
	r.mu.Unlock()
}

func (r *Runner) event(eventType, message string, c models.Complaint) {
	if r.notify == nil {
		return
	}
	ev := models.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if !c.Timestamp.IsZero() {
		record := c
		ev.Complaint = &record
	}
	r.notify.Broadcast(ev)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
