package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"forik/backend/internal/config"
	"forik/backend/internal/models"
)

// Records is the slice of the complaint service a bulk run needs.
type Records interface {
	Unsent() ([]models.Complaint, error)
	MarkTelegramSent(ts time.Time) error
}

// Renderer produces the forum text for a record. Satisfied by
// template.Service.
type Renderer interface {
	RenderFor(c models.Complaint) (string, error)
}

// Notifier receives progress events during a bulk run. Satisfied by the
// websocket hub.
type Notifier interface {
	Broadcast(models.Event)
}

// BulkResult summarizes a bulk run over the unsent queue.
type BulkResult struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SendAll forwards every unsent record sequentially, oldest first. A failed
// record is skipped, not retried beyond Send's own retry budget, and the run
// continues with the next one. Cancelling ctx stops between records.
func (s *Sender) SendAll(ctx context.Context, records Records, render Renderer, notify Notifier) (BulkResult, error) {
	var res BulkResult

	cfg, err := s.Config()
	if err != nil {
		return res, err
	}
	if err := validateConfig(cfg); err != nil {
		return res, err
	}

	queue, err := records.Unsent()
	if err != nil {
		return res, err
	}
	res.Total = len(queue)

	for i, c := range queue {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		text, err := render.RenderFor(c)
		if err == nil {
			err = s.Send(text)
		}
		if err != nil {
			res.Failed++
			s.log.Errorw("bulk send failed", "violator", c.ViolatorNickname, "error", err)
			s.broadcast(notify, models.EventDelivery,
				fmt.Sprintf("❌ Не удалось отправить жалобу на %s", c.ViolatorNickname), c)
			if i < len(queue)-1 {
				s.sleep(config.BulkSendFailureDelay)
			}
			continue
		}

		if err := records.MarkTelegramSent(c.Timestamp); err != nil {
			s.log.Errorw("bulk send mark failed", "violator", c.ViolatorNickname, "error", err)
		}
		res.Sent++
		s.broadcast(notify, models.EventDelivery,
			fmt.Sprintf("✅ Жалоба на %s отправлена (%d/%d)", c.ViolatorNickname, res.Sent, res.Total), c)
		if i < len(queue)-1 {
			s.sleep(config.BulkSendDelay)
		}
	}

	s.log.Infow("bulk send finished", "total", res.Total, "sent", res.Sent, "failed", res.Failed)
	return res, nil
}

func (s *Sender) broadcast(notify Notifier, eventType, message string, c models.Complaint) {
	if notify == nil {
		return
	}
	record := c
	notify.Broadcast(models.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Complaint: &record,
		CreatedAt: s.now(),
	})
}
