// Package delivery forwards rendered complaints to a Telegram chat with a
// send-rate floor, bounded retries and counters persisted across restarts.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"forik/backend/internal/config"
	"forik/backend/internal/models"
	"forik/backend/internal/storage"
	"forik/backend/internal/template"
)

// ErrConfig means the bot token or chat id is missing or malformed. Raised
// before any network I/O.
var ErrConfig = errors.New("telegram: bot token and chat id are required")

// Messages carrying forum markup are sent without a parse mode so Telegram
// does not interpret the brackets.
var markupRe = regexp.MustCompile(`(?i)\[(B|I|U|SIZE|FONT|COLOR|URL|IMG|CENTER|RIGHT|LIST|INDENT)[\]=]`)

// Sender delivers messages through the Bot API. All sends are serialized so
// the rate floor holds across callers.
type Sender struct {
	store storage.Store
	log   *zap.SugaredLogger

	endpoint string
	client   *http.Client

	mu       sync.Mutex
	bot      *tgbotapi.BotAPI
	botToken string
	lastSend time.Time

	sleep func(time.Duration)
	now   func() time.Time
}

func NewSender(store storage.Store, log *zap.SugaredLogger) *Sender {
	return &Sender{
		store:    store,
		log:      log,
		endpoint: tgbotapi.APIEndpoint,
		client:   &http.Client{Timeout: config.DeliveryTimeout},
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Config returns the stored delivery configuration with the default message
// template filled in.
func (s *Sender) Config() (models.TelegramConfig, error) {
	cfg := models.TelegramConfig{Template: template.DefaultMessageText}
	if _, err := storage.GetJSON(s.store, storage.KeyTelegramConfig, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Template == "" {
		cfg.Template = template.DefaultMessageText
	}
	return cfg, nil
}

// SaveConfig stores the configuration and drops the cached bot handle so a
// changed token takes effect on the next send.
func (s *Sender) SaveConfig(cfg models.TelegramConfig) error {
	if err := storage.SetJSON(s.store, storage.KeyTelegramConfig, cfg); err != nil {
		return err
	}
	s.mu.Lock()
	s.bot = nil
	s.botToken = ""
	s.mu.Unlock()
	return nil
}

// Stats returns the persisted delivery counters.
func (s *Sender) Stats() (models.TelegramStats, error) {
	var stats models.TelegramStats
	_, err := storage.GetJSON(s.store, storage.KeyTelegramStats, &stats)
	return stats, err
}

// ResetStats zeroes the delivery counters.
func (s *Sender) ResetStats() error {
	return storage.SetJSON(s.store, storage.KeyTelegramStats, models.TelegramStats{})
}

func validateConfig(cfg models.TelegramConfig) error {
	if cfg.BotToken == "" || cfg.ChatID == "" {
		return ErrConfig
	}
	if !strings.Contains(cfg.BotToken, ":") {
		return fmt.Errorf("%w: bot token must contain \":\"", ErrConfig)
	}
	return nil
}

// Configured reports whether a send could be attempted.
func (s *Sender) Configured() bool {
	cfg, err := s.Config()
	return err == nil && validateConfig(cfg) == nil
}

// Send delivers text to the configured chat. Configuration is validated
// before any network traffic. Transient failures (network, timeout,
// 429/502/503/504) are retried up to 3 times with a fixed backoff; every
// attempt bumps the sent counter, every failed attempt the failed counter.
func (s *Sender) Send(text string) error {
	cfg, err := s.Config()
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	msg, err := buildMessage(cfg.ChatID, text)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if wait := config.DeliveryRateFloor - s.now().Sub(s.lastSend); wait > 0 {
		s.sleep(wait)
	}
	s.lastSend = s.now()

	var lastErr error
	for attempt := 0; attempt <= config.DeliveryRetries; attempt++ {
		if attempt > 0 {
			s.log.Infow("retrying telegram send", "attempt", attempt, "error", lastErr)
			s.sleep(config.DeliveryRetryBackoff)
		}
		s.bumpStats(func(st *models.TelegramStats) { st.Sent++ })

		err := s.attempt(cfg.BotToken, msg)
		if err == nil {
			sentAt := s.now()
			s.bumpStats(func(st *models.TelegramStats) {
				st.Success++
				st.LastSent = &sentAt
			})
			return nil
		}

		s.bumpStats(func(st *models.TelegramStats) { st.Failed++ })
		lastErr = err
		if !Transient(err) {
			break
		}
	}
	return lastErr
}

// attempt lazily builds the bot handle (the Bot API validates the token on
// construction) and performs one sendMessage call.
func (s *Sender) attempt(token string, msg tgbotapi.MessageConfig) error {
	if s.bot == nil || s.botToken != token {
		bot, err := tgbotapi.NewBotAPIWithClient(token, s.endpoint, s.client)
		if err != nil {
			return fmt.Errorf("telegram: connect bot: %w", err)
		}
		s.bot = bot
		s.botToken = token
	}
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	return nil
}

func buildMessage(chatID, text string) (tgbotapi.MessageConfig, error) {
	var msg tgbotapi.MessageConfig
	if strings.HasPrefix(chatID, "@") {
		msg = tgbotapi.NewMessageToChannel(chatID, text)
	} else {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return msg, fmt.Errorf("%w: chat id must be numeric or @channel", ErrConfig)
		}
		msg = tgbotapi.NewMessage(id, text)
	}
	if !markupRe.MatchString(text) {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	msg.DisableWebPagePreview = true
	return msg, nil
}

// Transient reports whether the failure is worth retrying: network errors,
// timeouts, rate limiting and upstream 5xx hiccups.
func Transient(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func (s *Sender) bumpStats(fn func(*models.TelegramStats)) {
	var stats models.TelegramStats
	if _, err := storage.GetJSON(s.store, storage.KeyTelegramStats, &stats); err != nil {
		s.log.Errorw("delivery stats read failed", "error", err)
		return
	}
	fn(&stats)
	if err := storage.SetJSON(s.store, storage.KeyTelegramStats, stats); err != nil {
		s.log.Errorw("delivery stats write failed", "error", err)
	}
}

// SendComplaint renders the record through the configured message template
// and delivers it.
func (s *Sender) SendComplaint(c models.Complaint) error {
	cfg, err := s.Config()
	if err != nil {
		return err
	}
	return s.Send(template.RenderMessage(cfg.Template, c))
}

// SendWarning forwards an expiry warning. A missing configuration is not an
// error: warnings are best-effort extras on top of the in-app notification.
func (s *Sender) SendWarning(c models.Complaint, remaining time.Duration) error {
	if !s.Configured() {
		return nil
	}
	timeLeft := fmt.Sprintf("%dч %dм", int(remaining/time.Hour), int(remaining%time.Hour/time.Minute))
	text := fmt.Sprintf(
		"⚠️ ПРЕДУПРЕЖДЕНИЕ!\n\n🚨 Жалоба скоро просрочится!\n\n🎯 Нарушитель: %s\n⚠️ Нарушение: %s\n⏰ Осталось времени: %s\n\nСрочно отправьте на форум!",
		c.ViolatorNickname, c.Violation, timeLeft)
	return s.Send(text)
}

// TestConnection sends a short probe message to verify the credentials.
func (s *Sender) TestConnection() error {
	return s.Send("🧪 Тест подключения к Telegram Bot API\n\nЕсли вы видите это сообщение, интеграция настроена правильно!")
}
