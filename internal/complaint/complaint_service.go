// Package complaint provides the core logic for handling complaint records:
// validation, history persistence and lifecycle flag mutations.
package complaint

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"forik/backend/internal/config"
	"forik/backend/internal/models"
	"forik/backend/internal/status"
	"forik/backend/internal/storage"
	"forik/backend/internal/template"
)

// ErrNotFound is returned when no record matches the given timestamp.
var ErrNotFound = errors.New("complaint: record not found")

// Resolver names the template a record will be rendered with. Satisfied by
// template.Service.
type Resolver interface {
	Resolve(server, affiliation string) (string, error)
}

// Service handles the business logic for complaint records. Reads go through
// an in-memory cache; every write persists the full list and refreshes the
// cache in one place.
type Service struct {
	store    storage.Store
	resolver Resolver
	now      func() time.Time

	mu    sync.Mutex
	cache []models.Complaint // nil means cold
}

// NewService creates a new complaint service.
func NewService(s storage.Store, resolver Resolver) *Service {
	return &Service{
		store:    s,
		resolver: resolver,
		now:      time.Now,
	}
}

// load returns the record list, reading through the cache.
// Caller must hold s.mu.
func (s *Service) load() ([]models.Complaint, error) {
	if s.cache != nil {
		return s.cache, nil
	}
	var list []models.Complaint
	if _, err := storage.GetJSON(s.store, storage.KeyComplaints, &list); err != nil {
		return nil, err
	}
	s.cache = list
	return list, nil
}

// persist writes the list and is the single cache refresh point.
// Caller must hold s.mu.
func (s *Service) persist(list []models.Complaint) error {
	if len(list) > config.HistoryLimit {
		list = list[:config.HistoryLimit]
	}
	if err := storage.SetJSON(s.store, storage.KeyComplaints, list); err != nil {
		return err
	}
	s.cache = list
	return nil
}

// Create validates the draft and stores it at the head of the history.
// The stored record carries the resolved template name and the formatted
// violation date.
func (s *Service) Create(draft models.Complaint) (*models.Complaint, error) {
	if err := Validate(&draft); err != nil {
		return nil, err
	}

	draft.Timestamp = s.now()
	draft.Status = models.StatusDraft
	draft.ViolationDateFormatted = draft.ViolationDate.Format(template.DateLayout)
	if s.resolver != nil {
		name, err := s.resolver.Resolve(draft.Server, draft.Affiliation)
		if err != nil {
			return nil, err
		}
		draft.TemplateUsed = name
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return nil, err
	}
	list = append([]models.Complaint{draft}, list...)
	if err := s.persist(list); err != nil {
		return nil, err
	}
	return &draft, nil
}

// List returns records matching the search query (over both nicknames and
// the violation text) and the affiliation filter ("all" disables it).
// Newest first.
func (s *Service) List(query, affiliation string) ([]models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Complaint, 0, len(list))
	for _, c := range list {
		if query != "" &&
			!strings.Contains(strings.ToLower(c.YourNickname), query) &&
			!strings.Contains(strings.ToLower(c.ViolatorNickname), query) &&
			!strings.Contains(strings.ToLower(c.Violation), query) {
			continue
		}
		if affiliation != "" && affiliation != "all" && c.Affiliation != affiliation {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// All returns the full history, newest first.
func (s *Service) All() ([]models.Complaint, error) {
	return s.List("", "all")
}

// Get returns the record created at ts.
func (s *Service) Get(ts time.Time) (*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Timestamp.Equal(ts) {
			c := list[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the record created at ts.
func (s *Service) Delete(ts time.Time) error {
	return s.mutate(func(list []models.Complaint) ([]models.Complaint, error) {
		for i := range list {
			if list[i].Timestamp.Equal(ts) {
				return append(list[:i], list[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

// Clear drops the whole history.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist([]models.Complaint{})
}

// ReplaceAll swaps the stored history, used by snapshot import.
func (s *Service) ReplaceAll(list []models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(list)
}

// MarkTelegramSent flags the record as forwarded to the messaging chat.
func (s *Service) MarkTelegramSent(ts time.Time) error {
	sentAt := s.now().UnixMilli()
	return s.update(ts, func(c *models.Complaint) {
		c.TelegramSent = true
		c.TelegramSentAt = sentAt
	})
}

// MarkSubmitted flags the record as submitted to the forum and moves it to
// the terminal published status.
func (s *Service) MarkSubmitted(ts time.Time) error {
	return s.update(ts, func(c *models.Complaint) {
		c.ForumSubmitted = true
		c.Status = models.StatusPublished
	})
}

// MarkPublished moves the record to the terminal published status.
func (s *Service) MarkPublished(ts time.Time) error {
	return s.update(ts, func(c *models.Complaint) {
		c.Status = models.StatusPublished
	})
}

// MarkExpiredNotified records that the one-time expiry event has fired.
func (s *Service) MarkExpiredNotified(ts time.Time) error {
	return s.update(ts, func(c *models.Complaint) {
		c.ExpiredNotified = true
	})
}

// Unsent returns records not yet forwarded to the messaging chat,
// oldest first so a bulk run preserves submission order.
func (s *Service) Unsent() ([]models.Complaint, error) {
	list, err := s.All()
	if err != nil {
		return nil, err
	}
	out := make([]models.Complaint, 0, len(list))
	for _, c := range list {
		if !c.TelegramSent {
			out = append(out, c)
		}
	}
	sortByViolationDate(out)
	return out, nil
}

// ActiveQueue returns non-expired records matching the optional server and
// affiliation filters ("all" disables a filter), oldest first. This feeds the
// forum submission queue.
func (s *Service) ActiveQueue(server, affiliation string) ([]models.Complaint, error) {
	list, err := s.All()
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]models.Complaint, 0, len(list))
	for _, c := range list {
		res := status.Classify(c.ViolationDate, c.Status == models.StatusPublished, now)
		if res.State == status.Expired || res.State == status.Published {
			continue
		}
		if server != "" && server != "all" && c.Server != server {
			continue
		}
		if affiliation != "" && affiliation != "all" && c.Affiliation != affiliation {
			continue
		}
		out = append(out, c)
	}
	sortByViolationDate(out)
	return out, nil
}

// SaveFormState autosaves the in-progress draft.
func (s *Service) SaveFormState(form models.FormState) error {
	return storage.SetJSON(s.store, storage.KeyFormState, form)
}

// FormState restores the autosaved draft, if any.
func (s *Service) FormState() (*models.FormState, error) {
	var form models.FormState
	ok, err := storage.GetJSON(s.store, storage.KeyFormState, &form)
	if err != nil || !ok {
		return nil, err
	}
	return &form, nil
}

func (s *Service) mutate(fn func([]models.Complaint) ([]models.Complaint, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return err
	}
	next, err := fn(append([]models.Complaint(nil), list...))
	if err != nil {
		return err
	}
	return s.persist(next)
}

func (s *Service) update(ts time.Time, fn func(*models.Complaint)) error {
	return s.mutate(func(list []models.Complaint) ([]models.Complaint, error) {
		for i := range list {
			if list[i].Timestamp.Equal(ts) {
				fn(&list[i])
				return list, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ts.Format(time.RFC3339))
	})
}

func sortByViolationDate(list []models.Complaint) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].ViolationDate.Before(list[j].ViolationDate)
	})
}
