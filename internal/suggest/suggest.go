// Package suggest keeps per-value usage counters for the nickname and
// violation fields and serves ranked autocomplete from them.
package suggest

import (
	"fmt"
	"sort"
	"strings"

	"forik/backend/internal/config"
	"forik/backend/internal/storage"
)

// Counter kinds.
const (
	KindNickname  = "nickname"
	KindViolation = "violation"
)

// Suggestion is one ranked autocomplete entry.
type Suggestion struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Service persists usage counters in the record store.
type Service struct {
	store storage.Store
}

func NewService(s storage.Store) *Service {
	return &Service{store: s}
}

func counterKey(kind string) (string, error) {
	switch kind {
	case KindNickname:
		return storage.KeyNicknameCounters, nil
	case KindViolation:
		return storage.KeyViolationCounters, nil
	default:
		return "", fmt.Errorf("suggest: unknown counter kind %q", kind)
	}
}

// Counters returns the raw value -> count map for a kind.
func (s *Service) Counters(kind string) (map[string]int, error) {
	key, err := counterKey(kind)
	if err != nil {
		return nil, err
	}
	counters := map[string]int{}
	if _, err := storage.GetJSON(s.store, key, &counters); err != nil {
		return nil, err
	}
	return counters, nil
}

// Bump increments the usage counter for value. Blank values are ignored.
func (s *Service) Bump(kind, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	key, err := counterKey(kind)
	if err != nil {
		return err
	}
	counters, err := s.Counters(kind)
	if err != nil {
		return err
	}
	counters[value]++
	return storage.SetJSON(s.store, key, counters)
}

// Suggest returns the most used values containing query (case-insensitive),
// most used first, ties broken alphabetically, capped at the suggestion limit.
func (s *Service) Suggest(kind, query string) ([]Suggestion, error) {
	counters, err := s.Counters(kind)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Suggestion, 0, len(counters))
	for value, count := range counters {
		if query != "" && !strings.Contains(strings.ToLower(value), query) {
			continue
		}
		out = append(out, Suggestion{Value: value, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > config.SuggestionLimit {
		out = out[:config.SuggestionLimit]
	}
	return out, nil
}

// Reset drops all counters of a kind.
func (s *Service) Reset(kind string) error {
	key, err := counterKey(kind)
	if err != nil {
		return err
	}
	return s.store.Remove(key)
}
