package storage

import (
	"encoding/json"
	"fmt"
	"time"
)

// Store is the key-value persistence contract every service depends on.
// Semantics are last-write-wins with no transactions; values are UTF-8 text
// encodings of structured data.
type Store interface {
	// Get returns the value for key and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Named store entries. All structured state of the application lives under
// these keys.
const (
	KeyComplaints        = "complaints"
	KeySavedTemplates    = "savedTemplates"
	KeyTemplateRules     = "templateRules"
	KeyTelegramConfig    = "telegramConfig"
	KeyTelegramStats     = "telegramStats"
	KeyNicknameCounters  = "nicknameTemplates"
	KeyViolationCounters = "violationTemplates"
	KeyFormState         = "complaintFormData"
	KeyNotification      = "notification"
)

// WarnedKeyPrefix prefixes the per-complaint expiry warning markers.
const WarnedKeyPrefix = "warned_"

// WarnedKey returns the warning-marker key for the complaint created at ts.
func WarnedKey(ts time.Time) string {
	return WarnedKeyPrefix + ts.UTC().Format(time.RFC3339Nano)
}

// GetJSON reads key and unmarshals its value into out. The boolean reports
// whether the key was present; out is left untouched when it is not.
func GetJSON(s Store, key string, out any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("storage: decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	return s.Set(key, string(raw))
}
