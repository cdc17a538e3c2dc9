// Package export assembles and restores the bulk snapshot: the whole
// application state as one JSON document.
package export

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"forik/backend/internal/models"
	"forik/backend/internal/storage"
)

// Records is the slice of the complaint service snapshot handling needs.
// Import goes through it so the history cap and cache stay consistent.
type Records interface {
	All() ([]models.Complaint, error)
	ReplaceAll(list []models.Complaint) error
}

// Service builds and applies snapshots.
type Service struct {
	store   storage.Store
	records Records
	now     func() time.Time
}

func NewService(store storage.Store, records Records) *Service {
	return &Service{store: store, records: records, now: time.Now}
}

// Export collects every store entry into a snapshot.
func (s *Service) Export() (*models.Snapshot, error) {
	snap := &models.Snapshot{
		ID:                uuid.NewString(),
		ExportDate:        s.now(),
		SavedTemplates:    map[string]string{},
		NicknameCounters:  map[string]int{},
		ViolationCounters: map[string]int{},
	}

	var err error
	if snap.Complaints, err = s.records.All(); err != nil {
		return nil, fmt.Errorf("export: records: %w", err)
	}
	if _, err := storage.GetJSON(s.store, storage.KeySavedTemplates, &snap.SavedTemplates); err != nil {
		return nil, err
	}
	if _, err := storage.GetJSON(s.store, storage.KeyTemplateRules, &snap.TemplateRules); err != nil {
		return nil, err
	}
	if _, err := storage.GetJSON(s.store, storage.KeyNicknameCounters, &snap.NicknameCounters); err != nil {
		return nil, err
	}
	if _, err := storage.GetJSON(s.store, storage.KeyViolationCounters, &snap.ViolationCounters); err != nil {
		return nil, err
	}

	var cfg models.TelegramConfig
	if ok, err := storage.GetJSON(s.store, storage.KeyTelegramConfig, &cfg); err != nil {
		return nil, err
	} else if ok {
		snap.TelegramConfig = &cfg
	}
	var stats models.TelegramStats
	if ok, err := storage.GetJSON(s.store, storage.KeyTelegramStats, &stats); err != nil {
		return nil, err
	} else if ok {
		snap.TelegramStats = &stats
	}
	var banner models.Banner
	if ok, err := storage.GetJSON(s.store, storage.KeyNotification, &banner); err != nil {
		return nil, err
	} else if ok {
		snap.Notification = &banner
	}
	return snap, nil
}

// Import replaces the store entries with the snapshot contents. Sections
// absent from the snapshot are left untouched.
func (s *Service) Import(snap models.Snapshot) error {
	if snap.Complaints != nil {
		if err := s.records.ReplaceAll(snap.Complaints); err != nil {
			return fmt.Errorf("import: records: %w", err)
		}
	}
	if snap.SavedTemplates != nil {
		if err := storage.SetJSON(s.store, storage.KeySavedTemplates, snap.SavedTemplates); err != nil {
			return err
		}
	}
	if snap.TemplateRules != nil {
		if err := storage.SetJSON(s.store, storage.KeyTemplateRules, snap.TemplateRules); err != nil {
			return err
		}
	}
	if snap.NicknameCounters != nil {
		if err := storage.SetJSON(s.store, storage.KeyNicknameCounters, snap.NicknameCounters); err != nil {
			return err
		}
	}
	if snap.ViolationCounters != nil {
		if err := storage.SetJSON(s.store, storage.KeyViolationCounters, snap.ViolationCounters); err != nil {
			return err
		}
	}
	if snap.TelegramConfig != nil {
		if err := storage.SetJSON(s.store, storage.KeyTelegramConfig, *snap.TelegramConfig); err != nil {
			return err
		}
	}
	if snap.TelegramStats != nil {
		if err := storage.SetJSON(s.store, storage.KeyTelegramStats, *snap.TelegramStats); err != nil {
			return err
		}
	}
	if snap.Notification != nil {
		if err := storage.SetJSON(s.store, storage.KeyNotification, *snap.Notification); err != nil {
			return err
		}
	}
	return nil
}
