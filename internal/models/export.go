package models

import "time"

// Banner is the optional notification banner shown by the shell on startup.
type Banner struct {
	Text      string    `json:"text"`
	Level     string    `json:"level"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot is the bulk export/import document: records, settings and
// counters in one file. Import replaces the corresponding store entries.
type Snapshot struct {
	ID                string          `json:"id"`
	ExportDate        time.Time       `json:"exportDate"`
	Complaints        []Complaint     `json:"complaints"`
	SavedTemplates    map[string]string `json:"savedTemplates"`
	TemplateRules     []TemplateRule  `json:"templateRules"`
	TelegramConfig    *TelegramConfig `json:"telegramConfig,omitempty"`
	TelegramStats     *TelegramStats  `json:"telegramStats,omitempty"`
	NicknameCounters  map[string]int  `json:"nicknameTemplates"`
	ViolationCounters map[string]int  `json:"violationTemplates"`
	Notification      *Banner         `json:"notification,omitempty"`
}
