package models

import "time"

// TelegramConfig holds the delivery credentials and the message template
// rendered for forwarded complaints.
type TelegramConfig struct {
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"`
	Template string `json:"telegramTemplate"`
}

// TelegramStats are the persisted delivery counters. Sent counts every
// attempt, Success and Failed count attempt outcomes.
type TelegramStats struct {
	Sent     int        `json:"sent"`
	Success  int        `json:"success"`
	Failed   int        `json:"failed"`
	LastSent *time.Time `json:"lastSent,omitempty"`
}
