package models

import "time"

// Event types pushed to connected shell clients over the websocket hub.
const (
	EventWarning    = "warning"
	EventExpired    = "expired"
	EventDelivery   = "delivery"
	EventSubmission = "submission"
)

// Event is a realtime notification for the desktop shell: expiry warnings,
// delivery outcomes and submission queue progress.
type Event struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Complaint *Complaint `json:"complaint,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
