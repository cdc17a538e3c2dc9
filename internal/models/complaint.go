package models

import "time"

// Affiliation categories of a violator. Routing to forum sections and
// template rules keys off these values.
const (
	AffiliationNone = "none"
	AffiliationOrg  = "org"
	AffiliationGang = "gang"
)

// Stored complaint statuses. Time-based lifecycle states (new, aging-24, ...)
// are derived from the violation date, see internal/status.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Complaint represents one drafted or submitted report about a rule violation.
// A complaint is uniquely identified by its creation Timestamp.
type Complaint struct {
	YourNickname     string    `json:"yourNickname"`
	ViolatorNickname string    `json:"violatorNickname"`
	Violation        string    `json:"violation"`
	ViolationDate    time.Time `json:"violationDate"`
	Affiliation      string    `json:"affiliation"`
	AffiliationName  string    `json:"affiliationName,omitempty"`
	Evidence         string    `json:"evidence"`
	Server           string    `json:"server"`

	// ViolationDateFormatted is the human-readable form kept alongside the
	// raw date so history entries render without re-parsing.
	ViolationDateFormatted string `json:"violationDateFormatted,omitempty"`

	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
	TemplateUsed string    `json:"templateUsed,omitempty"`

	TelegramSent    bool  `json:"telegramSent,omitempty"`
	TelegramSentAt  int64 `json:"telegramSentAt,omitempty"`
	ForumSubmitted  bool  `json:"forumSubmitted,omitempty"`
	ExpiredNotified bool  `json:"expiredNotified,omitempty"`
}

// SameRecord reports whether other is the same stored complaint,
// comparing by creation timestamp.
func (c *Complaint) SameRecord(other *Complaint) bool {
	return c.Timestamp.Equal(other.Timestamp)
}

// FormState is the autosaved draft of the complaint form, restored when the
// shell reopens the form tab.
type FormState struct {
	YourNickname     string `json:"yourNickname"`
	ViolatorNickname string `json:"violatorNickname"`
	ViolationDate    string `json:"violationDate"`
	Violation        string `json:"violation"`
	Affiliation      string `json:"affiliation"`
	AffiliationName  string `json:"affiliationName"`
	Evidence         string `json:"evidence"`
	Server           string `json:"server"`
}
