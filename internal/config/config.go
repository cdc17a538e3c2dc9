package config

import "time"

const (
	// Complaint lifecycle
	ValidityWindow = 72 * time.Hour
	AgingStage1    = 24 * time.Hour
	AgingStage2    = 48 * time.Hour
	AgingStage3    = 60 * time.Hour
	HistoryLimit   = 500

	// Expiry watcher
	WatcherInterval = time.Minute

	// Telegram delivery
	DeliveryRateFloor    = time.Second
	DeliveryRetries      = 3
	DeliveryRetryBackoff = 2 * time.Second
	DeliveryTimeout      = 10 * time.Second
	BulkSendDelay        = 2 * time.Second
	BulkSendFailureDelay = time.Second

	// Forum submission automation
	SubmitItemDelay = 31 * time.Second

	// Autocomplete
	SuggestionLimit = 5
)

// WarningThresholds are the remaining-time marks at which the watcher raises
// a one-time expiry warning per complaint. Checked smallest first so a single
// pass fires only the most urgent unseen threshold.
var WarningThresholds = []time.Duration{
	time.Hour,
	3 * time.Hour,
	6 * time.Hour,
}
