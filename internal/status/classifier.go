// Package status derives a complaint's lifecycle state from the time elapsed
// since the violation, and watches the history for approaching deadlines.
package status

import (
	"time"

	"forik/backend/internal/config"
)

// State is a derived lifecycle state. Published and Expired are terminal.
type State string

const (
	New       State = "new"
	Aging24   State = "aging-24"
	Aging48   State = "aging-48"
	Aging60   State = "aging-60"
	Expired   State = "expired"
	Published State = "published"
)

// Result pairs the state with the remaining submission window, floored to
// whole minutes. Remaining is zero for terminal states.
type Result struct {
	State     State
	Remaining time.Duration
}

// Terminal reports whether the state can no longer change.
func (r Result) Terminal() bool {
	return r.State == Published || r.State == Expired
}

// Hours and Minutes split Remaining for display ("62ч 30м").
func (r Result) Hours() int   { return int(r.Remaining / time.Hour) }
func (r Result) Minutes() int { return int(r.Remaining % time.Hour / time.Minute) }

// Classify computes the lifecycle state at the given wall-clock time.
// The published flag overrides every time-based state.
func Classify(violation time.Time, published bool, now time.Time) Result {
	if published {
		return Result{State: Published}
	}

	elapsed := now.Sub(violation)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= config.ValidityWindow {
		return Result{State: Expired}
	}

	remaining := config.ValidityWindow - elapsed
	remaining -= remaining % time.Minute

	switch {
	case elapsed < config.AgingStage1:
		return Result{State: New, Remaining: remaining}
	case elapsed < config.AgingStage2:
		return Result{State: Aging24, Remaining: remaining}
	case elapsed < config.AgingStage3:
		return Result{State: Aging48, Remaining: remaining}
	default:
		return Result{State: Aging60, Remaining: remaining}
	}
}
