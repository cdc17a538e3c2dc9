// Package submission drives the forum submission queue through a pluggable
// automation boundary. The backend never talks to the forum itself; an
// Automator implementation (the local browser bridge by default) does the
// actual posting.
package submission

import (
	"context"
	"errors"
)

// ErrBridgeUnavailable means the automation backend cannot be reached at all.
// It is distinct from a submit failure: an unreachable bridge halts the whole
// run, a failed submit only skips the record.
var ErrBridgeUnavailable = errors.New("submission: automation bridge is unavailable")

// Request is one forum submission job.
type Request struct {
	ForumURL string `json:"forumUrl"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// Automator posts a complaint to the forum. Implementations must honor ctx
// cancellation and return ErrBridgeUnavailable (possibly wrapped) when the
// backend itself is unreachable.
type Automator interface {
	Ping(ctx context.Context) error
	Submit(ctx context.Context, req Request) error
}
