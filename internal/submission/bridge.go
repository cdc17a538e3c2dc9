package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Bridge talks to the local automation helper over HTTP. The helper drives a
// logged-in browser session, so the backend stays free of forum credentials.
type Bridge struct {
	baseURL string
	client  *http.Client
}

func NewBridge(baseURL string) *Bridge {
	return &Bridge{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

// Ping checks that the helper is up and has a forum session.
func (b *Bridge) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return bridgeErr(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %s", ErrBridgeUnavailable, resp.Status)
	}
	return nil
}

// Submit posts one job to the helper and waits for the outcome.
func (b *Bridge) Submit(ctx context.Context, job Request) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/submit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return bridgeErr(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusServiceUnavailable:
		return fmt.Errorf("%w: helper reported no forum session", ErrBridgeUnavailable)
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("submission: helper returned %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
}

// bridgeErr folds transport-level failures into ErrBridgeUnavailable while
// preserving ctx cancellation.
func bridgeErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return context.DeadlineExceeded
	}
	return fmt.Errorf("%w: %v", ErrBridgeUnavailable, err)
}
