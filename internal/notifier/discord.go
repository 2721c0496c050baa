// Package notifier delivers report messages to a chat channel.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// RequestTimeout bounds every webhook request.
const RequestTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response is echoed into an error.
const maxErrorBody = 512

// Notifier sends a message, optionally mentioning the configured user.
type Notifier interface {
	Notify(ctx context.Context, message string, mention bool) error
}

// DiscordWebhook posts messages to a Discord incoming webhook.
type DiscordWebhook struct {
	url        string
	userID     string
	httpClient *http.Client
	logger     *slog.Logger
}

type webhookPayload struct {
	Content string `json:"content"`
}

// NewDiscordWebhook creates a notifier for webhookURL that mentions userID
// when asked to.
func NewDiscordWebhook(webhookURL, userID string, logger *slog.Logger) *DiscordWebhook {
	return &DiscordWebhook{
		url:        webhookURL,
		userID:     userID,
		httpClient: &http.Client{Timeout: RequestTimeout},
		logger:     logger,
	}
}

// Content returns the message as it will be posted.
func Content(message, userID string, mention bool) string {
	if !mention {
		return message
	}
	return fmt.Sprintf("<@%s> %s", userID, message)
}

// Notify posts message to the webhook. A non-2xx response is an error; the
// request is never retried.
func (d *DiscordWebhook) Notify(ctx context.Context, message string, mention bool) error {
	body, err := json.Marshal(webhookPayload{Content: Content(message, d.userID, mention)})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("webhook returned %s: %s", resp.Status, bytes.TrimSpace(snippet))
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	d.logger.Debug("Webhook delivered", "status", resp.StatusCode, "mention", mention)
	return nil
}

// DryRun logs messages instead of sending them.
type DryRun struct {
	userID string
	logger *slog.Logger
}

// NewDryRun creates a notifier that only logs what would have been posted.
func NewDryRun(userID string, logger *slog.Logger) *DryRun {
	return &DryRun{userID: userID, logger: logger}
}

// Notify logs the content that would have been posted.
func (d *DryRun) Notify(_ context.Context, message string, mention bool) error {
	d.logger.Info("Dry run, not posting to webhook", "content", Content(message, d.userID, mention))
	return nil
}
