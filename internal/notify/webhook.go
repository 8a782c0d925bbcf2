package notify

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when the notifier has no destination URL.
var ErrNotConfigured = errors.New("notify: webhook url not configured")

// Attachment is a generated report file to deliver.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// WebhookNotifier posts generated reports to an HTTP endpoint as a JSON
// envelope with the file content base64-encoded. The SHA-256 digest lets
// the receiver verify the payload before unpacking it.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *log.Logger
}

// NewWebhookNotifier constructs a notifier. An empty url yields a notifier
// whose Send returns ErrNotConfigured, which callers may treat as a no-op.
func NewWebhookNotifier(url string, logger *log.Logger) (*WebhookNotifier, error) {
	if logger == nil {
		return nil, errors.New("notify: nil logger")
	}
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}, nil
}

// Configured reports whether a destination URL is set.
func (n *WebhookNotifier) Configured() bool { return n.url != "" }

// Send delivers the attachment to the webhook endpoint.
func (n *WebhookNotifier) Send(ctx context.Context, subject string, att Attachment) error {
	if !n.Configured() {
		return ErrNotConfigured
	}
	if len(att.Data) == 0 {
		return errors.New("notify: empty attachment")
	}

	digest := sha256.Sum256(att.Data)
	payload := map[string]any{
		"subject":      subject,
		"filename":     att.Filename,
		"content_type": att.ContentType,
		"size_bytes":   len(att.Data),
		"sha256":       hex.EncodeToString(digest[:]),
		"content":      base64.StdEncoding.EncodeToString(att.Data),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify: webhook returned status %d", resp.StatusCode)
	}
	n.logger.Printf("notify: delivered %s (%d bytes)", att.Filename, len(att.Data))
	return nil
}
