package notify

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendDeliversEnvelope(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("unmarshal payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier, err := NewWebhookNotifier(server.URL, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	data := []byte("workbook-bytes")
	err = notifier.Send(context.Background(), "daily report", Attachment{
		Filename:    "report.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if received["filename"] != "report.xlsx" {
		t.Fatalf("unexpected filename: %v", received["filename"])
	}
	digest := sha256.Sum256(data)
	if received["sha256"] != hex.EncodeToString(digest[:]) {
		t.Fatalf("unexpected digest: %v", received["sha256"])
	}
	decoded, err := base64.StdEncoding.DecodeString(received["content"].(string))
	if err != nil || string(decoded) != string(data) {
		t.Fatalf("content mismatch: %v", err)
	}
}

func TestSendRejectsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier, err := NewWebhookNotifier(server.URL, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	err = notifier.Send(context.Background(), "daily report", Attachment{Filename: "r.xlsx", Data: []byte("x")})
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestSendWithoutURL(t *testing.T) {
	notifier, err := NewWebhookNotifier("", log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	if notifier.Configured() {
		t.Fatal("expected unconfigured notifier")
	}
	err = notifier.Send(context.Background(), "daily report", Attachment{Filename: "r.xlsx", Data: []byte("x")})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
