package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"podcastctl/internal/config"
	"podcastctl/internal/logging"
	"podcastctl/internal/services"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	var buf bytes.Buffer

	logger, closeLog, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if err := closeLog(); err != nil {
		t.Fatalf("close without a log file should be a no-op, got %v", err)
	}
	logger.Info("voices loaded", logging.Int("count", 8))
	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "voices loaded") {
		t.Fatalf("unexpected console output %q", out)
	}
	if !strings.Contains(out, "count: 8") {
		t.Fatalf("expected indented field, got %q", out)
	}
}

func TestNewFromConfigAppendsLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "podcastctl.log")
	var buf bytes.Buffer

	logger, closeLog, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Warn("status retry")
	if err := closeLog(); err != nil {
		t.Fatalf("close log file: %v", err)
	}
	if err := closeLog(); err == nil {
		t.Fatal("expected second close to report the file already closed")
	}

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "status retry") {
		t.Fatalf("expected log file to contain message, got %q", content)
	}
	if !strings.Contains(buf.String(), "status retry") {
		t.Fatalf("expected stderr writer to contain message, got %q", buf.String())
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")
	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerRendersSubject(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithPodcastID(context.Background(), "0123456789abcdef")
	ctx = services.WithOperation(ctx, "status")
	logger = logging.NewComponentLogger(logging.WithContext(ctx, logger), "podcast-api")
	logger.Info("status fetched")

	out := buf.String()
	if !strings.Contains(out, "[podcast-api] Podcast 01234567 (status) – status fetched") {
		t.Fatalf("unexpected header %q", out)
	}
	if strings.Contains(out, "podcast_id:") {
		t.Fatalf("expected subject fields to be folded into header, got %q", out)
	}
}

func TestJSONLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithRequestID(context.Background(), "req-1")
	logging.WithContext(ctx, logger).Info("submitted")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload["level"] != "info" || payload["msg"] != "submitted" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if payload[logging.FieldRequestID] != "req-1" {
		t.Fatalf("expected request id field, got %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts field, got %v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 0) {
		t.Fatal("expected nop logger to be disabled")
	}
}

func TestJSONLoggerDurationsInMilliseconds(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("retrying", logging.Duration("delay", 1500*time.Millisecond))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload["delay_ms"] != 1500.0 {
		t.Fatalf("expected delay_ms=1500, got %v", payload)
	}
	if _, ok := payload["delay"]; ok {
		t.Fatalf("expected raw duration key to be replaced, got %v", payload)
	}
}
