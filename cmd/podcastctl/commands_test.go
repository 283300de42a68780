package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"podcastctl/internal/form"
	"podcastctl/internal/services"
)

func TestGenerateTopicCompleted(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	out, _, err := runCLI(t, []string{"generate", "--topic", "Deep sea creatures", "--voice", "A=rachel", "--voice", "화자B=adam"}, cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, out, "Podcast ready (job-1234…)")
	requireContains(t, out, "Test Episode")
	requireContains(t, out, svc.server.URL+"/podcasts/download/job-1234567890/audio")
	requireContains(t, out, "Speakers: Rachel (female), Adam (male)")

	svc.mu.Lock()
	payload := svc.lastPayload
	svc.mu.Unlock()
	if payload["topic"] != "Deep sea creatures" || payload["style"] != "casual" || payload["language"] != "ko" {
		t.Fatalf("unexpected payload %v", payload)
	}
	voices, _ := payload["custom_voices"].(map[string]any)
	if voices["화자A"] != "rachel" || voices["화자B"] != "adam" {
		t.Fatalf("unexpected voices %v", payload["custom_voices"])
	}
}

func TestGenerateMissingVoiceMakesNoRequest(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	_, _, err := runCLI(t, []string{"generate", "--topic", "Tea", "--voice", "A=rachel"}, cfg)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	requireContains(t, services.UserMessage(err), "화자B")
	if generate, _ := svc.counts(); generate != 0 {
		t.Fatalf("expected no generate calls, got %d", generate)
	}
}

func TestGenerateUnknownVoiceRejected(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	_, _, err := runCLI(t, []string{"generate", "--topic", "Tea", "--voice", "A=rachel", "--voice", "B=ghost"}, cfg)
	if err == nil || !strings.Contains(services.UserMessage(err), `unknown voice "ghost"`) {
		t.Fatalf("expected unknown voice error, got %v", err)
	}
}

func TestGenerateRejectsNonPDF(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	_, _, err := runCLI(t, []string{"generate", "--pdf", "notes.txt", "--voice", "A=rachel", "--voice", "B=adam"}, cfg)
	if err == nil || !strings.Contains(err.Error(), form.ErrNotPDF.Error()) {
		t.Fatalf("expected non-PDF rejection, got %v", err)
	}
	if generate, _ := svc.counts(); generate != 0 {
		t.Fatalf("expected no generate calls, got %d", generate)
	}
}

func TestGeneratePDFUpload(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)
	pdf := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.7"), 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}

	out, _, err := runCLI(t, []string{"generate", "--pdf", pdf, "--language", "en-US", "--speakers", "3",
		"--voice", "A=rachel", "--voice", "B=adam", "--voice", "C=rachel", "-o", "json"}, cfg)
	if err != nil {
		t.Fatalf("generate pdf: %v", err)
	}
	var summary map[string]any
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode json output: %v\n%s", err, out)
	}
	if summary["podcast_id"] != "job-1234567890" || summary["status"] != "completed" {
		t.Fatalf("unexpected summary %v", summary)
	}
	svc.mu.Lock()
	payload := svc.lastPayload
	svc.mu.Unlock()
	if payload["language"] != "en" || payload["num_speakers"] != "3" {
		t.Fatalf("unexpected multipart fields %v", payload)
	}
}

func TestGenerateWaitPollsUntilDone(t *testing.T) {
	svc := newFakeService(t)
	svc.generateStatus = "processing"
	svc.statuses = []map[string]any{{
		"status":      "completed",
		"message":     "Podcast generated",
		"audio_path":  "/podcasts/download/job-1234567890/audio",
		"script_path": "/podcasts/download/job-1234567890/script",
	}}
	cfg := writeTestConfig(t, svc.server.URL)

	out, _, err := runCLI(t, []string{"generate", "--url", "https://example.com/a", "--voice", "A=rachel", "--voice", "B=adam", "--wait"}, cfg)
	if err != nil {
		t.Fatalf("generate --wait: %v", err)
	}
	requireContains(t, out, "Podcast ready")
	if _, status := svc.counts(); status != 1 {
		t.Fatalf("expected one status poll, got %d", status)
	}
}

func TestGenerateWithoutWaitShowsProcessing(t *testing.T) {
	svc := newFakeService(t)
	svc.generateStatus = "processing"
	cfg := writeTestConfig(t, svc.server.URL)

	out, _, err := runCLI(t, []string{"generate", "--topic", "Tea", "--voice", "A=rachel", "--voice", "B=adam"}, cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, out, "podcastctl status job-1234567890")
	if _, status := svc.counts(); status != 0 {
		t.Fatalf("expected no status polls without --wait, got %d", status)
	}
}

func TestStatusCommand(t *testing.T) {
	svc := newFakeService(t)
	svc.statuses = []map[string]any{{"status": "failed", "message": "TTS quota exceeded", "updated_at": 1700000000.5}}
	cfg := writeTestConfig(t, svc.server.URL)

	out, _, err := runCLI(t, []string{"status", "job-1234567890"}, cfg)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Generation failed (job-1234…)")
	requireContains(t, out, "TTS quota exceeded")
	requireContains(t, out, "Updated:")

	out, _, err = runCLI(t, []string{"status", "job-1234567890", "--output", "yaml"}, cfg)
	if err != nil {
		t.Fatalf("status yaml: %v", err)
	}
	requireContains(t, out, "status: failed")
	requireContains(t, out, "2023-11-14T22:13:20Z")
}

func TestStatusNotFound(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	_, _, err := runCLI(t, []string{"status", "missing"}, cfg)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if msg := services.UserMessage(err); msg != "Podcast not found" {
		t.Fatalf("unexpected user message %q", msg)
	}
}

func TestListCommand(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	out, _, err := runCLI(t, []string{"list"}, cfg)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Index(out, "newer-job") > strings.Index(out, "older-job") {
		t.Fatalf("expected newest job first:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"list", "-o", "json"}, cfg)
	if err != nil {
		t.Fatalf("list json: %v", err)
	}
	requireContains(t, out, `"podcast_id": "newer-job"`)
}

func TestVoicesCommand(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	out, _, err := runCLI(t, []string{"voices"}, cfg)
	if err != nil {
		t.Fatalf("voices: %v", err)
	}
	requireContains(t, out, "rachel")
	requireContains(t, out, "calm narrator")

	out, _, err = runCLI(t, []string{"voices", "-o", "yaml"}, cfg)
	if err != nil {
		t.Fatalf("voices yaml: %v", err)
	}
	requireContains(t, out, "name: Adam")
}

func TestMetadataCommand(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	out, _, err := runCLI(t, []string{"metadata", "job-1234567890"}, cfg)
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	requireContains(t, out, "Welcome to the show")
	requireContains(t, out, "Speakers: Rachel (female), Adam (male)")

	out, _, err = runCLI(t, []string{"metadata", "job-1234567890", "--at", "0.03"}, cfg)
	if err != nil {
		t.Fatalf("metadata --at: %v", err)
	}
	requireContains(t, out, "Adam (화자B)")

	out, _, err = runCLI(t, []string{"metadata", "job-1234567890", "--at", "0.06"}, cfg)
	if err != nil {
		t.Fatalf("metadata --at end: %v", err)
	}
	requireContains(t, out, "No speaker at 0.06s")
}

func TestLinksCommand(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	out, _, err := runCLI(t, []string{"links", "abc"}, cfg)
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	requireContains(t, out, "Script:   "+svc.server.URL+"/podcasts/download/abc/script")
	requireContains(t, out, "Audio:    "+svc.server.URL+"/podcasts/download/abc/audio")
}

func TestDownloadCommand(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)
	dir := t.TempDir()

	out, _, err := runCLI(t, []string{"download", "abc", "--artifact", "script", "--dir", dir}, cfg)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	requireContains(t, out, "Saved script")
	data, err := os.ReadFile(filepath.Join(dir, "abc_script.txt"))
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	requireContains(t, string(data), "Welcome to the show")

	if _, _, err := runCLI(t, []string{"download", "abc", "--artifact", "script", "--dir", dir}, cfg); err == nil {
		t.Fatal("expected refusal to overwrite without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"download", "abc", "--artifact", "video"}, cfg); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for unknown artifact, got %v", err)
	}
}

func TestPlaySilentFollowsTimeline(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	out, _, err := runCLI(t, []string{"play", "job-1234567890", "--silent"}, cfg)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	requireContains(t, out, "Rachel: Welcome to the show")
	requireContains(t, out, "Playback finished")
}

func TestConfigInitAndValidate(t *testing.T) {
	svc := newFakeService(t)
	cfg := writeTestConfig(t, svc.server.URL)

	out, _, err := runCLI(t, []string{"config", "validate"}, cfg)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Player: none")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
}

func TestCommandContextClosesLogFile(t *testing.T) {
	svc := newFakeService(t)
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PODCASTCTL_API_URL", "")
	logFile := filepath.Join(dir, "logs", "podcastctl.log")
	cfgPath := filepath.Join(dir, "podcastctl.toml")
	content := "[api]\nbase_url = \"" + svc.server.URL + "\"\n\n[logging]\nlevel = \"debug\"\nfile = \"" + logFile + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd, cmdCtx := buildRootCommand()
	var stdout, stderr strings.Builder
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", cfgPath, "voices"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("voices: %v", err)
	}
	if err := cmdCtx.close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := cmdCtx.close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	requireContains(t, string(data), "voices")
}
