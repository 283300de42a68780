package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeService is an in-memory stand-in for the podcast generation service.
type fakeService struct {
	t      *testing.T
	server *httptest.Server

	mu            sync.Mutex
	generateCalls int
	statusCalls   int
	lastPayload   map[string]any
	// generateStatus is the state returned by submissions.
	generateStatus string
	// statuses are returned by the status endpoint in order; the last one repeats.
	statuses []map[string]any
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	svc := &fakeService{t: t, generateStatus: "completed"}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /podcasts/generate", svc.handleGenerate)
	mux.HandleFunc("POST /podcasts/generate-from-pdf", svc.handleGenerate)
	mux.HandleFunc("GET /podcasts/status/{id}", svc.handleStatus)
	mux.HandleFunc("GET /podcasts/list", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]any{"podcasts": []any{
			map[string]any{"podcast_id": "older-job", "status": "failed", "created_at": 1700000000},
			map[string]any{"podcast_id": "newer-job", "status": "completed", "created_at": 1700000500},
		}})
	})
	mux.HandleFunc("GET /voices", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]any{
			"speakers": map[string]any{
				"rachel": map[string]any{"id": "21m00", "name": "Rachel", "gender": "female", "description": "calm narrator"},
				"adam":   map[string]any{"id": "pNInz", "name": "Adam", "gender": "male", "description": "deep voice"},
			},
			"description": "ElevenLabs voices",
		})
	})
	mux.HandleFunc("GET /podcasts/download/{id}/{artifact}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("artifact") {
		case "metadata":
			writeTestJSON(w, map[string]any{
				"podcast_id":     r.PathValue("id"),
				"total_duration": 0.06,
				"dialogue_count": 2,
				"dialogues": []any{
					map[string]any{"index": 0, "speaker": "화자A", "speaker_name": "Rachel", "gender": "female", "text": "Welcome to the show", "start_time": 0, "end_time": 0.03, "duration": 0.03},
					map[string]any{"index": 1, "speaker": "화자B", "speaker_name": "Adam", "gender": "male", "text": "Glad to be here", "start_time": 0.03, "end_time": 0.06, "duration": 0.03},
				},
			})
		case "script":
			_, _ = w.Write([]byte("화자A: Welcome to the show\n화자B: Glad to be here\n"))
		case "audio":
			_, _ = w.Write([]byte("ID3fake-mp3"))
		default:
			w.WriteHeader(http.StatusBadRequest)
			writeTestJSON(w, map[string]any{"detail": "Invalid file type"})
		}
	})
	svc.server = httptest.NewServer(mux)
	t.Cleanup(svc.server.Close)
	return svc
}

func (s *fakeService) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.generateCalls++
	status := s.generateStatus
	payload := map[string]any{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	} else if err := r.ParseMultipartForm(1 << 20); err == nil {
		for key, values := range r.MultipartForm.Value {
			payload[key] = values[0]
		}
	}
	s.lastPayload = payload
	s.mu.Unlock()

	resp := map[string]any{
		"podcast_id":     "job-1234567890",
		"status":         status,
		"message":        "Podcast generated",
		"title":          "Test Episode",
		"dialogue_count": 2,
	}
	if status == "completed" {
		resp["script_path"] = "/podcasts/download/job-1234567890/script"
		resp["audio_path"] = "/podcasts/download/job-1234567890/audio"
	}
	writeTestJSON(w, resp)
}

func (s *fakeService) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.statusCalls++
	if len(s.statuses) == 0 {
		s.mu.Unlock()
		w.WriteHeader(http.StatusNotFound)
		writeTestJSON(w, map[string]any{"detail": "Podcast not found"})
		return
	}
	next := s.statuses[0]
	if len(s.statuses) > 1 {
		s.statuses = s.statuses[1:]
	}
	s.mu.Unlock()
	body := map[string]any{"podcast_id": r.PathValue("id")}
	for k, v := range next {
		body[k] = v
	}
	writeTestJSON(w, body)
}

func (s *fakeService) counts() (generate, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateCalls, s.statusCalls
}

func writeTestJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeTestConfig writes a config pointing at the fake service with a fast
// poll interval and no audio player.
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PODCASTCTL_API_URL", "")
	path := filepath.Join(dir, "podcastctl.toml")
	content := "[api]\nbase_url = \"" + baseURL + "\"\n\n" +
		"[poll]\ninterval_seconds = 1\ntimeout_seconds = 30\n\n" +
		"[playback]\ncommand = []\ntick_millis = 5\n\n" +
		"[logging]\nlevel = \"error\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
