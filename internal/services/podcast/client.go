package podcast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"podcastctl/internal/logging"
	"podcastctl/internal/services"
)

const (
	defaultBaseURL         = "http://localhost:8001"
	defaultTimeout         = 120 * time.Second
	defaultStatusTimeout   = 15 * time.Second
	defaultDocumentTimeout = 180 * time.Second
	maxResponseBytes       = 16 << 20

	// RequestIDHeader carries the per-call correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Config captures the settings required to reach the generation service.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	StatusTimeout   time.Duration
	DocumentTimeout time.Duration
	UserAgent       string
}

// Client talks to the podcast generation service.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger

	statusRetries int
	sleeper       func(context.Context, time.Duration) error
	requestID     func() string
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSleeper overrides how retry waits are performed (useful for tests).
func WithSleeper(sleeper func(context.Context, time.Duration) error) Option {
	return func(c *Client) {
		if sleeper != nil {
			c.sleeper = sleeper
		}
	}
}

// WithStatusRetries overrides how many times a status call is retried after a
// transport failure.
func WithStatusRetries(retries int) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.statusRetries = retries
		}
	}
}

// WithRequestIDs overrides the request id generator.
func WithRequestIDs(next func() string) Option {
	return func(c *Client) {
		if next != nil {
			c.requestID = next
		}
	}
}

// NewClient constructs a client using the supplied configuration. Zero
// durations fall back to the service defaults.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.StatusTimeout <= 0 {
		cfg.StatusTimeout = defaultStatusTimeout
	}
	if cfg.DocumentTimeout <= 0 {
		cfg.DocumentTimeout = defaultDocumentTimeout
	}
	cfg.UserAgent = strings.TrimSpace(cfg.UserAgent)

	client := &Client{
		cfg:           cfg,
		httpClient:    &http.Client{},
		logger:        logging.NewNop(),
		statusRetries: StatusRetries,
		sleeper:       sleepContext,
		requestID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "podcast-client")
	return client
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Generate submits a topic or URL job.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	var resp GenerateResponse
	if strings.TrimSpace(req.Topic) == "" && strings.TrimSpace(req.URL) == "" {
		return resp, services.Wrap(services.ErrValidation, "podcast-client", "generate", "topic or url required", nil)
	}
	if req.CustomVoices == nil {
		req.CustomVoices = map[string]string{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("podcast generate: encode request: %w", err)
	}
	err = c.do(ctx, call{
		op:          "generate",
		method:      http.MethodPost,
		path:        c.endpoint("podcasts", "generate"),
		body:        bytes.NewReader(body),
		contentType: "application/json",
		timeout:     c.cfg.Timeout,
	}, &resp)
	return resp, err
}

// GenerateFromDocument uploads a PDF and submits a job for it.
func (c *Client) GenerateFromDocument(ctx context.Context, req DocumentRequest) (GenerateResponse, error) {
	var resp GenerateResponse
	if req.Body == nil {
		return resp, services.Wrap(services.ErrValidation, "podcast-client", "generate-pdf", "document body required", nil)
	}
	payload, contentType, err := encodeDocument(req)
	if err != nil {
		return resp, fmt.Errorf("podcast generate-pdf: encode upload: %w", err)
	}
	err = c.do(ctx, call{
		op:          "generate-pdf",
		method:      http.MethodPost,
		path:        c.endpoint("podcasts", "generate-from-pdf"),
		body:        payload,
		contentType: contentType,
		timeout:     c.cfg.DocumentTimeout,
	}, &resp)
	return resp, err
}

// Status fetches the current snapshot for a job. Transport failures are
// retried up to the configured count with exponential waits; HTTP errors are
// returned immediately.
func (c *Client) Status(ctx context.Context, podcastID string) (Status, error) {
	var status Status
	podcastID = strings.TrimSpace(podcastID)
	if podcastID == "" {
		return status, services.Wrap(services.ErrValidation, "podcast-client", "status", "podcast id required", nil)
	}
	ctx = services.WithPodcastID(ctx, podcastID)
	for attempt := 0; ; attempt++ {
		status = Status{}
		err := c.do(ctx, call{
			op:      "status",
			method:  http.MethodGet,
			path:    c.endpoint("podcasts", "status", podcastID),
			timeout: c.cfg.StatusTimeout,
		}, &status)
		if err == nil {
			if status.PodcastID == "" {
				status.PodcastID = podcastID
			}
			return status, nil
		}
		if attempt >= c.statusRetries || !retryableStatusError(ctx, err) {
			return Status{}, err
		}
		delay := StatusRetryDelay(attempt)
		c.logger.WarnContext(ctx, "status request failed; retrying",
			logging.String(logging.FieldPodcastID, podcastID),
			logging.Int("attempt", attempt+1),
			logging.Duration("delay", delay),
			logging.Error(err),
		)
		if sleepErr := c.sleeper(ctx, delay); sleepErr != nil {
			return Status{}, sleepErr
		}
	}
}

// List returns the known jobs.
func (c *Client) List(ctx context.Context) ([]Status, error) {
	var resp ListResponse
	if err := c.do(ctx, call{
		op:      "list",
		method:  http.MethodGet,
		path:    c.endpoint("podcasts", "list"),
		timeout: c.cfg.Timeout,
	}, &resp); err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(resp.Podcasts))
	for _, item := range resp.Podcasts {
		out = append(out, normalizeListed(item))
	}
	return out, nil
}

// Metadata fetches the dialogue timing document for a completed job.
func (c *Client) Metadata(ctx context.Context, podcastID string) (Metadata, error) {
	var meta Metadata
	podcastID = strings.TrimSpace(podcastID)
	if podcastID == "" {
		return meta, services.Wrap(services.ErrValidation, "podcast-client", "metadata", "podcast id required", nil)
	}
	err := c.do(services.WithPodcastID(ctx, podcastID), call{
		op:      "metadata",
		method:  http.MethodGet,
		path:    c.ArtifactURL(podcastID, ArtifactMetadata),
		timeout: c.cfg.Timeout,
	}, &meta)
	if err == nil && meta.DialogueCount == 0 {
		meta.DialogueCount = len(meta.Dialogues)
	}
	return meta, err
}

// Voices fetches the voice catalog.
func (c *Client) Voices(ctx context.Context) (VoiceCatalog, error) {
	var catalog VoiceCatalog
	err := c.do(ctx, call{
		op:      "voices",
		method:  http.MethodGet,
		path:    c.endpoint("voices"),
		timeout: c.cfg.Timeout,
	}, &catalog)
	if err == nil && catalog.Speakers == nil {
		catalog.Speakers = map[string]Voice{}
	}
	return catalog, err
}

// Download streams an artifact into w and returns the number of bytes copied.
func (c *Client) Download(ctx context.Context, podcastID string, artifact Artifact, w io.Writer) (int64, error) {
	podcastID = strings.TrimSpace(podcastID)
	if podcastID == "" {
		return 0, services.Wrap(services.ErrValidation, "podcast-client", "download", "podcast id required", nil)
	}
	if w == nil {
		return 0, errors.New("podcast download: writer required")
	}
	var written int64
	err := c.do(services.WithPodcastID(ctx, podcastID), call{
		op:      "download",
		method:  http.MethodGet,
		path:    c.ArtifactURL(podcastID, artifact),
		timeout: c.cfg.Timeout,
		accept:  "*/*",
		stream: func(r io.Reader) error {
			n, err := io.Copy(w, r)
			written = n
			return err
		},
	}, nil)
	return written, err
}

type call struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
	accept      string
	timeout     time.Duration
	stream      func(io.Reader) error
}

func (c *Client) do(ctx context.Context, rc call, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := c.requestID()
	ctx = services.WithOperation(ctx, rc.op)
	ctx = services.WithRequestID(ctx, requestID)

	callCtx, cancel := context.WithTimeout(ctx, rc.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, rc.method, rc.path, rc.body)
	if err != nil {
		return fmt.Errorf("podcast %s: build request: %w", rc.op, err)
	}
	accept := rc.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	req.Header.Set(RequestIDHeader, requestID)
	if rc.contentType != "" {
		req.Header.Set("Content-Type", rc.contentType)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &TransportError{Op: rc.op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "podcast api call",
		logging.String("method", rc.method),
		logging.String("url", rc.path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return &APIError{
			Op:         rc.op,
			StatusCode: resp.StatusCode,
			Detail:     decodeDetail(body),
			Body:       snippet(body),
		}
	}

	if rc.stream != nil {
		if err := rc.stream(resp.Body); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &TransportError{Op: rc.op, Err: err}
		}
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &TransportError{Op: rc.op, Err: err}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("podcast %s: decode response: %w (body=%s)", rc.op, err, snippet(body))
	}
	return nil
}

func encodeDocument(req DocumentRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		filename = "document.pdf"
	}
	part, err := writer.CreateFormFile("pdf_file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, req.Body); err != nil {
		return nil, "", err
	}

	voices := req.CustomVoices
	if voices == nil {
		voices = map[string]string{}
	}
	encodedVoices, err := json.Marshal(voices)
	if err != nil {
		return nil, "", err
	}
	fields := []struct{ name, value string }{
		{"duration_minutes", strconv.Itoa(req.DurationMinutes)},
		{"language", req.Language},
		{"tts_engine", req.TTSEngine},
		{"num_speakers", strconv.Itoa(req.NumSpeakers)},
		{"custom_voices", string(encodedVoices)},
		{"style", req.Style},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

// normalizeListed repairs list entries whose status field holds the raw
// status document rather than a bare state.
func normalizeListed(item Status) Status {
	raw := strings.TrimSpace(string(item.State))
	if !strings.HasPrefix(raw, "{") {
		item.State = JobState(strings.ToLower(raw))
		return item
	}
	var inner Status
	if err := json.Unmarshal([]byte(raw), &inner); err != nil {
		item.State = StateError
		if item.Message == "" {
			item.Message = "unreadable status record"
		}
		return item
	}
	if inner.PodcastID == "" {
		inner.PodcastID = item.PodcastID
	}
	if inner.CreatedAt.IsZero() {
		inner.CreatedAt = item.CreatedAt
	}
	return inner
}
