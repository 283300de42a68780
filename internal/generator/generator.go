package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"podcastctl/internal/form"
	"podcastctl/internal/logging"
	"podcastctl/internal/services"
	"podcastctl/internal/services/podcast"
)

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("a podcast is already being generated")

// API is the subset of the podcast client the generator drives.
type API interface {
	Generate(ctx context.Context, req podcast.GenerateRequest) (podcast.GenerateResponse, error)
	GenerateFromDocument(ctx context.Context, req podcast.DocumentRequest) (podcast.GenerateResponse, error)
	Status(ctx context.Context, podcastID string) (podcast.Status, error)
	Metadata(ctx context.Context, podcastID string) (podcast.Metadata, error)
	Voices(ctx context.Context) (podcast.VoiceCatalog, error)
}

// Generator runs one session against the API.
type Generator struct {
	api     API
	logger  *slog.Logger
	open    func(path string) (io.ReadCloser, error)
	sleeper func(context.Context, time.Duration) error

	mu    sync.Mutex
	state State
	subs  []func(State)
}

// Option customizes the generator.
type Option func(*Generator)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithOpener overrides how selected documents are opened.
func WithOpener(open func(path string) (io.ReadCloser, error)) Option {
	return func(g *Generator) {
		if open != nil {
			g.open = open
		}
	}
}

// WithSleeper overrides the wait between status polls.
func WithSleeper(sleeper func(context.Context, time.Duration) error) Option {
	return func(g *Generator) {
		if sleeper != nil {
			g.sleeper = sleeper
		}
	}
}

// New constructs a generator in the initial state.
func New(api API, opts ...Option) *Generator {
	g := &Generator{
		api:     api,
		logger:  logging.NewNop(),
		open:    func(path string) (io.ReadCloser, error) { return os.Open(path) },
		sleeper: sleepContext,
		state:   Initial(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.NewComponentLogger(g.logger, "generator")
	return g
}

// State returns the current snapshot.
func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Subscribe registers fn to receive every new snapshot. The returned function
// removes the subscription.
func (g *Generator) Subscribe(fn func(State)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subs = append(g.subs, fn)
	idx := len(g.subs) - 1
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if idx < len(g.subs) {
			g.subs[idx] = nil
		}
	}
}

// Dispatch applies an action and returns the resulting snapshot.
func (g *Generator) Dispatch(a Action) State {
	g.mu.Lock()
	next, subs := g.applyLocked(a)
	g.mu.Unlock()
	notify(subs, next)
	return next
}

func (g *Generator) applyLocked(a Action) (State, []func(State)) {
	g.state = Reduce(g.state, a)
	return g.state, slices.Clone(g.subs)
}

func notify(subs []func(State), state State) {
	for _, fn := range subs {
		if fn != nil {
			fn(state)
		}
	}
}

// Edit applies fn to the form. Edits are ignored while a submission is in
// flight.
func (g *Generator) Edit(fn func(form.Form) form.Form) State {
	g.mu.Lock()
	next, subs := g.applyLocked(FormEdited{Form: fn(g.state.Form)})
	g.mu.Unlock()
	notify(subs, next)
	return next
}

// LoadVoices fetches the voice catalog. A failure is logged and leaves the
// catalog empty; it never becomes a session error.
func (g *Generator) LoadVoices(ctx context.Context) State {
	catalog, err := g.api.Voices(ctx)
	if err != nil {
		g.logger.WarnContext(ctx, "voice catalog unavailable", logging.Error(err))
		return g.Dispatch(VoicesFailed{Err: err})
	}
	g.logger.DebugContext(ctx, "voice catalog loaded", logging.Int("voices", len(catalog.Speakers)))
	return g.Dispatch(VoicesLoaded{Catalog: catalog})
}

// Submit validates the form and sends it. Validation failures are recorded
// in the state and returned without any network call.
func (g *Generator) Submit(ctx context.Context) (State, error) {
	g.mu.Lock()
	if g.state.Loading {
		g.mu.Unlock()
		return g.State(), ErrBusy
	}
	if err := g.state.Form.Validate(g.state.Catalog); err != nil {
		next, subs := g.applyLocked(ValidationFailed{Message: services.UserMessage(err)})
		g.mu.Unlock()
		notify(subs, next)
		return next, err
	}
	started, subs := g.applyLocked(SubmitStarted{})
	g.mu.Unlock()
	notify(subs, started)
	session := started.session
	f := started.Form

	resp, err := g.send(ctx, f)
	if err != nil {
		g.logger.ErrorContext(ctx, "podcast submission failed", logging.Error(err))
		return g.Dispatch(SubmitFailed{Session: session, Message: services.UserMessage(err)}), err
	}
	ctx = services.WithPodcastID(ctx, resp.PodcastID)
	logging.WithContext(ctx, g.logger).InfoContext(ctx, "podcast submitted",
		logging.String("status", string(resp.Status)),
	)
	return g.Dispatch(SubmitSucceeded{Session: session, Response: resp}), nil
}

func (g *Generator) send(ctx context.Context, f form.Form) (podcast.GenerateResponse, error) {
	if f.Mode != form.ModeDocument {
		return g.api.Generate(ctx, f.Request())
	}
	body, err := g.open(f.Document.Path)
	if err != nil {
		return podcast.GenerateResponse{}, services.Wrap(services.ErrValidation, "generator", "open document",
			fmt.Sprintf("cannot read %s", f.Document.Name), err)
	}
	defer body.Close()
	return g.api.GenerateFromDocument(ctx, f.DocumentRequest(body))
}

// Wait polls the job status every interval until it reaches a terminal state
// or ctx ends.
func (g *Generator) Wait(ctx context.Context, interval time.Duration) (State, error) {
	state := g.State()
	if state.PodcastID == "" {
		return state, errors.New("generator wait: no podcast submitted")
	}
	if interval <= 0 {
		interval = time.Second
	}
	session := state.session
	ctx = services.WithPodcastID(ctx, state.PodcastID)
	for state.Status == nil || !state.Status.State.Terminal() {
		if err := g.sleeper(ctx, interval); err != nil {
			return g.State(), err
		}
		status, err := g.api.Status(ctx, state.PodcastID)
		if err != nil {
			g.logger.WarnContext(ctx, "status poll failed",
				logging.String(logging.FieldPodcastID, state.PodcastID),
				logging.Error(err),
			)
			return g.State(), err
		}
		switch {
		case status.PodcastID == "" || strings.EqualFold(status.PodcastID, state.PodcastID):
			status.PodcastID = state.PodcastID
		default:
			return g.State(), services.Wrap(services.ErrRemote, "generator", "poll status",
				fmt.Sprintf("status reported for %s while waiting on %s", status.PodcastID, state.PodcastID), nil)
		}
		state = g.Dispatch(StatusReceived{Session: session, Status: status})
		if state.session != session {
			return state, context.Canceled
		}
	}
	return state, nil
}

// LoadMetadata fetches dialogue metadata once the job has completed with
// audio. Failures are logged and leave the metadata empty.
func (g *Generator) LoadMetadata(ctx context.Context) State {
	state := g.State()
	if state.Phase != PhaseCompleted || state.Status == nil || state.Status.AudioPath == "" || state.Metadata != nil {
		return state
	}
	ctx = services.WithPodcastID(ctx, state.PodcastID)
	meta, err := g.api.Metadata(ctx, state.PodcastID)
	if err != nil {
		g.logger.WarnContext(ctx, "dialogue metadata unavailable",
			logging.String(logging.FieldPodcastID, state.PodcastID),
			logging.Error(err),
		)
		return g.State()
	}
	return g.Dispatch(MetadataLoaded{Session: state.session, Metadata: meta})
}

// Reset restores the defaults. The voice catalog is kept, and results of any
// in-flight call are discarded.
func (g *Generator) Reset() State {
	return g.Dispatch(Reset{})
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
