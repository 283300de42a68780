package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"podcastctl/internal/form"
	"podcastctl/internal/generator"
	"podcastctl/internal/render"
	"podcastctl/internal/services"
	"podcastctl/internal/services/podcast"
)

type generateOptions struct {
	topic    string
	url      string
	pdf      string
	duration int
	language string
	engine   string
	speakers int
	style    string
	voices   []string
	wait     bool
	output   string
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	opts := generateOptions{
		duration: form.DefaultDurationMinutes,
		language: form.DefaultLanguage,
		engine:   form.DefaultTTSEngine,
		speakers: form.DefaultSpeakers,
		style:    string(form.DefaultStyle),
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a podcast from a topic, URL or PDF",
		Example: `  podcastctl generate --topic "The history of jazz" --voice A=rachel --voice B=adam
  podcastctl generate --url https://example.com/article --speakers 3 --voice A=rachel --voice B=adam --voice C=bella --wait
  podcastctl generate --pdf paper.pdf --language en --style educational --voice A=rachel --voice B=adam`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(opts.output)
			if err != nil {
				return err
			}
			return runGenerate(cmd, ctx, opts, format)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.topic, "topic", "", "Topic to discuss")
	flags.StringVar(&opts.url, "url", "", "Web page to turn into a podcast")
	flags.StringVar(&opts.pdf, "pdf", "", "PDF document to upload")
	flags.IntVar(&opts.duration, "duration", opts.duration, "Target length in minutes (1-5)")
	flags.StringVar(&opts.language, "language", opts.language, "Script language (ko or en)")
	flags.StringVar(&opts.engine, "engine", opts.engine, "TTS engine")
	flags.IntVar(&opts.speakers, "speakers", opts.speakers, "Number of speakers (2 or 3)")
	flags.StringVar(&opts.style, "style", opts.style, "Conversation style: casual, professional, educational, storytelling")
	flags.StringArrayVar(&opts.voices, "voice", nil, "Voice per speaker slot as SLOT=VOICE (e.g. A=rachel); repeat per slot")
	flags.BoolVar(&opts.wait, "wait", false, "Poll status until the job finishes")
	addOutputFlag(cmd, &opts.output)
	cmd.MarkFlagsMutuallyExclusive("topic", "url", "pdf")

	return cmd
}

func runGenerate(cmd *cobra.Command, ctx *commandContext, opts generateOptions, format outputFormat) error {
	cfg := ctx.config
	client := ctx.newClient()
	gen := generator.New(client, generator.WithLogger(ctx.logger))
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	gen.LoadVoices(cmd.Context())

	f, err := buildForm(gen.State().Form, opts)
	if err != nil {
		return err
	}
	gen.Edit(func(form.Form) form.Form { return f })

	state, err := gen.Submit(cmd.Context())
	if err != nil {
		return err
	}

	if opts.wait && state.Status != nil && !state.Status.State.Terminal() {
		var stop func()
		if format == formatTable {
			stop = followStatus(gen, out, colorize)
		}
		waitCtx, cancel := context.WithTimeout(cmd.Context(), cfg.PollTimeout())
		state, err = gen.Wait(waitCtx, cfg.PollInterval())
		cancel()
		if stop != nil {
			stop()
		}
		if err != nil {
			if errors.Is(waitCtx.Err(), context.DeadlineExceeded) && cmd.Context().Err() == nil {
				return fmt.Errorf("job %s still running after %s; check later with `podcastctl status %s`",
					state.PodcastID, cfg.PollTimeout(), state.PodcastID)
			}
			return err
		}
	}

	state = gen.LoadMetadata(cmd.Context())

	if handled, err := writeStructured(cmd, format, newGenerateSummary(client, state)); handled {
		return err
	}
	printGenerateResult(out, client, state, colorize)
	if state.Phase == generator.PhaseFailed {
		return services.Wrap(services.ErrRemote, "cli", "generate", "podcast generation failed", nil)
	}
	return nil
}

func buildForm(f form.Form, opts generateOptions) (form.Form, error) {
	switch {
	case strings.TrimSpace(opts.url) != "":
		f = f.SwitchMode(form.ModeURL).WithURL(opts.url)
	case strings.TrimSpace(opts.pdf) != "":
		f = f.SwitchMode(form.ModeDocument)
		var err error
		f, err = f.WithDocument(filepath.Base(opts.pdf), opts.pdf)
		if err != nil {
			return f, services.Wrap(services.ErrValidation, "cli", "select document", err.Error(), nil)
		}
	default:
		f = f.SwitchMode(form.ModeTopic).WithTopic(opts.topic)
	}

	language := opts.language
	if normalized, err := form.NormalizeLanguage(language); err == nil {
		language = normalized
	}
	f = f.WithDuration(opts.duration).
		WithLanguage(language).
		WithTTSEngine(opts.engine).
		WithStyle(form.Style(strings.ToLower(strings.TrimSpace(opts.style)))).
		WithSpeakers(opts.speakers)

	for _, raw := range opts.voices {
		label, voice, err := form.ParseVoiceAssignment(raw)
		if err != nil {
			return f, services.Wrap(services.ErrValidation, "cli", "parse voice", err.Error(), nil)
		}
		f = f.WithVoice(label, voice)
	}
	return f, nil
}

// followStatus prints status updates while Wait runs. Terminals get a single
// line redrawn in place; other writers get one line per change.
func followStatus(gen *generator.Generator, out io.Writer, colorize bool) func() {
	frame := 0
	last := ""
	unsubscribe := gen.Subscribe(func(s generator.State) {
		if s.Status == nil || s.Status.State.Terminal() {
			return
		}
		line := render.Status(*s.Status, frame, colorize)[0]
		frame++
		if colorize {
			fmt.Fprintf(out, "\r\x1b[2K%s", line)
			return
		}
		key := fmt.Sprintf("%s|%s|%.0f", s.Status.State, s.Status.Message, s.Status.Progress)
		if key != last {
			last = key
			fmt.Fprintln(out, line)
		}
	})
	return func() {
		unsubscribe()
		if colorize {
			fmt.Fprint(out, "\r\x1b[2K")
		}
	}
}

func printGenerateResult(out io.Writer, client *podcast.Client, state generator.State, colorize bool) {
	if state.Status == nil {
		if state.Err != "" {
			fmt.Fprintln(out, render.Error(state.Err, colorize))
		}
		return
	}
	printLines(out, render.Status(*state.Status, 0, colorize))
	if state.Phase != generator.PhaseCompleted {
		if state.Phase == generator.PhaseProcessing {
			fmt.Fprintf(out, "Follow progress with `podcastctl status %s`.\n", state.PodcastID)
		}
		return
	}
	f := state.Form
	fmt.Fprintf(out, "  %s, %s style, %d min\n", render.LanguageName(f.Language), f.Style.Description(), f.DurationMinutes)
	fmt.Fprintln(out)
	printLines(out, render.Result(resultLinks(client, *state.Status), state.Submission, state.Metadata, colorize))
}

func resultLinks(client *podcast.Client, status podcast.Status) render.Links {
	links := render.Links{}
	if status.ScriptPath != "" {
		links.Script = client.ScriptURL(status.PodcastID)
	}
	if status.AudioPath != "" {
		links.Audio = client.AudioURL(status.PodcastID)
	}
	return links
}

type generateSummary struct {
	PodcastID     string            `json:"podcast_id" yaml:"podcast_id"`
	Status        podcast.JobState  `json:"status" yaml:"status"`
	Message       string            `json:"message,omitempty" yaml:"message,omitempty"`
	Title         string            `json:"title,omitempty" yaml:"title,omitempty"`
	DialogueCount int               `json:"dialogue_count,omitempty" yaml:"dialogue_count,omitempty"`
	SpeakersUsed  []string          `json:"speakers_used,omitempty" yaml:"speakers_used,omitempty"`
	ScriptURL     string            `json:"script_url,omitempty" yaml:"script_url,omitempty"`
	AudioURL      string            `json:"audio_url,omitempty" yaml:"audio_url,omitempty"`
	Duration      float64           `json:"total_duration,omitempty" yaml:"total_duration,omitempty"`
	Voices        map[string]string `json:"voices,omitempty" yaml:"voices,omitempty"`
	Error         string            `json:"error,omitempty" yaml:"error,omitempty"`
}

func newGenerateSummary(client *podcast.Client, state generator.State) generateSummary {
	summary := generateSummary{
		PodcastID: state.PodcastID,
		Voices:    state.Form.SelectedVoices(),
		Error:     state.Err,
	}
	if state.Status != nil {
		summary.Status = state.Status.State
		summary.Message = state.Status.Message
		links := resultLinks(client, *state.Status)
		summary.ScriptURL = links.Script
		summary.AudioURL = links.Audio
	}
	if sub := state.Submission; sub != nil {
		summary.Title = sub.Title
		summary.DialogueCount = sub.DialogueCount
		summary.SpeakersUsed = sub.SpeakersUsed
	}
	if meta := state.Metadata; meta != nil {
		summary.Duration = meta.TotalDuration
		if summary.DialogueCount == 0 {
			summary.DialogueCount = meta.DialogueCount
		}
	}
	return summary
}
