package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"podcastctl/internal/logging"
	"podcastctl/internal/playback"
	"podcastctl/internal/render"
	"podcastctl/internal/services"
	"podcastctl/internal/services/podcast"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var audioFile string
	var silent bool

	cmd := &cobra.Command{
		Use:   "play <podcast-id>",
		Short: "Play a finished podcast with a live speaker panel",
		Long: `Play downloads the audio of a finished podcast, runs the configured player
on it and highlights the active speaker while it plays. With --silent, or when
no player command is configured, the panel runs on its own clock.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireID(args)
			if err != nil {
				return err
			}
			return runPlay(cmd, ctx, id, audioFile, silent)
		},
	}
	cmd.Flags().StringVar(&audioFile, "file", "", "Play a local audio file instead of downloading it")
	cmd.Flags().BoolVar(&silent, "silent", false, "Show the speaker panel without audio")
	return cmd
}

func runPlay(cmd *cobra.Command, ctx *commandContext, id, audioFile string, silent bool) error {
	cfg := ctx.config
	logger := ctx.loggerFor("play")
	client := ctx.newClient()
	runCtx := services.WithPodcastID(cmd.Context(), id)

	var tl playback.Timeline
	meta, err := client.Metadata(runCtx, id)
	if err != nil {
		logger.WarnContext(runCtx, "dialogue metadata unavailable; playing without speaker panel",
			logging.String(logging.FieldPodcastID, id),
			logging.Error(err),
		)
	} else {
		tl = playback.NewTimeline(meta)
	}

	player := playback.Player{Command: cfg.Playback.Command, Stderr: cmd.ErrOrStderr()}
	silent = silent || len(player.Command) == 0
	if silent && tl.Len() == 0 {
		return services.Wrap(services.ErrRemote, "cli", "play", "no dialogue metadata to show", err)
	}

	out := cmd.OutOrStdout()
	clock := playback.NewClock(cfg.PlaybackTick())
	view := newPanelView(out, tl)
	unsubscribe := clock.Subscribe(view.update)
	defer unsubscribe()

	if silent {
		panelCtx, cancel := context.WithTimeout(runCtx, tl.Duration())
		defer cancel()
		clock.Run(panelCtx)
		view.finish()
		if runCtx.Err() != nil {
			return runCtx.Err()
		}
		return nil
	}

	if err := player.Available(); err != nil {
		return err
	}
	path := strings.TrimSpace(audioFile)
	if path == "" {
		tmpDir, err := os.MkdirTemp("", "podcastctl-play-")
		if err != nil {
			return fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(tmpDir)
		path = filepath.Join(tmpDir, podcast.ArtifactAudio.FileName(id))
		if _, err := downloadTo(runCtx, client, id, podcast.ArtifactAudio, path); err != nil {
			return err
		}
	}
	logger.InfoContext(runCtx, "starting playback",
		logging.String(logging.FieldPodcastID, id),
		logging.String("player", player.Command[0]),
	)
	err = player.PlayWithClock(runCtx, path, clock)
	view.finish()
	return err
}

// panelView redraws the speaker panel for clock updates. Terminals get the
// panel redrawn in place; other writers get one line per utterance.
type panelView struct {
	out      io.Writer
	tl       playback.Timeline
	speakers []playback.Speaker
	panel    *render.Panel
	live     bool

	mu        sync.Mutex
	lastStart float64
	drawn     bool
	started   bool
}

func newPanelView(out io.Writer, tl playback.Timeline) *panelView {
	return &panelView{
		out:      out,
		tl:       tl,
		speakers: tl.Speakers(),
		panel:    render.NewPanel(out, render.DefaultTheme),
		live:     shouldColorize(out),
	}
}

func (v *panelView) update(pos time.Duration) {
	if v.tl.Len() == 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	dialogue, ok := v.tl.AtPosition(pos)
	if v.live {
		if v.drawn {
			fmt.Fprint(v.out, "\x1b[H\x1b[2J")
		}
		fmt.Fprintln(v.out, v.panel.Render(v.speakers, dialogue, ok,
			render.FormatOffset(pos)+" / "+render.FormatOffset(v.tl.Duration())))
		v.drawn = true
		return
	}
	if !ok || (v.started && dialogue.StartTime == v.lastStart) {
		return
	}
	v.started = true
	v.lastStart = dialogue.StartTime
	name := dialogue.SpeakerName
	if name == "" {
		name = dialogue.Speaker
	}
	fmt.Fprintf(v.out, "[%s] %s: %s\n", render.FormatOffset(pos), name, dialogue.Text)
}

func (v *panelView) finish() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tl.Len() > 0 && !v.live {
		fmt.Fprintln(v.out, "Playback finished")
	}
}
