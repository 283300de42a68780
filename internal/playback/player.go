package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"podcastctl/internal/services"
)

// ErrNoPlayer is returned when no player command is configured.
var ErrNoPlayer = errors.New("no audio player configured")

// Player runs an external audio player. The file path is appended to Command.
type Player struct {
	Command []string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Available reports whether the player binary can be found.
func (p Player) Available() error {
	if len(p.Command) == 0 || strings.TrimSpace(p.Command[0]) == "" {
		return ErrNoPlayer
	}
	if _, err := exec.LookPath(p.Command[0]); err != nil {
		return services.Wrap(services.ErrConfiguration, "playback", "lookup player",
			fmt.Sprintf("player %q not found", p.Command[0]), err)
	}
	return nil
}

// Play runs the player on path and blocks until it exits or ctx is canceled.
func (p Player) Play(ctx context.Context, path string) error {
	if err := p.Available(); err != nil {
		return err
	}
	args := append(append([]string(nil), p.Command[1:]...), path)
	cmd := exec.CommandContext(ctx, p.Command[0], args...)
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("playback: %s: %w", p.Command[0], err)
	}
	return nil
}

// PlayWithClock runs the player and drives clock alongside it. The clock
// stops when the player exits or ctx is canceled.
func (p Player) PlayWithClock(ctx context.Context, path string, clock *Clock) error {
	if err := p.Available(); err != nil {
		return err
	}
	clockCtx, stop := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		clock.Run(clockCtx)
	}()
	err := p.Play(ctx, path)
	stop()
	<-done
	return err
}
