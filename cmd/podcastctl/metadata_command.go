package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"podcastctl/internal/playback"
	"podcastctl/internal/render"
	"podcastctl/internal/services/podcast"
)

func newMetadataCommand(ctx *commandContext) *cobra.Command {
	var output string
	var at float64
	cmd := &cobra.Command{
		Use:   "metadata <podcast-id>",
		Short: "Show the dialogue timeline of a finished podcast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			id, err := requireID(args)
			if err != nil {
				return err
			}
			meta, err := ctx.newClient().Metadata(cmd.Context(), id)
			if err != nil {
				return err
			}
			tl := playback.NewTimeline(meta)
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("at") {
				dialogue, ok := tl.At(at)
				if handled, err := writeStructured(cmd, format, lookupResult(at, dialogue, ok)); handled {
					return err
				}
				if !ok {
					fmt.Fprintf(out, "No speaker at %ss\n", strconv.FormatFloat(at, 'f', -1, 64))
					return nil
				}
				fmt.Fprintf(out, "%s (%s) at %s: %s\n", dialogue.SpeakerName, dialogue.Speaker,
					render.FormatOffset(seconds(at)), dialogue.Text)
				return nil
			}

			if handled, err := writeStructured(cmd, format, meta); handled {
				return err
			}
			rows := make([][]string, 0, tl.Len())
			for _, d := range meta.Dialogues {
				rows = append(rows, []string{
					strconv.Itoa(d.Index),
					render.FormatOffset(seconds(d.StartTime)),
					render.FormatOffset(seconds(d.EndTime)),
					fmt.Sprintf("%s (%s)", d.SpeakerName, d.Speaker),
					d.Text,
				})
			}
			fmt.Fprintln(out, renderTable(dialogueColumns, rows))
			fmt.Fprintf(out, "Total %s, %d dialogues. Speakers: %s\n",
				render.FormatOffset(tl.Duration()), tl.Len(), render.SpeakerSummary(tl.Speakers()))
			return nil
		},
	}
	cmd.Flags().Float64Var(&at, "at", 0, "Show only the dialogue active at this offset in seconds")
	addOutputFlag(cmd, &output)
	return cmd
}

type dialogueLookup struct {
	At       float64           `json:"at" yaml:"at"`
	Active   bool              `json:"active" yaml:"active"`
	Dialogue *podcast.Dialogue `json:"dialogue,omitempty" yaml:"dialogue,omitempty"`
}

func lookupResult(at float64, d podcast.Dialogue, ok bool) dialogueLookup {
	result := dialogueLookup{At: at, Active: ok}
	if ok {
		result.Dialogue = &d
	}
	return result
}

func seconds(value float64) time.Duration {
	return time.Duration(value * float64(time.Second))
}
