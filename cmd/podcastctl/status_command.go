package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"podcastctl/internal/render"
	"podcastctl/internal/services/podcast"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "status <podcast-id>",
		Short: "Show the status of a podcast job",
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
			client := ctx.newClient()
			status, err := client.Status(cmd.Context(), id)
			if err != nil {
				return err
			}
			if handled, err := writeStructured(cmd, format, status); handled {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			printLines(out, render.Status(status, 0, colorize))
			printLines(out, statusDetails(status))
			if status.State == podcast.StateCompleted {
				fmt.Fprintln(out)
				printLines(out, render.Result(resultLinks(client, status), nil, nil, colorize))
			}
			return nil
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func statusDetails(status podcast.Status) []string {
	var lines []string
	if !status.CreatedAt.IsZero() {
		lines = append(lines, "  Created: "+formatTimestamp(status.CreatedAt))
	}
	if !status.UpdatedAt.IsZero() {
		lines = append(lines, "  Updated: "+formatTimestamp(status.UpdatedAt))
	}
	return lines
}

func formatTimestamp(ts podcast.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Time().Local().Format(time.DateTime)
}
