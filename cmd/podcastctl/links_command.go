package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podcastctl/internal/services/podcast"
)

type podcastLinks struct {
	PodcastID string `json:"podcast_id" yaml:"podcast_id"`
	Audio     string `json:"audio" yaml:"audio"`
	Script    string `json:"script" yaml:"script"`
	Metadata  string `json:"metadata" yaml:"metadata"`
}

func newLinksCommand(ctx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "links <podcast-id>",
		Short: "Print the download links of a podcast",
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
			links := podcastLinks{
				PodcastID: id,
				Audio:     client.AudioURL(id),
				Script:    client.ScriptURL(id),
				Metadata:  client.ArtifactURL(id, podcast.ArtifactMetadata),
			}
			if handled, err := writeStructured(cmd, format, links); handled {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Script:   %s\n", links.Script)
			fmt.Fprintf(out, "Audio:    %s\n", links.Audio)
			fmt.Fprintf(out, "Metadata: %s\n", links.Metadata)
			return nil
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}
