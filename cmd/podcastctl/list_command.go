package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"podcastctl/internal/services/podcast"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List podcast jobs known to the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			items, err := ctx.newClient().List(cmd.Context())
			if err != nil {
				return err
			}
			sortByCreated(items)
			if handled, err := writeStructured(cmd, format, podcast.ListResponse{Podcasts: items}); handled {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No podcasts found")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					item.PodcastID,
					string(item.State),
					formatTimestamp(item.CreatedAt),
					item.Message,
				})
			}
			fmt.Fprintln(out, renderTable(listColumns, rows))
			return nil
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

// sortByCreated orders jobs newest first; jobs without a timestamp go last.
func sortByCreated(items []podcast.Status) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].CreatedAt.Time(), items[j].CreatedAt.Time()
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		return a.After(b)
	})
}
