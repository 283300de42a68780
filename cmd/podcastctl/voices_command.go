package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVoicesCommand(ctx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "voices",
		Short: "List the voices available for speaker slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			catalog, err := ctx.newClient().Voices(cmd.Context())
			if err != nil {
				return err
			}
			if handled, err := writeStructured(cmd, format, catalog); handled {
				return err
			}
			out := cmd.OutOrStdout()
			if catalog.Empty() {
				fmt.Fprintln(out, "No voices available")
				return nil
			}
			rows := make([][]string, 0, len(catalog.Speakers))
			for _, id := range catalog.IDs() {
				voice := catalog.Speakers[id]
				rows = append(rows, []string{id, voice.Name, voice.Gender, voice.Description, voice.SuitableFor})
			}
			fmt.Fprintln(out, renderTable(voiceColumns, rows))
			if catalog.Description != "" {
				fmt.Fprintln(out, catalog.Description)
			}
			fmt.Fprintln(out, "Assign voices with --voice A=<voice> --voice B=<voice> when generating.")
			return nil
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}
