package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"srtmaker/internal/srt"
)

const inspectTextWidth = 60

func newInspectCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "inspect <subtitle-file>",
		Short:       "Show the cues of an SRT file as a table",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read subtitle file: %w", err)
			}

			cues := srt.NewConverter(nil).Parse(string(raw))

			rows := make([][]string, 0, len(cues))
			for i, cue := range cues {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					cue.Start.String(),
					cue.End.String(),
					truncateText(cue.Text, inspectTextWidth),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"#", "Start", "End", "Text"}, rows, 0))
			last := cues[len(cues)-1]
			fmt.Fprintf(out, "%d cues, %.1f seconds\n", len(cues), last.End.Seconds())
			return nil
		},
	}
	return cmd
}

func truncateText(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-1]) + "…"
}
