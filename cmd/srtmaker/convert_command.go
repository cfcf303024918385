package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"srtmaker/internal/fileutil"
	"srtmaker/internal/srt"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "convert <transcript>",
		Short: "Normalize a raw transcript file into SRT",
		Long: "Convert reads a raw transcript (from a file, or stdin when the " +
			"argument is \"-\"), normalizes it, and writes a well-formed SRT file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			var raw []byte
			var err error
			if source == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				raw, err = os.ReadFile(source)
				if err != nil {
					return fmt.Errorf("read transcript: %w", err)
				}
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			converter := srt.NewConverter(logger)
			rendered := converter.Convert(string(raw))

			target := strings.TrimSpace(outputPath)
			if target == "" {
				if source == "-" {
					fmt.Fprint(cmd.OutOrStdout(), rendered)
					return nil
				}
				base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
				target = base + ".srt"
			}

			saved, err := fileutil.SaveText(rendered, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", saved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination SRT path (default <transcript>.srt; stdout for stdin input)")
	return cmd
}
