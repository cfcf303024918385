package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"srtmaker/internal/generate"
	"srtmaker/internal/history"
	"srtmaker/internal/logging"
	"srtmaker/internal/services/gemini"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var modelFlag string
	var languageFlag string

	cmd := &cobra.Command{
		Use:   "generate <video>",
		Short: "Transcribe a video with Gemini and write normalized SRT subtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if modelFlag != "" {
				cfg.Gemini.Model = modelFlag
			}
			if languageFlag != "" {
				cfg.Subtitles.Language = languageFlag
			}
			if err := cfg.RequireGemini(); err != nil {
				return err
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			client := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model,
				gemini.WithBaseURL(cfg.Gemini.BaseURL))

			store, err := history.Open(cmd.Context(), cfg.Paths.HistoryDB)
			if err != nil {
				logger.Warn("conversion history unavailable", logging.Error(err))
				store = nil
			} else {
				defer store.Close()
			}

			gen, err := generate.New(cfg, client, store, logger)
			if err != nil {
				return err
			}

			runCtx := cmd.Context()
			if cfg.Gemini.TimeoutSeconds > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second)
				defer cancel()
			}

			result, err := gen.Run(runCtx, args[0], outputPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s (%d cues, %.1fs)\n",
				result.OutputPath, result.CueCount, result.DurationSeconds)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination SRT path (default <video>.srt in the output directory)")
	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Override the configured Gemini model")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Override the configured subtitle language")
	return cmd
}
