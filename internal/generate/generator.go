package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"srtmaker/internal/config"
	"srtmaker/internal/fileutil"
	"srtmaker/internal/history"
	"srtmaker/internal/language"
	"srtmaker/internal/logging"
	"srtmaker/internal/preflight"
	"srtmaker/internal/srt"
)

// ErrBusy signals that another generation currently holds the staging lock.
var ErrBusy = errors.New("another generation is already running")

// Transcriber produces raw transcript text for a local video file. It is the
// opaque upstream: one text blob or an error, no retry policy here.
type Transcriber interface {
	Transcribe(ctx context.Context, videoPath, languageName string) (string, error)
}

// Result summarizes one completed generation.
type Result struct {
	RequestID       string
	OutputPath      string
	TranscriptPath  string
	CueCount        int
	DurationSeconds float64
}

// Generator runs the video-to-subtitle pipeline.
type Generator struct {
	cfg       *config.Config
	client    Transcriber
	store     *history.Store
	converter *srt.Converter
	logger    *slog.Logger
}

// New constructs a Generator. The history store may be nil to skip recording.
func New(cfg *config.Config, client Transcriber, store *history.Store, logger *slog.Logger) (*Generator, error) {
	if cfg == nil {
		return nil, errors.New("generate: config required")
	}
	if client == nil {
		return nil, errors.New("generate: transcriber required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{
		cfg:       cfg,
		client:    client,
		store:     store,
		converter: srt.NewConverter(logger),
		logger:    logging.NewComponentLogger(logger, "generate"),
	}, nil
}

// Run executes the pipeline for one video. An empty outputPath derives
// "<video base>.srt" under the configured output directory.
func (g *Generator) Run(ctx context.Context, videoPath, outputPath string) (Result, error) {
	var empty Result
	requestID := uuid.NewString()
	log := g.logger.With(logging.String(logging.FieldRequestID, requestID))

	size, err := preflight.CheckVideoFile(videoPath)
	if err != nil {
		return empty, fmt.Errorf("preflight: %w", err)
	}
	if err := fileutil.EnsureDir(g.cfg.Paths.StagingDir); err != nil {
		return empty, fmt.Errorf("preflight: %w", err)
	}
	if err := preflight.CheckStagingSpace(g.cfg.Paths.StagingDir, size); err != nil {
		return empty, fmt.Errorf("preflight: %w", err)
	}

	lock := flock.New(filepath.Join(g.cfg.Paths.StagingDir, "srtmaker.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return empty, fmt.Errorf("acquire staging lock: %w", err)
	}
	if !locked {
		return empty, ErrBusy
	}
	defer func() { _ = lock.Unlock() }()

	tag, err := language.Resolve(g.cfg.Subtitles.Language)
	if err != nil {
		return empty, err
	}
	languageName := language.DisplayName(tag)

	log.Info("transcription started",
		logging.String("video", videoPath),
		logging.Int64("size_bytes", size),
		logging.String("model", g.cfg.Gemini.Model),
		logging.String("language", languageName),
	)
	transcript, err := g.client.Transcribe(ctx, videoPath, languageName)
	if err != nil {
		return empty, fmt.Errorf("transcribe: %w", err)
	}

	// Raw responses are kept in staging for diagnostics; losing one is not
	// worth failing the run.
	transcriptPath := filepath.Join(g.cfg.Paths.StagingDir, requestID+".txt")
	if err := os.WriteFile(transcriptPath, []byte(transcript), 0o644); err != nil {
		log.Warn("could not archive raw transcript", logging.Error(err))
		transcriptPath = ""
	}

	cues := g.converter.Parse(transcript)
	rendered := srt.Render(cues)

	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
		outputPath = filepath.Join(g.cfg.Paths.OutputDir, base+".srt")
	}
	savedPath, err := fileutil.SaveText(rendered, outputPath)
	if err != nil {
		return empty, fmt.Errorf("save subtitles: %w", err)
	}

	result := Result{
		RequestID:       requestID,
		OutputPath:      savedPath,
		TranscriptPath:  transcriptPath,
		CueCount:        len(cues),
		DurationSeconds: cues[len(cues)-1].End.Seconds(),
	}

	if g.store != nil {
		_, err := g.store.Add(ctx, history.Record{
			RequestID:       requestID,
			Source:          videoPath,
			OutputPath:      savedPath,
			Model:           g.cfg.Gemini.Model,
			Language:        tag.String(),
			CueCount:        result.CueCount,
			DurationSeconds: result.DurationSeconds,
		})
		if err != nil {
			log.Warn("could not record conversion history", logging.Error(err))
		}
	}

	log.Info("subtitles generated",
		logging.String("output", savedPath),
		logging.Int("cues", result.CueCount),
	)
	return result, nil
}
