package config

const (
	defaultOutputDir     = "~/srtmaker/subtitles"
	defaultStagingDir    = "~/.local/share/srtmaker/staging"
	defaultLogDir        = "~/.local/share/srtmaker/logs"
	defaultHistoryDB     = "~/.local/share/srtmaker/history.db"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-2.0-flash"
	defaultGeminiTimeout = 300
	defaultLanguage      = "korean"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
			HistoryDB:  defaultHistoryDB,
		},
		Gemini: Gemini{
			BaseURL:        defaultGeminiBaseURL,
			Model:          defaultGeminiModel,
			TimeoutSeconds: defaultGeminiTimeout,
		},
		Subtitles: Subtitles{
			Language: defaultLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
