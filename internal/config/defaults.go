package config

const (
	defaultServiceBaseURL  = "http://localhost:8000"
	defaultExtractPath     = "/api/extract-titles"
	defaultFeedbackPath    = "/api/get-feedback"
	defaultTimeoutSeconds  = 30
	defaultExportDir       = "."
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultRetentionDays   = 14
	envServerURL           = "SLIDEDECK_SERVER_URL"
	envExportDir           = "SLIDEDECK_EXPORT_DIR"
	envLogLevel            = "SLIDEDECK_LOG_LEVEL"
	envClearTitlesOnSelect = "SLIDEDECK_CLEAR_TITLES_ON_SELECT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Service: Service{
			BaseURL:        defaultServiceBaseURL,
			ExtractPath:    defaultExtractPath,
			FeedbackPath:   defaultFeedbackPath,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Export: Export{
			Dir: defaultExportDir,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultRetentionDays,
		},
	}
}
