package config

const (
	defaultConfigPath             = "~/.config/podcastctl/config.toml"
	projectConfigName             = "podcastctl.toml"
	defaultBaseURL                = "http://localhost:8001"
	defaultTimeoutSeconds         = 120
	defaultStatusTimeoutSeconds   = 15
	defaultDocumentTimeoutSeconds = 180
	defaultUserAgent              = "podcastctl/dev"
	defaultPollIntervalSeconds    = 5
	defaultPollTimeoutSeconds     = 900
	defaultPlaybackTickMillis     = 250
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"

	// EnvBaseURL overrides api.base_url when set.
	EnvBaseURL = "PODCASTCTL_API_URL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:                defaultBaseURL,
			TimeoutSeconds:         defaultTimeoutSeconds,
			StatusTimeoutSeconds:   defaultStatusTimeoutSeconds,
			DocumentTimeoutSeconds: defaultDocumentTimeoutSeconds,
			UserAgent:              defaultUserAgent,
		},
		Poll: Poll{
			IntervalSeconds: defaultPollIntervalSeconds,
			TimeoutSeconds:  defaultPollTimeoutSeconds,
		},
		Playback: Playback{
			Command:   []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
			TickMilli: defaultPlaybackTickMillis,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
