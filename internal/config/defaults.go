package config

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Path: "log.txt",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Source: SourceConfig{
			Kind:     SourceProcStat,
			StatPath: "/proc/stat",
		},
		Display: DisplayConfig{
			Mode: DisplayPlain,
		},
		Server: ServerConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    9465,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 10,
				Burst:             20,
			},
		},
	}
}
