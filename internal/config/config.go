package config

// Config is the monitor configuration. The sampling cadence is fixed and
// deliberately not configurable.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Logging LoggingConfig `yaml:"logging"`
	Source  SourceConfig  `yaml:"source"`
	Display DisplayConfig `yaml:"display"`
	Server  ServerConfig  `yaml:"server"`
}

// LogConfig describes the durable usage log.
type LogConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig controls diagnostics, which go to stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	SourceProcStat = "procstat"
	SourceGopsutil = "gopsutil"
)

type SourceConfig struct {
	// Kind: procstat, gopsutil
	Kind     string `yaml:"kind"`
	StatPath string `yaml:"stat_path"`
}

const (
	DisplayPlain = "plain"
	DisplayTUI   = "tui"
	DisplayNone  = "none"
)

type DisplayConfig struct {
	// Mode: plain, tui, none
	Mode string `yaml:"mode"`
}

// ServerConfig configures the optional HTTP status surface.
type ServerConfig struct {
	Enabled   bool            `yaml:"enabled"`
	Host      string          `yaml:"host"`
	Port      int             `yaml:"port"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}
