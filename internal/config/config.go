package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix namespaces every variable, e.g. NETPROBE_TCP_TIMEOUT.
const Prefix = "NETPROBE"

// Config holds the optional knobs of a probe run. With nothing set, every
// value equals the reference behaviour.
type Config struct {
	LogDir    string `split_words:"true"`                  // empty disables the log file
	LogLevel  string `split_words:"true" default:"info"`   // debug, info, warn, error
	ExitCodes string `split_words:"true" default:"binary"` // binary or detailed

	HTTPTimeout      time.Duration `split_words:"true" default:"5s"`
	HTTPStrictScheme bool          `split_words:"true" default:"false"`

	TCPTimeout time.Duration `split_words:"true" default:"2s"`

	PingTimeout time.Duration `split_words:"true" default:"5s"` // supervises the child process
	PingWait    time.Duration `split_words:"true" default:"2s"` // passed to ping's own wait flag
	PingBinary  string        `split_words:"true" default:"ping"`
}

// Load reads the environment without validating, so flags can still
// override a value before Validate runs. On error cfg holds whatever was
// processed so far.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func FromEnv() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate is also run after flags have been applied.
func (c Config) Validate() error {
	for name, d := range map[string]time.Duration{
		"HTTP_TIMEOUT": c.HTTPTimeout,
		"TCP_TIMEOUT":  c.TCPTimeout,
		"PING_TIMEOUT": c.PingTimeout,
		"PING_WAIT":    c.PingWait,
	} {
		if d <= 0 {
			return fmt.Errorf("config: %s_%s must be positive, got %s", Prefix, name, d)
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.ExitCodes)) {
	case "binary", "detailed":
	default:
		return fmt.Errorf("config: %s_EXIT_CODES must be binary or detailed, got %q", Prefix, c.ExitCodes)
	}
	if strings.TrimSpace(c.PingBinary) == "" {
		return fmt.Errorf("config: %s_PING_BINARY must not be empty", Prefix)
	}
	return nil
}
