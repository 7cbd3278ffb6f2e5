package cli

import (
	"runtime"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/config"
	"github.com/hamed0406/netprobe/internal/probe"
	"github.com/hamed0406/netprobe/internal/target"
)

// Version is set at build time using -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// UserAgent is sent with every HTTP probe.
func UserAgent() string { return "netprobe/" + Version }

// Variant is one probe binary. Exactly one variant is linked into each main.
type Variant struct {
	Name  string
	Short string

	// Timeout points at the config field that --timeout overrides.
	Timeout func(c *config.Config) *time.Duration
	// Flags registers variant-specific flags bound to cfg.
	Flags func(fs *pflag.FlagSet, cfg *config.Config)

	Parse     func(cfg config.Config, raw string) (target.Spec, error)
	NewProber func(cfg config.Config, logger *zap.Logger) probe.Prober
}

var Ping = Variant{
	Name:    "pingcheck",
	Short:   "Send one ICMP echo request through the system ping utility",
	Timeout: func(c *config.Config) *time.Duration { return &c.PingTimeout },
	Flags: func(fs *pflag.FlagSet, cfg *config.Config) {
		fs.DurationVar(&cfg.PingWait, "wait", cfg.PingWait, "reply wait handed to ping itself")
		fs.StringVar(&cfg.PingBinary, "ping-binary", cfg.PingBinary, "ping utility to run")
	},
	Parse: func(_ config.Config, raw string) (target.Spec, error) {
		return target.ParsePing(raw)
	},
	NewProber: func(cfg config.Config, _ *zap.Logger) probe.Prober {
		return probe.NewICMPProber(probe.NewPinger(runtime.GOOS, cfg.PingBinary, cfg.PingWait), cfg.PingTimeout)
	},
}

var HTTP = Variant{
	Name:    "httpcheck",
	Short:   "Issue one HTTP GET and pass on any status below 400",
	Timeout: func(c *config.Config) *time.Duration { return &c.HTTPTimeout },
	Flags: func(fs *pflag.FlagSet, cfg *config.Config) {
		fs.BoolVar(&cfg.HTTPStrictScheme, "strict-scheme", cfg.HTTPStrictScheme, "reject URLs without http:// or https://")
	},
	Parse: func(cfg config.Config, raw string) (target.Spec, error) {
		return target.ParseHTTP(raw, cfg.HTTPStrictScheme)
	},
	NewProber: func(cfg config.Config, logger *zap.Logger) probe.Prober {
		return probe.NewHTTPProber(logger, cfg.HTTPTimeout, UserAgent())
	},
}

var TCP = Variant{
	Name:    "tcpcheck",
	Short:   "Open one TCP connection to host:port and close it",
	Timeout: func(c *config.Config) *time.Duration { return &c.TCPTimeout },
	Parse: func(_ config.Config, raw string) (target.Spec, error) {
		return target.ParseTCP(raw)
	},
	NewProber: func(cfg config.Config, logger *zap.Logger) probe.Prober {
		return probe.NewTCPProber(logger, cfg.TCPTimeout)
	},
}
