// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hamed0406/netprobe/internal/config"
	"github.com/hamed0406/netprobe/internal/logging"
	"github.com/hamed0406/netprobe/internal/report"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.FromEnv()
	if err != nil {
		fail(err.Error())
	}
	ok(fmt.Sprintf("timeouts http=%s tcp=%s ping=%s (wait %s)", cfg.HTTPTimeout, cfg.TCPTimeout, cfg.PingTimeout, cfg.PingWait))

	if cfg.PingWait >= cfg.PingTimeout {
		warn("NETPROBE_PING_WAIT is not below NETPROBE_PING_TIMEOUT; slow replies will be reported as timeouts.")
	}

	if path, err := exec.LookPath(cfg.PingBinary); err != nil {
		fail(fmt.Sprintf("ping utility %q not found on PATH (pingcheck will always fail).", cfg.PingBinary))
	} else {
		ok("ping utility " + path)
	}

	if cfg.LogDir == "" {
		warn("NETPROBE_LOG_DIR empty; probes will not keep a log file.")
	} else {
		log, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			fail("log directory not usable: " + err.Error())
		}
		log.Info("preflight")
		_ = log.Sync()
		if _, err := os.Stat(filepath.Join(cfg.LogDir, logging.FileName)); err != nil {
			fail("log file not writable: " + err.Error())
		}
		ok("NETPROBE_LOG_DIR=" + cfg.LogDir)
	}

	if mode, _ := report.ParseMode(cfg.ExitCodes); mode == report.ModeDetailed {
		warn("NETPROBE_EXIT_CODES=detailed; the orchestrator must treat every non-zero code as failure.")
	}
	if cfg.HTTPStrictScheme {
		ok("httpcheck rejects URLs without a scheme")
	}

	ok("preflight passed")
}
