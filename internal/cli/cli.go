package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/config"
	"github.com/hamed0406/netprobe/internal/logging"
	"github.com/hamed0406/netprobe/internal/probe"
	"github.com/hamed0406/netprobe/internal/report"
	"github.com/hamed0406/netprobe/internal/target"
)

// Execute runs one probe of variant v and returns the process exit status.
// stdout only ever receives --help and --version output.
func Execute(v Variant, args []string, stdout, stderr io.Writer) (code int) {
	mode := report.ModeBinary
	defer func() {
		if r := recover(); r != nil {
			o := probe.Failed(probe.UnexpectedError, "", fmt.Errorf("panic: %v", r), "internal error: %v", r)
			code = report.NewReporter(stderr, nil, mode).Report(o)
		}
	}()

	cfg, envErr := config.Load()
	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}

	cmd := &cobra.Command{
		Use:           v.Name + " <target>",
		Short:         v.Short,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if m, err := report.ParseMode(cfg.ExitCodes); err == nil {
				mode = m
			}
			code = run(cmd.Context(), v, cfg, mode, envErr, args, stderr)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	cmd.CompletionOptions.DisableDefaultCmd = true

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.DurationVar(v.Timeout(&cfg), "timeout", *v.Timeout(&cfg), "overall probe timeout")
	fs.StringVar(&cfg.ExitCodes, "exit-codes", cfg.ExitCodes, "exit code mode: binary or detailed")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "directory for the JSON log file (empty disables logging)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	if v.Flags != nil {
		v.Flags(fs, &cfg)
	}

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if m, perr := report.ParseMode(cfg.ExitCodes); perr == nil {
			mode = m
		}
		return report.NewReporter(stderr, nil, mode).Report(probe.Invalid("", err))
	}
	return code
}

func run(ctx context.Context, v Variant, cfg config.Config, mode report.Mode, envErr error, args []string, stderr io.Writer) int {
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	rep := report.NewReporter(stderr, logger, mode)

	if envErr != nil {
		return rep.Report(probe.Invalid("", envErr))
	}
	if err := cfg.Validate(); err != nil {
		return rep.Report(probe.Invalid("", err))
	}
	switch {
	case len(args) == 0:
		return rep.Report(probe.Invalid("", fmt.Errorf("%w: no target provided", target.ErrInvalidTarget)))
	case len(args) > 1:
		err := fmt.Errorf("%w: expected exactly one target, got %d", target.ErrInvalidTarget, len(args))
		return rep.Report(probe.Invalid(strings.Join(args, " "), err))
	}

	spec, err := v.Parse(cfg, args[0])
	if err != nil {
		return rep.Report(probe.Invalid(args[0], err))
	}

	logger.Info("probe_start",
		zap.String("probe", v.Name),
		zap.String("target", spec.String()),
		zap.Duration("timeout", *v.Timeout(&cfg)),
	)
	return rep.Report(v.NewProber(cfg, logger).Probe(ctx, spec))
}
