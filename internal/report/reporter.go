package report

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/probe"
)

// Reporter turns an outcome into at most one stderr line and an exit code.
// Success is silent.
type Reporter struct {
	Err    io.Writer
	Logger *zap.Logger
	Mode   Mode
}

func NewReporter(stderr io.Writer, logger *zap.Logger, mode Mode) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{Err: stderr, Logger: logger, Mode: mode}
}

func (r *Reporter) Report(o probe.Outcome) int {
	code := ExitCode(o, r.Mode)

	fields := []zap.Field{
		zap.String("kind", o.Kind.String()),
		zap.String("target", o.Target),
		zap.Float64("elapsed_ms", float64(o.Elapsed.Microseconds())/1000),
		zap.Int("exit_code", code),
	}
	if o.StatusCode != 0 {
		fields = append(fields, zap.Int("status", o.StatusCode))
	}
	if o.Err != nil {
		fields = append(fields, zap.Error(o.Err))
	}

	if o.OK() {
		r.Logger.Info("probe_done", fields...)
		return code
	}

	r.Logger.Warn("probe_failed", append(fields, zap.String("detail", o.Detail))...)
	if r.Err != nil {
		_, _ = fmt.Fprintln(r.Err, Diagnostic(o))
	}
	return code
}

// Diagnostic renders "<category>: <detail>" on a single line.
func Diagnostic(o probe.Outcome) string {
	detail := strings.Join(strings.Fields(o.Detail), " ")
	if detail == "" {
		return o.Kind.String()
	}
	return o.Kind.String() + ": " + detail
}
