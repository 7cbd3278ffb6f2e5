package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hamed0406/netprobe/internal/probe"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind     probe.Kind
		binary   int
		detailed int
	}{
		{probe.Success, 0, 0},
		{probe.InputError, 1, 2},
		{probe.ResolutionFailure, 1, 3},
		{probe.ConnectionFailure, 1, 4},
		{probe.ProtocolFailure, 1, 5},
		{probe.TimeoutFailure, 1, 6},
		{probe.UnexpectedError, 1, 1},
		{probe.Kind(200), 1, 1},
	}
	for _, c := range cases {
		t.Run(c.kind.String(), func(t *testing.T) {
			o := probe.Outcome{Kind: c.kind}
			require.Equal(t, c.binary, ExitCode(o, ModeBinary))
			require.Equal(t, c.detailed, ExitCode(o, ModeDetailed))
		})
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeBinary, m)

	m, err = ParseMode(" Detailed ")
	require.NoError(t, err)
	require.Equal(t, ModeDetailed, m)

	_, err = ParseMode("verbose")
	require.Error(t, err)
}

func TestReporter_SilentOnSuccess(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	r := NewReporter(&stderr, zap.NewNop(), ModeBinary)

	code := r.Report(probe.Succeeded("example.com:80", 3*time.Millisecond))
	require.Equal(t, 0, code)
	require.Zero(t, stderr.Len())
}

func TestReporter_OneLineOnFailure(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	r := NewReporter(&stderr, zap.NewNop(), ModeBinary)

	o := probe.Failed(probe.ProtocolFailure, "http://x", nil, "HTTP error: 503 Service Unavailable\nretry later")
	o.StatusCode = 503
	code := r.Report(o)

	require.Equal(t, 1, code)
	out := stderr.String()
	require.Equal(t, 1, strings.Count(out, "\n"))
	require.True(t, strings.HasSuffix(out, "\n"))
	require.Contains(t, out, "protocol failure: ")
	require.Contains(t, out, "503")
	require.NotContains(t, strings.TrimSuffix(out, "\n"), "\n")
}

func TestReporter_DetailedMode(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	r := NewReporter(&stderr, nil, ModeDetailed)

	code := r.Report(probe.Failed(probe.TimeoutFailure, "10.0.0.1:22", nil, "connection to 10.0.0.1:22 timed out after 2s"))
	require.Equal(t, ExitTimeout, code)
	require.Equal(t, "timeout: connection to 10.0.0.1:22 timed out after 2s\n", stderr.String())
}

func TestReporter_LogsOutcome(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	r := NewReporter(&bytes.Buffer{}, zap.New(core), ModeBinary)

	r.Report(probe.Failed(probe.ConnectionFailure, "db:5432", errors.New("connection refused"), "port 5432 on db is not reachable"))

	entries := logs.FilterMessage("probe_failed").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	require.Equal(t, "connection failure", ctx["kind"])
	require.Equal(t, "db:5432", ctx["target"])
	require.EqualValues(t, 1, ctx["exit_code"])
}

func TestDiagnostic_EmptyDetail(t *testing.T) {
	t.Parallel()

	require.Equal(t, "unexpected error", Diagnostic(probe.Outcome{Kind: probe.UnexpectedError}))
}
