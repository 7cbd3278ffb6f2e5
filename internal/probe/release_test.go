package probe

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type brokenBody struct {
	closed bool
}

func (b *brokenBody) Read(p []byte) (int, error) { return 0, errors.New("read reset") }

func (b *brokenBody) Close() error {
	b.closed = true
	return errors.New("close failed")
}

// endlessBody never reaches EOF and counts what was read.
type endlessBody struct {
	read   int
	closed bool
}

func (b *endlessBody) Read(p []byte) (int, error) {
	b.read += len(p)
	return len(p), nil
}

func (b *endlessBody) Close() error {
	b.closed = true
	return nil
}

func TestDrainAndClose_LogsEveryReleaseError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	body := &brokenBody{}
	drainAndClose(zap.New(core), "http_body", body)

	require.True(t, body.closed)
	entries := logs.FilterMessage("release_error").All()
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.Equal(t, "http_body", e.ContextMap()["resource"])
	}
	require.Equal(t, "read reset", entries[0].ContextMap()["error"])
	require.Equal(t, "close failed", entries[1].ContextMap()["error"])
}

func TestDrainAndClose_BoundsTheDrain(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	body := &endlessBody{}
	drainAndClose(zap.New(core), "http_body", body)

	require.True(t, body.closed)
	require.Equal(t, maxDrain, body.read)
	require.Zero(t, logs.Len())
}

func TestRelease_NilLoggerAndNilError(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { release(nil, "tcp_conn", errors.New("x")) })

	core, logs := observer.New(zapcore.DebugLevel)
	closeQuietly(zap.New(core), "tcp_conn", io.NopCloser(nil))
	require.Zero(t, logs.Len())
}
