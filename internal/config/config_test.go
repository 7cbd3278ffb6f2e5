package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	require.Empty(t, cfg.LogDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "binary", cfg.ExitCodes)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.False(t, cfg.HTTPStrictScheme)
	require.Equal(t, 2*time.Second, cfg.TCPTimeout)
	require.Equal(t, 5*time.Second, cfg.PingTimeout)
	require.Equal(t, 2*time.Second, cfg.PingWait)
	require.Equal(t, "ping", cfg.PingBinary)
}

func TestFromEnv_ParsesOverrides(t *testing.T) {
	t.Setenv("NETPROBE_LOG_DIR", "./_testlogs")
	t.Setenv("NETPROBE_LOG_LEVEL", "debug")
	t.Setenv("NETPROBE_EXIT_CODES", "detailed")
	t.Setenv("NETPROBE_HTTP_TIMEOUT", "1234ms")
	t.Setenv("NETPROBE_HTTP_STRICT_SCHEME", "true")
	t.Setenv("NETPROBE_TCP_TIMEOUT", "750ms")
	t.Setenv("NETPROBE_PING_TIMEOUT", "3s")
	t.Setenv("NETPROBE_PING_WAIT", "1s")
	t.Setenv("NETPROBE_PING_BINARY", "/bin/ping")

	cfg, err := FromEnv()
	require.NoError(t, err)

	require.Equal(t, "./_testlogs", cfg.LogDir)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "detailed", cfg.ExitCodes)
	require.Equal(t, 1234*time.Millisecond, cfg.HTTPTimeout)
	require.True(t, cfg.HTTPStrictScheme)
	require.Equal(t, 750*time.Millisecond, cfg.TCPTimeout)
	require.Equal(t, 3*time.Second, cfg.PingTimeout)
	require.Equal(t, time.Second, cfg.PingWait)
	require.Equal(t, "/bin/ping", cfg.PingBinary)
}

func TestFromEnv_IgnoresUnprefixedVariables(t *testing.T) {
	t.Setenv("LOG_DIR", "/should/not/apply")
	t.Setenv("TCP_TIMEOUT", "9s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Empty(t, cfg.LogDir)
	require.Equal(t, 2*time.Second, cfg.TCPTimeout)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]string{
		"NETPROBE_TCP_TIMEOUT":  "soon",
		"NETPROBE_HTTP_TIMEOUT": "0s",
		"NETPROBE_PING_WAIT":    "-1s",
		"NETPROBE_EXIT_CODES":   "fancy",
		"NETPROBE_PING_BINARY":  " ",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := FromEnv()
			require.Error(t, err)
		})
	}
}

func TestValidate_ExitCodesTrimmedLikeParseMode(t *testing.T) {
	t.Setenv("NETPROBE_EXIT_CODES", " Detailed ")
	cfg, err := FromEnv()
	require.NoError(t, err)

	cfg.ExitCodes = "binary\n"
	require.NoError(t, cfg.Validate())
}
