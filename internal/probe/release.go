package probe

import (
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// maxDrain bounds how much of a response body is read before closing it.
const maxDrain = 64 << 10

// drainAndClose releases an HTTP response body. Release errors never change
// the outcome of a probe; they are only logged.
func drainAndClose(log *zap.Logger, what string, body io.ReadCloser) {
	_, drainErr := io.Copy(io.Discard, io.LimitReader(body, maxDrain))
	release(log, what, multierr.Combine(drainErr, body.Close()))
}

func closeQuietly(log *zap.Logger, what string, c io.Closer) {
	release(log, what, c.Close())
}

func release(log *zap.Logger, what string, err error) {
	if err == nil || log == nil {
		return
	}
	for _, e := range multierr.Errors(err) {
		log.Debug("release_error", zap.String("resource", what), zap.Error(e))
	}
}
