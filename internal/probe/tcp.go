package probe

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/target"
)

// TCPProber checks that a single TCP connect to host:port succeeds. No data
// is exchanged.
type TCPProber struct {
	Logger   *zap.Logger
	Timeout  time.Duration
	Resolver *net.Resolver // nil uses the system resolver
}

func NewTCPProber(logger *zap.Logger, timeout time.Duration) *TCPProber {
	return &TCPProber{Logger: logger, Timeout: timeout}
}

func (p *TCPProber) Probe(ctx context.Context, t target.Spec) Outcome {
	addr := t.Address()

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	d := &net.Dialer{Timeout: p.Timeout, Resolver: p.Resolver}
	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", addr)
	elapsed := time.Since(start)
	if err != nil {
		return p.failure(t, addr, err).after(elapsed)
	}
	closeQuietly(p.Logger, "tcp_conn", conn)

	return Succeeded(addr, elapsed)
}

func (p *TCPProber) failure(t target.Spec, addr string, err error) Outcome {
	switch kind := classifyError(err); kind {
	case ResolutionFailure:
		return Failed(kind, addr, err, "could not resolve hostname %s (%s)", t.Host, dnsClass(err))
	case TimeoutFailure:
		return Failed(kind, addr, err, "connection to %s timed out after %s", addr, p.Timeout)
	case ConnectionFailure:
		return Failed(kind, addr, err, "port %d on %s is not reachable: %v", t.Port, t.Host, rootCause(err))
	default:
		return Failed(kind, addr, err, "connect to %s: %v", addr, err)
	}
}
