package probe

import (
	"context"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/target"
)

// HTTPProber issues one GET and treats any status in [200, 400) as success.
// Redirects are not followed, so a 3xx answer is itself the verdict.
type HTTPProber struct {
	Logger    *zap.Logger
	Client    *http.Client
	Timeout   time.Duration
	UserAgent string
}

func NewHTTPProber(logger *zap.Logger, timeout time.Duration, userAgent string) *HTTPProber {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DisableKeepAlives:   true,
		TLSHandshakeTimeout: timeout,
	}
	return &HTTPProber{
		Logger:    logger,
		Timeout:   timeout,
		UserAgent: userAgent,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func successStatus(code int) bool { return code >= 200 && code < 400 }

func (h *HTTPProber) Probe(ctx context.Context, t target.Spec) Outcome {
	u, err := url.Parse(t.Raw)
	if err != nil {
		return Failed(InputError, t.Raw, err, "malformed URL %q: %v", t.Raw, err)
	}
	if u.Scheme != string(target.SchemeHTTP) && u.Scheme != string(target.SchemeHTTPS) {
		return Failed(InputError, t.Raw, nil, "unsupported scheme %q in %q", u.Scheme, t.Raw)
	}
	if u.Hostname() == "" {
		return Failed(InputError, t.Raw, nil, "malformed URL %q: missing host", t.Raw)
	}

	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	var connected atomic.Bool
	ctx = httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
		GotConn: func(httptrace.GotConnInfo) { connected.Store(true) },
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Failed(InputError, t.Raw, err, "malformed URL %q: %v", t.Raw, err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	start := time.Now()
	resp, err := h.Client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return h.failure(t.Raw, err, connected.Load()).after(elapsed)
	}
	defer drainAndClose(h.Logger, "http_body", resp.Body)

	if successStatus(resp.StatusCode) {
		o := Succeeded(t.Raw, elapsed)
		o.StatusCode = resp.StatusCode
		return o
	}
	o := Failed(ProtocolFailure, t.Raw, nil, "HTTP error: %s", statusLine(resp))
	o.StatusCode = resp.StatusCode
	return o.after(elapsed)
}

// failure classifies a round-trip error. Once a connection was established,
// an error with no transport meaning (a malformed response) is the peer
// speaking bad HTTP.
func (h *HTTPProber) failure(raw string, err error, connected bool) Outcome {
	kind := classifyError(err)
	if kind == UnexpectedError && connected {
		return Failed(ProtocolFailure, raw, err, "bad HTTP response from %s: %v", raw, err)
	}
	switch kind {
	case TimeoutFailure:
		return Failed(kind, raw, err, "request to %s timed out after %s", raw, h.Timeout)
	case ResolutionFailure:
		return Failed(kind, raw, err, "could not resolve host of %s (%s)", raw, dnsClass(err))
	case ConnectionFailure:
		return Failed(kind, raw, err, "connection error: %v", rootCause(err))
	default:
		return Failed(kind, raw, err, "request to %s failed: %v", raw, err)
	}
}

// statusLine renders "404 Not Found", filling in the reason phrase when the
// server sent a bare code.
func statusLine(resp *http.Response) string {
	s := strings.TrimSpace(resp.Status)
	if strings.Contains(s, " ") {
		return s
	}
	code := strconv.Itoa(resp.StatusCode)
	if text := http.StatusText(resp.StatusCode); text != "" {
		return code + " " + text
	}
	return code
}
