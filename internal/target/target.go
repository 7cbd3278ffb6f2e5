package target

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidTarget wraps every parse failure so callers can tell malformed
// input apart from anything that happens later on the network.
var ErrInvalidTarget = errors.New("invalid target")

type Scheme string

const (
	SchemeHTTP  Scheme = "http"
	SchemeHTTPS Scheme = "https"
)

// Spec is the parsed target of a single probe run.
//
// Fields:
//   - Host: never empty once parsing succeeded (HTTP is best-effort, the
//     prober re-validates the URL).
//   - Port: 0 when the input carried none.
//   - Scheme: only set for HTTP targets.
//   - Raw: the argument after normalization (the URL for HTTP).
type Spec struct {
	Host   string
	Port   int
	Scheme Scheme
	Raw    string
}

// Address returns host:port suitable for net.Dial.
func (s Spec) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func (s Spec) String() string {
	switch {
	case s.Scheme != "":
		return s.Raw
	case s.Port != 0:
		return s.Address()
	default:
		return s.Host
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTarget, fmt.Sprintf(format, args...))
}

// trim drops surrounding whitespace; every parser sees the same argument.
func trim(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("empty target")
	}
	return raw, nil
}

// ParseTCP parses "host:port". The split happens on the last colon, so
// "::1:8080" yields host "::1". A bracketed host has its brackets removed.
func ParseTCP(raw string) (Spec, error) {
	raw, err := trim(raw)
	if err != nil {
		return Spec{}, err
	}
	i := strings.LastIndex(raw, ":")
	if i < 0 {
		return Spec{}, invalid("expected host:port (e.g. example.com:80), got %q", raw)
	}
	host, portStr := raw[:i], raw[i+1:]
	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		host = host[1 : len(host)-1]
	}
	if host == "" {
		return Spec{}, invalid("missing host in %q", raw)
	}
	if portStr == "" {
		return Spec{}, invalid("missing port in %q", raw)
	}
	port, err := parsePort(portStr)
	if err != nil {
		return Spec{}, err
	}
	return Spec{Host: host, Port: port, Raw: raw}, nil
}

func parsePort(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, invalid("invalid port number %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return 0, invalid("port %s out of range 1-65535", s)
	}
	return n, nil
}

// ParseHTTP normalizes a URL argument, defaulting the scheme to http://
// unless strict is set. It does not validate the URL: a malformed result is
// the prober's to reject.
func ParseHTTP(raw string, strict bool) (Spec, error) {
	raw, err := trim(raw)
	if err != nil {
		return Spec{}, err
	}
	lower := strings.ToLower(raw)

	var scheme Scheme
	switch {
	case strings.HasPrefix(lower, "https://"):
		scheme = SchemeHTTPS
	case strings.HasPrefix(lower, "http://"):
		scheme = SchemeHTTP
	case strict:
		return Spec{}, invalid("missing http:// or https:// scheme in %q", raw)
	default:
		scheme = SchemeHTTP
		raw = "http://" + raw
	}

	s := Spec{Scheme: scheme, Raw: raw}
	if u, err := url.Parse(raw); err == nil {
		s.Host = u.Hostname()
		if p, err := strconv.Atoi(u.Port()); err == nil {
			s.Port = p
		}
	}
	return s, nil
}

// ParsePing passes the host through unchanged apart from trimming. A leading dash is refused so
// the argument can never be taken for a ping option.
func ParsePing(raw string) (Spec, error) {
	raw, err := trim(raw)
	if err != nil {
		return Spec{}, err
	}
	if strings.HasPrefix(raw, "-") {
		return Spec{}, invalid("host %q must not start with '-'", raw)
	}
	return Spec{Host: raw, Raw: raw}, nil
}
