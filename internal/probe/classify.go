package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"
)

// classifyError maps a transport error from dialing or an HTTP round trip
// onto an outcome kind. The DNS check comes first: *net.DNSError also
// satisfies net.Error.
func classifyError(err error) Kind {
	if err == nil {
		return Success
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return TimeoutFailure
		}
		return ResolutionFailure
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return TimeoutFailure
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TimeoutFailure
	}

	if isTLSError(err) {
		return ConnectionFailure
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.EHOSTUNREACH),
		errors.Is(err, syscall.ENETUNREACH),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return ConnectionFailure
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ConnectionFailure
	}
	return UnexpectedError
}

func isTLSError(err error) bool {
	var (
		recordErr    tls.RecordHeaderError
		alertErr     tls.AlertError
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	return errors.Is(err, http.ErrSchemeMismatch) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}

// dnsClass labels a lookup failure the way operators read dig output.
// It works from the error alone; no further queries are made.
func dnsClass(err error) string {
	var dnsErr *net.DNSError
	if !errors.As(err, &dnsErr) {
		return ""
	}
	switch {
	case dnsErr.IsNotFound:
		return "NXDOMAIN"
	case dnsErr.IsTimeout, dnsErr.IsTemporary:
		return "SERVFAIL_or_TIMEOUT"
	default:
		return "LOOKUP_FAILED"
	}
}

// rootCause strips Op/URL wrappers so diagnostics read "connection refused"
// instead of the whole dial chain.
func rootCause(err error) error {
	for {
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Err != nil {
			err = opErr.Err
			continue
		}
		var sysErr *os.SyscallError
		if errors.As(err, &sysErr) && sysErr.Err != nil {
			err = sysErr.Err
			continue
		}
		return err
	}
}

func (o Outcome) after(d time.Duration) Outcome {
	o.Elapsed = d
	return o
}
