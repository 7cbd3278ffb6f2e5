package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/hamed0406/netprobe/internal/target"
)

// Kind is the category of a probe outcome.
type Kind uint8

const (
	Success Kind = iota
	InputError
	ResolutionFailure
	ConnectionFailure
	ProtocolFailure
	TimeoutFailure
	UnexpectedError
)

var kindNames = map[Kind]string{
	Success:           "success",
	InputError:        "input error",
	ResolutionFailure: "resolution failure",
	ConnectionFailure: "connection failure",
	ProtocolFailure:   "protocol failure",
	TimeoutFailure:    "timeout",
	UnexpectedError:   "unexpected error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Outcome is the result of exactly one probe run.
//
// Fields:
//   - Target: host, host:port or URL as probed; empty for input errors
//     raised before a target existed.
//   - Detail: human-readable, never parsed by anyone.
//   - StatusCode: HTTP status or ping exit code when the peer answered; 0 otherwise.
//   - Err: the underlying error, if any. Kept for logging only.
type Outcome struct {
	Kind       Kind
	Target     string
	Detail     string
	StatusCode int
	Elapsed    time.Duration
	Err        error
}

func (o Outcome) OK() bool { return o.Kind == Success }

func Succeeded(target string, elapsed time.Duration) Outcome {
	return Outcome{Kind: Success, Target: target, Elapsed: elapsed}
}

func Failed(kind Kind, target string, err error, format string, args ...any) Outcome {
	return Outcome{
		Kind:   kind,
		Target: target,
		Detail: fmt.Sprintf(format, args...),
		Err:    err,
	}
}

// Invalid builds an InputError outcome from a parse or argument error.
func Invalid(raw string, err error) Outcome {
	return Outcome{Kind: InputError, Target: raw, Detail: err.Error(), Err: err}
}

// Prober performs a single bounded network operation against a target and
// never returns an error: every failure is reported as an Outcome.
type Prober interface {
	Probe(ctx context.Context, t target.Spec) Outcome
}
