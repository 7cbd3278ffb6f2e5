package report

import (
	"fmt"
	"strings"

	"github.com/hamed0406/netprobe/internal/probe"
)

// Mode selects how outcomes map onto process exit codes.
type Mode string

const (
	// ModeBinary is the reference contract: 0 passed, 1 anything else.
	ModeBinary Mode = "binary"
	// ModeDetailed reserves one code per failure category so an orchestrator
	// can branch on it without reading diagnostics.
	ModeDetailed Mode = "detailed"
)

const (
	ExitOK         = 0
	ExitFailure    = 1 // binary failures and unexpected errors
	ExitInput      = 2
	ExitResolution = 3
	ExitConnection = 4
	ExitProtocol   = 5
	ExitTimeout    = 6
)

var detailedCodes = map[probe.Kind]int{
	probe.Success:           ExitOK,
	probe.InputError:        ExitInput,
	probe.ResolutionFailure: ExitResolution,
	probe.ConnectionFailure: ExitConnection,
	probe.ProtocolFailure:   ExitProtocol,
	probe.TimeoutFailure:    ExitTimeout,
	probe.UnexpectedError:   ExitFailure,
}

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeBinary, ModeDetailed:
		return m, nil
	case "":
		return ModeBinary, nil
	default:
		return "", fmt.Errorf("unknown exit code mode %q (want binary or detailed)", s)
	}
}

// ExitCode is a pure function of the outcome kind and the mode.
func ExitCode(o probe.Outcome, mode Mode) int {
	if o.OK() {
		return ExitOK
	}
	if mode != ModeDetailed {
		return ExitFailure
	}
	if code, ok := detailedCodes[o.Kind]; ok {
		return code
	}
	return ExitFailure
}
