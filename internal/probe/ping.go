package probe

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/hamed0406/netprobe/internal/target"
)

// Pinger sends one echo request to host through the platform ping utility.
// timeout supervises the whole child process, independent of the wait flag
// passed to ping itself.
type Pinger interface {
	Ping(ctx context.Context, host string, timeout time.Duration) Outcome
}

// CommandFunc builds the child process. Tests swap it for a fake.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// waitDelay bounds how long Wait lingers on the child's pipes after it was
// killed, so the child is always reaped.
const waitDelay = time.Second

type runner struct {
	Binary  string
	Wait    time.Duration
	Command CommandFunc
}

func (r runner) run(ctx context.Context, host string, args []string, timeout time.Duration) Outcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	command := r.Command
	if command == nil {
		command = exec.CommandContext
	}
	binary := r.Binary
	if binary == "" {
		binary = "ping"
	}

	var out bytes.Buffer
	cmd := command(ctx, binary, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err == nil {
		return Succeeded(host, elapsed)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Failed(TimeoutFailure, host, err, "ping to %s timed out after %s", host, timeout).after(elapsed)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		o := Failed(ProtocolFailure, host, err, "ping to %s failed (exit status %d)", host, exitErr.ExitCode())
		if line := lastLine(out.Bytes()); line != "" {
			o.Detail += ": " + line
		}
		o.StatusCode = exitErr.ExitCode()
		return o.after(elapsed)
	}
	return Failed(UnexpectedError, host, err, "could not run %s: %v", binary, err).after(elapsed)
}

func lastLine(b []byte) string {
	var last string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			last = line
		}
	}
	return last
}

// POSIXPinger speaks the iputils/BSD dialect: ping -c 1 -W <wait> host.
// WaitMillis selects BSD semantics, where -W is given in milliseconds.
type POSIXPinger struct {
	runner
	WaitMillis bool
}

func (p *POSIXPinger) Args(host string) []string {
	wait := strconv.FormatInt(int64(wholeSeconds(p.Wait)), 10)
	if p.WaitMillis {
		wait = strconv.FormatInt(p.Wait.Milliseconds(), 10)
	}
	return []string{"-c", "1", "-W", wait, host}
}

func (p *POSIXPinger) Ping(ctx context.Context, host string, timeout time.Duration) Outcome {
	return p.run(ctx, host, p.Args(host), timeout)
}

// WindowsPinger speaks ping.exe: ping -n 1 -w <ms> host.
type WindowsPinger struct {
	runner
}

func (p *WindowsPinger) Args(host string) []string {
	return []string{"-n", "1", "-w", strconv.FormatInt(p.Wait.Milliseconds(), 10), host}
}

func (p *WindowsPinger) Ping(ctx context.Context, host string, timeout time.Duration) Outcome {
	return p.run(ctx, host, p.Args(host), timeout)
}

func wholeSeconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		return 1
	}
	return s
}

// NewPinger picks the ping dialect for goos (a runtime.GOOS value).
func NewPinger(goos, binary string, wait time.Duration) Pinger {
	r := runner{Binary: binary, Wait: wait}
	switch goos {
	case "windows":
		return &WindowsPinger{runner: r}
	case "darwin", "freebsd", "dragonfly":
		return &POSIXPinger{runner: r, WaitMillis: true}
	default:
		return &POSIXPinger{runner: r}
	}
}

// ICMPProber adapts a Pinger to the Prober contract.
type ICMPProber struct {
	Pinger  Pinger
	Timeout time.Duration
}

func NewICMPProber(pinger Pinger, timeout time.Duration) *ICMPProber {
	return &ICMPProber{Pinger: pinger, Timeout: timeout}
}

func (p *ICMPProber) Probe(ctx context.Context, t target.Spec) Outcome {
	return p.Pinger.Ping(ctx, t.Host, p.Timeout)
}
