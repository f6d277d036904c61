// Package dispatch runs the resolved ic-wasm binary as a child process and
// reports its exit status.
//
// The child inherits the launcher's standard streams and environment and
// receives the launcher's arguments verbatim, without a shell. While the child
// runs, the launcher relays interrupt, termination and hangup signals to it
// instead of dying, so it always outlives the child and can report the real
// exit status.
package dispatch

import (
	"context"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"

	"github.com/icp-sdk/ic-wasm-launcher/internal/config"
)

// ExitLaunchFailure is the exit code used when the binary could not be
// resolved or started. It matches the shell's "command not found or not
// executable" convention.
const ExitLaunchFailure = 127

// signalExitBase is added to the signal number of a child killed by a signal.
const signalExitBase = 128

// ErrSpawnFailure is returned when the child process could not be started.
var ErrSpawnFailure = errors.New("failed to start ic-wasm")

// handledSignals are intercepted while the child runs.
var handledSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

// Dispatcher starts the wrapped binary and waits for it.
type Dispatcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is the child environment. Nil inherits the launcher's.
	Env []string

	Logger config.Logger

	notify func(c chan<- os.Signal, sig ...os.Signal)
	stop   func(c chan<- os.Signal)
}

// New creates a Dispatcher wired to the process's own standard streams.
func New(logger config.Logger) *Dispatcher {
	return &Dispatcher{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Dispatch runs binaryPath with args and returns the code the launcher should
// exit with: the child's exit code, 128+N when the child was killed by signal
// N, or ExitLaunchFailure together with an error marked ErrSpawnFailure when
// the child could not be started.
func (d *Dispatcher) Dispatch(ctx context.Context, binaryPath string, args []string) (int, error) {
	logger := d.Logger
	if logger == nil {
		logger = config.NopLogger()
	}

	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Stdin = d.Stdin
	cmd.Stdout = d.Stdout
	cmd.Stderr = d.Stderr
	cmd.Env = d.Env

	// Register before Start so an early interrupt cannot kill the launcher
	// and orphan the child.
	sigs := make(chan os.Signal, 1)
	d.notifyFunc()(sigs, handledSignals...)
	defer d.stopFunc()(sigs)

	if err := cmd.Start(); err != nil {
		return ExitLaunchFailure, errors.Mark(errors.Wrap(err, "error executing ic-wasm"), ErrSpawnFailure)
	}
	logger.Debug("started ic-wasm", "path", binaryPath, "pid", cmd.Process.Pid, "args", len(args))

	done := make(chan struct{})
	go relaySignals(cmd.Process, sigs, done, logger)

	waitErr := cmd.Wait()
	close(done)

	if cmd.ProcessState == nil {
		return ExitLaunchFailure, errors.Mark(errors.Wrap(waitErr, "error executing ic-wasm"), ErrSpawnFailure)
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		// The child ran, but copying one of the streams failed.
		logger.Debug("child stream error", "error", waitErr)
	}

	code := exitCode(cmd.ProcessState)
	logger.Debug("ic-wasm exited", "code", code)
	return code, nil
}

func (d *Dispatcher) notifyFunc() func(c chan<- os.Signal, sig ...os.Signal) {
	if d.notify != nil {
		return d.notify
	}
	return signal.Notify
}

func (d *Dispatcher) stopFunc() func(c chan<- os.Signal) {
	if d.stop != nil {
		return d.stop
	}
	return signal.Stop
}

// relaySignals forwards handled signals to the child until done closes. A
// terminal interrupt may reach the child twice.
func relaySignals(p *os.Process, sigs <-chan os.Signal, done <-chan struct{}, logger config.Logger) {
	for {
		select {
		case <-done:
			return
		case sig := <-sigs:
			logger.Debug("relaying signal", "signal", sig.String())
			if err := p.Signal(sig); err != nil {
				logger.Debug("relay signal failed", "signal", sig.String(), "error", err)
			}
		}
	}
}

// exitCode maps a finished process to the launcher's exit code.
func exitCode(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return signalExitBase + int(ws.Signal())
	}
	return state.ExitCode()
}
