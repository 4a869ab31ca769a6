package executor

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/Cyclone1070/runbar/internal/config"
)

// Spec describes one command invocation.
type Spec struct {
	Argv []string
	Dir  string
	Env  []string // nil inherits the parent environment

	// OnOutput receives stdout and stderr text while the command runs.
	// It is called from the copying goroutines.
	OnOutput func(chunk string)
}

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
	Duration  time.Duration
}

// OSCommandExecutor implements command execution using os/exec for real system commands.
type OSCommandExecutor struct {
	config *config.Config
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg}
}

// Run executes spec with the configured command timeout.
func (f *OSCommandExecutor) Run(ctx context.Context, spec Spec) (*Result, error) {
	timeout := time.Duration(f.config.Workspace.CommandTimeoutSec) * time.Second
	return f.RunWithTimeout(ctx, spec, timeout)
}

// RunWithTimeout executes a command with a timeout and graceful shutdown.
// The command runs in its own process group, so stopping it also stops
// anything it spawned. Cancelling ctx kills the group immediately.
func (f *OSCommandExecutor) RunWithTimeout(ctx context.Context, spec Spec, timeout time.Duration) (*Result, error) {
	if len(spec.Argv) == 0 {
		return nil, ErrEmptyCommand
	}
	started := time.Now()
	grace := time.Duration(f.config.Workspace.GracefulStopMs) * time.Millisecond
	maxBytes := int(f.config.Workspace.MaxOutputBytes)

	// Not CommandContext: the timeout path interrupts before it kills.
	cmd := exec.Command(spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = nil
	stdout := newStream(maxBytes, spec.OnOutput)
	stderr := newStream(maxBytes, spec.OnOutput)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Descendants that outlive the leader must not hold Wait on the pipes.
	cmd.WaitDelay = grace
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: spec.Argv[0], Cause: err, Stage: "start"}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var execErr error
	select {
	case err := <-done:
		execErr = err
		if errors.Is(err, exec.ErrWaitDelay) {
			// The leader exited cleanly; only stragglers kept the pipes open.
			_ = killGroup(cmd)
			execErr = nil
		}
	case <-ctx.Done():
		_ = killGroup(cmd)
		<-done
		execErr = ctx.Err()
	case <-timer.C:
		_ = interruptGroup(cmd)
		select {
		case <-done:
		case <-time.After(grace):
			_ = killGroup(cmd)
			<-done
		}
		execErr = ErrTimeout
	}

	exitCode := 0
	if execErr != nil {
		exitCode = exitCodeOf(execErr)
		if errors.Is(execErr, ErrTimeout) {
			exitCode = -1
		}
	}

	return &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode,
		Truncated: stdout.Truncated() || stderr.Truncated(),
		Duration:  time.Since(started),
	}, execErr
}

func exitCodeOf(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
