package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Cyclone1070/runbar/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor() *OSCommandExecutor {
	cfg := config.DefaultConfig()
	cfg.Workspace.GracefulStopMs = 100
	return NewOSCommandExecutor(cfg)
}

func TestRun(t *testing.T) {
	exec := newTestExecutor()

	t.Run("SimpleCommand", func(t *testing.T) {
		res, err := exec.Run(context.Background(), Spec{Argv: []string{"echo", "hello"}})
		require.NoError(t, err)
		assert.Equal(t, "hello", strings.TrimSpace(res.Stdout))
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		_, err := exec.Run(context.Background(), Spec{})
		assert.ErrorIs(t, err, ErrEmptyCommand)
	})

	t.Run("NonZeroExit", func(t *testing.T) {
		res, err := exec.Run(context.Background(), Spec{Argv: []string{"sh", "-c", "exit 3"}})
		assert.Error(t, err)
		require.NotNil(t, res)
		assert.Equal(t, 3, res.ExitCode)
	})

	t.Run("Stderr", func(t *testing.T) {
		res, err := exec.Run(context.Background(), Spec{Argv: []string{"sh", "-c", "echo error >&2"}})
		require.NoError(t, err)
		assert.Equal(t, "error", strings.TrimSpace(res.Stderr))
	})

	t.Run("DirAndEnv", func(t *testing.T) {
		dir := t.TempDir()
		spec := Spec{
			Argv: []string{"sh", "-c", "pwd; echo $RUNBAR_PROFILE"},
			Dir:  dir,
			Env:  append(os.Environ(), "RUNBAR_PROFILE=Debug"),
		}
		res, err := exec.Run(context.Background(), spec)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
		require.Len(t, lines, 2)
		resolved, _ := filepath.EvalSymlinks(dir)
		got, _ := filepath.EvalSymlinks(lines[0])
		assert.Equal(t, resolved, got)
		assert.Equal(t, "Debug", lines[1])
	})

	t.Run("MissingBinary", func(t *testing.T) {
		_, err := exec.Run(context.Background(), Spec{Argv: []string{"runbar-no-such-binary"}})
		var cmdErr *CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, "start", cmdErr.Stage)
	})

	t.Run("LargeOutput", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Workspace.MaxOutputBytes = 10
		exec := NewOSCommandExecutor(cfg)

		res, err := exec.Run(context.Background(), Spec{Argv: []string{"echo", "123456789012345"}})
		require.NoError(t, err)
		assert.True(t, res.Truncated)
		assert.LessOrEqual(t, len(res.Stdout), 10)
	})
}

func TestRunWithTimeout(t *testing.T) {
	exec := newTestExecutor()

	t.Run("CompletesBeforeTimeout", func(t *testing.T) {
		res, err := exec.RunWithTimeout(context.Background(), Spec{Argv: []string{"echo", "hi"}}, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "hi", strings.TrimSpace(res.Stdout))
	})

	t.Run("TimeoutStopsProcess", func(t *testing.T) {
		res, err := exec.RunWithTimeout(context.Background(), Spec{Argv: []string{"sleep", "10"}}, 100*time.Millisecond)
		assert.ErrorIs(t, err, ErrTimeout)
		require.NotNil(t, res)
		assert.Equal(t, -1, res.ExitCode)
		assert.Less(t, res.Duration, 5*time.Second)
	})

	t.Run("OutputCollectedOnTimeout", func(t *testing.T) {
		spec := Spec{Argv: []string{"sh", "-c", "echo starting; exec sleep 10"}}
		res, err := exec.RunWithTimeout(context.Background(), spec, 500*time.Millisecond)
		assert.ErrorIs(t, err, ErrTimeout)
		assert.Equal(t, "starting", strings.TrimSpace(res.Stdout))
	})

	t.Run("TimeoutStopsShellChildren", func(t *testing.T) {
		spec := Spec{Argv: []string{"sh", "-c", "sleep 5; echo done"}}
		res, err := exec.RunWithTimeout(context.Background(), spec, 100*time.Millisecond)
		assert.ErrorIs(t, err, ErrTimeout)
		require.NotNil(t, res)
		assert.Less(t, res.Duration, 2*time.Second)
	})

	t.Run("ContextCancelStopsShellChildren", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		spec := Spec{Argv: []string{"sh", "-c", "sleep 5; echo done"}}
		res, err := exec.RunWithTimeout(ctx, spec, time.Minute)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		require.NotNil(t, res)
		assert.Less(t, res.Duration, 2*time.Second)
	})

	t.Run("BackgroundChildDoesNotHoldResult", func(t *testing.T) {
		spec := Spec{Argv: []string{"sh", "-c", "sleep 5 & echo hi"}}
		res, err := exec.RunWithTimeout(context.Background(), spec, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		assert.Equal(t, "hi", strings.TrimSpace(res.Stdout))
		assert.Less(t, res.Duration, 2*time.Second)
	})

	t.Run("ContextCancelKills", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		res, err := exec.RunWithTimeout(ctx, Spec{Argv: []string{"sleep", "10"}}, time.Minute)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, res.Duration, 5*time.Second)
	})
}

func TestRun_StreamsOutput(t *testing.T) {
	exec := newTestExecutor()

	var mu sync.Mutex
	var chunks []string
	spec := Spec{
		Argv: []string{"sh", "-c", "echo one; echo two >&2"},
		OnOutput: func(chunk string) {
			mu.Lock()
			chunks = append(chunks, chunk)
			mu.Unlock()
		},
	}

	res, err := exec.Run(context.Background(), spec)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	joined := strings.Join(chunks, "")
	assert.Contains(t, joined, "one\n")
	assert.Contains(t, joined, "two\n")
	assert.Equal(t, "one\n", res.Stdout)
	assert.Equal(t, "two\n", res.Stderr)
}

func TestStream(t *testing.T) {
	t.Run("UnderLimit", func(t *testing.T) {
		s := newStream(10, nil)
		n, err := s.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, "abc", s.String())
		assert.False(t, s.Truncated())
	})

	t.Run("OverLimitForwardsOnlyKeptText", func(t *testing.T) {
		var got []string
		s := newStream(5, func(c string) { got = append(got, c) })
		n, _ := s.Write([]byte("abcdef"))
		_, _ = s.Write([]byte("ghi"))
		assert.Equal(t, 6, n, "writes always report full length")
		assert.Equal(t, "abcde", s.String())
		assert.True(t, s.Truncated())
		assert.Equal(t, []string{"abcde"}, got)
	})

	t.Run("BinaryDetection", func(t *testing.T) {
		s := newStream(10, nil)
		_, _ = s.Write([]byte("ok"))
		_, _ = s.Write([]byte{'a', 0, 'b'})
		_, _ = s.Write([]byte("more"))
		assert.Equal(t, binaryPlaceholder, s.String())
		assert.True(t, s.Truncated())
	})

	t.Run("NULAfterSampleIsKept", func(t *testing.T) {
		s := newStream(binarySampleSize+10, nil)
		_, _ = s.Write([]byte(strings.Repeat("a", binarySampleSize)))
		_, _ = s.Write([]byte{0})
		assert.Len(t, s.String(), binarySampleSize+1)
	})

	t.Run("UnicodeBOMIsText", func(t *testing.T) {
		s := newStream(10, nil)
		_, _ = s.Write([]byte{0xFF, 0xFE, 'a', 0})
		_, _ = s.Write([]byte{'b', 0})
		assert.Equal(t, string([]byte{0xFF, 0xFE, 'a', 0, 'b', 0}), s.String())
		assert.False(t, s.Truncated())
	})
}
