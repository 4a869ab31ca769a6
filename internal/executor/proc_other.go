//go:build !unix

package executor

import (
	"os"
	"os/exec"
)

// Without process groups only the direct child is signalled. WaitDelay still
// bounds how long Wait blocks on inherited pipes.
func setProcessGroup(cmd *exec.Cmd) {}

func interruptGroup(cmd *exec.Cmd) error {
	return cmd.Process.Signal(os.Interrupt)
}

func killGroup(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}
