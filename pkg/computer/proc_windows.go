//go:build windows

package computer

import "os/exec"

// setProcessGroup is a no-op on Windows; Setpgid is not available.
func setProcessGroup(*exec.Cmd) {}

func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
