//go:build !windows

package process

import (
	"errors"
	"syscall"
)

// killTree signals the whole process group (negative PID). The launcher
// starts the browser as a group leader.
func killTree(pid int) error {
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
