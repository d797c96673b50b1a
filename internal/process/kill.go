package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for PIDs that do not name a child process.
var ErrInvalidPID = errors.New("invalid process id")

// KillTree kills pid and every process it spawned.
// Chrome forks renderer and GPU helpers that outlive their parent when only
// the parent is killed.
func KillTree(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killTree(pid)
}
