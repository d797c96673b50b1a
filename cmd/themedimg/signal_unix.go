//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals cancel a running command.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
