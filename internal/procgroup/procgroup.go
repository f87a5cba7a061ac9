// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package procgroup starts child processes in their own process group so a
// cancelled run can stop the whole tree, not only the direct child.
package procgroup

import (
	"os/exec"
)

// Set configures the command to start in a new process group.
// Mandatory for Terminate to reach grandchildren.
func Set(cmd *exec.Cmd) {
	set(cmd)
}

// Terminate asks the command's process group to exit.
// It is safe to call on nil or not-yet-started commands (returns nil).
func Terminate(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return terminate(cmd)
}
