//go:build !unix

package transcode

import "os/exec"

// killProcessGroup keeps the default cancellation, which kills the process
func killProcessGroup(cmd *exec.Cmd) {}
