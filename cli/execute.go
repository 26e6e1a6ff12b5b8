package cli

// This file contains the shared helper for running external tools while
// mirroring their output to the console and capturing it for history
// recording.

import (
	"bytes"
	"io"
	"os"
	"os/exec"
)

// runExternal runs an external tool, streaming its output to the console
// while appending it to the captured stdout/stderr content. The raw error
// from exec is returned so callers can inspect exit codes.
func (a *App) runExternal(name string, args []string, stdout, stderr *string) error {
	cmd := exec.Command(name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(os.Stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderrBuf)

	err := cmd.Run()

	*stdout += stdoutBuf.String()
	*stderr += stderrBuf.String()

	return err
}
