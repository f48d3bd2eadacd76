package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/cobra"
)

// isolate points the state directory at a temp dir and pins the terminal hint.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(homeEnv, dir)

	original := darkHint
	darkHint = func() bool { return false }
	t.Cleanup(func() { darkHint = original })

	return dir
}

func executeCommand(cmd *cobra.Command, stdin io.Reader, args ...string) (string, error) {
	cmd.SetArgs(args)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	err := cmd.Execute()
	return out.String(), err
}
