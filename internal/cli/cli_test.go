package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chgroeling/formatify/internal/testutil"
)

// execute runs the root command with args against an isolated config and
// returns what it wrote to stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	testutil.IsolateConfig(t)

	root := NewRootCommand(VersionInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-02", BuiltBy: "ci"})

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
