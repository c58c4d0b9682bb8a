package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/verifiedinput"
)

const signupYAML = `
server:
  key: test-key
log:
  level: warn
form:
  title: Signup
  description: Tell us a little about **yourself**.
  fields:
    - name: age
      label: Age
      type: number
      max: 100
      min_enabled: true
      min: 0
      enable_validation: true
      predicate: required
      error_message: Age is required
    - name: email
      label: Email
      enable_validation: true
      predicate: email
    - name: secret
      type: password
      show_password: true
`

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// run executes the CLI in-process and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

// loadApp loads data the way the root command does.
func loadApp(t *testing.T, data string) *app {
	t.Helper()
	root := newRootCmd()
	root.SetErr(io.Discard)

	a := &app{configPath: writeConfig(t, data)}
	a.preds = verifiedinput.NewPredicates()
	require.NoError(t, a.load(root))
	return a
}

func TestRootHelp(t *testing.T) {
	path := writeConfig(t, signupYAML)
	out, err := run(t, "--config", path)
	require.NoError(t, err)
	for _, name := range []string{"serve", "tui", "check", "describe"} {
		assert.Contains(t, out, name)
	}
}

func TestRootMissingConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "describe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestRootBadLogLevel(t *testing.T) {
	path := writeConfig(t, signupYAML)
	_, err := run(t, "--config", path, "--log-level", "loud", "describe", "--raw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestRootConfigFromEnv(t *testing.T) {
	t.Setenv("VERIFIEDINPUT_CONFIG", writeConfig(t, signupYAML))
	out, err := run(t, "describe", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "# Signup")
}
