package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig points the token store at a per-test directory and
// disables simulated latency.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "brocode.yaml")
	content := fmt.Sprintf("latency: 0s\ntoken_db: %q\nlog_level: error\n", filepath.Join(dir, "session.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginPersistsSession(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, cfgPath, "login", "hi@paujie.com", "--password", "password")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as Admin Bro <hi@paujie.com> (brocoder1)")

	// A separate invocation resumes the session from the token store.
	out, err = execute(t, cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "session: AUTHENTICATED")
	assert.Contains(t, out, "Admin Bro (brocoder1)")
}

func TestLoginByPhone(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, cfgPath, "login", "123-456-7890", "--password", "password")
	require.NoError(t, err)
	assert.Contains(t, out, "brocoder1")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, cfgPath, "login", "hi@paujie.com", "--password", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [AUTH_FAILED]")

	// The failed login must not leave a session behind.
	out, err = execute(t, cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "session: ANONYMOUS")
}

func TestLogoutClearsSession(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := execute(t, cfgPath, "login", "hi@paujie.com", "--password", "password")
	require.NoError(t, err)

	out, err := execute(t, cfgPath, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "logged out")

	out, err = execute(t, cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "session: ANONYMOUS")
}

func TestStatusRequiresNoSession(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "session: ANONYMOUS")
}

func TestRunRefusesWithoutSession(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := execute(t, cfgPath, "run")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "no active session")
}
