package execx

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX shell")
	}
}

func TestRunCapturesOutputAndExitCode(t *testing.T) {
	skipOnWindows(t)

	res, err := NewRunner().Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err 1>&2; exit 3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.Success())
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestRunPassesEnvAndDir(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	res, err := NewRunner().Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo $FBTOOL_TEST_VAR; pwd"},
		Dir:  dir,
		Env:  []string{"FBTOOL_TEST_VAR=hello"},
	})
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Contains(t, res.Stdout, "hello")
	assert.Contains(t, res.Stdout, dir)
}

func TestRunMissingExecutable(t *testing.T) {
	_, err := NewRunner().Run(context.Background(), Command{Name: "fbtool-definitely-not-installed"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRunTimeout(t *testing.T) {
	skipOnWindows(t)

	res, err := NewRunner().Run(context.Background(), Command{
		Name:    "sh",
		Args:    []string{"-c", "exec sleep 5"},
		Timeout: 50 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Equal(t, -1, res.ExitCode)
}

func TestRunCancelledContext(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "git", Args: []string{"status", "-uno"}}
	assert.Equal(t, "git status -uno", c.String())
	assert.Equal(t, "git", Command{Name: "git"}.String())
}
