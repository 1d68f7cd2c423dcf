package gitupdate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fbtool/launcher/internal/execx"
	"github.com/fbtool/launcher/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChecker(t *testing.T, runner *testutils.MockRunner, withGit bool) (*Checker, *bytes.Buffer) {
	t.Helper()
	var opts []testutils.WorkspaceOption
	if withGit {
		opts = append(opts, testutils.WithGitDir())
	}
	ws := testutils.SetupWorkspace(t, opts...)
	out := &bytes.Buffer{}
	return &Checker{Runner: runner, Git: "git", Dir: ws.Dir, Out: out}, out
}

func TestCheckWithoutGitDirSkipsSubprocesses(t *testing.T) {
	runner := testutils.NewMockRunner()
	c, out := newChecker(t, runner, false)

	assert.True(t, c.Check(context.Background()))
	assert.Empty(t, runner.Calls)
	assert.Contains(t, out.String(), "Not a git repository")
}

func TestCheckGitNotInstalled(t *testing.T) {
	runner := testutils.NewMockRunner().
		On("git --version", execx.Result{ExitCode: -1}, fmt.Errorf("git: %w", execx.ErrNotFound))
	c, out := newChecker(t, runner, true)

	assert.True(t, c.Check(context.Background()))
	assert.Equal(t, []string{"git --version"}, runner.CallStrings())
	assert.Contains(t, out.String(), "Git not installed")
}

func TestCheckGitVersionFailureIsReported(t *testing.T) {
	runner := testutils.NewMockRunner().
		On("git --version", execx.Result{ExitCode: 1, Stderr: "broken install"}, nil)
	c, out := newChecker(t, runner, true)

	assert.True(t, c.Check(context.Background()))
	assert.Equal(t, []string{"git --version"}, runner.CallStrings())
	assert.Contains(t, out.String(), "Error checking updates")
}

func TestCheckCancelledDuringFetchIsQuiet(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := testutils.NewMockRunner()
	runner.RunFunc = func(ctx context.Context, cmd execx.Command) (execx.Result, error) {
		if cmd.String() == "git fetch" {
			cancel()
			return execx.Result{ExitCode: -1}, ctx.Err()
		}
		return execx.Result{}, nil
	}
	c, out := newChecker(t, runner, true)

	assert.True(t, c.Check(ctx))
	assert.NotContains(t, out.String(), "Error checking updates")
	assert.False(t, runner.Called("git status -uno"))
}

func TestCheckFetchFailureIsNonFatal(t *testing.T) {
	runner := testutils.NewMockRunner().
		On("git fetch", execx.Result{ExitCode: 128, Stderr: "fatal: no remote"}, nil)
	c, out := newChecker(t, runner, true)

	assert.True(t, c.Check(context.Background()))
	assert.Equal(t, []string{"git --version", "git fetch"}, runner.CallStrings())
	assert.Contains(t, out.String(), "Failed to fetch updates")
}

func TestCheckAlreadyUpToDate(t *testing.T) {
	runner := testutils.NewMockRunner().
		On("git status -uno", execx.Result{Stdout: "On branch main\nYour branch is up to date with 'origin/main'.\n"}, nil)
	c, out := newChecker(t, runner, true)

	assert.True(t, c.Check(context.Background()))
	assert.False(t, runner.Called("git pull"))
	assert.Contains(t, out.String(), "Already up to date")
}

func TestCheckBehindPullsSuccessfully(t *testing.T) {
	runner := testutils.NewMockRunner().
		On("git status -uno", execx.Result{Stdout: "Your branch is behind 'origin/main' by 2 commits"}, nil).
		On("git pull", execx.Result{Stdout: "Fast-forward"}, nil)
	c, out := newChecker(t, runner, true)

	assert.True(t, c.Check(context.Background()))
	assert.Equal(t, []string{"git --version", "git fetch", "git status -uno", "git pull"}, runner.CallStrings())
	assert.Contains(t, out.String(), "Successfully updated")
}

func TestCheckBehindPullFails(t *testing.T) {
	runner := testutils.NewMockRunner().
		On("git status -uno", execx.Result{Stdout: "Your branch is behind 'origin/main' by 1 commit"}, nil).
		On("git pull", execx.Result{ExitCode: 1, Stderr: "error: local changes would be overwritten\n"}, nil)
	c, out := newChecker(t, runner, true)

	assert.False(t, c.Check(context.Background()))
	assert.Contains(t, out.String(), "Failed to update: error: local changes would be overwritten")
}

func TestCheckUnexpectedErrorIsNonFatal(t *testing.T) {
	runner := testutils.NewMockRunner().
		On("git status -uno", execx.Result{ExitCode: -1}, errors.New("boom"))
	c, out := newChecker(t, runner, true)

	assert.True(t, c.Check(context.Background()))
	assert.Contains(t, out.String(), "Error checking updates: boom")
}

func TestCheckRunsGitInDirWithStableLocale(t *testing.T) {
	runner := testutils.NewMockRunner()
	c, _ := newChecker(t, runner, true)

	require.True(t, c.Check(context.Background()))
	require.NotEmpty(t, runner.Calls)
	for _, call := range runner.Calls {
		assert.Equal(t, c.Dir, call.Dir)
		assert.Contains(t, call.Env, "LC_ALL=C")
	}
}

func TestCheckUsesBusyWrapper(t *testing.T) {
	runner := testutils.NewMockRunner().
		On("git status -uno", execx.Result{Stdout: "Your branch is behind"}, nil)
	c, _ := newChecker(t, runner, true)

	var texts []string
	c.Busy = func(text string, fn func()) {
		texts = append(texts, text)
		fn()
	}

	assert.True(t, c.Check(context.Background()))
	assert.Equal(t, []string{"Fetching updates...", "Pulling latest changes..."}, texts)
}
