package requirements

import (
	"path/filepath"
	"testing"

	"github.com/fbtool/launcher/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyMixedPresence(t *testing.T) {
	ws := testutils.SetupWorkspace(t, testutils.WithArtifact())

	r := Verify(ws.Dir, []string{"main.so", "extra.bin"}, "checker.txt")

	assert.False(t, r.OK)
	require.Len(t, r.Files, 2)
	assert.Equal(t, FileStatus{Name: "main.so", Found: true}, r.Files[0])
	assert.Equal(t, FileStatus{Name: "extra.bin", Found: false}, r.Files[1])
	assert.Equal(t, []string{"extra.bin"}, r.Missing())
}

func TestVerifyAllPresentIgnoresMarker(t *testing.T) {
	ws := testutils.SetupWorkspace(t, testutils.WithArtifact())

	r := Verify(ws.Dir, []string{"main.so"}, "checker.txt")
	assert.True(t, r.OK)
	assert.False(t, r.MarkerPresent)

	testutils.WriteFile(t, ws.Marker, "x")
	r = Verify(ws.Dir, []string{"main.so"}, "checker.txt")
	assert.True(t, r.OK)
	assert.True(t, r.MarkerPresent)
}

func TestVerifyMissingArtifact(t *testing.T) {
	ws := testutils.SetupWorkspace(t, testutils.WithMarker())

	r := Verify(ws.Dir, []string{"main.so"}, "checker.txt")
	assert.False(t, r.OK)
	assert.True(t, r.MarkerPresent)
	assert.Equal(t, []string{"main.so"}, r.Missing())
}

func TestVerifyRelativeToDir(t *testing.T) {
	ws := testutils.SetupWorkspace(t)
	testutils.WriteFile(t, filepath.Join(ws.Dir, "tool.so"), "x")

	assert.True(t, Verify(ws.Dir, []string{"tool.so"}, "").OK)
	assert.False(t, Verify(t.TempDir(), []string{"tool.so"}, "").OK)
}
