package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/gdrive-tools/gsync/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, drive *fakeDrive, alwaysPDF bool) *Engine {
	t.Helper()
	store := openTestStore(t)
	cfg := config.Default()
	cfg.AlwaysPDF = alwaysPDF
	return NewEngine(drive, store, cfg)
}

func TestResolveRemotePath(t *testing.T) {
	drive := newFakeDrive()
	drive.addFolder("f1", "root", "Docs")
	drive.addFolder("f2", "f1", "Archive")
	drive.addFile("x1", "f1", "decoy", "text/plain", "2024-01-01T00:00:00Z", []byte("not a folder"))

	engine := newTestEngine(t, drive, false)

	folder, err := engine.ResolveRemotePath(context.Background(), "/Docs/Archive")
	require.NoError(t, err)
	assert.Equal(t, "f2", folder.ID)
	assert.Equal(t, KindFolder, folder.Kind)

	// trailing and doubled slashes are tolerated
	folder, err = engine.ResolveRemotePath(context.Background(), "Docs//Archive/")
	require.NoError(t, err)
	assert.Equal(t, "f2", folder.ID)
}

func TestResolveRemotePathRoot(t *testing.T) {
	engine := newTestEngine(t, newFakeDrive(), false)

	folder, err := engine.ResolveRemotePath(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, "root", folder.ID)
}

func TestResolveRemotePathNotFound(t *testing.T) {
	drive := newFakeDrive()
	drive.addFolder("f1", "root", "Docs")

	engine := newTestEngine(t, drive, false)

	_, err := engine.ResolveRemotePath(context.Background(), "/Docs/Missing/Deeper")
	var notFound *PathNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Missing", notFound.Segment)
	assert.Equal(t, "/Docs", notFound.MatchedPrefix)
}

func TestResolveRemotePathFirstMatchWins(t *testing.T) {
	drive := newFakeDrive()
	drive.addFolder("f1", "root", "Docs")
	drive.addFolder("f2", "root", "Docs") // duplicate name
	drive.addFolder("inner", "f1", "Inner")

	engine := newTestEngine(t, drive, false)

	folder, err := engine.ResolveRemotePath(context.Background(), "/Docs")
	require.NoError(t, err)
	assert.Equal(t, "f1", folder.ID)

	// children of the first match are reachable
	folder, err = engine.ResolveRemotePath(context.Background(), "/Docs/Inner")
	require.NoError(t, err)
	assert.Equal(t, "inner", folder.ID)
}

func TestResolveReference(t *testing.T) {
	drive := newFakeDrive()
	drive.addFile("t1", "root", "Target", "text/plain", "2024-01-01T00:00:00Z", []byte("x"))
	drive.addShortcut("s1", "root", "Link", "t1")

	engine := newTestEngine(t, drive, false)

	ref := EntryFromFile(drive.files["s1"])
	resolved, err := engine.ResolveReference(context.Background(), ref, map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, "t1", resolved.ID)
	assert.Equal(t, KindFile, resolved.Kind)

	// resolving twice yields the same entry
	again, err := engine.ResolveReference(context.Background(), ref, map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, resolved, again)
}

func TestResolveReferenceMissingTarget(t *testing.T) {
	drive := newFakeDrive()
	drive.addShortcut("s1", "root", "Dangling", "gone")

	engine := newTestEngine(t, drive, false)

	ref := EntryFromFile(drive.files["s1"])
	_, err := engine.ResolveReference(context.Background(), ref, map[string]bool{})

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "gone", resErr.TargetID)
}

func TestResolveReferenceCycle(t *testing.T) {
	drive := newFakeDrive()
	drive.addShortcut("s1", "root", "Loop", "s1")

	engine := newTestEngine(t, drive, false)

	ref := EntryFromFile(drive.files["s1"])
	visited := map[string]bool{}

	// first hop resolves, second hits the visited set
	_, err := engine.ResolveReference(context.Background(), ref, visited)
	require.NoError(t, err)
	_, err = engine.ResolveReference(context.Background(), ref, visited)
	var resErr *ResolutionError
	assert.True(t, errors.As(err, &resErr))
}
