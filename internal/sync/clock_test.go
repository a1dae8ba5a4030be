package sync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNewerTieIsNotNewer(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	assert.False(t, IsNewer(now, now), "equal timestamps must never trigger transfer")
	assert.True(t, IsNewer(now.Add(time.Second), now))
	assert.False(t, IsNewer(now, now.Add(time.Second)))
}

func TestRemoteInstantTruncatesAndNormalizes(t *testing.T) {
	entry := &Entry{ModifiedTime: "2024-05-01T12:30:45.789+02:00"}
	got, err := RemoteInstant(entry)
	require.NoError(t, err)

	want := time.Date(2024, 5, 1, 10, 30, 45, 0, time.UTC)
	assert.True(t, got.Equal(want), "expected %v, got %v", want, got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestRemoteInstantRejectsGarbage(t *testing.T) {
	_, err := RemoteInstant(&Entry{ModifiedTime: "yesterday"})
	assert.Error(t, err)
}

func TestSubSecondDifferencesDoNotTriggerTransfer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	base := time.Date(2024, 5, 1, 10, 30, 45, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, base.Add(200*time.Millisecond), base.Add(200*time.Millisecond)))

	local, err := LocalInstant(path)
	require.NoError(t, err)

	remote, err := RemoteInstant(&Entry{ModifiedTime: "2024-05-01T10:30:45.700Z"})
	require.NoError(t, err)

	assert.False(t, IsNewer(remote, local))
	assert.False(t, IsNewer(local, remote))
}

func TestRestoreModTimeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	remote, err := RemoteInstant(&Entry{ModifiedTime: "2023-11-20T08:00:01Z"})
	require.NoError(t, err)
	require.NoError(t, RestoreModTime(path, remote))

	local, err := LocalInstant(path)
	require.NoError(t, err)
	assert.True(t, local.Equal(remote))
}

func TestFormatInstant(t *testing.T) {
	in := time.Date(2024, 5, 1, 10, 30, 45, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "2024-05-01T09:30:45Z", FormatInstant(in))
}
