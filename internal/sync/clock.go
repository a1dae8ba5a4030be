package sync

import (
	"fmt"
	"os"
	"time"
)

// Sub-second precision is not reliable across the remote/local boundary, so
// instants are truncated to whole seconds on both sides before comparison.

// RemoteInstant parses an entry's remote timestamp into a UTC instant.
func RemoteInstant(e *Entry) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, e.ModifiedTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse remote timestamp %q: %w", e.ModifiedTime, err)
	}
	return t.UTC().Truncate(time.Second), nil
}

// LocalInstant reads a file's modification time as a UTC instant.
func LocalInstant(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime().UTC().Truncate(time.Second), nil
}

// IsNewer reports whether a is strictly after b. Ties count as "not newer",
// so equal timestamps are treated as in sync and trigger no transfer.
func IsNewer(a, b time.Time) bool {
	return a.After(b)
}

// RestoreModTime stamps path with the remote instant so the next run sees
// equal timestamps and skips the transfer.
func RestoreModTime(path string, t time.Time) error {
	return os.Chtimes(path, t, t)
}

// FormatInstant renders an instant in the wire format for upload metadata.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
