package sync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gdrive-tools/gsync/internal/drivesdk"
	"github.com/gdrive-tools/gsync/internal/utils"
)

// Push makes the remote folder reflect localDir's contents, recursively.
// Exported files round-trip back to the remote document they were exported
// from, reinstating the native format. Individual failures are logged and
// skipped.
func (e *Engine) Push(ctx context.Context, folder *Entry, localDir string) error {
	// Shortcuts are never write targets.
	if folder.Kind == KindReference {
		slog.Warn("skipping subtree, remote folder is a shortcut", "folder", folder.Name)
		e.stats.Skipped++
		return nil
	}

	if !utils.DirExists(localDir) {
		return fmt.Errorf("%w: %s", ErrLocalPathInvalid, localDir)
	}

	files, err := e.api.List(ctx, folder.ID)
	if err != nil {
		return fmt.Errorf("list remote folder %q: %w", folder.Name, err)
	}

	// Index remote children by name; first match wins for duplicates.
	byName := make(map[string]*Entry, len(files))
	for _, f := range files {
		entry := EntryFromFile(f)
		if _, ok := byName[entry.Name]; !ok {
			byName[entry.Name] = entry
		}
	}

	// Round-trip table for this folder only: local name -> exported record.
	roundTrip, err := e.store.ExportedIn(folder.ID)
	if err != nil {
		return err
	}

	ignore := NewIgnoreList(localDir)
	ignore.Load()

	dirEntries, err := os.ReadDir(localDir)
	if err != nil {
		return fmt.Errorf("read local directory %q: %w", localDir, err)
	}

	for _, de := range dirEntries {
		name := de.Name()
		if ignore.ShouldIgnore(name) {
			slog.Debug("ignored", "name", name)
			e.stats.Skipped++
			continue
		}

		path := filepath.Join(localDir, name)
		if de.IsDir() {
			if err := e.pushDir(ctx, folder, byName[name], name, path); err != nil {
				slog.Error("skipping directory", "name", name, "error", err)
				e.stats.Failed++
			}
			continue
		}

		if err := e.pushFile(ctx, folder, byName, roundTrip, name, path); err != nil {
			slog.Error("skipping file", "name", name, "error", err)
			e.stats.Failed++
		}
	}

	return nil
}

// pushDir recurses into an existing remote folder or creates it first.
func (e *Engine) pushDir(ctx context.Context, parent *Entry, remote *Entry, name string, path string) error {
	if remote == nil {
		localTime, err := LocalInstant(path)
		if err != nil {
			return err
		}

		created, err := e.api.CreateFolder(ctx, &drivesdk.FileMetadata{
			Name:         name,
			MimeType:     MimeFolder,
			Parents:      []string{parent.ID},
			ModifiedTime: FormatInstant(localTime),
		})
		if err != nil {
			return &TransferError{Op: "create folder", Name: name, Err: err}
		}

		slog.Info("created remote folder", "name", name)
		e.stats.Created++
		remote = EntryFromFile(created)
	}

	return e.Push(ctx, remote, path)
}

// pushFile uploads a new file or updates the remote entry it maps to. A
// round-trip record redirects the write to the original remote name and
// restores the native format.
func (e *Engine) pushFile(ctx context.Context, folder *Entry, byName map[string]*Entry, roundTrip map[string]*IdentityRecord, name string, path string) error {
	// The effective remote target: for a round-tripped export the local file
	// updates the document it was exported from, not a file of its own name.
	targetName := name
	nativeMime := ""
	if rec, ok := roundTrip[name]; ok {
		targetName = rec.RemoteName
		nativeMime = rec.RemoteMime
	}

	localTime, err := LocalInstant(path)
	if err != nil {
		return &TransferError{Op: "upload", Name: name, Err: err}
	}
	contentType := InferUploadMime(name)

	if remote, ok := byName[targetName]; ok {
		if remote.Kind == KindReference {
			slog.Warn("skipping file, remote entry is a shortcut", "name", targetName)
			e.stats.Skipped++
			return nil
		}

		remoteTime, err := RemoteInstant(remote)
		if err != nil {
			return &TransferError{Op: "update", Name: name, Err: err}
		}
		if !IsNewer(localTime, remoteTime) {
			slog.Debug("up to date", "name", name, "remote", targetName)
			e.stats.Skipped++
			return nil
		}

		meta := &drivesdk.FileMetadata{ModifiedTime: FormatInstant(localTime)}
		if nativeMime != "" {
			meta.MimeType = nativeMime
		}
		if _, err := e.api.Update(ctx, remote.ID, meta, path, contentType); err != nil {
			return &TransferError{Op: "update", Name: name, Err: err}
		}

		slog.Info("updated", "name", name, "remote", targetName, "size", localSize(path))
		e.stats.Updated++
		return nil
	}

	meta := &drivesdk.FileMetadata{
		Name:         targetName,
		Parents:      []string{folder.ID},
		ModifiedTime: FormatInstant(localTime),
	}
	if nativeMime != "" {
		meta.MimeType = nativeMime
	}
	if _, err := e.api.Upload(ctx, meta, path, contentType); err != nil {
		return &TransferError{Op: "upload", Name: name, Err: err}
	}

	slog.Info("uploaded", "name", name, "remote", targetName, "size", localSize(path))
	e.stats.Uploaded++
	return nil
}

func localSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	return humanize.Bytes(uint64(info.Size()))
}
