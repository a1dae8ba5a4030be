package sync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gdrive-tools/gsync/internal/utils"
)

// Fetch makes localDir reflect the remote folder's contents, recursively.
// Individual transfer failures are logged and skipped; one bad entry never
// blocks its siblings.
func (e *Engine) Fetch(ctx context.Context, folder *Entry, localDir string) error {
	files, err := e.api.List(ctx, folder.ID)
	if err != nil {
		return fmt.Errorf("list remote folder %q: %w", folder.Name, err)
	}

	if len(files) == 0 {
		slog.Info("remote folder is empty", "folder", folder.Name)
		return nil
	}

	if err := utils.EnsureDir(localDir); err != nil {
		return fmt.Errorf("create local directory %q: %w", localDir, err)
	}

	entries := make([]*Entry, 0, len(files))
	for _, f := range files {
		entries = append(entries, EntryFromFile(f))
	}

	// Resolved shortcut targets are appended and processed in the child's
	// place, so iterate by index over the growing slice.
	visited := make(map[string]bool)
	for i := 0; i < len(entries); i++ {
		entry := entries[i]

		switch entry.Kind {
		case KindReference:
			resolved, err := e.ResolveReference(ctx, entry, visited)
			if err != nil {
				slog.Error("skipping reference", "name", entry.Name, "error", err)
				e.stats.Failed++
				continue
			}
			entries = append(entries, resolved)

		case KindFolder:
			subDir := filepath.Join(localDir, entry.Name)
			if err := e.Fetch(ctx, entry, subDir); err != nil {
				slog.Error("skipping folder", "name", entry.Name, "error", err)
				e.stats.Failed++
			}

		default:
			if err := e.fetchFile(ctx, folder, entry, localDir); err != nil {
				slog.Error("skipping file", "name", entry.Name, "error", err)
				e.stats.Failed++
			}
		}
	}

	return nil
}

// fetchFile downloads or exports one entry into localDir, then records its
// identity and restores the remote modification time.
func (e *Engine) fetchFile(ctx context.Context, parent *Entry, entry *Entry, localDir string) error {
	shouldExport, rule := ExportPolicy(entry.MimeType, e.cfg.AlwaysPDF)

	destName := entry.Name
	if shouldExport {
		destName = entry.Name + "." + rule.Ext
	}
	dst := filepath.Join(localDir, destName)

	remoteTime, err := RemoteInstant(entry)
	if err != nil {
		return &TransferError{Op: "download", Name: entry.Name, Err: err}
	}

	if utils.FileExists(dst) {
		localTime, err := LocalInstant(dst)
		if err != nil {
			return &TransferError{Op: "download", Name: entry.Name, Err: err}
		}
		if !IsNewer(remoteTime, localTime) {
			slog.Debug("up to date", "name", entry.Name, "dest", dst)
			e.stats.Skipped++
			return nil
		}
	}

	// Stream to a partial file first so a failed transfer never leaves a
	// truncated destination behind.
	part := dst + ".part"
	if shouldExport {
		err = e.api.Export(ctx, entry.ID, rule.MimeType, part)
	} else {
		err = e.api.Download(ctx, entry.ID, part)
	}
	if err != nil {
		os.Remove(part)
		return &TransferError{Op: "download", Name: entry.Name, Err: err}
	}

	if err := os.Rename(part, dst); err != nil {
		os.Remove(part)
		return &TransferError{Op: "download", Name: entry.Name, Err: err}
	}

	if err := e.store.Put(&IdentityRecord{
		RemoteID:   entry.ID,
		ParentID:   parent.ID,
		RemoteName: entry.Name,
		RemoteMime: entry.MimeType,
		LocalName:  destName,
		Exported:   shouldExport,
	}); err != nil {
		return err
	}

	if err := RestoreModTime(dst, remoteTime); err != nil {
		slog.Warn("failed to restore modification time", "dest", dst, "error", err)
	}

	size := int64(0)
	if info, err := os.Stat(dst); err == nil {
		size = info.Size()
	}
	slog.Info("downloaded", "name", entry.Name, "dest", dst, "size", humanize.Bytes(uint64(size)))
	e.stats.Downloaded++
	return nil
}
