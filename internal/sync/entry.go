// Package sync implements the reconciliation engine: resolving a remote
// path, fetching a Drive folder into a local directory, and pushing local
// changes back while preserving native document formats across export round
// trips.
package sync

import "github.com/gdrive-tools/gsync/internal/drivesdk"

// Kind partitions remote entries into the four shapes the engines act on.
type Kind int

const (
	// KindFolder is a Drive folder.
	KindFolder Kind = iota
	// KindNativeDoc is a Workspace document that must be exported to be
	// usable locally (Docs, Sheets, Slides).
	KindNativeDoc
	// KindReference is a shortcut aliasing another entry by id. It must be
	// resolved before being acted upon.
	KindReference
	// KindFile is any other file with raw downloadable content.
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindNativeDoc:
		return "native-document"
	case KindReference:
		return "reference"
	default:
		return "file"
	}
}

// Entry is a node in the remote hierarchy. ID is opaque and stable.
// TargetID is set only for KindReference; MimeType is meaningful only for
// KindNativeDoc and KindFile.
type Entry struct {
	ID           string
	Name         string
	Kind         Kind
	MimeType     string
	ModifiedTime string
	TargetID     string
}

// EntryFromFile classifies a wire resource into the closed entry variant.
func EntryFromFile(f *drivesdk.File) *Entry {
	e := &Entry{
		ID:           f.ID,
		Name:         f.Name,
		MimeType:     f.MimeType,
		ModifiedTime: f.ModifiedTime,
	}

	switch {
	case f.MimeType == MimeFolder:
		e.Kind = KindFolder
	case f.MimeType == MimeShortcut:
		e.Kind = KindReference
		if f.ShortcutDetails != nil {
			e.TargetID = f.ShortcutDetails.TargetID
		}
	case IsNativeDoc(f.MimeType):
		e.Kind = KindNativeDoc
	default:
		e.Kind = KindFile
	}

	return e
}
