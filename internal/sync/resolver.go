package sync

import (
	"context"
	"fmt"
	"strings"
)

// driveRootID is the alias Drive accepts for the store's root folder.
const driveRootID = "root"

// ResolveRemotePath walks a slash-separated path from the Drive root, one
// segment at a time, and returns the folder entry it ends at. Duplicate
// folder names are not disambiguated: the first match wins.
func (e *Engine) ResolveRemotePath(ctx context.Context, remotePath string) (*Entry, error) {
	current := &Entry{ID: driveRootID, Name: "/", Kind: KindFolder}

	var matched []string
	for _, segment := range strings.Split(strings.Trim(remotePath, "/"), "/") {
		if segment == "" {
			continue
		}

		files, err := e.api.List(ctx, current.ID)
		if err != nil {
			return nil, fmt.Errorf("list folder %q: %w", current.Name, err)
		}

		var next *Entry
		for _, f := range files {
			if f.MimeType == MimeFolder && f.Name == segment {
				next = EntryFromFile(f)
				break
			}
		}
		if next == nil {
			return nil, &PathNotFoundError{
				Segment:       segment,
				MatchedPrefix: "/" + strings.Join(matched, "/"),
			}
		}

		current = next
		matched = append(matched, segment)
	}

	return current, nil
}

// ResolveReference fetches the entry a reference points at. visited guards
// against shortcut cycles within one listing walk.
func (e *Engine) ResolveReference(ctx context.Context, ref *Entry, visited map[string]bool) (*Entry, error) {
	if ref.TargetID == "" {
		return nil, &ResolutionError{Name: ref.Name, TargetID: "", Err: fmt.Errorf("reference carries no target id")}
	}
	if visited[ref.TargetID] {
		return nil, &ResolutionError{Name: ref.Name, TargetID: ref.TargetID, Err: fmt.Errorf("reference cycle detected")}
	}
	visited[ref.TargetID] = true

	target, err := e.api.Get(ctx, ref.TargetID)
	if err != nil {
		return nil, &ResolutionError{Name: ref.Name, TargetID: ref.TargetID, Err: err}
	}

	return EntryFromFile(target), nil
}
