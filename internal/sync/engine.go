package sync

import (
	"context"

	"github.com/gdrive-tools/gsync/internal/config"
	"github.com/gdrive-tools/gsync/internal/drivesdk"
)

// Transport is the remote capability surface the engines consume. The Drive
// SDK's FilesAPI implements it; tests substitute an in-memory fake.
type Transport interface {
	List(ctx context.Context, parentID string) ([]*drivesdk.File, error)
	Get(ctx context.Context, id string) (*drivesdk.File, error)
	Download(ctx context.Context, id string, destPath string) error
	Export(ctx context.Context, id string, mimeType string, destPath string) error
	CreateFolder(ctx context.Context, meta *drivesdk.FileMetadata) (*drivesdk.File, error)
	Upload(ctx context.Context, meta *drivesdk.FileMetadata, contentPath string, contentType string) (*drivesdk.File, error)
	Update(ctx context.Context, id string, meta *drivesdk.FileMetadata, contentPath string, contentType string) (*drivesdk.File, error)
}

// Stats counts what a run did. One Engine is used for one run.
type Stats struct {
	Downloaded int
	Uploaded   int
	Updated    int
	Created    int
	Skipped    int
	Failed     int
}

// Engine drives fetch and push over a single Transport and IdentityStore.
// Traversal is single-threaded and depth-first; there is no internal
// locking.
type Engine struct {
	api   Transport
	store *IdentityStore
	cfg   *config.Config
	stats Stats
}

func NewEngine(api Transport, store *IdentityStore, cfg *config.Config) *Engine {
	return &Engine{
		api:   api,
		store: store,
		cfg:   cfg,
	}
}

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() Stats {
	return e.stats
}
