package sync

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdrive-tools/gsync/internal/db"
	"github.com/jmoiron/sqlx"
)

const identitySchema = `
CREATE TABLE IF NOT EXISTS identity (
    remote_id   TEXT PRIMARY KEY,
    parent_id   TEXT NOT NULL,
    remote_name TEXT NOT NULL,
    remote_mime TEXT NOT NULL,
    local_name  TEXT NOT NULL,
    exported    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_identity_parent ON identity(parent_id);
`

// IdentityRecord maps a fetched local file back to the remote entry it came
// from. Exported marks files produced by a lossy format export; those are
// the round-trip candidates on push.
type IdentityRecord struct {
	RemoteID   string `db:"remote_id"`
	ParentID   string `db:"parent_id"`
	RemoteName string `db:"remote_name"`
	RemoteMime string `db:"remote_mime"`
	LocalName  string `db:"local_name"`
	Exported   bool   `db:"exported"`
}

// IdentityStore persists identity records in SQLite. It owns the relation
// exclusively; the engines only read and insert through it.
type IdentityStore struct {
	db     *sqlx.DB
	dbPath string
}

// NewIdentityStore creates a store backed by the database file at dbPath.
// Use ":memory:" for tests.
func NewIdentityStore(dbPath string) *IdentityStore {
	return &IdentityStore{dbPath: dbPath}
}

func (s *IdentityStore) Open() error {
	if s.db != nil {
		return fmt.Errorf("identity store already open")
	}

	conn, err := db.NewSqliteDb(db.WithPath(s.dbPath))
	if err != nil {
		return fmt.Errorf("open identity store: %w", err)
	}

	if _, err := conn.Exec(identitySchema); err != nil {
		conn.Close()
		return fmt.Errorf("initialize identity schema: %w", err)
	}

	s.db = conn
	return nil
}

func (s *IdentityStore) Close() error {
	if s.db == nil {
		return fmt.Errorf("identity store not open")
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	s.db = nil
	return nil
}

// Put inserts or replaces the record for its remote id. Re-fetching the same
// remote file overwrites its previous record.
func (s *IdentityStore) Put(rec *IdentityRecord) error {
	if rec == nil {
		return fmt.Errorf("cannot put nil record")
	}

	query := `INSERT OR REPLACE INTO identity (remote_id, parent_id, remote_name, remote_mime, local_name, exported)
	          VALUES (:remote_id, :parent_id, :remote_name, :remote_mime, :local_name, :exported)`
	if _, err := s.db.NamedExec(query, rec); err != nil {
		return fmt.Errorf("put identity record %s: %w", rec.RemoteID, err)
	}

	slog.Debug("identity put", "remote_id", rec.RemoteID, "local", rec.LocalName, "exported", rec.Exported)
	return nil
}

// Get returns the record for a remote id, or nil when none exists.
func (s *IdentityStore) Get(remoteID string) (*IdentityRecord, error) {
	var rec IdentityRecord
	err := s.db.Get(&rec, "SELECT * FROM identity WHERE remote_id = ?", remoteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity record %s: %w", remoteID, err)
	}
	return &rec, nil
}

// ExportedIn returns the round-trip lookup table for one parent folder: all
// exported records keyed by local file name.
func (s *IdentityStore) ExportedIn(parentID string) (map[string]*IdentityRecord, error) {
	var recs []*IdentityRecord
	err := s.db.Select(&recs, "SELECT * FROM identity WHERE parent_id = ? AND exported = 1", parentID)
	if err != nil {
		return nil, fmt.Errorf("query exported records for %s: %w", parentID, err)
	}

	table := make(map[string]*IdentityRecord, len(recs))
	for _, rec := range recs {
		table[rec.LocalName] = rec
	}
	return table, nil
}

// Count returns the number of persisted records.
func (s *IdentityStore) Count() (int, error) {
	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM identity"); err != nil {
		return 0, fmt.Errorf("count identity records: %w", err)
	}
	return count, nil
}
