package testsupport

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"romdat/internal/journal"
)

// MustOpenJournal opens a journal in a temp directory and registers cleanup.
func MustOpenJournal(t testing.TB) *journal.Store {
	t.Helper()

	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SetJournalVersion rewrites the schema version of a closed journal file.
func SetJournalVersion(path string, version int) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version))
	return err
}
