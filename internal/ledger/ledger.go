// Package ledger persists site ownership records in an append-only
// JSON file. The dispatcher is the only writer in steady state; the
// mutex covers the webhook handler's concurrent reads and any future
// second writer.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fc-landing-bot/internal/types"
)

// ErrNotFound is returned by Find when no record matches the site name.
var ErrNotFound = errors.New("ownership record not found")

// Ledger is a file-backed ownership store.
type Ledger struct {
	path string
	mu   sync.Mutex
}

// New creates a Ledger over the given file path. The file is created
// lazily on first append.
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Append adds a record and rewrites the file atomically. Each append
// reads the full current set so external edits are not lost.
func (l *Ledger) Append(rec types.OwnershipRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.readAll()
	if err != nil {
		return err
	}
	records = append(records, rec)

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return os.Rename(tmp, l.path)
}

// Find returns the first record matching siteName, or ErrNotFound.
func (l *Ledger) Find(siteName string) (types.OwnershipRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.readAll()
	if err != nil {
		return types.OwnershipRecord{}, err
	}
	for _, rec := range records {
		if rec.SiteName == siteName {
			return rec, nil
		}
	}
	return types.OwnershipRecord{}, ErrNotFound
}

// IsOwner reports whether authorFID created siteName. A missing
// record is simply not-owner, never an error.
func (l *Ledger) IsOwner(siteName, authorFID string) bool {
	rec, err := l.Find(siteName)
	if err != nil {
		return false
	}
	return rec.AuthorFID == authorFID
}

// readAll loads the current record set. A missing or unreadable file
// starts a fresh set, matching the lazy-create behavior of Append.
func (l *Ledger) readAll() ([]types.OwnershipRecord, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	var records []types.OwnershipRecord
	if err := json.Unmarshal(data, &records); err != nil {
		// Corrupt file: treat as empty rather than wedging every
		// append and lookup.
		return nil, nil
	}
	return records, nil
}
