package broker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LedgerStore loads and saves the portfolio document.
type LedgerStore interface {
	Load() (*Portfolio, error)
	Save(p *Portfolio) error
}

// FileStore persists the portfolio as a single JSON document on disk.
//
// The whole document is rewritten on every save: the ledger is small (one
// object, one map, one append-only list) and a full rewrite keeps the file
// trivially inspectable and diffable.
//
// Known limitation: the store assumes a single writer. Operations are
// read-modify-write on the whole document with no locking, so concurrent
// sessions against the same ledger file would race.
type FileStore struct {
	// Path is the location of the ledger file, e.g. "portfolio.json".
	Path string
	// InitialCash funds a brand-new portfolio when the file does not exist.
	InitialCash float64
}

// Load reads and validates the ledger document. A missing file is not an
// error: it yields a fresh portfolio funded with InitialCash, which is only
// written to disk on the first save.
func (s *FileStore) Load() (*Portfolio, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewPortfolio(s.InitialCash), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.Path, err)
	}

	var p Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", s.Path, err)
	}
	if p.Holdings == nil {
		p.Holdings = make(map[string]float64)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("ledger %s: %w", s.Path, err)
	}
	return &p, nil
}

// Save writes the full document atomically: marshal to a temp file in the
// same directory, then rename over the target. A crash mid-save leaves the
// previous ledger intact.
func (s *FileStore) Save(p *Portfolio) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replacing ledger %s: %w", s.Path, err)
	}
	return nil
}
