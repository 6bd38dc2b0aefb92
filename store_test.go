package broker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreMissingFile(t *testing.T) {
	store := &FileStore{Path: filepath.Join(t.TempDir(), "portfolio.json"), InitialCash: 1000}

	p, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if p.Cash != 1000 {
		t.Errorf("cash = %v, want 1000", p.Cash)
	}
	if len(p.Holdings) != 0 || len(p.History) != 0 {
		t.Error("a fresh portfolio should be empty")
	}
	// The file is only created on the first save.
	if _, err := os.Stat(store.Path); !os.IsNotExist(err) {
		t.Error("Load must not create the ledger file")
	}
}

func TestFileStoreRoundtrip(t *testing.T) {
	store := &FileStore{Path: filepath.Join(t.TempDir(), "portfolio.json"), InitialCash: 1000}

	p, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	p.apply(NewTrade(day(1), Buy, "AAPL", 3, 100))
	if err := store.Save(p); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.Cash != 700 {
		t.Errorf("cash = %v, want 700", got.Cash)
	}
	if got.Position("AAPL") != 3 {
		t.Errorf("position = %v, want 3", got.Position("AAPL"))
	}
	if len(got.History) != 1 {
		t.Errorf("history length = %d, want 1", len(got.History))
	}
}

func TestFileStoreRejectsCorruptLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := &FileStore{Path: path, InitialCash: 1000}
	if _, err := store.Load(); err == nil {
		t.Error("expected an error for a corrupt ledger file")
	}
}

func TestFileStoreRejectsInvalidTrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	doc := `{"cash":100,"holdings":{},"history":[{"date":"2025-01-02T00:00:00Z","type":"buy","ticker":"","shares":1,"price":1,"total":1}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	store := &FileStore{Path: path}
	if _, err := store.Load(); err == nil {
		t.Error("expected an error for a trade without a ticker")
	}
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := &FileStore{Path: filepath.Join(dir, "portfolio.json"), InitialCash: 100}

	if err := store.Save(NewPortfolio(100)); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}
