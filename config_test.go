package broker

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"CURRENCY", "MODEL_NAME", "LEDGER_FILE", "README_FILE", "LOG_FILE", "INITIAL_CASH", "MAX_TURNS"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", cfg.Currency)
	}
	if cfg.LedgerFile != "portfolio.json" {
		t.Errorf("LedgerFile = %q, want portfolio.json", cfg.LedgerFile)
	}
	if cfg.InitialCash != 1000 {
		t.Errorf("InitialCash = %v, want 1000", cfg.InitialCash)
	}
	if cfg.MaxTurns != 40 {
		t.Errorf("MaxTurns = %v, want 40", cfg.MaxTurns)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CURRENCY", "EUR")
	t.Setenv("INITIAL_CASH", "2500.50")
	t.Setenv("MAX_TURNS", "10")
	t.Setenv("LEDGER_FILE", "test.json")

	cfg := LoadConfig()
	if cfg.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", cfg.Currency)
	}
	if cfg.InitialCash != 2500.50 {
		t.Errorf("InitialCash = %v, want 2500.50", cfg.InitialCash)
	}
	if cfg.MaxTurns != 10 {
		t.Errorf("MaxTurns = %v, want 10", cfg.MaxTurns)
	}
	if cfg.LedgerFile != "test.json" {
		t.Errorf("LedgerFile = %q, want test.json", cfg.LedgerFile)
	}
}

func TestLoadConfigIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("INITIAL_CASH", "lots")
	t.Setenv("MAX_TURNS", "many")

	cfg := LoadConfig()
	if cfg.InitialCash != 1000 {
		t.Errorf("InitialCash = %v, want the 1000 default", cfg.InitialCash)
	}
	if cfg.MaxTurns != 40 {
		t.Errorf("MaxTurns = %v, want the 40 default", cfg.MaxTurns)
	}
}
