package broker

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the runtime settings, loaded from the environment with an
// optional .env file on top.
type Config struct {
	// Currency is the reporting currency (ISO 4217 code).
	Currency string
	// Model is the LLM model name used by the trading agent.
	Model string
	// LedgerFile is the path of the portfolio JSON document.
	LedgerFile string
	// ReadmeFile is the markdown file whose auto section the report
	// command rewrites. Empty disables the rewrite.
	ReadmeFile string
	// LogFile receives the structured agent log in addition to stderr.
	LogFile string
	// InitialCash funds a brand-new ledger and is the baseline for
	// return calculations.
	InitialCash float64
	// MaxTurns caps the agent conversation length per session.
	MaxTurns int
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment variables
// win over it. Missing variables fall back to defaults, so a bare
// environment is fully usable.
func LoadConfig() Config {
	// Ignore the error: a missing .env file is the normal case.
	_ = godotenv.Load()

	return Config{
		Currency:    getEnv("CURRENCY", "USD"),
		Model:       getEnv("MODEL_NAME", "gemini-2.5-flash"),
		LedgerFile:  getEnv("LEDGER_FILE", "portfolio.json"),
		ReadmeFile:  getEnv("README_FILE", "README.md"),
		LogFile:     getEnv("LOG_FILE", "agent.log"),
		InitialCash: getEnvAsFloat("INITIAL_CASH", 1000),
		MaxTurns:    getEnvAsInt("MAX_TURNS", 40),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
