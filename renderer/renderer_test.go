package renderer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	broker "github.com/pierpoint/broker"
)

type fixedPricer map[string]float64

func (f fixedPricer) Price(_ context.Context, ticker string) (float64, error) {
	return f[ticker], nil
}

type memStore struct{ p *broker.Portfolio }

func (s *memStore) Load() (*broker.Portfolio, error) { return s.p, nil }
func (s *memStore) Save(p *broker.Portfolio) error   { s.p = p; return nil }

func testTrader() *broker.Trader {
	p := broker.NewPortfolio(1000)
	return &broker.Trader{
		Store:  &memStore{p: p},
		Pricer: fixedPricer{"AAPL": 150},
		Log:    zerolog.Nop(),
		Now:    func() time.Time { return time.Date(2025, time.March, 3, 15, 0, 0, 0, time.UTC) },
	}
}

func TestRenderReport(t *testing.T) {
	trader := testTrader()
	_, err := trader.Buy(context.Background(), "AAPL", 4)
	require.NoError(t, err)

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	report, err := NewReport(context.Background(), trader, "USD", 1000, now)
	require.NoError(t, err)

	md := RenderReport(report)
	assert.Contains(t, md, "# Portfolio Report")
	assert.Contains(t, md, "$1,000.00")       // net worth: 400 cash + 4*150
	assert.Contains(t, md, "| AAPL | 4 |")    // holdings row
	assert.Contains(t, md, "$150.00")         // average cost
	assert.Contains(t, md, "## Recent trades")
	assert.NotContains(t, md, "error")
}

func TestRenderReportEmptyPortfolio(t *testing.T) {
	trader := &broker.Trader{
		Store:  &memStore{p: broker.NewPortfolio(1000)},
		Pricer: fixedPricer{},
		Log:    zerolog.Nop(),
	}
	report, err := NewReport(context.Background(), trader, "USD", 1000, time.Now())
	require.NoError(t, err)

	md := RenderReport(report)
	assert.Contains(t, md, "_No holdings._")
	assert.NotContains(t, md, "## Recent trades")
	assert.NotContains(t, md, "error")
}

func TestRenderPortfolio(t *testing.T) {
	p := broker.NewPortfolio(250.5)
	p.Holdings = map[string]float64{"GOOG": 2}

	md := RenderPortfolio(NewPortfolioView(p, "USD"))
	assert.Contains(t, md, "$250.50")
	assert.Contains(t, md, "| GOOG | 2 |")
}

func TestUpdateReadme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	original := "# Pierpoint\n\nintro text\n\n<!-- auto start -->\nstale report\n<!-- auto end -->\n\nfooter text\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	require.NoError(t, UpdateReadme(path, "fresh report with $1,234.50"))

	updated, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(updated)
	assert.Contains(t, s, "intro text")
	assert.Contains(t, s, "footer text")
	assert.Contains(t, s, "fresh report with $1,234.50")
	assert.NotContains(t, s, "stale report")
	assert.Contains(t, s, "<!-- auto start -->")
	assert.Contains(t, s, "<!-- auto end -->")
}

func TestUpdateReadmeIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	original := "head\n<!-- auto start -->\nold\n<!-- auto end -->\ntail\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	require.NoError(t, UpdateReadme(path, "report"))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, UpdateReadme(path, "report"))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestUpdateReadmeRequiresMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("no markers here\n"), 0o644))

	err := UpdateReadme(path, "report")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "auto start"))
}
