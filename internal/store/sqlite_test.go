package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernie-sg/riley-cycles-watch/peaks"
	"github.com/bernie-sg/riley-cycles-watch/scan"
	"github.com/bernie-sg/riley-cycles-watch/spectrum"
)

func testResults() []scan.WindowResult {
	s := &spectrum.Spectrum{MinPeriod: 30, Step: 1, Power: []float64{0.1, 0.9, 0.2}}

	return []scan.WindowResult{
		{
			Offset:   0,
			Spectrum: s,
			Peaks: []peaks.Peak{
				{Period: 350, Power: 0.95, Tier: peaks.TierPrimary},
				{Period: 120, Power: 0.20, Tier: peaks.TierSecondary},
			},
		},
		{
			Offset:   1,
			Spectrum: s,
			Peaks: []peaks.Peak{
				{Period: 355, Power: 0.90, Tier: peaks.TierPrimary},
			},
		},
	}
}

func TestSQLite_RecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycles.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	cfg := scan.DefaultConfig()
	runID, err := s.RecordRun("TLT", cfg, testResults())
	require.NoError(t, err)
	assert.Positive(t, runID)

	var symbol string
	var window int
	row := s.db.QueryRow(`SELECT symbol, window FROM runs WHERE id = ?`, runID)
	require.NoError(t, row.Scan(&symbol, &window))
	assert.Equal(t, "TLT", symbol)
	assert.Equal(t, cfg.Window, window)

	var count int
	row = s.db.QueryRow(`SELECT COUNT(*) FROM peaks WHERE run_id = ?`, runID)
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 3, count)

	var period int
	var tier string
	row = s.db.QueryRow(
		`SELECT period, tier FROM peaks WHERE run_id = ? AND offset = 0 AND rank = 1`, runID)
	require.NoError(t, row.Scan(&period, &tier))
	assert.Equal(t, 350, period)
	assert.Equal(t, "primary", tier)
}

func TestSQLite_MultipleRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycles.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	first, err := s.RecordRun("TLT", scan.DefaultConfig(), testResults())
	require.NoError(t, err)

	second, err := s.RecordRun("SPY", scan.DefaultConfig(), testResults())
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycles.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)

	runID, err := s.RecordRun("GLD", scan.DefaultConfig(), testResults())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := NewSQLite(path)
	require.NoError(t, err)
	defer s2.Close()

	var symbol string
	row := s2.db.QueryRow(`SELECT symbol FROM runs WHERE id = ?`, runID)
	require.NoError(t, row.Scan(&symbol))
	assert.Equal(t, "GLD", symbol)
}

func TestNoop(t *testing.T) {
	var r Recorder = Noop{}

	id, err := r.RecordRun("TLT", scan.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, r.Close())
}
