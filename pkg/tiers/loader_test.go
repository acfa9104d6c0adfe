package tiers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/tiers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `
provider: testprov
updated: "2026-08-01"
volume_tiers:
  - name: starter
    order: 1
    min: 0
    max: 1000
    discount_pct: 0
  - name: growth
    order: 2
    min: 1000
    max: 0
    discount_pct: 12
support_tiers:
  - name: standard
    order: 1
    min: 0
    max: 0
    monthly_base_cost: 250
    spend_pct: 5
`

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testprov.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))

	tbl, err := tiers.LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "testprov", tbl.Provider)
	require.Len(t, tbl.VolumeTiers, 2)
	require.Len(t, tbl.SupportTiers, 1)

	// Band-level provider inherits the file-level provider.
	assert.Equal(t, "testprov", tbl.VolumeTiers[0].Provider)
	assert.Equal(t, "testprov", tbl.SupportTiers[0].Provider)
	assert.Equal(t, 12.0, tbl.VolumeTiers[1].DiscountPct)
}

func TestLoadTable_FileNotFound(t *testing.T) {
	_, err := tiers.LoadTable("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadTableFromBytes_InvalidYAML(t *testing.T) {
	_, err := tiers.LoadTableFromBytes([]byte("invalid: [yaml"), "bad.yaml")
	assert.Error(t, err)
}

func TestLoadTableFromBytes_MissingProvider(t *testing.T) {
	data := []byte(`
volume_tiers:
  - name: x
    order: 1
    min: 0
    max: 0
    discount_pct: 0
`)
	_, err := tiers.LoadTableFromBytes(data, "noprov.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing provider")
}

func TestLoadTableFromBytes_NoTiers(t *testing.T) {
	_, err := tiers.LoadTableFromBytes([]byte("provider: empty"), "empty.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no tiers")
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testprov.yaml"), []byte(sampleTable), 0o644))
	// Non-YAML files are skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o644))

	cat, err := tiers.LoadCatalog(dir)
	require.NoError(t, err)
	assert.Len(t, cat.Volume, 2)
	assert.Len(t, cat.Support, 1)
	assert.Empty(t, cat.Commitment)

	tier, ok := tiers.Resolve("testprov", 5_000, cat.Volume)
	require.True(t, ok)
	assert.Equal(t, "growth", tier.Name)
}

func TestLoadCatalog_MissingDirFallsBack(t *testing.T) {
	cat, err := tiers.LoadCatalog("/nonexistent/tiers")
	require.NoError(t, err)
	assert.Equal(t, tiers.DefaultCatalog(), cat)
}

func TestLoadCatalog_EmptyDirFallsBack(t *testing.T) {
	cat, err := tiers.LoadCatalog(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, tiers.DefaultCatalog(), cat)
}
