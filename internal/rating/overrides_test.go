package rating

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rating.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesEmptyPath(t *testing.T) {
	assert.NoError(t, LoadOverrides(""))
}

func TestLoadOverridesMissingFile(t *testing.T) {
	assert.NoError(t, LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestLoadOverridesApplied(t *testing.T) {
	origCA := stateBaseAnnual["CA"]
	origMax := monthlyMaximum
	t.Cleanup(func() {
		stateBaseAnnual["CA"] = origCA
		monthlyMaximum = origMax
		delete(carrierBands, "Acme Assurance")
		delete(carrierStateAdjustments, "Acme Assurance")
	})

	path := writeOverrides(t, `
state_base_annual:
  CA: 3000
carrier_bands:
  Acme Assurance:
    low: 0.95
    high: 1.20
carrier_state_adjustments:
  Acme Assurance:
    CA: -0.05
monthly_maximum: 900
`)
	require.NoError(t, LoadOverrides(path))

	assert.Equal(t, 3000, StateBaseRate("CA"))
	assert.Equal(t, 900, MonthlyMaximum())
	low, high := BandForCarrier("Acme Assurance")
	assert.Equal(t, 0.95, low)
	assert.Equal(t, 1.20, high)
	assert.Equal(t, -0.05, StateAdjustment("Acme Assurance", "CA"))
}

func TestLoadOverridesMalformedYAML(t *testing.T) {
	path := writeOverrides(t, "state_base_annual: [not, a, map]")
	assert.Error(t, LoadOverrides(path))
}

func TestLoadOverridesRejectsInvalidTables(t *testing.T) {
	origTX := stateBaseAnnual["TX"]
	t.Cleanup(func() { stateBaseAnnual["TX"] = origTX })

	path := writeOverrides(t, "state_base_annual:\n  TX: -100\n")
	err := LoadOverrides(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tables")
}
