package rating

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Overrides is an optional calibration overlay for the built-in tables.
// Values present in the file replace the corresponding table rows; absent
// values keep the defaults. Applied once at startup, before any request.
type Overrides struct {
	StateBaseAnnual map[string]int `yaml:"state_base_annual"`
	CarrierBands    map[string]struct {
		Low  float64 `yaml:"low"`
		High float64 `yaml:"high"`
	} `yaml:"carrier_bands"`
	CarrierStateAdjustments map[string]map[string]float64 `yaml:"carrier_state_adjustments"`
	MonthlyMinimumByState   map[string]int                `yaml:"monthly_minimum_by_state"`
	MonthlyMaximum          *int                          `yaml:"monthly_maximum"`
}

// LoadOverrides reads a calibration overlay from path and applies it to the
// rating tables. A missing file is not an error; a malformed one is.
func LoadOverrides(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrap(err, "rating: read overrides")
	}

	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return eris.Wrap(err, "rating: parse overrides")
	}

	applied := 0
	for state, rate := range ov.StateBaseAnnual {
		stateBaseAnnual[state] = rate
		applied++
	}
	for carrier, band := range ov.CarrierBands {
		carrierBands[carrier] = carrierBand{Low: band.Low, High: band.High}
		applied++
	}
	for carrier, states := range ov.CarrierStateAdjustments {
		if carrierStateAdjustments[carrier] == nil {
			carrierStateAdjustments[carrier] = map[string]float64{}
		}
		for state, adj := range states {
			carrierStateAdjustments[carrier][state] = adj
			applied++
		}
	}
	for state, min := range ov.MonthlyMinimumByState {
		monthlyMinimumByState[state] = min
		applied++
	}
	if ov.MonthlyMaximum != nil {
		monthlyMaximum = *ov.MonthlyMaximum
		applied++
	}

	if err := ValidateTables(); err != nil {
		return eris.Wrap(err, "rating: overrides produced invalid tables")
	}

	zap.L().Info("rating: calibration overrides applied",
		zap.String("path", path),
		zap.Int("entries", applied),
	)
	return nil
}
